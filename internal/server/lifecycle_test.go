package server

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type blockingService struct {
	started atomic.Bool
	stopped atomic.Bool
	done    chan struct{}
	once    sync.Once
	order   *[]string
	mu      *sync.Mutex
	name    string
}

func newBlockingService(name string, order *[]string, mu *sync.Mutex) *blockingService {
	return &blockingService{done: make(chan struct{}), order: order, mu: mu, name: name}
}

func (b *blockingService) Start() error {
	b.started.Store(true)
	<-b.done
	return nil
}

func (b *blockingService) Stop() {
	b.stopped.Store(true)
	b.mu.Lock()
	*b.order = append(*b.order, b.name)
	b.mu.Unlock()
	b.once.Do(func() { close(b.done) })
}

func TestLifecycle_StopsInReverseOrderOnCancel(t *testing.T) {
	var (
		order []string
		mu    sync.Mutex
	)
	lc := NewLifecycle(zaptest.NewLogger(t))
	first := newBlockingService("first", &order, &mu)
	second := newBlockingService("second", &order, &mu)
	lc.Add("first", first)
	lc.Add("second", second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()

	require.Eventually(t, func() bool {
		return first.started.Load() && second.started.Load()
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}

	assert.True(t, first.stopped.Load())
	assert.True(t, second.stopped.Load())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestLifecycle_ReturnsFirstServiceFailure(t *testing.T) {
	var (
		order []string
		mu    sync.Mutex
	)
	lc := NewLifecycle(zaptest.NewLogger(t))
	healthy := newBlockingService("healthy", &order, &mu)
	boom := errors.New("bind: address in use")
	lc.Add("healthy", healthy)
	lc.Add("grpc", &FuncService{
		StartFn: func() error { return boom },
		StopFn:  func() {},
	})

	select {
	case err := <-runAsync(lc):
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "service grpc")
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}
	assert.True(t, healthy.stopped.Load())
}

func runAsync(lc *Lifecycle) <-chan error {
	done := make(chan error, 1)
	go func() { done <- lc.Run(context.Background()) }()
	return done
}

func TestFuncService(t *testing.T) {
	started, stopped := false, false
	svc := &FuncService{
		StartFn: func() error { started = true; return nil },
		StopFn:  func() { stopped = true },
	}

	assert.NoError(t, svc.Start())
	assert.True(t, started)
	svc.Stop()
	assert.True(t, stopped)
}

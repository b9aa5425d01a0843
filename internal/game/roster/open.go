package roster

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/scripting"
)

// Open loads the configured roster file and adapts it into a Registry. When
// an adapter script is configured, trait-only agents are derived through it;
// the script VM is closed before Open returns.
//
// Precondition: logger must be non-nil.
func Open(cfg config.BattleConfig, logger *zap.Logger) (*Registry, error) {
	start := time.Now()
	agents, err := LoadFile(cfg.Roster)
	if err != nil {
		return nil, err
	}

	var deriver StatDeriver
	if cfg.AdapterScript != "" {
		adapter, err := scripting.LoadStatAdapter(cfg.AdapterScript, cfg.InstructionLimit, logger)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		deriver = adapter
	}

	reg, err := NewRegistry(agents, deriver)
	if err != nil {
		return nil, err
	}
	logger.Info("roster loaded",
		zap.String("path", cfg.Roster),
		zap.Int("agents", reg.Len()),
		zap.Bool("adapter", deriver != nil),
		zap.Duration("elapsed", time.Since(start)),
	)
	return reg, nil
}

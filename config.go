package tableau

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// DebugConfig holds the debug switches of a Stage. LoadDebugConfig reads
// them from TABLEAU_* environment variables.
type DebugConfig struct {
	// DisableCulling paints every mapped actor, even outside the painted
	// area.
	DisableCulling bool `envconfig:"DISABLE_CULLING" default:"false"`
	// DisableClippedRedraws turns every queued redraw into a full redraw.
	DisableClippedRedraws bool `envconfig:"DISABLE_CLIPPED_REDRAWS" default:"false"`
	// CheckInvariants verifies map state invariants on every transition.
	CheckInvariants bool `envconfig:"CHECK_INVARIANTS" default:"false"`
	// RedrawDebug logs actors that would be culled and paints them anyway.
	RedrawDebug bool `envconfig:"REDRAW_DEBUG" default:"false"`
	// MaxClipEntries is the number of damage boxes kept before a frame
	// falls back to a full redraw.
	MaxClipEntries int `envconfig:"MAX_CLIP_ENTRIES" default:"16"`
}

// DefaultDebugConfig returns the configuration used by NewStage.
func DefaultDebugConfig() DebugConfig {
	return DebugConfig{MaxClipEntries: defaultMaxClipEntries}
}

// LoadDebugConfig reads the debug configuration from the environment.
func LoadDebugConfig() (DebugConfig, error) {
	var cfg DebugConfig
	if err := envconfig.Process("tableau", &cfg); err != nil {
		return DebugConfig{}, fmt.Errorf("tableau: load debug config: %w", err)
	}
	if cfg.MaxClipEntries <= 0 {
		return DebugConfig{}, fmt.Errorf("tableau: MAX_CLIP_ENTRIES must be positive, got %d", cfg.MaxClipEntries)
	}
	return cfg, nil
}

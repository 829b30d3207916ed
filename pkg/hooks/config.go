// Package hooks runs shell commands around slide transitions. Hooks are
// configured in .slidescroll/hooks.yaml next to the deck and run in the
// before-move and moved phases. They observe navigation; they cannot cancel
// a move.
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// HookPhase represents when a hook runs
type HookPhase string

const (
	// BeforeMove runs when a transition starts.
	BeforeMove HookPhase = "before-move"
	// Moved runs when a transition has finished.
	Moved HookPhase = "moved"
)

// Hook defines a single hook configuration
type Hook struct {
	Name    string            `yaml:"name" json:"name"`
	Command string            `yaml:"command" json:"command"`                     // Shell command to run
	Timeout time.Duration     `yaml:"timeout,omitempty" json:"timeout,omitempty"` // default: 10s
	Env     map[string]string `yaml:"env,omitempty" json:"env,omitempty"`         // values are $-expanded
}

// Config holds all hook configurations
type Config struct {
	Hooks HooksByPhase `yaml:"hooks" json:"hooks"`
}

// HooksByPhase organizes hooks by their execution phase
type HooksByPhase struct {
	BeforeMove []Hook `yaml:"before-move,omitempty" json:"before-move,omitempty"`
	Moved      []Hook `yaml:"moved,omitempty" json:"moved,omitempty"`
}

// MoveContext describes a transition to the hook commands.
type MoveContext struct {
	Deck      string    // SLIDESCROLL_DECK
	From      int       // SLIDESCROLL_FROM: previous index
	To        int       // SLIDESCROLL_TO: target index
	Key       string    // SLIDESCROLL_KEY: target key
	Timestamp time.Time // SLIDESCROLL_TIMESTAMP (RFC3339)
}

// ToEnv converts the move context to environment variables.
// SLIDESCROLL_INDEX repeats SLIDESCROLL_TO for scripts that only care where
// the deck is.
func (c MoveContext) ToEnv() []string {
	return []string{
		fmt.Sprintf("SLIDESCROLL_DECK=%s", c.Deck),
		fmt.Sprintf("SLIDESCROLL_FROM=%d", c.From),
		fmt.Sprintf("SLIDESCROLL_TO=%d", c.To),
		fmt.Sprintf("SLIDESCROLL_INDEX=%d", c.To),
		fmt.Sprintf("SLIDESCROLL_KEY=%s", c.Key),
		fmt.Sprintf("SLIDESCROLL_TIMESTAMP=%s", c.Timestamp.Format(time.RFC3339)),
	}
}

// DefaultTimeout is the default hook execution timeout
const DefaultTimeout = 10 * time.Second

// Loader loads hook configuration from .slidescroll/hooks.yaml
type Loader struct {
	projectDir string
	config     *Config
	warnings   []string
}

// LoaderOption configures the loader
type LoaderOption func(*Loader)

// WithProjectDir sets the directory holding .slidescroll/ (default: current
// directory). The CLI passes the deck's directory.
func WithProjectDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.projectDir = dir
	}
}

// NewLoader creates a new hook loader with options
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}

	for _, opt := range opts {
		opt(l)
	}

	if l.projectDir == "" {
		l.projectDir, _ = os.Getwd()
	}

	return l
}

// Path returns the hooks file location.
func (l *Loader) Path() string {
	return filepath.Join(l.projectDir, ".slidescroll", "hooks.yaml")
}

// Load loads hook configuration from .slidescroll/hooks.yaml
func (l *Loader) Load() error {
	configPath := l.Path()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file means no hooks
			l.config = &Config{}
			return nil
		}
		return fmt.Errorf("reading hooks config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing %s: %w", configPath, err)
	}

	config.Hooks.BeforeMove, l.warnings = normalizeHooks(config.Hooks.BeforeMove, BeforeMove, l.warnings)
	config.Hooks.Moved, l.warnings = normalizeHooks(config.Hooks.Moved, Moved, l.warnings)

	l.config = &config
	return nil
}

// normalizeHooks applies defaults, drops empty commands, and accumulates warnings.
func normalizeHooks(hooks []Hook, phase HookPhase, warnings []string) ([]Hook, []string) {
	var out []Hook
	for i := range hooks {
		hook := hooks[i]
		if strings.TrimSpace(hook.Command) == "" {
			warnings = append(warnings, fmt.Sprintf("%s hook %d has empty command; skipping", phase, i+1))
			continue
		}
		if hook.Timeout == 0 {
			hook.Timeout = DefaultTimeout
		}
		if hook.Name == "" {
			hook.Name = fmt.Sprintf("%s-%d", phase, i+1)
		}
		out = append(out, hook)
	}
	return out, warnings
}

// Config returns the loaded configuration (or empty if not loaded)
func (l *Loader) Config() *Config {
	if l.config == nil {
		return &Config{}
	}
	return l.config
}

// HasHooks returns true if any hooks are configured
func (l *Loader) HasHooks() bool {
	return l.config != nil && l.config.HasHooks()
}

// HasHooks returns true if any phase has hooks.
func (c *Config) HasHooks() bool {
	return len(c.Hooks.BeforeMove) > 0 || len(c.Hooks.Moved) > 0
}

// GetHooks returns hooks for a specific phase
func (l *Loader) GetHooks(phase HookPhase) []Hook {
	if l.config == nil {
		return nil
	}
	return l.config.Phase(phase)
}

// Phase returns the hooks of one phase.
func (c *Config) Phase(phase HookPhase) []Hook {
	switch phase {
	case BeforeMove:
		return c.Hooks.BeforeMove
	case Moved:
		return c.Hooks.Moved
	default:
		return nil
	}
}

// Warnings returns any warnings from loading
func (l *Loader) Warnings() []string {
	return l.warnings
}

// LoadDefault creates a loader and loads with default settings
func LoadDefault() (*Loader, error) {
	loader := NewLoader()
	if err := loader.Load(); err != nil {
		return nil, err
	}
	return loader, nil
}

// UnmarshalYAML accepts timeouts as durations ("5s") or bare seconds.
func (h *Hook) UnmarshalYAML(node *yaml.Node) error {
	// Mirrors Hook with Timeout as a string; keep the two in sync.
	type hookDTO struct {
		Name    string            `yaml:"name"`
		Command string            `yaml:"command"`
		Timeout string            `yaml:"timeout,omitempty"`
		Env     map[string]string `yaml:"env,omitempty"`
	}

	var dto hookDTO
	if err := node.Decode(&dto); err != nil {
		return err
	}

	h.Name = dto.Name
	h.Command = dto.Command
	h.Env = dto.Env

	if dto.Timeout != "" {
		d, err := time.ParseDuration(dto.Timeout)
		if err == nil {
			h.Timeout = d
		} else {
			var seconds float64
			if _, scanErr := fmt.Sscanf(dto.Timeout, "%f", &seconds); scanErr == nil {
				h.Timeout = time.Duration(seconds * float64(time.Second))
			} else {
				return fmt.Errorf("invalid timeout %q: %w", dto.Timeout, err)
			}
		}
	}

	return nil
}

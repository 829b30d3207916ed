package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/vanderheijden86/slidescroll/pkg/debug"
	"github.com/vanderheijden86/slidescroll/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// maxParallel bounds how many hooks of one phase run at once.
const maxParallel = 4

// HookResult is the outcome of one hook run.
type HookResult struct {
	Hook     string
	Phase    HookPhase
	Key      string
	Success  bool
	Stdout   string
	Stderr   string
	Error    error
	Duration time.Duration
}

// Executor runs configured hooks and keeps their results.
type Executor struct {
	config *Config

	mu      sync.Mutex
	results []HookResult
}

// NewExecutor creates an executor for config.
func NewExecutor(config *Config) *Executor {
	if config == nil {
		config = &Config{}
	}
	return &Executor{config: config}
}

// Config returns the hook configuration.
func (e *Executor) Config() *Config {
	return e.config
}

// Run executes every hook of phase concurrently and waits for them. The
// returned error joins the failures; callers only log it.
func (e *Executor) Run(ctx context.Context, phase HookPhase, mc MoveContext) error {
	hooks := e.config.Phase(phase)
	if len(hooks) == 0 {
		return nil
	}
	if mc.Timestamp.IsZero() {
		mc.Timestamp = time.Now()
	}

	results := make([]HookResult, len(hooks))
	var g errgroup.Group
	g.SetLimit(maxParallel)
	for i, hook := range hooks {
		g.Go(func() error {
			results[i] = e.runHook(ctx, hook, phase, mc)
			return results[i].Error
		})
	}
	_ = g.Wait()

	e.mu.Lock()
	e.results = append(e.results, results...)
	e.mu.Unlock()

	var errs []error
	for _, r := range results {
		if r.Error != nil {
			errs = append(errs, fmt.Errorf("%s hook %q: %w", phase, r.Hook, r.Error))
		}
	}
	return errors.Join(errs...)
}

// Go runs the phase in the background. done, if set, receives the error.
func (e *Executor) Go(phase HookPhase, mc MoveContext, done func(error)) {
	go func() {
		err := e.Run(context.Background(), phase, mc)
		if err != nil {
			debug.Log("hooks: %v", err)
		}
		if done != nil {
			done(err)
		}
	}()
}

func (e *Executor) runHook(ctx context.Context, hook Hook, phase HookPhase, mc MoveContext) HookResult {
	defer metrics.TimerWithCallback(metrics.HookRun, func(d time.Duration) {
		debug.LogTiming(fmt.Sprintf("hooks: %s %s", phase, hook.Name), d)
	})()

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", hook.Command)
	cmd.WaitDelay = 100 * time.Millisecond
	cmd.Env = append(os.Environ(), mc.ToEnv()...)
	for k, v := range hook.Env {
		cmd.Env = append(cmd.Env, k+"="+os.ExpandEnv(v))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := HookResult{
		Hook:     hook.Name,
		Phase:    phase,
		Key:      mc.Key,
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		Duration: time.Since(start),
	}
	switch {
	case ctx.Err() == context.DeadlineExceeded:
		result.Error = fmt.Errorf("timed out after %v", timeout)
	case err != nil:
		result.Error = err
		if result.Stderr != "" {
			result.Error = fmt.Errorf("%w: %s", err, truncate(result.Stderr, 200))
		}
	default:
		result.Success = true
	}
	debug.LogIf(!result.Success, "hooks: %s %s -> %s failed: %v", phase, hook.Name, mc.Key, result.Error)
	return result
}

// Results returns a copy of all results so far, in run order.
func (e *Executor) Results() []HookResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]HookResult, len(e.results))
	copy(out, e.results)
	return out
}

// Summary renders a one-line-per-hook report.
func (e *Executor) Summary() string {
	results := e.Results()
	if len(results) == 0 {
		return ""
	}
	var b strings.Builder
	failed := 0
	for _, r := range results {
		status := "ok"
		if !r.Success {
			status = "FAILED"
			failed++
		}
		fmt.Fprintf(&b, "  [%s] %s %s (%s) %v\n", status, r.Phase, r.Hook, r.Key, r.Duration.Round(time.Millisecond))
		if r.Error != nil {
			fmt.Fprintf(&b, "        %s\n", truncate(r.Error.Error(), 120))
		}
	}
	return fmt.Sprintf("Hooks: %d run, %d failed\n", len(results), failed) + b.String()
}

// RunHooks loads the hooks next to a deck. It returns nil without error
// when hooks are disabled or none are configured.
func RunHooks(dir string, noHooks bool) (*Executor, error) {
	if noHooks {
		return nil, nil
	}
	loader := NewLoader(WithProjectDir(dir))
	if err := loader.Load(); err != nil {
		return nil, err
	}
	for _, w := range loader.Warnings() {
		debug.Log("hooks: %s", w)
	}
	if !loader.HasHooks() {
		return nil, nil
	}
	return NewExecutor(loader.Config()), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

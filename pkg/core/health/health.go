// Package health runs the diagnostics behind `grocer doctor`: named checks
// over the config file, the catalog store and the metrics output.
package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Status represents the outcome of a check
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
	StatusUnknown   Status = "unknown"
)

// CheckResult represents the result of a single check
type CheckResult struct {
	Name     string                 `json:"name"`
	Status   Status                 `json:"status"`
	Message  string                 `json:"message,omitempty"`
	Duration time.Duration          `json:"duration"`
	Details  map[string]interface{} `json:"details,omitempty"`
}

// Checker is an interface for checks
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// CheckFunc is a function type that implements Checker
type CheckFunc func(ctx context.Context) CheckResult

// Check implements the Checker interface
func (f CheckFunc) Check(ctx context.Context) CheckResult {
	return f(ctx)
}

// Name returns a default name
func (f CheckFunc) Name() string {
	return "unknown"
}

type namedCheck struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

// NewChecker creates a named checker from a function
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return &namedCheck{name: name, fn: fn}
}

func (c *namedCheck) Name() string                          { return c.name }
func (c *namedCheck) Check(ctx context.Context) CheckResult { return c.fn(ctx) }

// Registry holds checks in registration order
type Registry struct {
	mu       sync.RWMutex
	checkers []Checker
	service  string
	version  string
}

// NewRegistry creates a new check registry
func NewRegistry(service, version string) *Registry {
	return &Registry{service: service, version: version}
}

// Register adds a checker, replacing an earlier one with the same name
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.checkers {
		if c.Name() == checker.Name() {
			r.checkers[i] = checker
			return
		}
	}
	r.checkers = append(r.checkers, checker)
}

// RegisterFunc adds a check function to the registry
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context) CheckResult) {
	r.Register(NewChecker(name, fn))
}

// Check runs all checks concurrently. Results keep registration order.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	checkers := append([]Checker(nil), r.checkers...)
	r.mu.RUnlock()

	report := &Report{
		Service:   r.service,
		Version:   r.version,
		Timestamp: time.Now(),
		Checks:    make([]CheckResult, len(checkers)),
	}

	var wg sync.WaitGroup
	for i, checker := range checkers {
		wg.Add(1)
		go func(i int, c Checker) {
			defer wg.Done()
			start := time.Now()
			result := c.Check(ctx)
			result.Duration = time.Since(start)
			if result.Name == "" {
				result.Name = c.Name()
			}
			if result.Status == "" {
				result.Status = StatusUnknown
			}
			report.Checks[i] = result
		}(i, checker)
	}
	wg.Wait()

	report.Status = StatusHealthy
	for _, result := range report.Checks {
		switch result.Status {
		case StatusUnhealthy:
			report.Status = StatusUnhealthy
		case StatusDegraded, StatusUnknown:
			if report.Status != StatusUnhealthy {
				report.Status = StatusDegraded
			}
		}
	}
	return report
}

// CheckWithTimeout runs all checks with a timeout
func (r *Registry) CheckWithTimeout(timeout time.Duration) *Report {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.Check(ctx)
}

// Report represents the overall result
type Report struct {
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// Healthy reports whether no check failed
func (r *Report) Healthy() bool {
	return r.Status != StatusUnhealthy
}

// String returns a one-line-per-check summary
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s: %s", r.Service, r.Version, r.Status)
	for _, c := range r.Checks {
		fmt.Fprintf(&sb, "\n  %-10s %-9s %s", c.Name, c.Status, c.Message)
	}
	return sb.String()
}

// FileCheck reports healthy when path exists and is a regular file.
// A missing file is degraded unless required.
func FileCheck(name, path string, required bool) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{
			Name:    name,
			Details: map[string]interface{}{"path": path},
		}

		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err) && !required:
			result.Status = StatusDegraded
			result.Message = "not found"
		case err != nil:
			result.Status = StatusUnhealthy
			result.Message = err.Error()
		case info.IsDir():
			result.Status = StatusUnhealthy
			result.Message = "is a directory"
		default:
			result.Status = StatusHealthy
			result.Message = fmt.Sprintf("%d bytes", info.Size())
		}
		return result
	})
}

// WritableDirCheck reports whether files can be created next to path
func WritableDirCheck(name, path string) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		dir := filepath.Dir(path)
		result := CheckResult{
			Name:    name,
			Details: map[string]interface{}{"dir": dir},
		}

		f, err := os.CreateTemp(dir, ".grocer-doctor-*")
		if err != nil {
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			return result
		}
		f.Close()
		os.Remove(f.Name())

		result.Status = StatusHealthy
		result.Message = "writable"
		return result
	})
}

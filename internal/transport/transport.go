// Package transport executes introspection commands against an attached
// device through the adb binary. Arguments are always passed as discrete
// argv tokens, never concatenated into a shell string.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner is the capability the pipeline depends on: run one device command
// and return its trimmed stdout, or a typed failure. Implementations must
// not retry internally.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ADB runs commands through the adb binary on PATH.
type ADB struct {
	path    string
	serial  string
	timeout time.Duration
}

// Option configures an ADB transport.
type Option func(*ADB)

// WithSerial targets a specific device when several are attached.
func WithSerial(serial string) Option {
	return func(a *ADB) { a.serial = serial }
}

// WithTimeout bounds each command invocation. Zero means no bound beyond
// the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(a *ADB) { a.timeout = d }
}

// NewADB locates the adb binary and returns a transport bound to it.
func NewADB(opts ...Option) (*ADB, error) {
	path, err := exec.LookPath("adb")
	if err != nil {
		return nil, &Error{
			Kind:   KindNotInstalled,
			Detail: "adb not found on PATH; install Android platform-tools",
			Cause:  err,
		}
	}

	a := &ADB{path: path}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Run executes one adb command and returns its trimmed stdout.
func (a *ADB) Run(ctx context.Context, args ...string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	argv := args
	if a.serial != "" {
		argv = append([]string{"-s", a.serial}, args...)
	}

	cmd := exec.CommandContext(ctx, a.path, argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = fmt.Sprintf("command %q failed", strings.Join(args, " "))
		}
		return "", &Error{
			Kind:   KindExecutionFailed,
			Detail: detail,
			Cause:  err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Ensure verifies the transport is usable by starting the adb server.
// It is idempotent: starting an already-running server is a no-op.
func (a *ADB) Ensure(ctx context.Context) error {
	if _, err := a.Run(ctx, "start-server"); err != nil {
		return fmt.Errorf("adb server not available: %w", err)
	}
	return nil
}

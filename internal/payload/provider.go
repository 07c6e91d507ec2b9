package payload

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Provider supplies a computed dataset for a modulus. The visualizer never
// computes Fibonacci residues or periods itself; production code shells out to
// the external solver, tests inject synthetic datasets.
type Provider interface {
	Compute(ctx context.Context, base int) (*Dataset, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, base int) (*Dataset, error)

func (f ProviderFunc) Compute(ctx context.Context, base int) (*Dataset, error) {
	return f(ctx, base)
}

// DefaultSolverPath is where the solver binary is looked up when no path is
// configured.
const DefaultSolverPath = "fibonacci_mod"

// ExecProvider runs the external period solver and decodes the JSON document
// it writes to stdout. The solver's stderr (progress output) is discarded
// unless the run fails.
type ExecProvider struct {
	Path    string
	Timeout time.Duration
}

func NewExecProvider(path string) *ExecProvider {
	if path == "" {
		path = DefaultSolverPath
	}
	return &ExecProvider{Path: path, Timeout: time.Hour}
}

func (p *ExecProvider) Compute(ctx context.Context, base int) (*Dataset, error) {
	if base < 1 || base > MaxBase {
		return nil, fmt.Errorf("base must be in [1, %d], got %d", MaxBase, base)
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.Path, fmt.Sprintf("%d", base))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("solver %s: %w", p.Path, ctx.Err())
		}
		msg := bytes.TrimSpace(stderr.Bytes())
		if len(msg) > 0 {
			return nil, fmt.Errorf("solver %s: %v: %s", p.Path, err, msg)
		}
		return nil, fmt.Errorf("solver %s: %w", p.Path, err)
	}

	d, err := Decode(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	if d.Base != base {
		return nil, &SchemaError{Field: "base", Reason: fmt.Sprintf("solver returned base %d for requested %d", d.Base, base)}
	}
	return d, nil
}

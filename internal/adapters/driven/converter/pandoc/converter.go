// Package pandoc adapts the external pandoc binary as the document
// converter for formats Go cannot parse natively.
package pandoc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/booklore/librarian/internal/core/ports/driven"
)

// DefaultBinary is the converter binary looked up on PATH.
const DefaultBinary = "pandoc"

// CommandRunner abstracts subprocess execution for testing.
type CommandRunner interface {
	// Run executes a command and returns its combined stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return out, nil
}

// Ensure Converter implements the interface.
var _ driven.DocumentConverter = (*Converter)(nil)

// Converter shells out to pandoc for document-to-text conversion.
type Converter struct {
	binary string
	runner CommandRunner
}

// Option configures the converter.
type Option func(*Converter)

// WithBinary overrides the pandoc binary path.
func WithBinary(path string) Option {
	return func(c *Converter) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithRunner overrides subprocess execution. Used by tests.
func WithRunner(r CommandRunner) Option {
	return func(c *Converter) {
		if r != nil {
			c.runner = r
		}
	}
}

// New creates a pandoc converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		binary: DefaultBinary,
		runner: execRunner{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether the pandoc binary can be found.
func (c *Converter) Available() bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

// ConvertToText converts the file at path to plain text.
func (c *Converter) ConvertToText(ctx context.Context, path string) (string, error) {
	out, err := c.runner.Run(ctx, c.binary, "--to=plain", "--wrap=none", path)
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", path, err)
	}
	return string(out), nil
}

// Package validate runs ordered, independent checks on submission content.
//
// Checks are short-circuit: the chain stops at the first failure and reports
// which check failed and why, never a generic boolean.
package validate

import "strings"

// Default chain configuration constants.
const (
	defaultMaxFileSize = 1 << 20 // 1 MiB, matches the platform upload cap
)

// Draft carries the submission content a chain inspects. FileSize is zero
// when no attachment accompanies the write.
type Draft struct {
	Title       string
	Description string
	FileSize    int64
}

// Check is one independent validation step.
type Check interface {
	// Name identifies the check in failure reports.
	Name() string

	// Validate returns a non-nil error when the draft fails the check.
	Validate(d Draft) error
}

// Chain runs checks in order and stops at the first failure.
type Chain struct {
	checks      []Check
	maxFileSize int64
}

// Option applies a configuration option to the Chain.
type Option func(*Chain)

// WithMaxFileSize overrides the attachment size cap.
func WithMaxFileSize(n int64) Option {
	return func(c *Chain) {
		if n > 0 {
			c.maxFileSize = n
		}
	}
}

// WithCheck appends an extra check after the built-in ones.
func WithCheck(chk Check) Option {
	return func(c *Chain) {
		if chk != nil {
			c.checks = append(c.checks, chk)
		}
	}
}

// NewChain builds the standard chain: title, description, file size.
func NewChain(opts ...Option) *Chain {
	c := &Chain{maxFileSize: defaultMaxFileSize}
	for _, opt := range opts {
		opt(c)
	}
	c.checks = append([]Check{
		titleCheck{},
		descriptionCheck{},
		fileSizeCheck{max: c.maxFileSize},
	}, c.checks...)
	return c
}

// Run validates the draft, returning the first failure as a
// *ValidationError, or nil when every check passes.
func (c *Chain) Run(d Draft) error {
	for _, chk := range c.checks {
		if err := chk.Validate(d); err != nil {
			return err
		}
	}
	return nil
}

type titleCheck struct{}

func (titleCheck) Name() string { return "title" }

func (t titleCheck) Validate(d Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return newValidationError(t.Name(), "title is required")
	}
	return nil
}

type descriptionCheck struct{}

func (descriptionCheck) Name() string { return "description" }

func (c descriptionCheck) Validate(d Draft) error {
	if strings.TrimSpace(d.Description) == "" {
		return newValidationError(c.Name(), "description is required")
	}
	return nil
}

type fileSizeCheck struct {
	max int64
}

func (fileSizeCheck) Name() string { return "file-size" }

func (c fileSizeCheck) Validate(d Draft) error {
	if d.FileSize > c.max {
		return newValidationError(c.Name(), "attached file too large")
	}
	return nil
}

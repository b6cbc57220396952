// Package shortcode generates random short codes that are unique in the durable store.
package shortcode

import (
	"context"
	"fmt"

	"github.com/vadimbarashkov/shortlink/internal/entity"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet is the URL-safe alphabet codes are drawn from.
	Alphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	DefaultLength      = 8
	DefaultMaxAttempts = 5
)

type existenceChecker interface {
	Exists(ctx context.Context, shortCode string) (bool, error)
}

// Generator produces short codes and checks them against the store.
type Generator struct {
	checker     existenceChecker
	length      int
	maxAttempts int
	random      func(alphabet string, size int) (string, error)
}

type Option func(*Generator)

func WithLength(n int) Option {
	return func(g *Generator) {
		g.length = n
	}
}

func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		g.maxAttempts = n
	}
}

func New(checker existenceChecker, opts ...Option) *Generator {
	g := &Generator{
		checker:     checker,
		length:      DefaultLength,
		maxAttempts: DefaultMaxAttempts,
		random:      gonanoid.Generate,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Length returns the size of the codes the generator produces.
func (g *Generator) Length() int {
	return g.length
}

// MaxAttempts returns the number of candidates tried before giving up.
func (g *Generator) MaxAttempts() int {
	return g.maxAttempts
}

// Generate returns a code that did not exist in the store at the time of the check.
// It gives up with entity.ErrCodeSpaceExhausted after the configured number of attempts.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	const op = "shortcode.Generator.Generate"

	for i := 0; i < g.maxAttempts; i++ {
		code, err := g.random(Alphabet, g.length)
		if err != nil {
			return "", fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		exists, err := g.checker.Exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("%s: failed to check short code: %w", op, err)
		}

		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("%s: %w", op, entity.ErrCodeSpaceExhausted)
}

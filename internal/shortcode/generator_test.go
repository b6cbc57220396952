package shortcode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/shortlink/internal/entity"

	shortcodeMock "github.com/vadimbarashkov/shortlink/mocks/shortcode"
)

func TestGenerator_Generate(t *testing.T) {
	t.Run("random source error", func(t *testing.T) {
		checker := shortcodeMock.NewMockExistenceChecker(t)
		g := New(checker, WithLength(-1))

		code, err := g.Generate(context.Background())

		assert.Error(t, err)
		assert.Empty(t, code)
	})

	t.Run("existence check error", func(t *testing.T) {
		errUnknown := errors.New("unknown error")

		checker := shortcodeMock.NewMockExistenceChecker(t)
		checker.On("Exists", mock.Anything, mock.Anything).
			Once().
			Return(false, errUnknown)

		g := New(checker)

		code, err := g.Generate(context.Background())

		assert.ErrorIs(t, err, errUnknown)
		assert.Empty(t, code)
	})

	t.Run("code space exhausted", func(t *testing.T) {
		checker := shortcodeMock.NewMockExistenceChecker(t)
		checker.On("Exists", mock.Anything, mock.Anything).
			Times(DefaultMaxAttempts).
			Return(true, nil)

		g := New(checker)

		code, err := g.Generate(context.Background())

		assert.ErrorIs(t, err, entity.ErrCodeSpaceExhausted)
		assert.Empty(t, code)
	})

	t.Run("retry after collision", func(t *testing.T) {
		checker := shortcodeMock.NewMockExistenceChecker(t)
		checker.On("Exists", mock.Anything, "taken").
			Once().
			Return(true, nil)
		checker.On("Exists", mock.Anything, "free").
			Once().
			Return(false, nil)

		candidates := []string{"taken", "free"}
		g := New(checker)
		g.random = func(_ string, _ int) (string, error) {
			code := candidates[0]
			candidates = candidates[1:]
			return code, nil
		}

		code, err := g.Generate(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "free", code)
	})

	t.Run("success", func(t *testing.T) {
		checker := shortcodeMock.NewMockExistenceChecker(t)
		checker.On("Exists", mock.Anything, mock.Anything).
			Return(false, nil)

		g := New(checker)
		seen := make(map[string]struct{})

		for i := 0; i < 1000; i++ {
			code, err := g.Generate(context.Background())

			assert.NoError(t, err)
			assert.Len(t, code, DefaultLength)

			for _, c := range code {
				assert.Contains(t, Alphabet, string(c))
			}

			_, dup := seen[code]
			assert.False(t, dup, "duplicate code %q", code)
			seen[code] = struct{}{}
		}
	})
}

func TestNew(t *testing.T) {
	g := New(nil, WithLength(10), WithMaxAttempts(3))

	assert.Equal(t, 10, g.Length())
	assert.Equal(t, 3, g.MaxAttempts())
}

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "site.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		file, ok := err.Context().GetString("file")
		assert.True(t, ok)
		assert.Equal(t, "site.yaml", file)
	})

	t.Run("Config field error", func(t *testing.T) {
		err := ConfigFieldError("basePath", "must end with '/'")

		assert.True(t, err.IsFatal())
		assert.True(t, HasCategory(err, CategoryConfig))
		assert.Equal(t, RetryUserAction, err.RetryStrategy())
		assert.Equal(t, "[config:fatal] invalid configuration (field basePath: must end with '/')", err.Error())

		field, ok := FieldOf(err)
		require.True(t, ok)
		assert.Equal(t, "basePath", field)
	})

	t.Run("FieldOf through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("load site.yaml: %w", ConfigFieldError("url", "required"))
		field, ok := FieldOf(wrapped)
		require.True(t, ok)
		assert.Equal(t, "url", field)

		_, ok = FieldOf(errors.New("plain"))
		assert.False(t, ok)
	})
}

func TestErrorBuilder(t *testing.T) {
	original := errors.New("connection reset")
	err := WrapError(original, CategoryEmbed, "embed failed to load").
		Warning().
		WithContext("src", "https://app.example/demo").
		Build()

	assert.Equal(t, SeverityWarning, err.Severity())
	assert.Equal(t, RetryNever, err.RetryStrategy())
	assert.False(t, err.IsFatal())
	assert.ErrorIs(t, err, original)
	assert.Equal(t, "[embed:warning] embed failed to load: connection reset", err.Error())
}

func TestWithContextDoesNotMutateOriginal(t *testing.T) {
	base := NewError(CategoryLinks, "unresolved").Build()
	derived := base.WithContext(ContextTarget, "/docs/x")

	_, ok := base.Context().GetString(ContextTarget)
	assert.False(t, ok)
	target, ok := derived.Context().GetString(ContextTarget)
	assert.True(t, ok)
	assert.Equal(t, "/docs/x", target)
	assert.ErrorIs(t, derived, base)
}

func TestGetCategoryAndSeverity(t *testing.T) {
	assert.Equal(t, CategoryInternal, GetCategory(errors.New("x")))
	assert.Equal(t, SeverityError, GetSeverity(errors.New("x")))
	assert.Equal(t, CategoryBuild, GetCategory(BuildError("y").Build()))
	assert.Equal(t, SeverityFatal, GetSeverity(BuildError("y").Build()))
}

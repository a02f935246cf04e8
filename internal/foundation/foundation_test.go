package foundation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type policy string

func TestNormalizer(t *testing.T) {
	n := NewNormalizer(map[string]policy{"throw": "throw", "warn": "warn", "Ignore": "ignore"})

	got, err := n.Normalize("  THROW ")
	require.NoError(t, err)
	assert.Equal(t, policy("throw"), got)

	got, err = n.Normalize("ignore")
	require.NoError(t, err)
	assert.Equal(t, policy("ignore"), got)

	_, err = n.Normalize("explode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ignore, throw, warn")
}

func TestOption(t *testing.T) {
	some := Some(42)
	assert.True(t, some.IsSome())
	assert.Equal(t, 42, some.UnwrapOr(0))
	assert.Equal(t, "Some(42)", some.String())

	none := None[int]()
	assert.True(t, none.IsNone())
	assert.Equal(t, 7, none.UnwrapOr(7))
	assert.Equal(t, "None", none.String())

	v, ok := FromPointer[string](nil).Get()
	assert.False(t, ok)
	assert.Empty(t, v)

	s := "cta"
	label := MapOption(FromPointer(&s), func(x string) int { return len(x) })
	assert.Equal(t, 3, label.UnwrapOr(0))
}

package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type taggedWidget struct {
	ID int
}

func (taggedWidget) CacheTypeTag() string { return "widget" }

type pointerTagged struct{}

func (*pointerTagged) CacheTypeTag() string { return "pointer-tagged" }

func TestTagOf_CanonicalName(t *testing.T) {
	require.Equal(t, "simplecache/internal/cache.Person", TagOf[Person](nil))
	require.Equal(t, "simplecache/internal/cache.Person", TagOf[*Person](nil))
	require.Equal(t, "string", TagOf[string](nil))
	require.Equal(t, "[]cache.Person", TagOf[[]Person](nil))
}

func TestTagOf_Tagger(t *testing.T) {
	require.Equal(t, "widget", TagOf[taggedWidget](nil))
	require.Equal(t, "widget", TagOf[*taggedWidget](nil))
	require.Equal(t, "pointer-tagged", TagOf[pointerTagged](nil))
}

func TestTagOf_RegistryWins(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, Register[Person](r, "person"))
	require.NoError(t, Register[taggedWidget](r, "gadget"))

	require.Equal(t, "person", TagOf[Person](r))
	require.Equal(t, "person", TagOf[*Person](r))
	require.Equal(t, "gadget", TagOf[taggedWidget](r))
	require.Equal(t, "simplecache/internal/cache.Address", TagOf[Address](r))
}

func TestRegister_Rejects(t *testing.T) {
	r := NewRegistry()
	require.ErrorIs(t, Register[Person](r, ""), ErrInvalidArgument)
	require.NoError(t, Register[Person](r, "person"))
	require.ErrorIs(t, Register[Address](r, "person"), ErrInvalidArgument)
	// re-registering the same type is allowed
	require.NoError(t, Register[Person](r, "person"))
}

func TestRegistry_DrivesTypeScopedOperations(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()
	require.NoError(t, Register[Person](r, "person"))
	c, _ := newTestCache(t, WithRegistry(r))

	_, err := Insert(ctx, c, "k", Person{Name: "john"})
	require.NoError(t, err)

	info, err := c.Stat(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "person", info.TypeTag)

	n, err := c.InvalidateTag(ctx, "person")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

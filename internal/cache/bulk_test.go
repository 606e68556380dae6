package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInsertManyAndGetMany(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	pairs := map[string]Person{
		"k1": {Name: "john", Age: 19},
		"k2": {Name: "mike", Age: 30},
	}
	n, err := InsertMany(ctx, c, pairs)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	got, err := GetMany[Person](ctx, c, []string{"k1", "k2", "bad"})
	require.NoError(t, err)
	require.Equal(t, pairs, got)
}

func TestInsertMany_Expiration(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	n, err := InsertMany(ctx, c, map[string]int{"a": 1, "b": 2, "c": 3}, ExpiresAt(time.Now().Add(-time.Minute)))
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	deleted, err := c.Vacuum(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, deleted)
}

func TestGetMany_Empty(t *testing.T) {
	c, _ := newTestCache(t)
	got, err := GetMany[Person](context.Background(), c, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestInvalidateMany(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	_, err := InsertMany(ctx, c, map[string]Person{"p1": {}, "p2": {}})
	require.NoError(t, err)

	n, err := InvalidateMany[Person](ctx, c, []string{"p1", "missing", "p2"})
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestInvalidateMany_AbortsOnTypeMismatch(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	_, err := Insert(ctx, c, "p1", Person{Name: "a"})
	require.NoError(t, err)
	_, err = Insert(ctx, c, "a1", Address{Street: "x"})
	require.NoError(t, err)
	_, err = Insert(ctx, c, "p2", Person{Name: "b"})
	require.NoError(t, err)

	n, err := InvalidateMany[Person](ctx, c, []string{"p1", "a1", "p2"})
	require.ErrorIs(t, err, ErrTypeMismatch)
	require.EqualValues(t, 1, n)

	// p1 stays deleted, a1 and p2 were never touched
	_, err = Get[Person](ctx, c, "p1")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = Get[Address](ctx, c, "a1")
	require.NoError(t, err)
	_, err = Get[Person](ctx, c, "p2")
	require.NoError(t, err)
}

func TestGetCreatedAtMany(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	clock := freezeNow(t, time.Date(2025, 4, 4, 4, 4, 4, 0, time.UTC))

	_, err := Insert(ctx, c, "k1", "v")
	require.NoError(t, err)

	got, err := c.GetCreatedAtMany(ctx, []string{"k1", "missing"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got["k1"])
	require.True(t, got["k1"].Equal(*clock))
	v, ok := got["missing"]
	require.True(t, ok)
	require.Nil(t, v)
}

func TestGetCreatedAtMany_EmptyKeyIsAbsent(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	_, err := Insert(ctx, c, "k1", "v")
	require.NoError(t, err)

	got, err := c.GetCreatedAtMany(ctx, []string{"", "k1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	v, ok := got[""]
	require.True(t, ok)
	require.Nil(t, v)
	require.NotNil(t, got["k1"])
}

package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"simplecache/internal/cache"
	"simplecache/internal/database"
	"simplecache/internal/testutil"

	"github.com/stretchr/testify/require"
)

// blockingClient never returns from Send until released.
type blockingClient struct {
	release chan struct{}
}

func (c *blockingClient) Send([]byte) bool {
	<-c.release
	return true
}

func (c *blockingClient) Close() {}

func runPublisher(t *testing.T, p *Publisher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestPublisher(t *testing.T) {
	h := NewHub()
	people := &recordingClient{}
	all := &recordingClient{}
	h.Subscribe("person", people)
	h.Subscribe(AllTopics, all)

	p := NewPublisher(h, 0)
	runPublisher(t, p)
	require.True(t, p.Publish(cache.Event{Op: cache.OpInsert, Key: "k", TypeTag: "person", Count: 1}))
	require.True(t, p.Publish(cache.Event{Op: cache.OpVacuum, Count: 3}))

	require.Eventually(t, func() bool { return all.len() == 2 }, time.Second, 5*time.Millisecond)
	require.Equal(t, 1, people.len())

	var got cache.Event
	require.NoError(t, json.Unmarshal(people.message(0), &got))
	require.Equal(t, cache.OpInsert, got.Op)
	require.Equal(t, "k", got.Key)
}

func TestPublisher_DropsWhenFull(t *testing.T) {
	p := NewPublisher(NewHub(), 1)
	require.True(t, p.Publish(cache.Event{Op: cache.OpInsert, TypeTag: "a"}))
	require.False(t, p.Publish(cache.Event{Op: cache.OpInsert, TypeTag: "a"}))
}

func TestPublisher_SlowClientDoesNotBlockWrites(t *testing.T) {
	h := NewHub()
	slow := &blockingClient{release: make(chan struct{})}
	h.Subscribe(AllTopics, slow)

	p := NewPublisher(h, 1)
	runPublisher(t, p)
	// Run is stuck in Send; release it before the publisher is stopped
	t.Cleanup(func() { close(slow.release) })

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	c := cache.New(database.NewHandle(database.Static(db)), cache.WithListener(func(e cache.Event) { p.Publish(e) }))
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	start := time.Now()
	for i := range 10 {
		_, err := cache.Insert(ctx, c, "k", i)
		require.NoError(t, err)
	}
	require.Less(t, time.Since(start), time.Second)
}

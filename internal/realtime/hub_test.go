package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	mu       sync.Mutex
	messages [][]byte
	fail     bool
}

func (c *recordingClient) Send(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return false
	}
	c.messages = append(c.messages, message)
	return true
}

func (c *recordingClient) Close() {}

func (c *recordingClient) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *recordingClient) message(i int) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messages[i]
}

func TestHub_BroadcastByTopic(t *testing.T) {
	h := NewHub()
	people := &recordingClient{}
	everything := &recordingClient{}
	addresses := &recordingClient{}
	h.Subscribe("person", people)
	h.Subscribe(AllTopics, everything)
	h.Subscribe("address", addresses)

	require.Equal(t, 2, h.Broadcast("person", []byte("p")))
	require.Equal(t, 1, h.Broadcast("", []byte("vacuum")))

	require.Equal(t, [][]byte{[]byte("p")}, people.messages)
	require.Equal(t, [][]byte{[]byte("p"), []byte("vacuum")}, everything.messages)
	require.Empty(t, addresses.messages)
}

func TestHub_UnsubscribeCleansUp(t *testing.T) {
	h := NewHub()
	c := &recordingClient{}
	h.Subscribe("person", c)
	require.Equal(t, 1, h.Len())

	h.Unsubscribe("person", c)
	require.Equal(t, 0, h.Len())
	require.Equal(t, 0, h.Broadcast("person", []byte("p")))
}

func TestHub_FailedSendNotCounted(t *testing.T) {
	h := NewHub()
	h.Subscribe("person", &recordingClient{fail: true})
	require.Equal(t, 0, h.Broadcast("person", []byte("p")))
}

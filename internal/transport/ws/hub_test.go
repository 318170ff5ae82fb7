package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, conn *Connection) Message {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		require.True(t, ok, "send channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return Message{}
	}
}

func TestHubSendToUserFansOut(t *testing.T) {
	hub := NewHub()
	tab1 := &Connection{UserID: "u1", Send: make(chan []byte, 4), Hub: hub}
	tab2 := &Connection{UserID: "u1", Send: make(chan []byte, 4), Hub: hub}
	other := &Connection{UserID: "u2", Send: make(chan []byte, 4), Hub: hub}
	hub.Register(tab1)
	hub.Register(tab2)
	hub.Register(other)

	hub.SendToUser("u1", string(MsgRecommendations), map[string]string{"tip": "breathe"})

	for _, c := range []*Connection{tab1, tab2} {
		msg := receive(t, c)
		assert.Equal(t, MsgRecommendations, msg.Type)
		assert.JSONEq(t, `{"tip":"breathe"}`, string(msg.Payload))
	}
	assert.Empty(t, other.Send)
}

func TestHubUnregisterClosesConnection(t *testing.T) {
	hub := NewHub()
	conn := &Connection{UserID: "u1", Send: make(chan []byte, 1), Hub: hub}
	hub.Register(conn)
	assert.Eventually(t, func() bool { return hub.Count("u1") == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(conn)
	assert.Eventually(t, func() bool { return hub.Count("u1") == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-conn.Send
	assert.False(t, ok)

	// a second unregister is a no-op
	hub.Unregister(conn)
}

func TestEncodeMessageEscapesPayload(t *testing.T) {
	data, err := encodeMessage(MsgConnected, map[string]string{"userId": `u"1\`})
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, MsgConnected, msg.Type)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, `u"1\`, payload["userId"])

	_, err = encodeMessage(MsgConnected, func() {})
	assert.Error(t, err)
}

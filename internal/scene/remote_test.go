package scene

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialScene(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

type sceneMessage struct {
	Type      string `json:"type"`
	State     State  `json:"state"`
	Timestamp int64  `json:"timestamp"`
}

func TestRemoteScene_InitialStateOnConnect(t *testing.T) {
	globe := NewGlobe(1.8, 8.0)
	globe.SetZoom(3.3)

	rs := NewRemoteScene(globe)
	defer rs.Close()

	ts := httptest.NewServer(rs)
	defer ts.Close()

	conn := dialScene(t, ts)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg sceneMessage
	require.NoError(t, json.Unmarshal(data, &msg))

	assert.Equal(t, "scene", msg.Type)
	assert.Equal(t, 3.3, msg.State.Zoom)
	assert.True(t, msg.State.AutoRotate)
	assert.NotZero(t, msg.Timestamp)
}

func TestRemoteScene_BroadcastsTicks(t *testing.T) {
	globe := NewGlobe(1.8, 8.0)
	rs := NewRemoteScene(globe)
	defer rs.Close()

	ts := httptest.NewServer(rs)
	defer ts.Close()

	conn := dialScene(t, ts)
	defer conn.Close()

	// Initial frame plus at least one ticked frame; auto-rotation means
	// yaw should have advanced between them.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, first, err := conn.ReadMessage()
	require.NoError(t, err)

	_, second, err := conn.ReadMessage()
	require.NoError(t, err)

	var m1, m2 sceneMessage
	require.NoError(t, json.Unmarshal(first, &m1))
	require.NoError(t, json.Unmarshal(second, &m2))

	assert.Greater(t, m2.State.RotationY, m1.State.RotationY)
}

func TestRemoteScene_ImplementsScene(t *testing.T) {
	var _ Scene = (*RemoteScene)(nil)
}

func TestRemoteScene_ClientPanMessages(t *testing.T) {
	globe := NewGlobe(1.8, 8.0)
	rs := NewRemoteScene(globe)
	defer rs.Close()

	ts := httptest.NewServer(rs)
	defer ts.Close()

	conn := dialScene(t, ts)
	defer conn.Close()

	err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"pan","dx":0.2,"dy":-0.1}`))
	require.NoError(t, err)

	// The pan target moves immediately; the visible position follows on
	// ticks, so wait for it to drift off center.
	require.Eventually(t, func() bool {
		snap := globe.Snapshot()
		return snap.PositionX > 0 && snap.PositionY < 0
	}, 2*time.Second, 10*time.Millisecond)

	err = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"center"}`))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		snap := globe.Snapshot()
		return snap.PositionX < 0.01 && snap.PositionY > -0.01
	}, 2*time.Second, 10*time.Millisecond)

	// Garbage from the client is ignored without dropping the connection
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"unknown"}`)))
}

func TestRemoteScene_ClientCount(t *testing.T) {
	rs := NewRemoteScene(NewGlobe(0, 0))
	defer rs.Close()

	assert.Equal(t, 0, rs.ClientCount())

	ts := httptest.NewServer(rs)
	defer ts.Close()

	conn := dialScene(t, ts)

	require.Eventually(t, func() bool {
		return rs.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return rs.ClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

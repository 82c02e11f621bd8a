package editorchannel

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lia-ai/lia-client/internal/contextstore"
	"github.com/lia-ai/lia-client/internal/logging"
	"github.com/lia-ai/lia-client/internal/uievents"
)

func newTestServer(t *testing.T) (*httptest.Server, *contextstore.Store, *uievents.Sink) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := contextstore.New()
	sink := uievents.NewSink(logging.NewNop())
	ch := New(logging.NewNop(), store, sink)

	engine := gin.New()
	ch.Register(engine)

	return httptest.NewServer(engine), store, sink
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "dial")
	return conn
}

func TestServeWSWritesContextAndEmitsUpdate(t *testing.T) {
	srv, store, sink := newTestServer(t)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	frame := `{"event_type":"cursor_move","timestamp":1,"workspace_name":"demo","file_context":{"file_name":"main.go","file_path":"/tmp/main.go","language":"go","cursor_line":7,"content_window":"package main"}}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))

	deadline := time.After(2 * time.Second)
	select {
	case ev := <-sink.Events():
		payload := ev.Payload.(uievents.ContextUpdatePayload)
		assert.Equal(t, "main.go", payload.FileName)
		assert.Equal(t, uint32(7), payload.CursorLine)
	case <-deadline:
		t.Fatal("timed out waiting for context-update event")
	}

	waitForSnapshot(t, store)
	snap := store.Snapshot()
	require.NotNil(t, snap, "expected store to hold the written snapshot")
	assert.Equal(t, "main.go", snap.FileContext.FileName)
}

func waitForSnapshot(t *testing.T, store *contextstore.Store) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if store.Snapshot() != nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for context store write")
}

func TestServeWSIgnoresUnparseableFrame(t *testing.T) {
	srv, store, _ := newTestServer(t)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	time.Sleep(50 * time.Millisecond)

	assert.Nil(t, store.Snapshot(), "expected store to remain empty after an unparseable frame")
}

func TestHealthzReportsOK(t *testing.T) {
	srv, _, _ := newTestServer(t)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err, "GET /healthz")
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}

package spectate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-robbo/internal/games/robbo/core"
)

func testView(t *testing.T) core.View {
	t.Helper()
	def, err := core.LevelFromRows(1, []string{
		"OOOOO",
		"OR.TO",
		"OOOOO",
	})
	if err != nil {
		t.Fatalf("LevelFromRows() failed: %v", err)
	}
	def.Name = "tiny"
	s, err := core.NewState(core.Levels{def}, core.DefaultConfig(), 0)
	if err != nil {
		t.Fatalf("NewState() failed: %v", err)
	}
	return s.View()
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	return msg
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFromView(t *testing.T) {
	f := FromView(testView(t))

	want := []string{"OOOOO", "OR.TO", "OOOOO"}
	for i, row := range want {
		if f.Rows[i] != row {
			t.Errorf("row %d = %q, expected %q", i, f.Rows[i], row)
		}
	}
	if len(f.Sprites) != 2 {
		t.Fatalf("expected 2 sprites, got %d", len(f.Sprites))
	}
	if f.Screws != 1 || f.Name != "tiny" || f.Level != 1 {
		t.Errorf("unexpected status: %+v", f)
	}

	kinds := map[string]bool{}
	for _, sp := range f.Sprites {
		kinds[sp.Kind] = true
	}
	if !kinds["robbo"] || !kinds["screw"] {
		t.Errorf("unexpected sprite kinds: %v", kinds)
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	hello := read(t, conn)
	if hello.Type != "hello" {
		t.Fatalf("first message type = %q, expected hello", hello.Type)
	}
	if _, err := uuid.Parse(hello.Client); err != nil {
		t.Errorf("client id %q is not a uuid: %v", hello.Client, err)
	}
	waitFor(t, "registration", func() bool { return hub.Clients() == 1 })

	hub.Publish(testView(t))
	msg := read(t, conn)
	if msg.Type != "frame" || msg.Frame == nil {
		t.Fatalf("expected a frame, got %+v", msg)
	}
	if msg.Frame.Rows[1] != "OR.TO" {
		t.Errorf("row 1 = %q", msg.Frame.Rows[1])
	}
}

func TestLateJoinerGetsLatestFrame(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	hub.Publish(testView(t))

	conn := dial(t, srv)
	if msg := read(t, conn); msg.Type != "hello" {
		t.Fatalf("expected hello first, got %q", msg.Type)
	}
	if msg := read(t, conn); msg.Type != "frame" {
		t.Fatalf("expected the latest frame, got %q", msg.Type)
	}
}

func TestClientLeaves(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	read(t, conn)
	waitFor(t, "registration", func() bool { return hub.Clients() == 1 })

	conn.Close()
	waitFor(t, "disconnect", func() bool { return hub.Clients() == 0 })

	// publishing to nobody is fine
	hub.Publish(testView(t))
}

func TestCloseDisconnectsClients(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	read(t, conn)
	waitFor(t, "registration", func() bool { return hub.Clients() == 1 })

	hub.Close()
	if hub.Clients() != 0 {
		t.Errorf("Clients() = %d after Close", hub.Clients())
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the connection to be closed")
	}
	hub.Publish(testView(t))
	hub.Close()
}

func TestHealthz(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if n, ok := body["spectators"]; !ok || n != 0 {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- hub.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run() did not stop")
	}
}

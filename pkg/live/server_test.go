package live

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/marks/pkg/dataset"
	"github.com/vango-dev/marks/pkg/playback"
	"github.com/vango-dev/marks/pkg/scatter"
	"github.com/vango-dev/marks/pkg/symbol"
	"github.com/vango-dev/marks/pkg/transition"
)

const frames = `
domain: [0, 100]
frames:
  - name: first
    data: [10, 20, 30]
  - name: second
    data: [20, 30, 40]
  - name: zoomed
    domain: [0, 200]
    data: [20, 30, 40]
`

func newServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	ds, err := dataset.Decode(strings.NewReader(frames), dataset.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	reg := prometheus.NewRegistry()
	line := scatter.New(
		scatter.WithRenderer[float64](symbol.New[float64]()),
		scatter.WithScheduler[float64](transition.NewScheduler(transition.WithDuration(100*time.Millisecond))),
		scatter.WithMetrics[float64](scatter.NewMetrics(scatter.WithRegistry(reg))),
	)
	p := playback.New(ds, line, playback.WithWidth(200))
	s := New(p, WithRegistry(reg), WithConfig(Config{Autoplay: false}))
	return s, reg
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return msg
}

func ops(msg Message) map[string]int {
	counts := make(map[string]int)
	for _, p := range msg.Patches {
		counts[p.Op]++
	}
	return counts
}

func TestResetOnConnect(t *testing.T) {
	s, _ := newServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	msg := read(t, dial(t, srv))
	if msg.Type != MessageReset || msg.Frame != 0 || msg.Name != "first" {
		t.Fatalf("got %s frame=%d name=%q, want reset of frame 0", msg.Type, msg.Frame, msg.Name)
	}
	if !strings.Contains(msg.HTML, `data-mid="m1"`) {
		t.Errorf("reset markup should carry IDs: %s", msg.HTML)
	}
	if n := strings.Count(msg.HTML, "<circle"); n != 3 {
		t.Errorf("reset has %d circles, want 3", n)
	}
}

// Patches broadcast while a new client's reset is being built must arrive
// after the reset, and only if the reset does not already contain them.
func TestHubOrdersPatchesAfterReset(t *testing.T) {
	var hub *Hub
	hub = NewHub(func() Message {
		hub.Broadcast(Message{Type: MessagePatch, Seq: 1, Frame: 1})
		reset := Message{Type: MessageReset, Seq: 1, Frame: 1}
		hub.Broadcast(Message{Type: MessagePatch, Seq: 2, Frame: 2})
		return reset
	})
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	first := read(t, conn)
	if first.Type != MessageReset || first.Frame != 1 {
		t.Fatalf("first message = %s frame %d, want reset of frame 1", first.Type, first.Frame)
	}
	second := read(t, conn)
	if second.Type != MessagePatch || second.Seq != 2 {
		t.Fatalf("second message = %s seq %d, want patch 2", second.Type, second.Seq)
	}

	hub.Broadcast(Message{Type: MessagePatch, Seq: 3, Frame: 3})
	if third := read(t, conn); third.Seq != 3 {
		t.Errorf("third message seq = %d, want 3 (patch 1 is part of the reset)", third.Seq)
	}
}

func TestResetCarriesLastSeq(t *testing.T) {
	s, _ := newServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	s.Advance(context.Background())

	msg := read(t, dial(t, srv))
	if msg.Type != MessageReset || msg.Seq != 1 || msg.Frame != 1 {
		t.Fatalf("got %s seq=%d frame=%d, want reset seq 1 of frame 1", msg.Type, msg.Seq, msg.Frame)
	}

	if err := s.Seek(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if next := read(t, dial(t, srv)); next.Seq != 2 || next.Frame != 0 {
		t.Errorf("reset after seek: seq=%d frame=%d, want seq 2 of frame 0", next.Seq, next.Frame)
	}
}

func TestAdvanceBroadcastsJoin(t *testing.T) {
	s, _ := newServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	read(t, conn)

	if !s.Advance(context.Background()) {
		t.Fatal("Advance() = false")
	}
	msg := read(t, conn)
	if msg.Type != MessagePatch || msg.Frame != 1 {
		t.Fatalf("got %s frame=%d, want patch for frame 1", msg.Type, msg.Frame)
	}

	got := ops(msg)
	if got["RemoveNode"] != 1 || got["InsertNode"] != 1 {
		t.Errorf("ops = %v, want one RemoveNode (10) and one InsertNode (40)", got)
	}
	for _, p := range msg.Patches {
		if p.Op == "InsertNode" && !strings.Contains(p.HTML, "translate(80,0)") {
			t.Errorf("inserted mark should sit at x=80: %s", p.HTML)
		}
	}
}

func TestStepStreamsTransitions(t *testing.T) {
	s, _ := newServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	read(t, conn)

	ctx := context.Background()
	s.Advance(ctx)
	read(t, conn)

	// The zoomed frame keeps the same items; they snap to the old scale
	// (no visible change) and animate to the new one.
	s.Advance(ctx)
	s.Step(ctx, 50*time.Millisecond)

	msg := read(t, conn)
	if got := ops(msg); got["SetAttr"] != 3 || len(got) != 1 {
		t.Errorf("ops = %v, want three transform updates", got)
	}

	s.Step(ctx, 100*time.Millisecond)
	msg = read(t, conn)
	var final []string
	for _, p := range msg.Patches {
		final = append(final, p.Value)
	}
	want := []string{"translate(20,0)", "translate(30,0)", "translate(40,0)"}
	for _, w := range want {
		if !strings.Contains(strings.Join(final, " "), w) {
			t.Errorf("final transforms %v missing %s", final, w)
		}
	}
}

func TestSeekAndAppend(t *testing.T) {
	s, _ := newServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/seek/2", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || s.Frame() != 2 {
		t.Errorf("seek: status=%d frame=%d", resp.StatusCode, s.Frame())
	}

	resp, err = http.Post(srv.URL+"/seek/9", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("out of range seek status = %d, want 404", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/frames", "application/json", strings.NewReader(`{"name": "pushed", "data": [5]}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || s.Frame() != 3 {
		t.Errorf("append: status=%d frame=%d", resp.StatusCode, s.Frame())
	}

	resp, err = http.Post(srv.URL+"/frames", "application/json", strings.NewReader(`{"domain": [1]}`))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(string(body), `"code":"M201"`) {
		t.Errorf("bad frame: status=%d body=%s", resp.StatusCode, body)
	}
}

func TestSnapshotAndMetrics(t *testing.T) {
	s, _ := newServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/snapshot.svg")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(string(body), "<?xml") || strings.Contains(string(body), "data-mid") {
		t.Errorf("snapshot should be plain SVG: %s", body)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	for _, want := range []string{
		"marks_scatter_marks_entered_total",
		"marks_live_frames_shown_total 1",
		"marks_http_requests_total",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("/metrics missing %q", want)
		}
	}
}

func TestIndexPage(t *testing.T) {
	s, _ := newServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "new WebSocket") {
		t.Errorf("status=%d, page missing client script", rec.Code)
	}
}

func TestReloadFile(t *testing.T) {
	s, _ := newServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	conn := dial(t, srv)
	read(t, conn)

	path := filepath.Join(t.TempDir(), "frames.json")
	if err := os.WriteFile(path, []byte(`{"frames": [`), 0644); err != nil {
		t.Fatal(err)
	}
	s.reloadFile(context.Background(), path)
	if msg := read(t, conn); msg.Type != MessageError {
		t.Errorf("bad file: got %s, want error", msg.Type)
	}

	if err := os.WriteFile(path, []byte(`{"domain": [0, 100], "frames": [{"data": [20, 30]}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	s.reloadFile(context.Background(), path)
	msg := read(t, conn)
	if got := ops(msg); got["RemoveNode"] != 1 || got["InsertNode"] != 0 {
		t.Errorf("ops = %v, want only the removal of 10", got)
	}
}

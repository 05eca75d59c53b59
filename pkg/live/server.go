package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	merrors "github.com/vango-dev/marks/internal/errors"
	"github.com/vango-dev/marks/pkg/dataset"
	"github.com/vango-dev/marks/pkg/middleware"
	"github.com/vango-dev/marks/pkg/playback"
	"github.com/vango-dev/marks/pkg/render"
	"github.com/vango-dev/marks/pkg/vdom"
)

// Config controls playback timing.
type Config struct {
	// FPS is how often running transitions are stepped. Default 60.
	FPS int

	// FrameInterval is how long each dataset frame is shown. Default 1s.
	FrameInterval time.Duration

	// Autoplay advances frames on the interval. When false frames only
	// change through /seek and /frames.
	Autoplay bool

	// Loop wraps from the last frame to the first.
	Loop bool

	// DatasetPath is reloaded on change when Watch is set.
	DatasetPath string
	Watch       bool
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets the playback configuration.
func WithConfig(cfg Config) Option {
	return func(s *Server) { s.cfg = cfg }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithRegistry sets the registry served at /metrics. Scatter metrics should
// be registered on the same registry to appear there.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// Server streams a playing dataset to browsers.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	registry *prometheus.Registry
	hub      *Hub
	router   chi.Router

	// markup renders patch nodes with IDs; plain renders snapshots.
	markup *render.Renderer
	plain  *render.Renderer

	patchesSent prometheus.Counter
	frames      prometheus.Counter

	// mu guards the player, its scheduler and the previous snapshot.
	mu     sync.Mutex
	player *playback.Player
	prev   *vdom.VNode
	ids    *vdom.IDGenerator
	seq    uint64 // last broadcast patch
}

// New creates a server for player. If the player has not reconciled a frame
// yet, the first frame is reconciled now.
func New(player *playback.Player, opts ...Option) *Server {
	s := &Server{
		cfg:    Config{FPS: 60, FrameInterval: time.Second, Autoplay: true, Loop: true},
		logger: slog.Default(),
		player: player,
		ids:    vdom.NewIDGenerator(),
		markup: render.NewRenderer(render.RendererConfig{IDs: true}),
		plain:  render.NewRenderer(render.RendererConfig{Declaration: true}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.FPS <= 0 {
		s.cfg.FPS = 60
	}
	if s.cfg.FrameInterval <= 0 {
		s.cfg.FrameInterval = time.Second
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}

	factory := promauto.With(s.registry)
	s.patchesSent = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "marks",
		Subsystem: "live",
		Name:      "patches_sent_total",
		Help:      "Total number of patches broadcast to preview clients",
	})
	s.frames = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "marks",
		Subsystem: "live",
		Name:      "frames_shown_total",
		Help:      "Total number of dataset frames reconciled by the live server",
	})

	s.hub = NewHub(s.resetMessage)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "marks",
		Subsystem: "live",
		Name:      "clients",
		Help:      "Number of connected preview clients",
	}, func() float64 { return float64(s.hub.ClientCount()) })

	s.router = s.routes()

	s.mu.Lock()
	if player.Frame() < 0 && player.Len() > 0 {
		player.Seek(context.Background(), 0)
		s.frames.Inc()
	}
	s.flushLocked()
	s.mu.Unlock()

	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("marks/live")))
	r.Use(middleware.Prometheus(middleware.WithRegistry(s.registry)))

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Get("/snapshot.svg", s.handleSnapshot)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Post("/frames", s.handleAppend)
	r.Post("/seek/{frame}", s.handleSeek)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run drives the step and frame tickers until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	step := time.NewTicker(time.Second / time.Duration(s.cfg.FPS))
	defer step.Stop()
	frame := time.NewTicker(s.cfg.FrameInterval)
	defer frame.Stop()

	if s.cfg.Watch && s.cfg.DatasetPath != "" {
		go func() {
			if err := s.watch(ctx, s.cfg.DatasetPath); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Warn("dataset watcher stopped", "error", err)
			}
		}()
	}

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.hub.Close()
			return nil
		case now := <-step.C:
			s.Step(ctx, now.Sub(last))
			last = now
		case <-frame.C:
			if s.cfg.Autoplay {
				s.Advance(ctx)
			}
		}
	}
}

// ListenAndServe serves HTTP on addr and runs the tickers until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("live server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return merrors.New("M501").Wrap(err)
	case <-ctx.Done():
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		return srv.Shutdown(shutdownCtx)
	}
}

// Step advances running transitions by dt and broadcasts the changes.
func (s *Server) Step(ctx context.Context, dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched := s.player.Line().Scheduler()
	if sched == nil || sched.Active() == 0 {
		return
	}
	sched.Step(dt)
	s.flushLocked()
}

// Advance shows the next frame. It reports false at the end of a
// non-looping dataset.
func (s *Server) Advance(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.player.Next(ctx, s.cfg.Loop) {
		return false
	}
	s.frames.Inc()
	s.flushLocked()
	return true
}

// Seek jumps to frame i.
func (s *Server) Seek(ctx context.Context, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= s.player.Len() {
		return merrors.Newf(merrors.CategoryServer, "frame %d out of range [0,%d)", i, s.player.Len())
	}
	s.player.Seek(ctx, i)
	s.frames.Inc()
	s.flushLocked()
	return nil
}

// AppendFrame adds a frame and jumps to it.
func (s *Server) AppendFrame(ctx context.Context, f dataset.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.player.Append(ctx, f); err != nil {
		return err
	}
	s.frames.Inc()
	s.flushLocked()
	return nil
}

// Reload replaces the dataset. Marks shared with the new data animate.
func (s *Server) Reload(ctx context.Context, ds *dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.player.Replace(ctx, ds)
	s.frames.Inc()
	s.flushLocked()
}

// Frame returns the index of the frame on screen.
func (s *Server) Frame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.Frame()
}

// flushLocked diffs the chart against the previous snapshot and broadcasts
// the patches. s.mu must be held.
func (s *Server) flushLocked() {
	next := s.player.Snapshot()
	if s.prev == nil {
		vdom.AssignIDs(next, s.ids)
		s.prev = next
		return
	}

	patches := vdom.Diff(s.prev, next)
	vdom.AssignIDs(next, s.ids)
	s.prev = next
	if len(patches) == 0 {
		return
	}

	wire, err := encodePatches(s.markup, patches)
	if err != nil {
		s.logger.Error("encode patches", "error", err)
		return
	}
	s.patchesSent.Add(float64(len(wire)))
	s.seq++
	s.hub.Broadcast(Message{
		Type:    MessagePatch,
		Seq:     s.seq,
		Frame:   s.player.Frame(),
		Name:    s.frameName(),
		Patches: wire,
	})
}

func (s *Server) frameName() string {
	i := s.player.Frame()
	if i < 0 || i >= s.player.Len() {
		return ""
	}
	return s.player.Dataset().Frames[i].Name
}

// resetMessage returns the full chart for a newly connected client.
func (s *Server) resetMessage() Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	html, err := s.markup.RenderToString(s.prev)
	if err != nil {
		return Message{Type: MessageError, Seq: s.seq, Error: err.Error()}
	}
	return Message{Type: MessageReset, Seq: s.seq, Frame: s.player.Frame(), Name: s.frameName(), HTML: html}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.prev
	s.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := s.plain.RenderToWriter(w, snap); err != nil {
		s.logger.Error("render snapshot", "error", err)
	}
}

func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	var f dataset.Frame
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, merrors.New("M201").Wrap(err))
		return
	}
	if err := s.AppendFrame(r.Context(), f); err != nil {
		writeError(w, http.StatusBadRequest, merrors.FromError(err, "M201"))
		return
	}
	writeJSON(w, map[string]int{"frame": s.Frame()})
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "frame"))
	if err != nil {
		writeError(w, http.StatusBadRequest, merrors.Newf(merrors.CategoryServer, "invalid frame %q", chi.URLParam(r, "frame")))
		return
	}
	if err := s.Seek(r.Context(), i); err != nil {
		writeError(w, http.StatusNotFound, merrors.FromError(err, "M501"))
		return
	}
	writeJSON(w, map[string]int{"frame": i})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err *merrors.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(err.FormatJSON()))
}

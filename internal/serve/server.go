package serve

import (
	"contentkit/internal/app"
	"contentkit/internal/build"
	"contentkit/internal/domain/config"
	"contentkit/internal/domain/content"
	"contentkit/internal/index"
	"contentkit/internal/logging"
	"contentkit/internal/report"
	"contentkit/internal/transform"
	"context"
	"errors"
	"fmt"
	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"net/http"
	"os"
	"sync"
	"time"
)

type Server struct {
	cfg    config.Config
	idx    *index.Store
	runner *build.Runner
	log    *zap.Logger

	mu      sync.RWMutex
	last    *report.Report
	lastErr error

	sseMu     sync.Mutex
	sseConns  map[chan string]struct{}
	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

// New wires a server around an open index. The caller keeps ownership of
// idx.
func New(cfg config.Config, idx *index.Store, logger *zap.Logger) *Server {
	logger = logging.OrNop(logger)
	return &Server{
		cfg: cfg,
		idx: idx,
		runner: &build.Runner{
			Cfg:         cfg,
			Index:       idx,
			Transformer: transform.New(),
			Logger:      logger.Named("runner"),
		},
		log:      logger,
		sseConns: make(map[chan string]struct{}),
	}
}

func (s *Server) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// Router exposes the JSON API.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/report", s.handleReport)
	r.Get("/runs", s.handleRuns)
	r.Get("/index", s.handleOverview)
	r.Get("/routes", s.handleRoutes)
	r.Get("/content/{type}", s.handleCategory)
	r.Get("/content/{type}/{slug}", s.handleItem)
	r.Get("/tags/{tag}", s.handleTag)
	r.Get("/series/{hub}", s.handleSeries)
	r.Get("/schema/{type}", s.handleSchema)

	r.Post("/validate", s.handleValidate)
	r.Post("/transform", s.handleTransform)
	r.Post("/options", s.handleOptions)

	r.Get("/dev/events", s.handleSSE)
	return r
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if err := s.rebuild(ctx); err != nil {
		return err
	}

	if err := s.startWatch(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// rebuild runs a full validation pass and publishes the report.
func (s *Server) rebuild(ctx context.Context) error {
	rep, err := s.runner.Run(ctx)
	s.mu.Lock()
	if err == nil {
		s.last = rep
	}
	s.lastErr = err
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}
	_, _, invalid := rep.Totals()
	s.broadcastSSE(fmt.Sprintf("rebuilt invalid=%d", invalid))
	return nil
}

func (s *Server) startWatch(ctx context.Context) error {
	var err error
	s.watchOnce.Do(func() {
		w, e := fsnotify.NewWatcher()
		if e != nil {
			err = e
			return
		}
		s.watcher = w

		// content directories are flat
		for _, c := range s.cfg.OrderedDirs() {
			dir := s.cfg.Content.Dirs[c]
			if _, statErr := os.Stat(dir); statErr != nil {
				s.log.Warn("not watching missing directory", zap.String("dir", dir))
				continue
			}
			if err = w.Add(dir); err != nil {
				return
			}
		}

		go s.watchLoop(ctx)
	})
	return err
}

func (s *Server) watchLoop(ctx context.Context) {
	s.log.Info("watching for file changes")
	wait := s.cfg.Serve.Debounce
	if wait <= 0 {
		wait = 200 * time.Millisecond
	}
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	trigger := func() {
		if !debounce.Stop() {
			select {
			case <-debounce.C:
			default:
			}
		}
		debounce.Reset(wait)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.log.Debug("change", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				trigger()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("watcher error", zap.Error(err))
		case <-debounce.C:
			runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if err := s.rebuild(runCtx); err != nil {
				s.log.Error("rebuild failed", zap.Error(err))
			}
			cancel()
		}
	}
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan string, 8)

	s.sseMu.Lock()
	s.sseConns[ch] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseConns, ch)
		close(ch)
		s.sseMu.Unlock()
	}()
	fmt.Fprintf(w, "data: %s\n\n", "hello")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcastSSE(msg string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()
	for ch := range s.sseConns {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) navigator() *app.Navigator {
	return &app.Navigator{Index: s.idx}
}

func parseType(raw string) (content.Category, error) {
	c, ok := content.ParseCategory(raw)
	if !ok {
		return "", fmt.Errorf("unknown content type: %s", raw)
	}
	return c, nil
}

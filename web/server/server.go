package server

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/disintegration/imaging"
	"github.com/go-json-experiment/json"
	"github.com/pkg/errors"
)

// Limits on render request parameters
const (
	MinResolution = 16
	MaxResolution = 2000
	MaxBounces    = 50
)

// Config configures the web server
type Config struct {
	Port      int
	StaticDir string // Served at /, empty disables static files
	SceneDir  string // Scene files offered next to the built-in scenes
	Logger    *slog.Logger
	Console   *Console // Backs /api/console, nil serves an empty console
	Scene     scene.Options
}

// Server handles web requests for the raytracer
type Server struct {
	config  Config
	logger  *slog.Logger
	console *Console
}

// NewServer creates a new web server
func NewServer(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	console := config.Console
	if console == nil {
		console = NewConsole(1)
	}
	if config.Scene.Logger == nil {
		config.Scene.Logger = logger
	}
	return &Server{config: config, logger: logger, console: console}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Built-in name or scene file ID
	Width   int    `json:"width"`   // Zero keeps the scene's resolution
	Height  int    `json:"height"`  // Zero keeps the scene's resolution
	Bounces int    `json:"bounces"` // Negative keeps the scene's budget
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Names  []string           `json:"names"` // Built-in scene names, sorted
	Groups []scene.SceneGroup `json:"groups"`
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.config.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.config.StaticDir)))
	}

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("GET /api/render", s.handleRender)
	mux.HandleFunc("GET /api/inspect", s.handleInspect)
	mux.HandleFunc("GET /api/console", s.handleConsole)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.logger.Info("starting web server", "url", "http://localhost"+addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	groups, err := scene.ListAllScenes(s.config.SceneDir)
	if err != nil {
		s.logger.Warn("scene discovery failed", "dir", s.config.SceneDir, "error", err)
		groups = []scene.SceneGroup{{Name: "Built-in Scenes", Scenes: scene.ListBuiltinScenes()}}
	}
	writeJSON(w, http.StatusOK, ScenesResponse{Names: scene.Names(), Groups: groups})
}

func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.console.Messages())
}

// handleRender renders a whole scene and responds with the PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	_, rt, err := s.setupRaytracer(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, stats := rt.Render(r.Context())

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		s.logger.Error("failed to encode render", "render_id", stats.RenderID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Render-ID", stats.RenderID)
	w.Header().Set("X-Render-Stats", stats.String())
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// setupRaytracer loads the requested scene and applies the overrides
func (s *Server) setupRaytracer(ctx context.Context, req *RenderRequest) (*scene.Scene, *renderer.Raytracer, error) {
	sceneObj, err := s.loadScene(ctx, req.Scene)
	if err != nil {
		return nil, nil, err
	}

	rt := renderer.NewRaytracer(sceneObj, s.logger.With("scene", sceneObj.Name))
	if req.Bounces >= 0 {
		rt.SetBounces(req.Bounces)
	}
	screen := rt.Screen()
	if req.Width > 0 {
		screen.Width = req.Width
	}
	if req.Height > 0 {
		screen.Height = req.Height
	}
	rt.SetScreen(screen)
	return sceneObj, rt, nil
}

// loadScene accepts built-in scene names and the scene files found in the
// scene directory, nothing else
func (s *Server) loadScene(ctx context.Context, name string) (*scene.Scene, error) {
	if !scene.IsSceneFile(name) {
		return scene.Builtin(ctx, name, s.config.Scene)
	}

	files, err := scene.ListSceneFiles(s.config.SceneDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == name {
			return scene.LoadFile(ctx, name, s.config.Scene)
		}
	}
	return nil, errors.Errorf("unknown scene %q", name)
}

// parseRenderRequest parses and validates the query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "planes"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, MinResolution, MaxResolution); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, MinResolution, MaxResolution); err != nil {
		return nil, err
	}
	if req.Bounces, err = parseIntParam(values, "bounces", -1, 0, MaxBounces); err != nil {
		return nil, err
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, errors.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, errors.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

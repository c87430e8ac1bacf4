package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/banshee-data/invariant/internal/chroma"
	"github.com/banshee-data/invariant/internal/pipeline"
)

// Server serves one rendered run over HTTP. The page is rendered once at
// construction, so requests only read immutable state.
type Server struct {
	address string
	result  *pipeline.Result
	page    []byte
	server  *http.Server
}

// ServerConfig contains configuration options for the chart server.
type ServerConfig struct {
	Address string
	Result  *pipeline.Result
}

// NewServer renders the page for cfg.Result and prepares the HTTP server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Result == nil {
		return nil, errNoResult
	}

	var buf bytes.Buffer
	if err := WritePage(&buf, cfg.Result); err != nil {
		return nil, err
	}

	s := &Server{
		address: cfg.Address,
		result:  cfg.Result,
		page:    buf.Bytes(),
	}
	s.server = &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// NewHandler returns the chart routes for res without binding an address.
func NewHandler(res *pipeline.Result) (http.Handler, error) {
	s, err := NewServer(ServerConfig{Result: res})
	if err != nil {
		return nil, err
	}
	return s.Handler(), nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/histogram", s.handleHistogram)
	mux.HandleFunc("/api/clusters", s.handleClusters)
	mux.HandleFunc("/", s.handlePage)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on %s", s.address)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		if err := s.server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}

	log.Printf("HTTP server routine stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "run_id": s.result.RunID})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(s.page)
}

// histogramResponse is the /api/histogram payload.
type histogramResponse struct {
	RunID     string           `json:"run_id"`
	Direction chroma.Direction `json:"direction"`
	Scale     float64          `json:"scale"`
	Total     int              `json:"total"`
	Histogram chroma.Histogram `json:"histogram"`
}

func (s *Server) handleHistogram(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, histogramResponse{
		RunID:     s.result.RunID,
		Direction: s.result.Direction,
		Scale:     s.result.Scale,
		Total:     s.result.Histogram.Total(),
		Histogram: s.result.Histogram,
	})
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.result.Clusters)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Package server exposes the generator, validator, importer, draft service
// and recommender over HTTP.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/2riing/vibe-promptgen/pkg/draft"
	"github.com/2riing/vibe-promptgen/pkg/model"
	"github.com/2riing/vibe-promptgen/pkg/project"
	"github.com/2riing/vibe-promptgen/pkg/prompts"
	"github.com/2riing/vibe-promptgen/pkg/validator"
)

const maxBodyBytes = 1 << 20

// MsgIdeaRequired is returned when a recommendation is asked for without an
// idea.
const MsgIdeaRequired = "프로젝트 아이디어를 먼저 입력해 주세요."

// Recommender is the part of *recommender.Recommender the server uses.
type Recommender interface {
	Recommend(ctx context.Context, idea string, onProgress func(percent float64)) ([]string, error)
	Loaded() bool
}

// Drafter is the part of *draft.Service the server uses.
type Drafter interface {
	Draft(ctx context.Context, req draft.Request) draft.Response
}

type Server struct {
	addr        string
	importer    *project.Importer
	recommender Recommender
	drafter     Drafter
	logger      *logrus.Logger
}

func New(addr string, importer *project.Importer, rec Recommender, drafter Drafter, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{
		addr:        addr,
		importer:    importer,
		recommender: rec,
		drafter:     drafter,
		logger:      logger,
	}
}

// Handler returns the routed API with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("POST /api/import", s.handleImport)
	mux.HandleFunc("POST /api/draft", s.handleDraft)
	mux.HandleFunc("POST /api/recommend", s.handleRecommend)
	mux.HandleFunc("GET /api/recommend/ws", s.handleRecommendWS)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return corsMiddleware(s.loggingMiddleware(mux))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 300 * time.Second, // drafts and model downloads are slow
	}

	s.logger.WithField("addr", s.addr).Info("Server starting")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Warn("Server shutdown")
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// decodeProject reads a ProjectInput body. Lists may be given as strings
// and unknown keys are dropped, exactly as for imported files.
func (s *Server) decodeProject(r *http.Request) (model.ProjectInput, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return model.ProjectInput{}, err
	}
	return s.importer.Import(model.ProjectInput{}, data, project.FormatJSON)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeProject(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, prompts.Generate(in))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeProject(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, validator.Validate(in))
}

type importRequest struct {
	Base     *model.ProjectInput `json:"base,omitempty"`
	Document string              `json:"document"`
	Format   string              `json:"format"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	base := model.Defaults()
	if req.Base != nil {
		doc, err := project.ToMap(*req.Base)
		if err == nil {
			base, err = s.importer.Apply(model.ProjectInput{}, doc)
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	merged, err := s.importer.Import(base, []byte(req.Document), project.ParseFormat(req.Format))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, merged)
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	var req draft.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	resp := s.drafter.Draft(r.Context(), req)
	writeJSON(w, resp.Status, resp)
}

type recommendRequest struct {
	Idea string `json:"idea"`
}

type recommendResponse struct {
	Techs []string `json:"techs"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if strings.TrimSpace(req.Idea) == "" {
		writeError(w, http.StatusBadRequest, MsgIdeaRequired)
		return
	}
	techs, err := s.recommender.Recommend(r.Context(), req.Idea, nil)
	if err != nil {
		s.logger.WithError(err).Warn("Recommendation failed")
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{Techs: techs})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"model_loaded": s.recommender.Loaded(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusRecorder captures the status for the access log. It passes Hijack
// through so websocket upgrades keep working.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return h.Hijack()
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("Request handled")
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}

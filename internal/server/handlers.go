package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/erabu/internal/format"
	"github.com/hyperjump/erabu/internal/models"
	"go.uber.org/zap"
)

// maxBodyBytes bounds selection request bodies.
const maxBodyBytes = 1 << 20

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req models.SelectionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("select request",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("query", req.Query),
	)
	result := s.selector.Select(&req)
	if r.URL.Query().Get("format") == "text" {
		s.respondText(w, http.StatusOK, format.Summary(result.Products))
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if strings.TrimSpace(raw) == "" {
		s.respondError(w, http.StatusBadRequest, "ids is required")
		return
	}
	ids, err := parseIDs(raw)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"products": s.selector.ProductsByIDs(ids)})
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 {
			s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"products": s.selector.SimilarProducts(id, limit)})
}

type statsResponse struct {
	models.CatalogStats
	Version  string    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	s.respondJSON(w, http.StatusOK, statsResponse{
		CatalogStats: s.selector.CatalogStats(),
		Version:      snap.Version,
		LoadedAt:     snap.LoadedAt,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reloader == nil {
		s.respondError(w, http.StatusNotImplemented, "reload not configured")
		return
	}
	report, err := s.reloader.Reload()
	if err != nil {
		s.logger.Error("catalog reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"products": s.store.Count(),
	})
}

// parseIDs parses a comma-separated id list. Empty entries are skipped.
func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errors.New("invalid id " + strconv.Quote(part))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, text)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

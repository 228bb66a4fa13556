package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"salescope/internal/refresh"
	"salescope/internal/storage"
)

// Server is the HTTP API server
type Server struct {
	refresher *refresh.Refresher
	server    *http.Server
}

// NewServer creates a new API server
func NewServer(refresher *refresh.Refresher, addr string) *Server {
	s := &Server{
		refresher: refresher,
	}

	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	// Report endpoints
	mux.HandleFunc("/v1/reports", s.handleReportList)
	mux.HandleFunc("/v1/reports/", s.handleReport)

	// Run history endpoint
	mux.HandleFunc("/v1/history", s.handleHistory)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      loggingMiddleware(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting API server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down API server...")
	return s.server.Shutdown(ctx)
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleReady handles GET /readyz
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defs := s.refresher.GetDefinitions()
	cacheSize := s.refresher.GetCache().Size()

	ready := len(defs) > 0
	reasons := []string{}

	if len(defs) == 0 {
		reasons = append(reasons, "no report definitions loaded")
	}

	if cacheSize == 0 {
		reasons = append(reasons, "no reports built yet")
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, ReadyResponse{
		Ready:         ready,
		ReportsLoaded: len(defs),
		Reasons:       reasons,
	})
}

// handleReportList handles GET /v1/reports
func (s *Server) handleReportList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defs := s.refresher.GetDefinitions()

	summaries := make([]ReportSummary, 0, len(defs))
	for _, def := range defs {
		summaries = append(summaries, ReportSummary{
			ID:              def.Report.Metadata.ID,
			Title:           def.Report.Metadata.Title,
			View:            def.Report.Spec.View,
			RefreshInterval: def.Report.Spec.RefreshInterval,
			ReferenceDate:   def.Report.Spec.ReferenceDate,
		})
	}

	respondJSON(w, http.StatusOK, ReportListResponse{Reports: summaries})
}

// handleReport dispatches /v1/reports/{id} and /v1/reports/{id}/refresh
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/reports/")
	if path == "" {
		respondError(w, http.StatusBadRequest, "report ID required")
		return
	}

	if id, ok := strings.CutSuffix(path, "/refresh"); ok {
		s.handleReportRefresh(w, r, id)
		return
	}

	if id, ok := strings.CutSuffix(path, "/rows"); ok {
		s.handleReportRows(w, r, id)
		return
	}

	s.handleReportGet(w, r, path)
}

// handleReportGet handles GET /v1/reports/{id}
func (s *Server) handleReportGet(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, ok := s.refresher.GetCache().Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("no snapshot for report: %s", id))
		return
	}

	respondJSON(w, http.StatusOK, snapshotResponse(id, state))
}

// handleReportRows handles GET /v1/reports/{id}/rows, returning just the
// row array without cache metadata.
func (s *Server) handleReportRows(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, ok := s.refresher.GetCache().Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("no snapshot for report: %s", id))
		return
	}

	respondJSON(w, http.StatusOK, state.Snapshot.Rows)
}

// handleReportRefresh handles POST /v1/reports/{id}/refresh
func (s *Server) handleReportRefresh(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.refresher.RefreshNow(id); err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("refresh failed: %v", err))
		return
	}

	state, ok := s.refresher.GetCache().Get(id)
	if !ok {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("no snapshot after refresh: %s", id))
		return
	}

	respondJSON(w, http.StatusOK, snapshotResponse(id, state))
}

// handleHistory handles GET /v1/history
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	history := s.refresher.GetHistoryStore()
	if history == nil {
		respondError(w, http.StatusServiceUnavailable, "run history not configured")
		return
	}

	query := r.URL.Query()
	filter := storage.RunFilter{
		ReportID: query.Get("reportID"),
		View:     query.Get("view"),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	if startTimeStr := query.Get("startTime"); startTimeStr != "" {
		if startTime, err := time.Parse(time.RFC3339, startTimeStr); err == nil {
			filter.StartTime = &startTime
		}
	}

	if endTimeStr := query.Get("endTime"); endTimeStr != "" {
		if endTime, err := time.Parse(time.RFC3339, endTimeStr); err == nil {
			filter.EndTime = &endTime
		}
	}

	records, err := history.QueryRuns(filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to query history: %v", err))
		return
	}

	responseRecords := make([]RunRecordResponse, len(records))
	for i, record := range records {
		responseRecords[i] = RunRecordResponse{
			ID:            record.ID,
			ReportID:      record.ReportID,
			View:          record.View,
			ReferenceDate: record.ReferenceDate,
			BuiltAt:       record.BuiltAt,
			RowCount:      record.RowCount,
			TotalSales:    record.TotalSales,
			CreatedAt:     record.CreatedAt,
		}
	}

	respondJSON(w, http.StatusOK, HistoryResponse{
		Records: responseRecords,
		Total:   len(responseRecords),
	})
}

// Helper functions

func snapshotResponse(id string, state *refresh.ReportState) SnapshotResponse {
	return SnapshotResponse{
		ID:            id,
		View:          string(state.Snapshot.View),
		ReferenceDate: state.Snapshot.ReferenceDate,
		BuiltAt:       state.Snapshot.BuiltAt,
		RowCount:      state.Snapshot.RowCount,
		TotalSales:    state.Snapshot.TotalSales,
		Stale:         state.IsStale(time.Now()),
		Rows:          state.Snapshot.Rows,
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

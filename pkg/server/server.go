package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/salesbook-io/salesbook/pkg/config"
	"github.com/salesbook-io/salesbook/pkg/csv"
	"github.com/salesbook-io/salesbook/pkg/models"
	"github.com/salesbook-io/salesbook/pkg/parser"
	"github.com/salesbook-io/salesbook/pkg/report"
)

// Server handles HTTP uploads of sales documents. Parsing and aggregation
// are pure, so concurrent uploads need no locking; the sync.Map only caches
// parsed records for the CSV download endpoint.
type Server struct {
	config  *config.Config
	logger  *log.Logger
	mux     *http.ServeMux
	parser  *parser.Parser
	records sync.Map
}

// Record is a flattened sale record for JSON responses.
type Record struct {
	Date        string  `json:"date"`
	Salesperson string  `json:"salesperson"`
	Amount      float64 `json:"amount"`
}

func New(config *config.Config, logger *log.Logger) *Server {
	s := &Server{
		config: config,
		logger: logger,
		mux:    http.NewServeMux(),
		parser: parser.New(logger),
	}
	s.setupRoutes()
	return s
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/report", s.withLogging(s.handleReport))
	s.mux.HandleFunc("/api/files/", s.withLogging(s.handleFiles))
}

// handleReport accepts a multipart upload ("sales" file field plus a "date"
// form value) and responds with the aggregate for that reference date. The
// parsed records are cached so the canonical CSV can be downloaded later.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	file, header, err := r.FormFile("sales")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "sales file required", err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to read file", err)
		return
	}

	date := r.FormValue("date")
	if !report.ValidReferenceDate(date) {
		s.respondError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		return
	}

	records, err := s.parser.ProcessBytes(data, header.Filename)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "failed to process file", err)
		return
	}
	if len(records) == 0 {
		s.logger.Warn("no valid sale records in upload", "file", header.Filename)
	}

	filename := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)) + "-salesbook.csv"
	s.records.Store(filename, records)

	res := report.Aggregate(records, date)
	dayRecords := make([]Record, len(res.DayRecords))
	for i, rec := range res.DayRecords {
		dayRecords[i] = Record{Date: rec.Date(), Salesperson: rec.Salesperson(), Amount: rec.Amount()}
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":              "success",
		"file":                filename,
		"records":             len(records),
		"total_day":           res.TotalDay,
		"total_month_to_date": res.TotalMonthToDate,
		"total_year_to_date":  res.TotalYearToDate,
		"leaderboard":         res.Leaderboard,
		"day_records":         dayRecords,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// handleFiles serves the canonical CSV for a previously processed upload.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	filename := strings.TrimPrefix(r.URL.Path, "/api/files/")
	if filename == "" {
		s.respondError(w, r, http.StatusBadRequest, "filename required", nil)
		return
	}

	value, ok := s.records.Load(filename)
	if !ok {
		s.respondError(w, r, http.StatusNotFound, "file not found", nil)
		return
	}
	records, ok := value.([]*models.SaleRecord)
	if !ok {
		s.respondError(w, r, http.StatusInternalServerError, "internal type assertion error", nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(csv.Create(records, nil)); err != nil {
		s.logger.Warn("failed to write csv response", "err", err)
	}
}

// --- helpers ---

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log requests and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}

package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/couchcryptid/weather-analytics/internal/analysis"
	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/couchcryptid/weather-analytics/internal/pipeline"
	"github.com/couchcryptid/weather-analytics/internal/render"
)

// SinkName labels the in-memory store in logs and metrics.
const SinkName = "http"

// MaxOnDemandDays caps the series length a request may ask for.
const MaxOnDemandDays = 100 * 366

var contentTypes = map[string]string{
	render.FormatJSON: "application/json",
	render.FormatYAML: "application/yaml",
	render.FormatText: "text/plain; charset=utf-8",
}

// ReportStore keeps the most recent report for the /report route.
// It implements pipeline.ReportLoader.
type ReportStore struct {
	mu     sync.RWMutex
	report *analysis.Report
}

// NewReportStore returns an empty store.
func NewReportStore() *ReportStore {
	return &ReportStore{}
}

func (s *ReportStore) Name() string { return SinkName }

// Load replaces the stored report.
func (s *ReportStore) Load(_ context.Context, res pipeline.Result) error {
	r := res.Report
	s.mu.Lock()
	s.report = &r
	s.mu.Unlock()
	return nil
}

// Latest returns the stored report, if any.
func (s *ReportStore) Latest() (analysis.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return analysis.Report{}, false
	}
	return *s.report, true
}

// reportQuery is the parsed /report query string.
type reportQuery struct {
	format   string
	days     int
	seed     uint64
	onDemand bool
}

func parseReportQuery(q url.Values) (reportQuery, error) {
	rq := reportQuery{format: q.Get("format"), days: domain.DefaultDays}
	if rq.format == "" {
		rq.format = render.FormatJSON
	}
	if _, ok := contentTypes[rq.format]; !ok {
		return rq, fmt.Errorf("unsupported format %s", rq.format)
	}

	if s := q.Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > MaxOnDemandDays {
			return rq, fmt.Errorf("days must be between 1 and %d", MaxOnDemandDays)
		}
		rq.days = n
		rq.onDemand = true
	}
	if s := q.Get("seed"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return rq, fmt.Errorf("seed must be an unsigned integer")
		}
		rq.seed = v
		rq.onDemand = true
	}
	return rq, nil
}

// handleReport serves the latest report, or a report for ?days=&seed=, as
// JSON or as ?format=yaml|text.
func (s *Server) handleReport(store *ReportStore, onDemand ReportRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rq, err := parseReportQuery(r.URL.Query())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		var report analysis.Report
		switch {
		case rq.onDemand && onDemand == nil:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "on-demand reports are disabled"})
			return
		case rq.onDemand:
			res, err := onDemand.Run(r.Context(), rq.days, rq.seed)
			if err != nil {
				s.logger.Error("on-demand report failed", "error", err, "days", rq.days, "seed", rq.seed)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "report run failed"})
				return
			}
			report = res.Report
		default:
			latest, ok := store.Latest()
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "no report available"})
				return
			}
			report = latest
		}

		var buf bytes.Buffer
		if err := render.Write(&buf, rq.format, report); err != nil {
			s.logger.Error("render report failed", "error", err, "format", rq.format)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render report failed"})
			return
		}
		w.Header().Set("Content-Type", contentTypes[rq.format])
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort error response
}

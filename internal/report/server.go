package report

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
)

// WebServer serves the run report over local HTTP so charts can be
// explored without writing files.
type WebServer struct {
	report *Report
	mux    *http.ServeMux
}

// NewWebServer creates a server for one report.
func NewWebServer(r *Report) *WebServer {
	ws := &WebServer{report: r, mux: http.NewServeMux()}
	ws.mux.HandleFunc("/", ws.handleReport)
	ws.mux.HandleFunc("/heatmap", ws.handleHeatmap)
	ws.mux.HandleFunc("/timeseries", ws.handleTimeSeries)
	return ws
}

// ServeHTTP implements http.Handler.
func (ws *WebServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws.mux.ServeHTTP(w, r)
}

// ListenAndServe serves the report until the process exits.
func (ws *WebServer) ListenAndServe(addr string) error {
	log.Printf("serving report %s on http://%s", ws.report.ID, addr)
	return http.ListenAndServe(addr, ws)
}

// handleReport renders the full report page.
func (ws *WebServer) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ws.report.WriteHTML(w); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render report: %v", err))
	}
}

// handleHeatmap renders just the heatmap chart. Query params:
//   - step (optional): saved step number to show
//   - y_index (optional): profile slice for 3D runs
func (ws *WebServer) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	rep := *ws.report
	if s := r.URL.Query().Get("step"); s != "" {
		step, err := strconv.Atoi(s)
		if err != nil {
			ws.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid step %q", s))
			return
		}
		stepIndex, err := rep.ds.StepIndex(step)
		if err != nil {
			ws.writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		rep.StepIndex = stepIndex
	}
	if s := r.URL.Query().Get("y_index"); s != "" {
		yIndex, err := strconv.Atoi(s)
		if err != nil {
			ws.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid y_index %q", s))
			return
		}
		rep.YIndex = yIndex
	}

	chart, err := rep.HeatmapChart()
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = chart.Render(w)
}

// handleTimeSeries renders just the bulk evolution chart.
func (ws *WebServer) handleTimeSeries(w http.ResponseWriter, r *http.Request) {
	chart, err := ws.report.TimeSeriesChart()
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = chart.Render(w)
}

func (ws *WebServer) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

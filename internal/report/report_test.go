package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
	"github.com/tectonic-data/mandyoc.report/internal/testutil"
)

func loadDataset(t *testing.T) *mandyoc.Dataset {
	t.Helper()
	dir := testutil.WriteRunDir(t, testutil.RunSpec{
		Shape:     []int{5, 4},
		Extent:    []float64{800000, 300000},
		PrintStep: 10,
		StepMax:   20,
		Steps:     []int{0, 10, 20},
		Scalars:   []string{"temperature"},
		Velocity:  true,
	})
	ds, err := mandyoc.ReadDataset(dir, nil)
	require.NoError(t, err)
	return ds
}

func TestWriteHTML(t *testing.T) {
	ds := loadDataset(t)
	rep := New(ds, "")

	assert.Equal(t, "temperature", rep.Quantity)
	assert.Equal(t, 2, rep.StepIndex, "default snapshot is the last saved step")
	assert.NotEmpty(t, rep.ID)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteHTML(&buf))

	html := buf.String()
	assert.Contains(t, html, "temperature")
	assert.Contains(t, html, "rms velocity (cm/yr)")
	assert.Contains(t, html, rep.ID)
}

func TestReportIDsAreUnique(t *testing.T) {
	ds := loadDataset(t)
	if New(ds, "").ID == New(ds, "").ID {
		t.Error("two reports share an ID")
	}
}

func TestHeatmapChartUnknownQuantity(t *testing.T) {
	ds := loadDataset(t)
	rep := New(ds, "viscosity")
	if _, err := rep.HeatmapChart(); err == nil {
		t.Error("expected error for a quantity that was not loaded")
	}
}

func TestTimeSeriesWithoutVelocity(t *testing.T) {
	dir := testutil.WriteRunDir(t, testutil.RunSpec{
		Shape:     []int{4, 4},
		Extent:    []float64{100000, 100000},
		PrintStep: 5,
		StepMax:   5,
		Steps:     []int{0, 5},
		Scalars:   []string{"temperature"},
	})
	ds, err := mandyoc.ReadDataset(dir, nil)
	require.NoError(t, err)

	rep := New(ds, "")
	var buf bytes.Buffer
	require.NoError(t, rep.WriteHTML(&buf))
	assert.NotContains(t, buf.String(), "rms velocity")
}

func TestWebServerRoutes(t *testing.T) {
	ds := loadDataset(t)
	ws := NewWebServer(New(ds, "temperature"))

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/", http.StatusOK, "temperature"},
		{"/heatmap", http.StatusOK, "heatmap"},
		{"/heatmap?step=10", http.StatusOK, "heatmap"},
		{"/heatmap?step=7", http.StatusNotFound, "error"},
		{"/heatmap?step=abc", http.StatusBadRequest, "error"},
		{"/timeseries", http.StatusOK, "line"},
		{"/nope", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			ws.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body does not contain %q", tt.wantBody)
			}
		})
	}
}

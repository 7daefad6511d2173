package api

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ramware/welltest/internal/config"
	"github.com/ramware/welltest/pkg/models"
	"github.com/ramware/welltest/pkg/units"
)

func testServer() *Server {
	cfg := &config.Config{}
	cfg.API.Host = "127.0.0.1"
	cfg.API.Port = 0
	return NewServer(cfg, "test")
}

func fp(v float64) *float64 { return &v }

func testReading() models.TestReading {
	return models.TestReading{
		WellName:            "RW-7",
		ReservoirPressure:   models.Pressure{Value: 3200, Unit: units.PSIA},
		BottomholeTemp:      models.Temperature{Value: 180, Unit: units.Fahrenheit},
		SeparatorPressure:   models.Pressure{Value: 100, Unit: units.PSIG},
		SeparatorTemp:       models.Temperature{Value: 90, Unit: units.Fahrenheit},
		OilAPI:              fp(35),
		GasSG:               fp(0.75),
		WaterCut:            fp(0.2),
		GrossLiquidRate:     models.LiquidRate{Value: 500, Unit: units.BarrelsPerDay},
		MeasuredBubblePoint: models.Pressure{Value: 2000, Unit: units.PSIA},
	}
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// ── Health ──

func TestHealthEndpoint(t *testing.T) {
	srv := testServer()
	for _, path := range []string{"/health", "/api/v1/health"} {
		rec := doJSON(t, srv, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status %d, want 200", path, rec.Code)
		}
		resp := decodeResponse(t, rec)
		if !resp.Success {
			t.Errorf("%s: success=false", path)
		}
	}
}

// ── Methods ──

func TestMethodsEndpoint(t *testing.T) {
	srv := testServer()
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/methods", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var resp struct {
		Success bool          `json:"success"`
		Data    []MethodEntry `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) == 0 {
		t.Fatal("methods list should not be empty")
	}

	sawStanding := false
	for _, m := range resp.Data {
		if m.Property == models.PropertySolutionGOR && m.Method == models.MethodStanding {
			sawStanding = true
		}
	}
	if !sawStanding {
		t.Error("methods list should include STANDING for solution_gor")
	}
}

func TestMethodsEndpointFilterByProperty(t *testing.T) {
	srv := testServer()
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/methods?property=bubble_point", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var resp struct {
		Data []MethodEntry `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, m := range resp.Data {
		if m.Property != models.PropertyBubblePoint {
			t.Errorf("filtered list leaked property %s", m.Property)
		}
	}
}

func TestMethodsEndpointUnknownProperty(t *testing.T) {
	srv := testServer()
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/methods?property=porosity", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
}

// ── Calculate ──

func TestCalculateEndpoint(t *testing.T) {
	srv := testServer()
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/calculate", CalculateRequest{
		Reading: testReading(),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool              `json:"success"`
		Data    models.RateResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success=false for valid reading")
	}
	if resp.Data.Qoil.Value <= 0 {
		t.Errorf("Qoil = %v, want > 0", resp.Data.Qoil.Value)
	}
	if resp.Data.Qwater.Value != 100 {
		t.Errorf("Qwater = %v, want 100", resp.Data.Qwater.Value)
	}
}

func TestCalculateEndpointHonorsSelection(t *testing.T) {
	srv := testServer()
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/calculate", CalculateRequest{
		Reading:   testReading(),
		Selection: models.CorrelationSelection{SolutionGOR: models.MethodKatz},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var resp struct {
		Data models.RateResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.PVT.SeparatorGOR.Method != models.MethodKatz {
		t.Errorf("selection not honored, got %s", resp.Data.PVT.SeparatorGOR.Method)
	}
}

func TestCalculateEndpointMalformedBody(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestCalculateEndpointValidationFailure(t *testing.T) {
	srv := testServer()
	bad := testReading()
	bad.BottomholeTemp = models.Temperature{}
	bad.OilAPI = nil

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/calculate", CalculateRequest{Reading: bad})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", rec.Code)
	}

	var resp struct {
		Success bool             `json:"success"`
		Error   string           `json:"error"`
		Data    ValidationDetail `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("success should be false")
	}
	// Every violation is reported, not just the first.
	if len(resp.Data.Violations) < 2 {
		t.Errorf("expected at least 2 violations, got %v", resp.Data.Violations)
	}
}

func TestCalculateEndpointUnknownMethod(t *testing.T) {
	srv := testServer()
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/calculate", CalculateRequest{
		Reading:   testReading(),
		Selection: models.CorrelationSelection{BubblePoint: "GLASO"},
	})
	if rec.Code == http.StatusOK {
		t.Error("unregistered method should not succeed")
	}
}

// ── Batch ──

func TestBatchEndpoint(t *testing.T) {
	srv := testServer()
	readings := []models.TestReading{testReading(), testReading(), testReading()}
	readings[1].WaterCut = fp(0.5)
	readings[2].WaterCut = fp(0.9)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/calculate/batch", BatchRequest{Readings: readings})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data []models.RateResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("expected 3 results, got %d", len(resp.Data))
	}
	// Input order is preserved: the higher water cut yields less oil.
	if resp.Data[0].Qoil.Value <= resp.Data[2].Qoil.Value {
		t.Errorf("results out of order: %v vs %v", resp.Data[0].Qoil.Value, resp.Data[2].Qoil.Value)
	}
}

func TestBatchEndpointEmpty(t *testing.T) {
	srv := testServer()
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/calculate/batch", BatchRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestBatchEndpointReportsFailingIndex(t *testing.T) {
	srv := testServer()
	bad := testReading()
	bad.GasSG = nil
	readings := []models.TestReading{testReading(), bad}

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/calculate/batch", BatchRequest{Readings: readings})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", rec.Code)
	}

	var resp struct {
		Data ValidationDetail `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.ReadingIndex == nil || *resp.Data.ReadingIndex != 1 {
		t.Errorf("failing index not reported: %+v", resp.Data)
	}
}

func TestRequestLoggerHonorsLoggingConfig(t *testing.T) {
	quiet := testServer()
	quiet.cfg.Logging.Level = "error"
	if quiet.requestLogger() != nil {
		t.Error("level error should disable request logging")
	}

	srv := testServer()
	srv.cfg.Logging.Level = "info"
	srv.cfg.Logging.Format = "json"
	if srv.requestLogger() == nil {
		t.Error("info level should enable request logging")
	}
}

func TestJSONLogFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &jsonLogFormatter{logger: log.New(&buf, "", 0)}
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	f.NewLogEntry(req).Write(http.StatusOK, 17, nil, 1500*time.Microsecond, nil)

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["path"] != "/health" || line["status"] != float64(200) {
		t.Errorf("unexpected log line: %v", line)
	}
}

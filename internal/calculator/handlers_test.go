package calculator

import (
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"go-chi-compute/internal/compute"
	"go-chi-compute/internal/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *compute.Calculator) {
	t.Helper()

	engine := compute.NewCalculator("test_calculator")
	h, err := NewHandler(engine)
	if err != nil {
		t.Fatalf("creating handler: %v", err)
	}

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, engine
}

func TestBinaryOperations(t *testing.T) {
	tests := []struct {
		path string
		body string
		want string
	}{
		{"/calculator/add", `{"a":5,"b":3}`, "8"},
		{"/calculator/subtract", `{"a":10,"b":4}`, "6"},
		{"/calculator/multiply", `{"a":6,"b":7}`, "42"},
		{"/calculator/divide", `{"a":15,"b":3}`, "5.0"},
		{"/calculator/power", `{"a":2,"b":8}`, "256"},
		{"/calculator/add", `{"a":1,"b":2.5}`, "3.5"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			router, _ := newTestRouter(t)

			rr := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, tc.path, tc.body), router)
			testutil.CheckResponseCode(t, http.StatusOK, rr.Code)

			var resp CalcResponse
			testutil.DecodeJSONBody(t, rr.Body, &resp)

			if got := resp.Result.String(); got != tc.want {
				t.Fatalf("expected result %s, got %s", tc.want, got)
			}
		})
	}
}

func TestBinaryOperationKeepsIntegerLiteral(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/divide", `{"a":15,"b":3}`), router)
	testutil.CheckResponseCode(t, http.StatusOK, rr.Code)

	if body := rr.Body.String(); !strings.Contains(body, `"result":5.0`) {
		t.Fatalf("expected float literal 5.0 in body, got %s", body)
	}
}

func TestDivideByZero(t *testing.T) {
	router, engine := newTestRouter(t)

	rr := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/divide", `{"a":10,"b":0}`), router)
	testutil.CheckResponseCode(t, http.StatusBadRequest, rr.Code)

	var payload map[string]string
	testutil.DecodeJSONBody(t, rr.Body, &payload)
	if !strings.HasPrefix(payload["error"], "division by zero") {
		t.Fatalf("expected division by zero error, got %q", payload["error"])
	}

	if n := engine.Statistics().TotalOperations; n != 0 {
		t.Fatalf("expected failed division not to be recorded, got %d operations", n)
	}
}

func TestBinaryOperationRejectsBadInput(t *testing.T) {
	bodies := map[string]string{
		"missing operand": `{"a":1}`,
		"string operand":  `{"a":"1","b":2}`,
		"malformed":       `{"a":`,
		"trailing data":   `{"a":1,"b":2} {}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			router, engine := newTestRouter(t)

			rr := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/add", body), router)
			testutil.CheckResponseCode(t, http.StatusBadRequest, rr.Code)

			if n := engine.Statistics().HistoryCount; n != 0 {
				t.Fatalf("expected nothing recorded, got %d", n)
			}
		})
	}
}

func TestBinaryOperationRejectsOutOfRangeOperand(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/multiply", `{"a":1e999,"b":2}`), router)
	testutil.CheckResponseCode(t, http.StatusBadRequest, rr.Code)

	var payload map[string]string
	testutil.DecodeJSONBody(t, rr.Body, &payload)
	if payload["error"] != "invalid numeric input" {
		t.Fatalf("expected invalid numeric input, got %q", payload["error"])
	}
}

func TestAggregates(t *testing.T) {
	tests := []struct {
		path string
		body string
		want string
	}{
		{"/calculator/sum", `{"numbers":[1,2,3,4,5]}`, "15"},
		{"/calculator/average", `{"numbers":[1,2,3,4,5]}`, "3.0"},
		{"/calculator/sum", `{"numbers":[]}`, "0"},
		{"/calculator/average", `{}`, "0.0"},
	}

	for _, tc := range tests {
		t.Run(tc.path+" "+tc.body, func(t *testing.T) {
			router, engine := newTestRouter(t)

			rr := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, tc.path, tc.body), router)
			testutil.CheckResponseCode(t, http.StatusOK, rr.Code)

			var resp AggregateResponse
			testutil.DecodeJSONBody(t, rr.Body, &resp)

			if got := resp.Result.String(); got != tc.want {
				t.Fatalf("expected result %s, got %s", tc.want, got)
			}
			if resp.Numbers == nil {
				t.Fatal("expected numbers to be echoed as a list")
			}
			if n := engine.Statistics().TotalOperations; n != 1 {
				t.Fatalf("expected 1 recorded operation, got %d", n)
			}
		})
	}
}

func TestChain(t *testing.T) {
	router, engine := newTestRouter(t)

	body := `{"initial":10,"steps":[{"op":"add","value":5},{"op":"multiply","value":2},{"op":"divide","value":4}]}`
	rr := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/chain", body), router)
	testutil.CheckResponseCode(t, http.StatusOK, rr.Code)

	var resp ChainResponse
	testutil.DecodeJSONBody(t, rr.Body, &resp)

	if got := resp.Result.String(); got != "7.5" {
		t.Fatalf("expected result 7.5, got %s", got)
	}
	if len(resp.Steps) != 3 {
		t.Fatalf("expected 3 step results, got %d", len(resp.Steps))
	}
	if got := resp.Steps[1].Result.String(); got != "30" {
		t.Fatalf("expected intermediate result 30, got %s", got)
	}
	if n := engine.Statistics().TotalOperations; n != 3 {
		t.Fatalf("expected every step to be recorded, got %d", n)
	}
}

func TestChainFailures(t *testing.T) {
	tests := map[string]struct {
		body     string
		recorded int64
	}{
		"empty steps":      {`{"initial":1,"steps":[]}`, 0},
		"unknown op":       {`{"initial":1,"steps":[{"op":"add","value":1},{"op":"modulo","value":2}]}`, 1},
		"division by zero": {`{"initial":1,"steps":[{"op":"divide","value":0}]}`, 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			router, engine := newTestRouter(t)

			rr := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/chain", tc.body), router)
			testutil.CheckResponseCode(t, http.StatusBadRequest, rr.Code)

			if n := engine.Statistics().TotalOperations; n != tc.recorded {
				t.Fatalf("expected %d recorded operations, got %d", tc.recorded, n)
			}
		})
	}
}

func TestStatsHistoryAndClear(t *testing.T) {
	router, engine := newTestRouter(t)
	engine.Add(compute.Int(1), compute.Int(2))
	engine.Multiply(compute.Int(3), compute.Int(4))

	rr := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodGet, "/calculator/stats", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, rr.Code)

	var stats compute.CalculatorStats
	testutil.DecodeJSONBody(t, rr.Body, &stats)
	if stats.Name != "test_calculator" || stats.TotalOperations != 2 || stats.HistoryCount != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	rr = testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodGet, "/calculator/history", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, rr.Code)

	var history HistoryResponse
	testutil.DecodeJSONBody(t, rr.Body, &history)
	if len(history.History) != 2 {
		t.Fatalf("expected 2 history records, got %d", len(history.History))
	}
	if rec := history.History[1]; rec.Operation != compute.OpMultiply || rec.Sequence != 2 || rec.Result != compute.Int(12) {
		t.Fatalf("unexpected record %+v", rec)
	}

	rr = testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodDelete, "/calculator/history", nil), router)
	testutil.CheckResponseCode(t, http.StatusNoContent, rr.Code)

	if n := engine.Statistics().HistoryCount; n != 0 {
		t.Fatalf("expected empty history after clear, got %d", n)
	}
}

package game24

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"game24/internal/observability"
	"game24/internal/puzzle"
	"game24/internal/testutil"
)

func newTestRouter(t *testing.T, opts ...puzzle.Option) http.Handler {
	t.Helper()

	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing game24 metrics: %v", err)
	}

	gen, err := puzzle.NewGenerator(opts...)
	if err != nil {
		t.Fatalf("creating generator: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, gen)
	return r
}

func TestSolvable(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		body string
		want bool
	}{
		{body: `{"numbers":[4,6,8,1]}`, want: true},
		{body: `{"numbers":[1,1,1,1]}`, want: false},
		{body: `{"numbers":[1,3,4,6]}`, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.body, func(t *testing.T) {
			w := testutil.PostJSON(t, h, "/game24/solvable", tc.body)
			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var resp SolvableResponse
			testutil.DecodeJSONBody(t, w.Body, &resp)
			if resp.Solvable != tc.want {
				t.Fatalf("expected solvable=%t, got %t", tc.want, resp.Solvable)
			}
			if len(resp.Numbers) != 4 {
				t.Fatalf("expected numbers echoed back, got %v", resp.Numbers)
			}
		})
	}
}

func TestHint(t *testing.T) {
	h := newTestRouter(t)

	t.Run("found", func(t *testing.T) {
		w := testutil.PostJSON(t, h, "/game24/hint", `{"numbers":[4,6,8,1]}`)
		testutil.CheckResponseCode(t, http.StatusOK, w.Code)

		var resp HintResponse
		testutil.DecodeJSONBody(t, w.Body, &resp)
		if !resp.Found || resp.Solution == nil {
			t.Fatalf("expected a solution, got %+v", resp)
		}
		if *resp.Solution != "((6 - 4) + 1) * 8" {
			t.Fatalf("expected %q, got %q", "((6 - 4) + 1) * 8", *resp.Solution)
		}
	})

	t.Run("absent", func(t *testing.T) {
		w := testutil.PostJSON(t, h, "/game24/hint", `{"numbers":[1,1,1,1]}`)
		testutil.CheckResponseCode(t, http.StatusOK, w.Code)

		var resp map[string]any
		testutil.DecodeJSONBody(t, w.Body, &resp)
		if resp["found"] != false {
			t.Fatalf("expected found=false, got %#v", resp["found"])
		}
		if v, ok := resp["solution"]; !ok || v != nil {
			t.Fatalf("expected solution null, got %#v", v)
		}
	})
}

func TestNumbersValidation(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		path string
		body string
		want string
	}{
		{name: "bad json", path: "/game24/solvable", body: `{"numbers":`, want: "invalid request body"},
		{name: "too few", path: "/game24/solvable", body: `{"numbers":[1,2,3]}`, want: "expected exactly 4 numbers, got 3"},
		{name: "too many", path: "/game24/hint", body: `{"numbers":[1,2,3,4,5]}`, want: "expected exactly 4 numbers, got 5"},
		{name: "missing", path: "/game24/verify", body: `{"expression":"1+2"}`, want: "expected exactly 4 numbers, got 0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.PostJSON(t, h, tc.path, tc.body)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			if got := testutil.ErrorMessage(t, w.Body); got != tc.want {
				t.Fatalf("expected error %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPuzzle(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/game24/puzzle", nil)
	w := testutil.ExecuteRequest(req, h)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp PuzzleResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if len(resp.Numbers) != 4 {
		t.Fatalf("expected 4 numbers, got %v", resp.Numbers)
	}
	if resp.Attempts < 1 {
		t.Fatalf("expected at least one attempt, got %d", resp.Attempts)
	}

	hint := testutil.PostJSON(t, h, "/game24/hint", `{"numbers":`+jsonNumbers(t, resp.Numbers)+`}`)
	var hr HintResponse
	testutil.DecodeJSONBody(t, hint.Body, &hr)
	if !hr.Found {
		t.Fatalf("expected dealt puzzle %v to have a hint", resp.Numbers)
	}
}

func TestPuzzleFallbackIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	oldLogger := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = oldLogger })

	h := newTestRouter(t, puzzle.WithCardRange(1, 1), puzzle.WithMaxAttempts(3))

	req := httptest.NewRequest(http.MethodGet, "/game24/puzzle", nil)
	w := testutil.ExecuteRequest(req, h)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp PuzzleResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if !resp.Fallback || resp.Attempts != 3 {
		t.Fatalf("expected fallback after 3 attempts, got %+v", resp)
	}

	if n := logs.FilterMessage("no solvable draw within attempt limit, dealing fallback set").Len(); n != 1 {
		t.Fatalf("expected 1 fallback warning, got %d", n)
	}
}

func TestVerify(t *testing.T) {
	h := newTestRouter(t)

	t.Run("correct", func(t *testing.T) {
		w := testutil.PostJSON(t, h, "/game24/verify", `{"numbers":[4,6,8,1],"expression":"(8 − 4) × (6 × 1)"}`)
		testutil.CheckResponseCode(t, http.StatusOK, w.Code)

		var resp VerifyResponse
		testutil.DecodeJSONBody(t, w.Body, &resp)
		if !resp.Correct || resp.Value != 24 {
			t.Fatalf("expected correct 24, got %+v", resp)
		}
		if resp.Expression != "(8 - 4) * (6 * 1)" {
			t.Fatalf("expected normalised expression, got %q", resp.Expression)
		}
		if len(resp.Steps) != 3 {
			t.Fatalf("expected 3 steps, got %d", len(resp.Steps))
		}
	})

	t.Run("incorrect", func(t *testing.T) {
		w := testutil.PostJSON(t, h, "/game24/verify", `{"numbers":[4,6,8,1],"expression":"4 + 6 + 8 + 1"}`)
		testutil.CheckResponseCode(t, http.StatusOK, w.Code)

		var resp VerifyResponse
		testutil.DecodeJSONBody(t, w.Body, &resp)
		if resp.Correct || resp.Value != 19 {
			t.Fatalf("expected incorrect 19, got %+v", resp)
		}
	})

	t.Run("hint round trip", func(t *testing.T) {
		hint := testutil.PostJSON(t, h, "/game24/hint", `{"numbers":[3,3,8,8]}`)
		var hr HintResponse
		testutil.DecodeJSONBody(t, hint.Body, &hr)
		if hr.Solution == nil {
			t.Fatal("expected a hint for [3 3 8 8]")
		}

		w := testutil.PostJSON(t, h, "/game24/verify", `{"numbers":[3,3,8,8],"expression":"`+*hr.Solution+`"}`)
		testutil.CheckResponseCode(t, http.StatusOK, w.Code)

		var resp VerifyResponse
		testutil.DecodeJSONBody(t, w.Body, &resp)
		if !resp.Correct {
			t.Fatalf("expected hint %q to verify, got %+v", *hr.Solution, resp)
		}
	})

	errorCases := []struct {
		name string
		body string
		want string
	}{
		{name: "syntax", body: `{"numbers":[4,6,8,1],"expression":"(8 - 4"}`, want: "invalid expression"},
		{name: "mismatch", body: `{"numbers":[4,6,8,1],"expression":"8 * 3"}`, want: "expression must use each number exactly once"},
		{name: "division by zero", body: `{"numbers":[1,1,4,6],"expression":"6 / (1 - 1) + 4"}`, want: "division by zero"},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.PostJSON(t, h, "/game24/verify", tc.body)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			if got := testutil.ErrorMessage(t, w.Body); got != tc.want {
				t.Fatalf("expected error %q, got %q", tc.want, got)
			}
		})
	}
}

func jsonNumbers(t *testing.T, ns []float64) string {
	t.Helper()
	b, err := json.Marshal(ns)
	if err != nil {
		t.Fatalf("encoding numbers: %v", err)
	}
	return string(b)
}

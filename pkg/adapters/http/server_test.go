package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strictMachine(t *testing.T) *machine.Definition {
	t.Helper()
	reg := machine.NewRegistry()
	q0 := reg.State("q0")
	def, err := machine.FromTable(q0, table.Table{
		q0: {"0": domain.To(domain.Accept)},
	}, machine.WithName("strict"))
	require.NoError(t, err)
	return def
}

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	loader, err := memory.NewLoader(
		testutils.ZeroNOneN(t),
		testutils.Looping(t),
		strictMachine(t),
	)
	require.NoError(t, err)
	return NewHandler(loader, opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&v))
	return v
}

func TestListMachines(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/machines", "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[[]MachineSummary](t, w)
	require.Len(t, got, 3)
	assert.Equal(t, "looping", got[0].Name)
	assert.Equal(t, "strict", got[1].Name)
	assert.Equal(t, MachineSummary{Name: "zero-n-one-n", Start: "q0", States: 4}, got[2])
}

func TestGetMachine(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/machines/zero-n-one-n", "")
	require.Equal(t, http.StatusOK, w.Code)

	desc := decode[machine.Description](t, w)
	assert.Equal(t, "q0", desc.Start)
	assert.Equal(t, []string{"0", "1"}, desc.Alphabet)
	assert.Contains(t, desc.Rows, machine.Row{State: "q2", Read: "1", Next: "q3", Move: "left", Write: "_"})

	w = do(t, h, http.MethodGet, "/machines/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "machine not found")
}

func TestRunMachine(t *testing.T) {
	h := newTestHandler(t, WithStepLimit(100))

	tests := []struct {
		name       string
		path       string
		body       string
		wantCode   int
		wantStatus string
	}{
		{"Accepted", "/machines/zero-n-one-n/run", `{"input":"0011"}`, http.StatusOK, "accepted"},
		{"Rejected", "/machines/zero-n-one-n/run", `{"input":"0101"}`, http.StatusOK, "rejected"},
		{"Empty input", "/machines/zero-n-one-n/run", `{"input":""}`, http.StatusOK, "accepted"},
		{"Non-halting", "/machines/looping/run", `{"input":"1"}`, http.StatusOK, "undetermined"},
		{"Missing transition", "/machines/strict/run", `{"input":"1"}`, http.StatusUnprocessableEntity, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())

			resp := decode[RunResponse](t, w)
			assert.Equal(t, tt.wantStatus, resp.Status)
		})
	}

	t.Run("Undetermined reports the ceiling", func(t *testing.T) {
		resp := decode[RunResponse](t, do(t, h, http.MethodPost, "/machines/looping/run", `{"input":"1"}`))
		assert.Equal(t, 100, resp.Steps)
		assert.Contains(t, resp.Error, "did not halt")
	})

	t.Run("Bad body", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/machines/zero-n-one-n/run", `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRunMachine_Cached(t *testing.T) {
	store := memory.NewStore()
	h := newTestHandler(t, WithStore(store))

	first := decode[RunResponse](t, do(t, h, http.MethodPost, "/machines/zero-n-one-n/run", `{"input":"01"}`))
	assert.False(t, first.Cached)

	second := decode[RunResponse](t, do(t, h, http.MethodPost, "/machines/zero-n-one-n/run", `{"input":"01"}`))
	assert.True(t, second.Cached)
	assert.Equal(t, first.Steps, second.Steps)

	inputs, err := store.List(t.Context(), "zero-n-one-n")
	require.NoError(t, err)
	assert.Equal(t, []string{"01"}, inputs)
}

func TestRunBatch(t *testing.T) {
	h := newTestHandler(t, WithWorkers(2))

	w := do(t, h, http.MethodPost, "/machines/zero-n-one-n/batch", `{"inputs":["01","10","000111",""]}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[BatchResponse](t, w)
	require.Len(t, resp.Results, 4)
	assert.Equal(t, "accepted", resp.Results[0].Status)
	assert.Equal(t, "rejected", resp.Results[1].Status)
	assert.Equal(t, "accepted", resp.Results[2].Status)
	assert.Equal(t, "accepted", resp.Results[3].Status)
	assert.Equal(t, 3, resp.Summary.Accepted)
	assert.Equal(t, 1, resp.Summary.Rejected)
}

func TestRunBatch_TooLarge(t *testing.T) {
	inputs := make([]string, MaxBatchInputs+1)
	for i := range inputs {
		inputs[i] = "01"
	}
	body, err := json.Marshal(BatchRequest{Inputs: inputs})
	require.NoError(t, err)

	t.Run("Too many inputs", func(t *testing.T) {
		w := do(t, newTestHandler(t), http.MethodPost, "/machines/zero-n-one-n/batch", string(body))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("Too many inputs with validation", func(t *testing.T) {
		w := do(t, newTestHandler(t, WithRequestValidation()), http.MethodPost, "/machines/zero-n-one-n/batch", string(body))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("Body over the limit", func(t *testing.T) {
		h := newTestHandler(t, WithMaxBodyBytes(64))
		w := do(t, h, http.MethodPost, "/machines/zero-n-one-n/run", `{"input":"`+strings.Repeat("0", 128)+`"}`)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

		w = do(t, h, http.MethodPost, "/machines/zero-n-one-n/run", `{"input":"01"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Body over the limit with validation", func(t *testing.T) {
		h := newTestHandler(t, WithMaxBodyBytes(64), WithRequestValidation())
		w := do(t, h, http.MethodPost, "/machines/zero-n-one-n/batch", `{"inputs":["`+strings.Repeat("0", 128)+`"]}`)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	metrics, err := observability.NewMetrics(nil)
	require.NoError(t, err)
	h := newTestHandler(t, WithMetrics(metrics))

	do(t, h, http.MethodPost, "/machines/zero-n-one-n/run", `{"input":"01"}`)

	w := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `turing_runs_total{machine="zero-n-one-n",status="accepted"} 1`)
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	w := do(t, newTestHandler(t), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORS(t *testing.T) {
	w := do(t, newTestHandler(t), http.MethodOptions, "/machines", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenAPI(t *testing.T) {
	doc, err := OpenAPI(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/machines/{name}/run"))

	w := do(t, newTestHandler(t), http.MethodGet, "/openapi.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, w)
	assert.Equal(t, "3.0.3", got["openapi"])
}

func TestRequestValidation(t *testing.T) {
	h := newTestHandler(t, WithRequestValidation())

	w := do(t, h, http.MethodPost, "/machines/zero-n-one-n/run", `{"input": "0011"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "accepted", decode[RunResponse](t, w).Status)

	w = do(t, h, http.MethodPost, "/machines/zero-n-one-n/run", `{"input": 11}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/machines/zero-n-one-n/batch", `{"inputs": "01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/machines/zero-n-one-n/run", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/machines", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

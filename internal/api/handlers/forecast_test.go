package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespulse/salespulse-go/internal/models"
)

func TestGetModels(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/api/v1/forecast/models", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.ForecastModel `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)

	ids := make([]string, 0, len(resp.Data))
	for _, m := range resp.Data {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []string{models.ModelLinear, models.ModelExponential, models.ModelSeasonal}, ids)
}

func TestProject(t *testing.T) {
	router := newTestRouter()

	body := `{"start":"2024-01-01T00:00:00Z","count":24,"interval":"month","seed":42,"model_id":"linear","periods":6}`
	w := doRequest(router, http.MethodPost, "/api/v1/forecast/project", strings.NewReader(body))
	require.Equal(t, http.StatusOK, w.Code)

	var resp ForecastResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.ModelLinear, resp.ModelID)
	require.Len(t, resp.Data, 6)
	assert.Equal(t, "2026-01-01", resp.Data[0].Date.Format("2006-01-02"))
	for _, p := range resp.Data {
		assert.True(t, p.Projected)
		assert.Less(t, p.Lower, p.Value)
		assert.Greater(t, p.Upper, p.Value)
	}
}

func TestProject_IncludeHistory(t *testing.T) {
	router := newTestRouter()

	body := `{"start":"2024-01-01T00:00:00Z","count":12,"interval":"month","seed":42,"model_id":"linear","periods":6,"include_history":true}`
	w := doRequest(router, http.MethodPost, "/api/v1/forecast/project", strings.NewReader(body))
	require.Equal(t, http.StatusOK, w.Code)

	var resp ForecastResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 18)
	assert.False(t, resp.Data[0].Projected)
	assert.Equal(t, resp.Data[0].Value, resp.Data[0].Lower)
	assert.True(t, resp.Data[17].Projected)
}

func TestProject_Invalid(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{"unknown model", `{"model_id":"prophet","periods":6}`},
		{"param out of range", `{"model_id":"linear","periods":6,"params":{"seasonality":9}}`},
		{"too many periods", `{"model_id":"linear","periods":600}`},
		{"malformed json", `{"model_id":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/v1/forecast/project", strings.NewReader(tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSnapshots_StorageNotConfigured(t *testing.T) {
	router := newTestRouter()

	body := `{"model_id":"linear","periods":6}`
	w := doRequest(router, http.MethodPost, "/api/v1/forecast/snapshots", strings.NewReader(body))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/forecast/snapshots", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/forecast/snapshots/abc", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doRequest(router, http.MethodDelete, "/api/v1/forecast/snapshots/abc", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

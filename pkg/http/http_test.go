package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"deskbooker/pkg/config"
	apperrors "deskbooker/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, apperrors.Conflict("Desk already booked", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.CodeConflict, body.Code)
	assert.Equal(t, "Desk already booked", body.Message)
}

func TestWriteError_PlainErrorIsHidden(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestExtractLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int64
		wantErr    bool
	}{
		{name: "defaults", query: "", wantLimit: 10, wantOffset: 0},
		{name: "explicit", query: "?limit=20&offset=40", wantLimit: 20, wantOffset: 40},
		{name: "limit capped", query: "?limit=10000", wantLimit: config.DefaultPaginationLimit, wantOffset: 0},
		{name: "negative offset", query: "?offset=-5", wantLimit: 10, wantOffset: 0},
		{name: "bad limit", query: "?limit=ten", wantErr: true},
		{name: "bad offset", query: "?offset=x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/desk-bookings"+tt.query, nil)

			limit, offset, err := ExtractLimitOffset(req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestExtractDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?date=2020-09-05", nil)
	date, err := ExtractDate(req, "date")
	require.NoError(t, err)
	assert.Equal(t, "2020-09-05", date.Format("2006-01-02"))

	_, err = ExtractDate(httptest.NewRequest(http.MethodGet, "/", nil), "date")
	assert.Error(t, err)

	_, err = ExtractDate(httptest.NewRequest(http.MethodGet, "/?date=05/09/2020", nil), "date")
	assert.Error(t, err)
}

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbarros/fornecedores/internal/app/photo"
)

func newPhotoHandler() *PhotoHandler {
	relay := photo.NewRelay(time.Hour, testLogger())
	return NewPhotoHandler(relay, testLogger())
}

func TestPhotoRoundTrip(t *testing.T) {
	handler := newPhotoHandler()

	req := httptest.NewRequest(http.MethodPost, "/photo", strings.NewReader(`{"session_id":"S1","photo":"imgA"}`))
	rec := httptest.NewRecorder()
	handler.StorePhoto(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"stored"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/photo/S1", nil)
	rec = httptest.NewRecorder()
	handler.GetPhoto(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "found", resp["status"])
	assert.Equal(t, "imgA", resp["photo"])

	// Read-once: the same session is gone on the second fetch.
	req = httptest.NewRequest(http.MethodGet, "/photo/S1", nil)
	rec = httptest.NewRecorder()
	handler.GetPhoto(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":"not_found"}`, rec.Body.String())
}

func TestStorePhoto_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing session_id", `{"photo":"imgA"}`},
		{"missing photo", `{"session_id":"S1"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newPhotoHandler()
			req := httptest.NewRequest(http.MethodPost, "/photo", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.StorePhoto(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetPhoto_UnknownSession(t *testing.T) {
	handler := newPhotoHandler()

	req := httptest.NewRequest(http.MethodGet, "/photo/missing", nil)
	rec := httptest.NewRecorder()
	handler.GetPhoto(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":"not_found"}`, rec.Body.String())
}

func TestGetPhoto_EmptySessionID(t *testing.T) {
	handler := newPhotoHandler()

	req := httptest.NewRequest(http.MethodGet, "/photo/", nil)
	rec := httptest.NewRecorder()
	handler.GetPhoto(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

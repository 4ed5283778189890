package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteRequest struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

func (n noteRequest) Validate() []string {
	if n.Title == "" {
		return []string{"title is required"}
	}
	return nil
}

func (n *noteRequest) BindForm(form url.Values) error {
	n.Title = form.Get("title")
	count, err := FormInt(form, "count")
	n.Count = count
	return err
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantOK      bool
		wantTitle   string
		wantCount   int
		wantMessage string
	}{
		{name: "json", contentType: "application/json", body: `{"title":"Tide","count":3}`, wantOK: true, wantTitle: "Tide", wantCount: 3},
		{name: "json unknown field", contentType: "application/json", body: `{"title":"Tide","extra":1}`, wantMessage: "unknown field"},
		{name: "json invalid", contentType: "application/json", body: `{"count":1}`, wantMessage: "title is required"},
		{name: "form", contentType: "application/x-www-form-urlencoded", body: "title=Tide&count=4", wantOK: true, wantTitle: "Tide", wantCount: 4},
		{name: "form bad number", contentType: "application/x-www-form-urlencoded", body: "title=Tide&count=many", wantMessage: "count must be a whole number"},
		{name: "form empty number", contentType: "application/x-www-form-urlencoded; charset=utf-8", body: "title=Tide&count=", wantOK: true, wantTitle: "Tide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rr := httptest.NewRecorder()

			var dest noteRequest
			ok := DecodeAndValidate(rr, req, &dest)

			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantTitle, dest.Title)
				assert.Equal(t, tt.wantCount, dest.Count)
				return
			}
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			resp := decodeEnvelope(t, rr)
			require.NotNil(t, resp.Error)
			assert.Equal(t, ErrCodeBadRequest, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.wantMessage)
		})
	}
}

func TestDecodeAndValidate_FormNotAccepted(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/raw", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()

	var dest map[string]string
	require.False(t, DecodeAndValidate(rr, req, &dest))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw    string
		wantID int64
		wantOK bool
	}{
		{"1740819600000", 1740819600000, true},
		{"0", 0, false},
		{"-4", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/events/"+tt.raw+"/join", nil)
			req.SetPathValue("eventID", tt.raw)
			rr := httptest.NewRecorder()

			id, ok := PathID(rr, req, "eventID")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
			}
		})
	}
}

func TestWriteResult(t *testing.T) {
	form := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader("name=x"))
	form.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	WriteResult(rr, form, http.StatusCreated, map[string]int{"id": 1})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	api := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{}`))
	api.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	WriteResult(rr, api, http.StatusCreated, map[string]int{"id": 1})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	resp := decodeEnvelope(t, rr)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"id": float64(1)}, resp.Data)
}

package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T, w *httptest.ResponseRecorder, method, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	return ctx
}

// postJSON drives a handler directly with a JSON body. The paths under test
// reject before ever touching storage, so no database is wired.
func postJSON(t *testing.T, pc *PostController, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	pc.CreatePost(newTestContext(t, w, http.MethodPost, body))
	return w
}

func TestCreatePostValidationRejections(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "invalid lang",
			body:        `{"title":"Hello","lang":"fr"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid lang",
		},
		{
			name:        "invalid status",
			body:        `{"title":"Hello","status":"archived"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid status",
		},
		{
			name:        "scheduled without a time",
			body:        `{"title":"Hello","status":"scheduled"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "scheduledAt is required",
		},
		{
			name:        "scheduled in the past",
			body:        `{"title":"Hello","status":"scheduled","scheduledAt":"2020-01-01T00:00:00Z"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "scheduledAt must be in the future",
		},
		{
			name:        "missing title",
			body:        `{"content":"body only"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := NewPostController(nil)
			w := postJSON(t, pc, tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.wantMessage) {
				t.Errorf("body = %s, want message containing %q", w.Body.String(), tt.wantMessage)
			}
		})
	}
}

func TestUpdatePostRejectsMalformedPayload(t *testing.T) {
	pc := NewPostController(nil)
	w := httptest.NewRecorder()
	pc.UpdatePost(newTestContext(t, w, http.MethodPut, `{"title":`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestStorableResponses(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		bodyLen int
		want    bool
	}{
		{"created with body", http.StatusCreated, 42, true},
		{"ok with body", http.StatusOK, 10, true},
		{"client error with body", http.StatusConflict, 20, true},
		{"no content", http.StatusNoContent, 0, false},
		{"ok without body", http.StatusOK, 0, false},
		{"server error", http.StatusInternalServerError, 15, false},
	}

	for _, tc := range cases {
		if got := storable(tc.status, tc.bodyLen); got != tc.want {
			t.Errorf("%s: storable(%d, %d) = %v, want %v", tc.name, tc.status, tc.bodyLen, got, tc.want)
		}
	}
}

func TestCaptureWriter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	w := &captureWriter{ResponseWriter: c.Writer, body: new(bytes.Buffer)}
	if _, err := w.Write([]byte(`{"ok":true}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if got := w.body.String(); got != `{"ok":true}` {
		t.Errorf("captured body = %q", got)
	}
	if got := rec.Body.String(); got != `{"ok":true}` {
		t.Errorf("passed-through body = %q", got)
	}
}

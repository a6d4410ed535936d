package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
)

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err     error
		status  int
		code    string
		message string
	}{
		{apierr.Validation("content is required"), http.StatusBadRequest, apierr.CodeValidation, "content is required"},
		{apierr.NotFound("note"), http.StatusNotFound, apierr.CodeNotFound, "note not found"},
		{apierr.Auth(), http.StatusUnauthorized, apierr.CodeUnauthorized, "authentication failed"},
		{errors.New("dial tcp: connection refused"), http.StatusInternalServerError, apierr.CodeInternal, "internal server error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		Error(c, tc.err)

		if rec.Code != tc.status {
			t.Fatalf("%v: status got %d, want %d", tc.err, rec.Code, tc.status)
		}
		var env ErrorEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if env.Error.Code != tc.code || env.Error.Message != tc.message {
			t.Fatalf("%v: got %+v", tc.err, env.Error)
		}
	}
}

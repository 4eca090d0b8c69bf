package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handyhub/internal/pkg/apperr"
)

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", apperr.Wrap(apperr.ErrNotFound, "booking not found"), http.StatusNotFound, "NOT_FOUND", "booking not found"},
		{"forbidden", apperr.Wrap(apperr.ErrForbidden, "handyman required"), http.StatusForbidden, "FORBIDDEN", "handyman required"},
		{"validation", apperr.Wrap(apperr.ErrValidation, "bad status"), http.StatusUnprocessableEntity, "VALIDATION_ERROR", "bad status"},
		{"conflict", apperr.Wrap(apperr.ErrConflict, "stale"), http.StatusConflict, "CONFLICT", "stale"},
		{"persistence", apperr.Persistence("update", errors.New("db down")), http.StatusInternalServerError, "PERSISTENCE_ERROR", "Internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			var body envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Error.Code)
			assert.Equal(t, tc.message, body.Error.Message)
		})
	}
}

package httperr

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		class error
		want  int
	}{
		{ErrValidation, http.StatusBadRequest},
		{ErrConflict, http.StatusConflict},
		{ErrPolicyViolation, http.StatusUnprocessableEntity},
		{ErrForbidden, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		err := New(tt.class, "code", "msg")
		assert.Equal(t, tt.want, StatusFor(err), tt.class.Error())
		assert.Equal(t, tt.want, StatusFor(errors.Wrap(err, "wrapped")), tt.class.Error())
	}

	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestCodeOf(t *testing.T) {
	err := New(ErrConflict, "slot_overlap", "Conflito.")

	assert.Equal(t, "slot_overlap", CodeOf(err))
	assert.Equal(t, "slot_overlap", CodeOf(errors.Wrap(err, "saving slot")))
	assert.True(t, IsBusiness(err, "slot_overlap"))
	assert.False(t, IsBusiness(err, "other"))
	assert.Equal(t, "internal_error", CodeOf(errors.New("boom")))
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("business", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

		FromError(c, errors.Wrap(New(ErrPolicyViolation, "too_far_in_advance", "Muito cedo."), "booking"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var body HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "too_far_in_advance", body.Code)
		assert.Equal(t, "Muito cedo.", body.Message)
	})

	t.Run("internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

		FromError(c, errors.New("connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

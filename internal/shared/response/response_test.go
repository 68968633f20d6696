package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationError(c, "phone_number", "Phone number must be exactly 10 digits.")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])

	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, CodeValidation, errObj["code"])
	assert.Equal(t, "Phone number must be exactly 10 digits.", errObj["message"])
	assert.Equal(t, map[string]interface{}{"field": "phone_number"}, errObj["details"])
}

func TestSuccessWithMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithMeta(c, http.StatusOK, []string{"a"}, &Meta{Limit: 20, Offset: 0, Total: 1})

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "error")
	assert.Equal(t, map[string]interface{}{"limit": float64(20), "offset": float64(0), "total": float64(1)}, body["meta"])
}

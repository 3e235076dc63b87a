package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatedIsNotCacheable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resp := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(resp)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/library/items", nil)

	Created(c, gin.H{"id": "1735689600000"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "no-store", resp.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"id":"1735689600000"}`, resp.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resp := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(resp)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/v1/session/view", nil)

	Error(c, http.StatusBadRequest, "validation_error", "unknown view", gin.H{"allowed": []string{"dashboard"}})

	require.True(t, c.IsAborted())
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Equal(t, "unknown view", body.Error.Message)
	assert.NotNil(t, body.Error.Details)
}

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/missing", func(c *gin.Context) {
		Error(c, http.StatusNotFound, CodeNoSuchGroup, "group not found")
	})
	r.GET("/chain", func(c *gin.Context) {
		Error(c, http.StatusForbidden, CodeAdminOnly, "admin only")
	}, func(c *gin.Context) { c.String(http.StatusOK, "reached") })
	r.POST("/groups", func(c *gin.Context) { Created(c, gin.H{"slug": "cats"}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, CodeNoSuchGroup, env.Code)
	assert.Equal(t, "group not found", env.Message)
	assert.Nil(t, env.Data)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chain", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "reached")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/groups", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"code":0,"message":"created","data":{"slug":"cats"}}`, w.Body.String())
}

package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	return rec
}

func TestRespondOK_Envelope(t *testing.T) {
	rec := record(func(c *gin.Context) {
		respondOK(c, http.StatusOK, "done", gin.H{"n": 1})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
	assert.Equal(t, map[string]interface{}{"n": float64(1)}, body["data"])
	_, hasErr := body["error"]
	assert.False(t, hasErr)
}

func TestRespondOK_NilDataOmitted(t *testing.T) {
	rec := record(func(c *gin.Context) {
		respondOK(c, http.StatusOK, "done", nil)
	})
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	_, hasData := body["data"]
	assert.False(t, hasData)
}

func TestRespondErr_CodesPreserved(t *testing.T) {
	for _, e := range []*apiError{
		errNoToken, errTokenExpired, errInvalidToken,
		errNoRefreshToken, errInvalidRefreshToken,
		errNotAuthenticated, errInsufficientPermissions, errNotOwner,
		errMissingCredentials, errInvalidEmail, errWeakPassword,
	} {
		rec := record(func(c *gin.Context) { respondErr(c, e) })
		assert.Equal(t, e.Status, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, e.Code, body["error"])
		assert.NotEmpty(t, body["message"])
	}
}

func TestRespondFail_CarriesFaultText(t *testing.T) {
	rec := record(func(c *gin.Context) {
		respondFail(c, http.StatusInternalServerError, "Something broke", errors.New("db down"))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "db down", body["error"])
}

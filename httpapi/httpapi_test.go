package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Authentication("who"), http.StatusUnauthorized},
		{Authorization("no"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{InvalidTransition("illegal"), http.StatusConflict},
		{Persistence(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := serve(func(c *gin.Context) { Fail(c, tc.err) })
		assert.Equal(t, tc.status, w.Code, tc.err.Message)
		assert.Contains(t, w.Body.String(), `"success":false`)
	}
}

func TestPersistenceHidesInternalDetail(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Fail(c, Persistence(errors.New("pq: connection refused")))
	})
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestUnknownErrorTreatedAsPersistence(t *testing.T) {
	w := serve(func(c *gin.Context) { Fail(c, errors.New("raw failure")) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "raw failure")
}

func TestOKEnvelope(t *testing.T) {
	w := serve(func(c *gin.Context) { OK(c, http.StatusCreated, gin.H{"id": 7}) })
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":7}}`, w.Body.String())
}

package branch_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/farmacia-pos/pkg/branch"
)

func TestMiddleware_RequiresBranchHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(branch.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "branch-id")
}

func TestMiddleware_PropagatesBranchAndActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(branch.Middleware())

	var gotBranch, gotActor, ctxBranch, ctxActor string
	router.GET("/ping", func(c *gin.Context) {
		gotBranch = c.GetString("branch_id")
		gotActor = c.GetString("actor_id")
		ctxBranch = branch.GetBranchID(c.Request.Context())
		ctxActor = branch.GetActorID(c.Request.Context())
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("branch-id", "branch-42")
	req.Header.Set("user-id", "user-7")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "branch-42", gotBranch)
	assert.Equal(t, "user-7", gotActor)
	assert.Equal(t, "branch-42", ctxBranch)
	assert.Equal(t, "user-7", ctxActor)
}

func TestMiddleware_ActorOptional(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(branch.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("branch-id", "branch-42")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

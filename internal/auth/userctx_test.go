package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/auth"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/users"
)

type fakeEnsurer struct {
	got users.UpsertUser
	id  string
	err error
}

func (f *fakeEnsurer) EnsureUser(ctx context.Context, u users.UpsertUser) (string, error) {
	f.got = u
	return f.id, f.err
}

func TestWithUserStashesDBID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ensurer := &fakeEnsurer{id: "db-id-1"}

	r := gin.New()
	r.Use(auth.WithUser(ensurer))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, auth.UserDBID(c))
	})

	req, err := http.NewRequest(http.MethodGet, "/whoami", nil)
	require.NoError(t, err)
	req.Header.Set("X-User-Id", "ext-7")
	req.Header.Set("X-User-Email", "a@b.c")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "db-id-1", rr.Body.String())
	assert.Equal(t, "ext-7", ensurer.got.ExternalUID)
	assert.Equal(t, "a@b.c", ensurer.got.Email)
}

func TestWithUserFallsBackToDemoUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ensurer := &fakeEnsurer{id: "db-id-demo"}

	r := gin.New()
	r.Use(auth.WithUser(ensurer))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, auth.UserDBID(c))
	})

	req, err := http.NewRequest(http.MethodGet, "/whoami", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "demo-user", ensurer.got.ExternalUID)
}

func TestWithUserAbortsOnStoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ensurer := &fakeEnsurer{err: errors.New("db down")}

	called := false
	r := gin.New()
	r.Use(auth.WithUser(ensurer))
	r.GET("/whoami", func(c *gin.Context) {
		called = true
	})

	req, err := http.NewRequest(http.MethodGet, "/whoami", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.False(t, called, "handlers must not run without a resolved user")
}

package projects_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/auth"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/projects"
)

type fakeStore struct {
	created   int
	list      []projects.Project
	row       *projects.Project
	err       error
	gotName   string
	gotPatch  projects.Patch
	gotUserID string
}

func (f *fakeStore) Create(ctx context.Context, userID, name, description, language string) (*projects.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, projects.ErrNameRequired
	}
	f.created++
	f.gotName = name
	f.gotUserID = userID
	return &projects.Project{ID: 1, Name: name, Language: language, UpdatedAt: time.Now()}, nil
}

func (f *fakeStore) List(ctx context.Context, userID string) ([]projects.Project, error) {
	f.gotUserID = userID
	return f.list, f.err
}

func (f *fakeStore) Get(ctx context.Context, userID string, projectID int64) (*projects.Project, error) {
	f.gotUserID = userID
	if f.row == nil {
		return nil, projects.ErrNotFound
	}
	return f.row, nil
}

func (f *fakeStore) Update(ctx context.Context, userID string, projectID int64, patch projects.Patch) (*projects.Project, error) {
	f.gotUserID = userID
	f.gotPatch = patch
	if f.row == nil {
		return nil, projects.ErrNotFound
	}
	return f.row, f.err
}

func projectRouter(store projects.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set(auth.CtxUserDBID, "user-1")
		c.Next()
	})
	projects.Register(api.Group("/projects"), store)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCreateProject(t *testing.T) {
	store := &fakeStore{}
	r := projectRouter(store)

	rr := doJSON(t, r, http.MethodPost, "/api/projects", `{"project_name":"  demo  ","language":"python"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	assert.Equal(t, "demo", store.gotName, "name must be trimmed before storage")
	assert.Equal(t, "user-1", store.gotUserID)
}

func TestCreateProjectWhitespaceNameIsRejected(t *testing.T) {
	store := &fakeStore{}
	r := projectRouter(store)

	rr := doJSON(t, r, http.MethodPost, "/api/projects", `{"project_name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, store.created, "no row may be inserted for a whitespace-only name")
}

func TestListProjects(t *testing.T) {
	store := &fakeStore{list: []projects.Project{{ID: 2, Name: "b"}, {ID: 1, Name: "a"}}}
	r := projectRouter(store)

	rr := doJSON(t, r, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"projects"`)
}

func TestGetProjectNotFound(t *testing.T) {
	store := &fakeStore{}
	r := projectRouter(store)

	rr := doJSON(t, r, http.MethodGet, "/api/projects/99", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetProjectInvalidID(t *testing.T) {
	store := &fakeStore{}
	r := projectRouter(store)

	rr := doJSON(t, r, http.MethodGet, "/api/projects/abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateProjectPatchSemantics(t *testing.T) {
	store := &fakeStore{row: &projects.Project{ID: 1, Name: "demo"}}
	r := projectRouter(store)

	rr := doJSON(t, r, http.MethodPut, "/api/projects/1", `{"description":"new desc"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Nil(t, store.gotPatch.Name, "omitted fields must stay unset in the patch")
	assert.Nil(t, store.gotPatch.Language)
	require.NotNil(t, store.gotPatch.Description)
	assert.Equal(t, "new desc", *store.gotPatch.Description)
}

func TestUpdateProjectNotFound(t *testing.T) {
	store := &fakeStore{}
	r := projectRouter(store)

	rr := doJSON(t, r, http.MethodPut, "/api/projects/1", `{"project_name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

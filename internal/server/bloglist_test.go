package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fullstack/internal/auth"
	"fullstack/internal/domain/errors"
	"fullstack/internal/domain/models"
	"fullstack/internal/logger"
	inmemory "fullstack/repository/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) GetBlogs(ctx context.Context) ([]models.Blog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *MockBlogRepository) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) UpdateBlog(ctx context.Context, id string, blog *models.Blog) error {
	args := m.Called(ctx, id, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) DeleteBlog(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newBlogHandler(t *testing.T) (http.Handler, *inmemory.Storage) {
	t.Helper()
	repo := inmemory.NewStorage()
	api := NewBlogAPI(repo, repo, testConfig(), logger.New(io.Discard))
	require.NotNil(t, api)
	return api.httpSrv.Handler, repo
}

func registerAndLogin(t *testing.T, handler http.Handler, username string) string {
	t.Helper()
	created := doJSON(t, handler, http.MethodPost, "/api/users", map[string]any{
		"username": username, "name": "Test User", "password": "sekret",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	logged := doJSON(t, handler, http.MethodPost, "/api/login", map[string]any{
		"username": username, "password": "sekret",
	})
	require.Equal(t, http.StatusOK, logged.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(logged.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func doAuthJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestCreateBlogAuth(t *testing.T) {
	handler, _ := newBlogHandler(t)
	token := registerAndLogin(t, handler, "root")

	blog := map[string]any{
		"title": "Go in Production", "author": "Rob", "url": "https://example.com/go",
	}

	t.Run("without token", func(t *testing.T) {
		w := doJSON(t, handler, http.MethodPost, "/api/blogs", blog)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "token missing", body["error"])
	})

	t.Run("with garbage token", func(t *testing.T) {
		w := doAuthJSON(t, handler, http.MethodPost, "/api/blogs", "not.a.token", blog)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "token invalid", body["error"])
	})

	t.Run("with expired token", func(t *testing.T) {
		expired, err := auth.GenerateToken("some-id", "root", []byte("test-secret"), -time.Minute)
		require.NoError(t, err)
		w := doAuthJSON(t, handler, http.MethodPost, "/api/blogs", expired, blog)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "token expired", body["error"])
	})

	t.Run("with valid token", func(t *testing.T) {
		w := doAuthJSON(t, handler, http.MethodPost, "/api/blogs", token, blog)
		require.Equal(t, http.StatusCreated, w.Code)
		var created models.Blog
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, 0, created.Likes)

		claims, err := auth.ParseToken(token, []byte("test-secret"))
		require.NoError(t, err)
		assert.Equal(t, claims.UserID, created.UserID)
	})
}

func TestCreateBlogValidation(t *testing.T) {
	handler, _ := newBlogHandler(t)
	token := registerAndLogin(t, handler, "root")

	tests := []struct {
		name      string
		request   map[string]any
		wantError string
	}{
		{
			name:      "title missing",
			request:   map[string]any{"url": "https://example.com"},
			wantError: "title missing",
		},
		{
			name:      "url missing",
			request:   map[string]any{"title": "No URL"},
			wantError: "url missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doAuthJSON(t, handler, http.MethodPost, "/api/blogs", token, tt.request)
			require.Equal(t, http.StatusBadRequest, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestDeleteBlogOwnership(t *testing.T) {
	handler, _ := newBlogHandler(t)
	ownerToken := registerAndLogin(t, handler, "owner")
	otherToken := registerAndLogin(t, handler, "intruder")

	created := doAuthJSON(t, handler, http.MethodPost, "/api/blogs", ownerToken, map[string]any{
		"title": "Owned", "url": "https://example.com/owned",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	var blog models.Blog
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &blog))

	foreign := doAuthJSON(t, handler, http.MethodDelete, "/api/blogs/"+blog.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, foreign.Code)

	own := doAuthJSON(t, handler, http.MethodDelete, "/api/blogs/"+blog.ID, ownerToken, nil)
	assert.Equal(t, http.StatusNoContent, own.Code)

	absent := doAuthJSON(t, handler, http.MethodDelete, "/api/blogs/"+blog.ID, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, absent.Code)
}

func TestUpdateBlogLikes(t *testing.T) {
	handler, _ := newBlogHandler(t)
	ownerToken := registerAndLogin(t, handler, "owner")
	likerToken := registerAndLogin(t, handler, "liker")

	created := doAuthJSON(t, handler, http.MethodPost, "/api/blogs", ownerToken, map[string]any{
		"title": "Likeable", "url": "https://example.com/likeable",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	var blog models.Blog
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &blog))

	// any authenticated user may update; ownership only guards delete
	w := doAuthJSON(t, handler, http.MethodPut, "/api/blogs/"+blog.ID, likerToken, map[string]any{
		"title": blog.Title, "author": blog.Author, "url": blog.URL, "likes": blog.Likes + 1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Blog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 1, updated.Likes)
	assert.Equal(t, blog.UserID, updated.UserID)
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name       string
		request    map[string]any
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid user",
			request:    map[string]any{"username": "mluukkai", "name": "Matti", "password": "salainen"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "username too short",
			request:    map[string]any{"username": "ml", "password": "salainen"},
			wantStatus: http.StatusBadRequest,
			wantError:  "username must be at least 3 characters long",
		},
		{
			name:       "password too short",
			request:    map[string]any{"username": "mluukkai", "password": "sa"},
			wantStatus: http.StatusBadRequest,
			wantError:  "password must be at least 3 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newBlogHandler(t)
			w := doJSON(t, handler, http.MethodPost, "/api/users", tt.request)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	handler, _ := newBlogHandler(t)

	first := doJSON(t, handler, http.MethodPost, "/api/users", map[string]any{
		"username": "root", "password": "sekret",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, handler, http.MethodPost, "/api/users", map[string]any{
		"username": "root", "password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, second.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, "username must be unique", body["error"])
}

func TestUserNeverExposesPasswordHash(t *testing.T) {
	handler, _ := newBlogHandler(t)
	registerAndLogin(t, handler, "root")

	w := doJSON(t, handler, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.NotContains(t, w.Body.String(), "password_hash")
	assert.NotContains(t, w.Body.String(), "sekret")
}

func TestUsersListOwnedBlogs(t *testing.T) {
	handler, _ := newBlogHandler(t)
	token := registerAndLogin(t, handler, "author")

	created := doAuthJSON(t, handler, http.MethodPost, "/api/blogs", token, map[string]any{
		"title": "Mine", "url": "https://example.com/mine",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	var blog models.Blog
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &blog))

	w := doJSON(t, handler, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Contains(t, users[0].Blogs, blog.ID)
}

func TestLogin(t *testing.T) {
	handler, _ := newBlogHandler(t)
	registerAndLogin(t, handler, "root")

	tests := []struct {
		name       string
		request    map[string]any
		wantStatus int
	}{
		{
			name:       "valid credentials",
			request:    map[string]any{"username": "root", "password": "sekret"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			request:    map[string]any{"username": "root", "password": "wrong"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown user",
			request:    map[string]any{"username": "nobody", "password": "sekret"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, handler, http.MethodPost, "/api/login", tt.request)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "invalid username or password", body["error"])
			}
		})
	}
}

func TestGetBlogsRepositoryError(t *testing.T) {
	mockRepo := &MockBlogRepository{}
	mockRepo.On("GetBlogs", mock.Anything).Return(nil, errors.ErrInternalServer)

	users := inmemory.NewStorage()
	api := NewBlogAPI(mockRepo, users, testConfig(), logger.New(io.Discard))
	require.NotNil(t, api)

	w := doJSON(t, api.httpSrv.Handler, http.MethodGet, "/api/blogs", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockRepo.AssertExpectations(t)
}

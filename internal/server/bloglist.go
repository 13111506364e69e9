package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fullstack/internal/auth"
	"fullstack/internal/domain/errors"
	"fullstack/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type BlogRepository interface {
	GetBlogs(ctx context.Context) ([]models.Blog, error)
	GetBlogByID(ctx context.Context, id string) (*models.Blog, error)
	CreateBlog(ctx context.Context, blog *models.Blog) error
	UpdateBlog(ctx context.Context, id string, blog *models.Blog) error
	DeleteBlog(ctx context.Context, id string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type BlogAPI struct {
	httpSrv  *http.Server
	blogs    BlogRepository
	users    UserRepository
	secret   []byte
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewBlogAPI(blogs BlogRepository, users UserRepository, cfg *Config, log zerolog.Logger) *BlogAPI {
	if blogs == nil || users == nil {
		return nil
	}

	api := BlogAPI{
		httpSrv:  &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Addr, cfg.Port)},
		blogs:    blogs,
		users:    users,
		secret:   []byte(cfg.Secret),
		tokenTTL: cfg.TokenTTL,
		log:      log,
	}
	api.configRoutes()
	return &api
}

func (api *BlogAPI) Start() error {
	if api.httpSrv == nil {
		return errors.ErrInternalServer
	}
	return api.httpSrv.ListenAndServe()
}

func (api *BlogAPI) Shutdown(ctx context.Context) error {
	return api.httpSrv.Shutdown(ctx)
}

func (api *BlogAPI) configRoutes() {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(api.log))
	router.NoRoute(unknownEndpoint)

	blogs := router.Group("/api/blogs")
	{
		blogs.GET("", api.getBlogs)
		blogs.GET(":blogID", api.getBlog)
		blogs.POST("", RequireUser(api.secret), api.createBlog)
		blogs.PUT(":blogID", RequireUser(api.secret), api.updateBlog)
		blogs.DELETE(":blogID", RequireUser(api.secret), api.deleteBlog)
	}

	users := router.Group("/api/users")
	{
		users.GET("", api.getUsers)
		users.POST("", api.createUser)
	}

	router.POST("/api/login", api.login)

	api.httpSrv.Handler = router
}

func (api *BlogAPI) getBlogs(ctx *gin.Context) {
	blogs, err := api.blogs.GetBlogs(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusOK, blogs)
}

func (api *BlogAPI) getBlog(ctx *gin.Context) {
	id := ctx.Param("blogID")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidID.Error()})
		return
	}

	blog, err := api.blogs.GetBlogByID(ctx.Request.Context(), id)
	if err != nil {
		if err == errors.ErrBlogNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrBlogNotFound.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusOK, blog)
}

func (api *BlogAPI) createBlog(ctx *gin.Context) {
	claims, ok := userClaims(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": errors.ErrTokenMissing.Error()})
		return
	}

	var req models.CreateBlogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}
	if err := validateBlog(req.Title, req.URL); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blog := models.Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
		UserID: claims.UserID,
	}
	if err := api.blogs.CreateBlog(ctx.Request.Context(), &blog); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, blog)
}

// updateBlog requires a valid token but not ownership: the like flow lets
// any authenticated user bump another user's blog.
func (api *BlogAPI) updateBlog(ctx *gin.Context) {
	id := ctx.Param("blogID")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidID.Error()})
		return
	}

	var req models.UpdateBlogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}
	if err := validateBlog(req.Title, req.URL); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := api.blogs.GetBlogByID(ctx.Request.Context(), id)
	if err != nil {
		if err == errors.ErrBlogNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrBlogNotFound.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	blog := models.Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
		UserID: existing.UserID,
	}
	if err := api.blogs.UpdateBlog(ctx.Request.Context(), id, &blog); err != nil {
		if err == errors.ErrBlogNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrBlogNotFound.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusOK, blog)
}

func (api *BlogAPI) deleteBlog(ctx *gin.Context) {
	claims, ok := userClaims(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": errors.ErrTokenMissing.Error()})
		return
	}

	id := ctx.Param("blogID")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidID.Error()})
		return
	}

	blog, err := api.blogs.GetBlogByID(ctx.Request.Context(), id)
	if err != nil {
		if err == errors.ErrBlogNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrBlogNotFound.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	if blog.UserID != claims.UserID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": errors.ErrForbidden.Error()})
		return
	}

	if err := api.blogs.DeleteBlog(ctx.Request.Context(), id); err != nil {
		if err == errors.ErrBlogNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrBlogNotFound.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (api *BlogAPI) getUsers(ctx *gin.Context) {
	users, err := api.users.GetUsers(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusOK, users)
}

func (api *BlogAPI) createUser(ctx *gin.Context) {
	var req models.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	valid := validator.New()
	if err := valid.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": userValidationError(err).Error()})
		return
	}

	if existing, _ := api.users.GetUserByUsername(ctx.Request.Context(), req.Username); existing != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrUsernameTaken.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	user := models.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		Blogs:        []string{},
	}
	if err := api.users.CreateUser(ctx.Request.Context(), &user); err != nil {
		if err == errors.ErrUsernameTaken {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrUsernameTaken.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

func (api *BlogAPI) login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	user, err := api.users.GetUserByUsername(ctx.Request.Context(), req.Username)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": errors.ErrInvalidCredentials.Error()})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, api.secret, api.tokenTTL)
	if err != nil {
		api.log.Error().Err(err).Msg("failed to sign token")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	ctx.JSON(http.StatusOK, models.LoginResponse{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	})
}

func validateBlog(title, url string) error {
	if title == "" {
		return errors.ErrTitleMissing
	}
	if url == "" {
		return errors.ErrURLMissing
	}
	return nil
}

func userValidationError(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			switch verr.Field() {
			case "Username":
				return errors.ErrInvalidUsername
			case "Password":
				return errors.ErrInvalidPassword
			}
		}
	}
	return errors.ErrValidationFailed
}

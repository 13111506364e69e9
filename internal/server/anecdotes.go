package server

import (
	"context"
	"fmt"
	"net/http"

	"fullstack/internal/domain/errors"
	"fullstack/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type AnecdoteRepository interface {
	GetAnecdotes(ctx context.Context) ([]models.Anecdote, error)
	GetAnecdoteByID(ctx context.Context, id string) (*models.Anecdote, error)
	CreateAnecdote(ctx context.Context, anecdote *models.Anecdote) error
	UpdateAnecdote(ctx context.Context, id string, anecdote *models.Anecdote) error
}

type AnecdoteAPI struct {
	httpSrv *http.Server
	repo    AnecdoteRepository
	log     zerolog.Logger
}

func NewAnecdoteAPI(repo AnecdoteRepository, cfg *Config, log zerolog.Logger) *AnecdoteAPI {
	if repo == nil {
		return nil
	}

	api := AnecdoteAPI{
		httpSrv: &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Addr, cfg.Port)},
		repo:    repo,
		log:     log,
	}
	api.configRoutes()
	return &api
}

func (api *AnecdoteAPI) Start() error {
	if api.httpSrv == nil {
		return errors.ErrInternalServer
	}
	return api.httpSrv.ListenAndServe()
}

func (api *AnecdoteAPI) Shutdown(ctx context.Context) error {
	return api.httpSrv.Shutdown(ctx)
}

func (api *AnecdoteAPI) configRoutes() {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(api.log))
	router.NoRoute(unknownEndpoint)

	anecdotes := router.Group("/api/anecdotes")
	{
		anecdotes.GET("", api.getAnecdotes)
		anecdotes.GET(":anecdoteID", api.getAnecdote)
		anecdotes.POST("", api.createAnecdote)
		anecdotes.PUT(":anecdoteID", api.updateAnecdote)
	}

	api.httpSrv.Handler = router
}

func (api *AnecdoteAPI) getAnecdotes(ctx *gin.Context) {
	anecdotes, err := api.repo.GetAnecdotes(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusOK, anecdotes)
}

func (api *AnecdoteAPI) getAnecdote(ctx *gin.Context) {
	id := ctx.Param("anecdoteID")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidID.Error()})
		return
	}

	anecdote, err := api.repo.GetAnecdoteByID(ctx.Request.Context(), id)
	if err != nil {
		if err == errors.ErrAnecdoteNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrAnecdoteNotFound.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusOK, anecdote)
}

func (api *AnecdoteAPI) createAnecdote(ctx *gin.Context) {
	var req models.CreateAnecdoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}
	if req.Content == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrContentMissing.Error()})
		return
	}

	anecdote := models.Anecdote{Content: req.Content, Votes: 0}
	if err := api.repo.CreateAnecdote(ctx.Request.Context(), &anecdote); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, anecdote)
}

// updateAnecdote is a full replace. The vote flow sends the entity back
// with votes incremented by one; concurrent votes are last-write-wins.
func (api *AnecdoteAPI) updateAnecdote(ctx *gin.Context) {
	id := ctx.Param("anecdoteID")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidID.Error()})
		return
	}

	var req models.Anecdote
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}
	if req.Content == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrContentMissing.Error()})
		return
	}

	anecdote := models.Anecdote{Content: req.Content, Votes: req.Votes}
	if err := api.repo.UpdateAnecdote(ctx.Request.Context(), id, &anecdote); err != nil {
		if err == errors.ErrAnecdoteNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrAnecdoteNotFound.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusOK, anecdote)
}

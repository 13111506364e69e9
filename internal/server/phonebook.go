package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fullstack/internal/domain/errors"
	"fullstack/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type PersonRepository interface {
	GetPersons(ctx context.Context) ([]models.Person, error)
	GetPersonByID(ctx context.Context, id string) (*models.Person, error)
	GetPersonByName(ctx context.Context, name string) (*models.Person, error)
	CreatePerson(ctx context.Context, person *models.Person) error
	UpdatePerson(ctx context.Context, id string, person *models.Person) error
	DeletePerson(ctx context.Context, id string) error
	CountPersons(ctx context.Context) (int, error)
}

type PhonebookAPI struct {
	httpSrv *http.Server
	repo    PersonRepository
	log     zerolog.Logger
}

func NewPhonebookAPI(repo PersonRepository, cfg *Config, log zerolog.Logger) *PhonebookAPI {
	if repo == nil {
		return nil
	}

	api := PhonebookAPI{
		httpSrv: &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Addr, cfg.Port)},
		repo:    repo,
		log:     log,
	}
	api.configRoutes()
	return &api
}

func (api *PhonebookAPI) Start() error {
	if api.httpSrv == nil {
		return errors.ErrInternalServer
	}
	return api.httpSrv.ListenAndServe()
}

func (api *PhonebookAPI) Shutdown(ctx context.Context) error {
	return api.httpSrv.Shutdown(ctx)
}

func (api *PhonebookAPI) configRoutes() {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(api.log))
	router.NoRoute(unknownEndpoint)

	persons := router.Group("/api/persons")
	{
		persons.GET("", api.getPersons)
		persons.GET(":personID", api.getPerson)
		persons.POST("", api.createPerson)
		persons.PUT(":personID", api.updatePerson)
		persons.DELETE(":personID", api.deletePerson)
	}
	router.GET("/info", api.info)

	api.httpSrv.Handler = router
}

func (api *PhonebookAPI) getPersons(ctx *gin.Context) {
	persons, err := api.repo.GetPersons(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusOK, persons)
}

func (api *PhonebookAPI) info(ctx *gin.Context) {
	count, err := api.repo.CountPersons(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	page := fmt.Sprintf("<p>Phonebook has info for %d people</p><p>%s</p>", count, time.Now().Format(time.RFC1123))
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (api *PhonebookAPI) getPerson(ctx *gin.Context) {
	id := ctx.Param("personID")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidID.Error()})
		return
	}

	person, err := api.repo.GetPersonByID(ctx.Request.Context(), id)
	if err != nil {
		if err == errors.ErrPersonNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrPersonNotFound.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusOK, person)
}

func (api *PhonebookAPI) createPerson(ctx *gin.Context) {
	var req models.CreatePersonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}
	if err := validatePerson(req.Name, req.Number); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check-then-insert: a concurrent insert of the same name can slip
	// through, the unique constraint in the db storage catches that case.
	if existing, _ := api.repo.GetPersonByName(ctx.Request.Context(), req.Name); existing != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrNameTaken.Error()})
		return
	}

	person := models.Person{Name: req.Name, Number: req.Number}
	if err := api.repo.CreatePerson(ctx.Request.Context(), &person); err != nil {
		if err == errors.ErrNameTaken {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrNameTaken.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, person)
}

func (api *PhonebookAPI) updatePerson(ctx *gin.Context) {
	id := ctx.Param("personID")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidID.Error()})
		return
	}

	var req models.UpdatePersonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}
	if err := validatePerson(req.Name, req.Number); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person := models.Person{Name: req.Name, Number: req.Number}
	if err := api.repo.UpdatePerson(ctx.Request.Context(), id, &person); err != nil {
		if err == errors.ErrPersonNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrPersonNotFound.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.JSON(http.StatusOK, person)
}

func (api *PhonebookAPI) deletePerson(ctx *gin.Context) {
	id := ctx.Param("personID")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidID.Error()})
		return
	}

	// Deleting an absent id is an explicit 404, uniformly across resources.
	if err := api.repo.DeletePerson(ctx.Request.Context(), id); err != nil {
		if err == errors.ErrPersonNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrPersonNotFound.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func validatePerson(name, number string) error {
	if name == "" {
		return errors.ErrNameMissing
	}
	if number == "" {
		return errors.ErrNumberMissing
	}
	valid := validator.New()
	req := models.CreatePersonRequest{Name: name, Number: number}
	if err := valid.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, verr := range verrs {
				switch verr.Field() {
				case "Name":
					return errors.ErrNameTooShort
				case "Number":
					return errors.ErrInvalidNumber
				}
			}
		}
		return errors.ErrValidationFailed
	}
	if !models.ValidNumber(number) {
		return errors.ErrInvalidNumber
	}
	return nil
}

package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asclub/club-api/internal/api/handler/v1/response"
	"github.com/asclub/club-api/internal/service"
)

// CRUDService is what the admin endpoints need from an entity service.
type CRUDService[T any] interface {
	Get(ctx context.Context, id uuid.UUID) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id uuid.UUID, item T) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// bodyRequest is a JSON request body that validates itself and converts to T.
type bodyRequest[T any, R any] interface {
	*R
	Validate() error
	ToDomain() T
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         health
// @Produce      json
// @Success      200      {object}   response.MessageResponse
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}

func parseID(ctx *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		response.RenderErr(ctx, response.ErrInvalidID(param, err))
		return uuid.Nil, false
	}

	return id, true
}

func bindBody[T any, R any, PR bodyRequest[T, R]](ctx *gin.Context) (T, bool) {
	var zero T

	req := PR(new(R))
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return zero, false
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return zero, false
	}

	return req.ToDomain(), true
}

// renderServiceErr maps service errors onto the HTTP error contract.
func renderServiceErr(ctx *gin.Context, op, entity string, id any, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.RenderErr(ctx, response.ErrNotFound(entity, "id", id))
	case errors.Is(err, service.ErrAlreadyExists):
		response.RenderErr(ctx, response.ErrConflict(fmt.Errorf("%s already exists", entity)))
	case errors.Is(err, service.ErrInvalidReference):
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("%s references a record that does not exist", entity)))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

func getOne[T any](ctx *gin.Context, op, entity string, get func(context.Context, uuid.UUID) (T, error)) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	item, err := get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, op, entity, id, err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

func createOne[T any, R any, PR bodyRequest[T, R]](ctx *gin.Context, op, entity string, svc CRUDService[T]) {
	item, ok := bindBody[T, R, PR](ctx)
	if !ok {
		return
	}

	created, err := svc.Create(ctx.Request.Context(), item)
	if err != nil {
		renderServiceErr(ctx, op, entity, "", err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func updateOne[T any, R any, PR bodyRequest[T, R]](ctx *gin.Context, op, entity string, svc CRUDService[T]) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	item, ok := bindBody[T, R, PR](ctx)
	if !ok {
		return
	}

	updated, err := svc.Update(ctx.Request.Context(), id, item)
	if err != nil {
		renderServiceErr(ctx, op, entity, id, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func deleteOne[T any](ctx *gin.Context, op, entity string, svc CRUDService[T]) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := svc.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, op, entity, id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

var errInvalidLimit = errors.New("limit must be an integer between 1 and 100")

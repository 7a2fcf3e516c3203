package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asclub/club-api/internal/api/handler/v1/request"
	"github.com/asclub/club-api/internal/api/handler/v1/response"
	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/service"
)

type CompositionService interface {
	CRUDService[domain.Composition]
	List(ctx context.Context) ([]domain.Composition, error)
	Move(ctx context.Context, id, playerID uuid.UUID, move service.Move) (domain.Composition, domain.PlayerPosition, error)
	Reset(ctx context.Context, id uuid.UUID) (domain.Composition, error)
	Board(ctx context.Context, id uuid.UUID) (domain.Composition, domain.Board, error)
}

type CompositionHandler struct {
	svc CompositionService
}

func NewCompositionHandler(svc CompositionService) *CompositionHandler {
	return &CompositionHandler{
		svc: svc,
	}
}

// HandleListFormations godoc
// @Summary      Supported formations and their default slots
// @Tags         compositions
// @Produce      json
// @Success      200      {object}   response.FormationsResponse
// @Router       /formations [get]
func (h *CompositionHandler) HandleListFormations(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.FormationsResponse{Formations: domain.Formations()})
}

// HandleGetBoard godoc
// @Summary      Composition laid out on the pitch
// @Tags         compositions
// @Produce      json
// @Param        id       path       string  true  "composition id"
// @Success      200      {object}   response.CompositionBoardResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /compositions/{id}/board [get]
func (h *CompositionHandler) HandleGetBoard(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	composition, board, err := h.svc.Board(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetBoard -> h.svc.Board", "composition", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.CompositionBoardResponse{
		Composition: composition,
		Board:       board,
	})
}

// HandleListCompositions godoc
// @Summary      List compositions
// @Tags         admin
// @Produce      json
// @Success      200      {array}    domain.Composition
// @Failure      401      {object}   response.Err
// @Router       /admin/compositions [get]
// @Security     BearerAuth
func (h *CompositionHandler) HandleListCompositions(ctx *gin.Context) {
	compositions, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListCompositions -> h.svc.List", "composition", "", err)
		return
	}

	ctx.JSON(http.StatusOK, compositions)
}

// HandleGetComposition godoc
// @Summary      Get a composition
// @Tags         admin
// @Produce      json
// @Param        id       path       string  true  "composition id"
// @Success      200      {object}   domain.Composition
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/compositions/{id} [get]
// @Security     BearerAuth
func (h *CompositionHandler) HandleGetComposition(ctx *gin.Context) {
	getOne(ctx, "v1.HandleGetComposition -> h.svc.Get", "composition", h.svc.Get)
}

// HandleCreateComposition godoc
// @Summary      Create a composition
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body       request.CompositionRequest  true  "request body"
// @Success      201      {object}   domain.Composition
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Router       /admin/compositions [post]
// @Security     BearerAuth
func (h *CompositionHandler) HandleCreateComposition(ctx *gin.Context) {
	composition, ok := bindBody[domain.Composition, request.CompositionRequest](ctx)
	if !ok {
		return
	}

	created, err := h.svc.Create(ctx.Request.Context(), composition)
	if err != nil {
		renderCompositionErr(ctx, "v1.HandleCreateComposition -> h.svc.Create", "", err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateComposition godoc
// @Summary      Replace a composition
// @Description  Stored positions are kept when player_positions is omitted.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path       string                      true  "composition id"
// @Param        request  body       request.CompositionRequest  true  "request body"
// @Success      200      {object}   domain.Composition
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/compositions/{id} [put]
// @Security     BearerAuth
func (h *CompositionHandler) HandleUpdateComposition(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	composition, ok := bindBody[domain.Composition, request.CompositionRequest](ctx)
	if !ok {
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), id, composition)
	if err != nil {
		renderCompositionErr(ctx, "v1.HandleUpdateComposition -> h.svc.Update", id, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteComposition godoc
// @Summary      Delete a composition
// @Tags         admin
// @Param        id       path       string  true  "composition id"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/compositions/{id} [delete]
// @Security     BearerAuth
func (h *CompositionHandler) HandleDeleteComposition(ctx *gin.Context) {
	deleteOne(ctx, "v1.HandleDeleteComposition -> h.svc.Delete", "composition", h.svc)
}

// HandleMovePlayer godoc
// @Summary      Drop a player on the pitch
// @Description  The body carries either x and y percentages, or the pointer position with the rendered pitch size. Positions are clamped to 10..90 so markers stay on the pitch.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id        path      string               true  "composition id"
// @Param        playerID  path      string               true  "player id"
// @Param        request   body      request.MoveRequest  true  "request body"
// @Success      200      {object}   response.MovePlayerResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/compositions/{id}/positions/{playerID} [put]
// @Security     BearerAuth
func (h *CompositionHandler) HandleMovePlayer(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	playerID, ok := parseID(ctx, "playerID")
	if !ok {
		return
	}

	var req request.MoveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	composition, position, err := h.svc.Move(ctx.Request.Context(), id, playerID, req.ToMove())
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("player", "id", playerID))
			return
		}
		renderCompositionErr(ctx, "v1.HandleMovePlayer -> h.svc.Move", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.MovePlayerResponse{
		Composition: composition,
		Position:    position,
	})
}

// HandleResetPositions godoc
// @Summary      Clear custom positions
// @Tags         admin
// @Produce      json
// @Param        id       path       string  true  "composition id"
// @Success      200      {object}   domain.Composition
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/compositions/{id}/positions [delete]
// @Security     BearerAuth
func (h *CompositionHandler) HandleResetPositions(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	composition, err := h.svc.Reset(ctx.Request.Context(), id)
	if err != nil {
		renderCompositionErr(ctx, "v1.HandleResetPositions -> h.svc.Reset", id, err)
		return
	}

	ctx.JSON(http.StatusOK, composition)
}

func renderCompositionErr(ctx *gin.Context, op string, id any, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownFormation),
		errors.Is(err, service.ErrInvalidPitch),
		errors.Is(err, service.ErrMissingPosition):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		renderServiceErr(ctx, op, "composition", id, err)
	}
}

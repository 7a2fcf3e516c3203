package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/asclub/club-api/internal/api/handler/v1/request"
	"github.com/asclub/club-api/internal/domain"
)

type PlayerService interface {
	CRUDService[domain.Player]
	List(ctx context.Context, activeOnly bool) ([]domain.Player, error)
}

type PlayerHandler struct {
	svc PlayerService
}

func NewPlayerHandler(svc PlayerService) *PlayerHandler {
	return &PlayerHandler{
		svc: svc,
	}
}

// HandleListPlayers godoc
// @Summary      List the active roster
// @Tags         players
// @Produce      json
// @Success      200      {array}    domain.Player
// @Failure      500      {object}   response.Err
// @Router       /players [get]
func (h *PlayerHandler) HandleListPlayers(ctx *gin.Context) {
	h.list(ctx, true)
}

// HandleAdminListPlayers godoc
// @Summary      List every player
// @Tags         admin
// @Produce      json
// @Param        active   query      bool  false  "only active players"
// @Success      200      {array}    domain.Player
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/players [get]
// @Security     BearerAuth
func (h *PlayerHandler) HandleAdminListPlayers(ctx *gin.Context) {
	activeOnly, _ := strconv.ParseBool(ctx.Query("active"))
	h.list(ctx, activeOnly)
}

func (h *PlayerHandler) list(ctx *gin.Context, activeOnly bool) {
	players, err := h.svc.List(ctx.Request.Context(), activeOnly)
	if err != nil {
		renderServiceErr(ctx, "v1.ListPlayers -> h.svc.List", "player", "", err)
		return
	}

	ctx.JSON(http.StatusOK, players)
}

// HandleGetPlayer godoc
// @Summary      Get a player
// @Tags         players
// @Produce      json
// @Param        id       path       string  true  "player id"
// @Success      200      {object}   domain.Player
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /players/{id} [get]
// @Router       /admin/players/{id} [get]
func (h *PlayerHandler) HandleGetPlayer(ctx *gin.Context) {
	getOne(ctx, "v1.HandleGetPlayer -> h.svc.Get", "player", h.svc.Get)
}

// HandleCreatePlayer godoc
// @Summary      Create a player
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body       request.PlayerRequest  true  "request body"
// @Success      201      {object}   domain.Player
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/players [post]
// @Security     BearerAuth
func (h *PlayerHandler) HandleCreatePlayer(ctx *gin.Context) {
	createOne[domain.Player, request.PlayerRequest](ctx, "v1.HandleCreatePlayer -> h.svc.Create", "player", h.svc)
}

// HandleUpdatePlayer godoc
// @Summary      Replace a player
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path       string                 true  "player id"
// @Param        request  body       request.PlayerRequest  true  "request body"
// @Success      200      {object}   domain.Player
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/players/{id} [put]
// @Security     BearerAuth
func (h *PlayerHandler) HandleUpdatePlayer(ctx *gin.Context) {
	updateOne[domain.Player, request.PlayerRequest](ctx, "v1.HandleUpdatePlayer -> h.svc.Update", "player", h.svc)
}

// HandleDeletePlayer godoc
// @Summary      Delete a player
// @Tags         admin
// @Param        id       path       string  true  "player id"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/players/{id} [delete]
// @Security     BearerAuth
func (h *PlayerHandler) HandleDeletePlayer(ctx *gin.Context) {
	deleteOne(ctx, "v1.HandleDeletePlayer -> h.svc.Delete", "player", h.svc)
}

package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/asclub/club-api/internal/api/handler/v1/request"
	"github.com/asclub/club-api/internal/domain"
)

type CompetitionService interface {
	CRUDService[domain.Competition]
	List(ctx context.Context, activeOnly bool) ([]domain.Competition, error)
}

type CompetitionHandler struct {
	svc CompetitionService
}

func NewCompetitionHandler(svc CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{
		svc: svc,
	}
}

// HandleListCompetitions godoc
// @Summary      List active competitions
// @Tags         competitions
// @Produce      json
// @Success      200      {array}    domain.Competition
// @Failure      500      {object}   response.Err
// @Router       /competitions [get]
func (h *CompetitionHandler) HandleListCompetitions(ctx *gin.Context) {
	h.list(ctx, true)
}

// HandleAdminListCompetitions godoc
// @Summary      List every competition
// @Tags         admin
// @Produce      json
// @Param        active   query      bool  false  "only active competitions"
// @Success      200      {array}    domain.Competition
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/competitions [get]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleAdminListCompetitions(ctx *gin.Context) {
	activeOnly, _ := strconv.ParseBool(ctx.Query("active"))
	h.list(ctx, activeOnly)
}

func (h *CompetitionHandler) list(ctx *gin.Context, activeOnly bool) {
	competitions, err := h.svc.List(ctx.Request.Context(), activeOnly)
	if err != nil {
		renderServiceErr(ctx, "v1.ListCompetitions -> h.svc.List", "competition", "", err)
		return
	}

	ctx.JSON(http.StatusOK, competitions)
}

// HandleGetCompetition godoc
// @Summary      Get a competition
// @Tags         competitions
// @Produce      json
// @Param        id       path       string  true  "competition id"
// @Success      200      {object}   domain.Competition
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /competitions/{id} [get]
// @Router       /admin/competitions/{id} [get]
func (h *CompetitionHandler) HandleGetCompetition(ctx *gin.Context) {
	getOne(ctx, "v1.HandleGetCompetition -> h.svc.Get", "competition", h.svc.Get)
}

// HandleCreateCompetition godoc
// @Summary      Create a competition
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body       request.CompetitionRequest  true  "request body"
// @Success      201      {object}   domain.Competition
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/competitions [post]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleCreateCompetition(ctx *gin.Context) {
	createOne[domain.Competition, request.CompetitionRequest](ctx, "v1.HandleCreateCompetition -> h.svc.Create", "competition", h.svc)
}

// HandleUpdateCompetition godoc
// @Summary      Replace a competition
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path       string                 true  "competition id"
// @Param        request  body       request.CompetitionRequest  true  "request body"
// @Success      200      {object}   domain.Competition
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/competitions/{id} [put]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleUpdateCompetition(ctx *gin.Context) {
	updateOne[domain.Competition, request.CompetitionRequest](ctx, "v1.HandleUpdateCompetition -> h.svc.Update", "competition", h.svc)
}

// HandleDeleteCompetition godoc
// @Summary      Delete a competition
// @Tags         admin
// @Param        id       path       string  true  "competition id"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/competitions/{id} [delete]
// @Security     BearerAuth
func (h *CompetitionHandler) HandleDeleteCompetition(ctx *gin.Context) {
	deleteOne(ctx, "v1.HandleDeleteCompetition -> h.svc.Delete", "competition", h.svc)
}

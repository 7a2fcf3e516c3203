package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/asclub/club-api/internal/api/handler/v1/request"
	"github.com/asclub/club-api/internal/api/handler/v1/response"
	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/service"
)

const defaultResultsLimit = 5

type MatchService interface {
	CRUDService[domain.Match]
	List(ctx context.Context, filter domain.MatchFilter) ([]domain.Match, error)
	Next(ctx context.Context) (domain.Match, error)
	Results(ctx context.Context, limit int) ([]domain.Match, error)
}

type MatchHandler struct {
	svc MatchService
}

func NewMatchHandler(svc MatchService) *MatchHandler {
	return &MatchHandler{
		svc: svc,
	}
}

// HandleListMatches godoc
// @Summary      List matches
// @Tags         matches
// @Produce      json
// @Param        status   query      string  false  "a_venir, en_cours, termine or reporte"
// @Param        from     query      string  false  "RFC3339 lower bound on match_date"
// @Param        limit    query      int     false  "maximum number of matches"
// @Success      200      {array}    domain.Match
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /matches [get]
// @Router       /admin/matches [get]
func (h *MatchHandler) HandleListMatches(ctx *gin.Context) {
	var req request.MatchQuery
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	matches, err := h.svc.List(ctx.Request.Context(), req.ToFilter())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListMatches -> h.svc.List", "match", "", err)
		return
	}

	ctx.JSON(http.StatusOK, matches)
}

// HandleNextMatch godoc
// @Summary      Next upcoming match
// @Tags         matches
// @Produce      json
// @Success      200      {object}   domain.Match
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /matches/next [get]
func (h *MatchHandler) HandleNextMatch(ctx *gin.Context) {
	match, err := h.svc.Next(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.RenderErr(ctx, response.ErrNoResult("no upcoming match scheduled"))
			return
		}
		renderServiceErr(ctx, "v1.HandleNextMatch -> h.svc.Next", "match", "", err)
		return
	}

	ctx.JSON(http.StatusOK, match)
}

// HandleResults godoc
// @Summary      Latest results
// @Tags         matches
// @Produce      json
// @Param        limit    query      int     false  "number of results, default 5"
// @Success      200      {array}    domain.Match
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /matches/results [get]
func (h *MatchHandler) HandleResults(ctx *gin.Context) {
	limit := defaultResultsLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			response.RenderErr(ctx, response.ErrBadRequest(errInvalidLimit))
			return
		}
		limit = n
	}

	matches, err := h.svc.Results(ctx.Request.Context(), limit)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleResults -> h.svc.Results", "match", "", err)
		return
	}

	ctx.JSON(http.StatusOK, matches)
}

// HandleGetMatch godoc
// @Summary      Get a match
// @Tags         matches
// @Produce      json
// @Param        id       path       string  true  "match id"
// @Success      200      {object}   domain.Match
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /matches/{id} [get]
// @Router       /admin/matches/{id} [get]
func (h *MatchHandler) HandleGetMatch(ctx *gin.Context) {
	getOne(ctx, "v1.HandleGetMatch -> h.svc.Get", "match", h.svc.Get)
}

// HandleCreateMatch godoc
// @Summary      Create a match
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body       request.MatchRequest  true  "request body"
// @Success      201      {object}   domain.Match
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/matches [post]
// @Security     BearerAuth
func (h *MatchHandler) HandleCreateMatch(ctx *gin.Context) {
	createOne[domain.Match, request.MatchRequest](ctx, "v1.HandleCreateMatch -> h.svc.Create", "match", h.svc)
}

// HandleUpdateMatch godoc
// @Summary      Replace a match
// @Description  Scores and status changes are pushed to the live feed.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path       string                true  "match id"
// @Param        request  body       request.MatchRequest  true  "request body"
// @Success      200      {object}   domain.Match
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/matches/{id} [put]
// @Security     BearerAuth
func (h *MatchHandler) HandleUpdateMatch(ctx *gin.Context) {
	updateOne[domain.Match, request.MatchRequest](ctx, "v1.HandleUpdateMatch -> h.svc.Update", "match", h.svc)
}

// HandleDeleteMatch godoc
// @Summary      Delete a match
// @Tags         admin
// @Param        id       path       string  true  "match id"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/matches/{id} [delete]
// @Security     BearerAuth
func (h *MatchHandler) HandleDeleteMatch(ctx *gin.Context) {
	deleteOne(ctx, "v1.HandleDeleteMatch -> h.svc.Delete", "match", h.svc)
}

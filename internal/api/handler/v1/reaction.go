package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asclub/club-api/internal/api/handler/v1/request"
	"github.com/asclub/club-api/internal/api/handler/v1/response"
	"github.com/asclub/club-api/internal/api/middleware"
	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/pkg/jwthelper"
	"github.com/asclub/club-api/internal/service"
)

type ReactionService interface {
	React(ctx context.Context, voterID string, entityType domain.EntityType, entityID uuid.UUID, reactionType domain.ReactionType) (domain.Reaction, domain.ReactionCounts, error)
	Counts(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (domain.ReactionCounts, error)
	CountsByType(ctx context.Context, entityType domain.EntityType) ([]domain.ReactionCounts, error)
	Mine(ctx context.Context, voterID string, entityType domain.EntityType, entityID uuid.UUID) (*domain.Reaction, error)
}

type ReactionHandler struct {
	signingKey []byte
	voterTTL   time.Duration
	svc        ReactionService
}

func NewReactionHandler(signingKey string, voterTTL time.Duration, svc ReactionService) *ReactionHandler {
	return &ReactionHandler{
		signingKey: []byte(signingKey),
		voterTTL:   voterTTL,
		svc:        svc,
	}
}

// HandleVoterToken godoc
// @Summary      Issue an anonymous voter identity
// @Description  Send the token back in the X-Voter-Token header when reacting.
// @Tags         reactions
// @Produce      json
// @Success      201      {object}   response.VoterTokenResponse
// @Failure      500      {object}   response.Err
// @Router       /voter-token [post]
func (h *ReactionHandler) HandleVoterToken(ctx *gin.Context) {
	token, _, err := jwthelper.GenerateVoterToken(h.signingKey, h.voterTTL)
	if err != nil {
		err = fmt.Errorf("v1.HandleVoterToken -> jwthelper.GenerateVoterToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.VoterTokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.voterTTL),
	})
}

// HandleGetReactions godoc
// @Summary      Reaction counts and the caller's own reaction
// @Tags         reactions
// @Produce      json
// @Param        entityType  path    string  true   "article, player, staff or match"
// @Param        entityID    path    string  true   "entity id"
// @Param        X-Voter-Token header string false  "voter token"
// @Success      200      {object}   response.ReactionsResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reactions/{entityType}/{entityID} [get]
func (h *ReactionHandler) HandleGetReactions(ctx *gin.Context) {
	entityType, entityID, ok := bindTarget(ctx)
	if !ok {
		return
	}

	counts, err := h.svc.Counts(ctx.Request.Context(), entityType, entityID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetReactions -> h.svc.Counts", string(entityType), entityID, err)
		return
	}

	mine, err := h.svc.Mine(ctx.Request.Context(), middleware.VoterID(ctx), entityType, entityID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetReactions -> h.svc.Mine", string(entityType), entityID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.ReactionsResponse{
		Counts:     counts,
		MyReaction: mine,
		CanReact:   mine == nil,
	})
}

// HandleReactionSummary godoc
// @Summary      Reaction counts of every entity of a type
// @Tags         reactions
// @Produce      json
// @Param        entityType  path    string  true   "article, player, staff or match"
// @Success      200      {array}    domain.ReactionCounts
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reactions/{entityType} [get]
func (h *ReactionHandler) HandleReactionSummary(ctx *gin.Context) {
	entityType := domain.EntityType(ctx.Param("entityType"))

	counts, err := h.svc.CountsByType(ctx.Request.Context(), entityType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEntityType) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		renderServiceErr(ctx, "v1.HandleReactionSummary -> h.svc.CountsByType", string(entityType), "", err)
		return
	}

	ctx.JSON(http.StatusOK, counts)
}

// HandleReact godoc
// @Summary      Like or dislike an entity
// @Description  One reaction per voter and entity every 24 hours; a second vote inside the window is rejected with 429.
// @Tags         reactions
// @Accept       json
// @Produce      json
// @Param        entityType  path    string                   true   "article, player, staff or match"
// @Param        entityID    path    string                   true   "entity id"
// @Param        X-Voter-Token header string                  false  "voter token"
// @Param        request     body    request.ReactionRequest  true   "request body"
// @Success      201      {object}   response.ReactionsResponse
// @Failure      400      {object}   response.Err
// @Failure      429      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reactions/{entityType}/{entityID} [post]
func (h *ReactionHandler) HandleReact(ctx *gin.Context) {
	entityType, entityID, ok := bindTarget(ctx)
	if !ok {
		return
	}

	var req request.ReactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reaction, counts, err := h.svc.React(ctx.Request.Context(), middleware.VoterID(ctx), entityType, entityID, domain.ReactionType(req.ReactionType))
	if err != nil {
		var cooldown *domain.CooldownError
		if errors.As(err, &cooldown) {
			response.RenderErr(ctx, response.ErrTooManyRequests(cooldown, cooldown.Remaining))
			return
		}
		renderServiceErr(ctx, "v1.HandleReact -> h.svc.React", string(entityType), entityID, err)
		return
	}

	ctx.JSON(http.StatusCreated, response.ReactionsResponse{
		Counts:     counts,
		MyReaction: &reaction,
		CanReact:   false,
	})
}

func bindTarget(ctx *gin.Context) (domain.EntityType, uuid.UUID, bool) {
	var target request.ReactionTarget
	if err := ctx.ShouldBindUri(&target); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return "", uuid.Nil, false
	}

	if err := target.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return "", uuid.Nil, false
	}

	entityID, ok := parseID(ctx, "entityID")
	if !ok {
		return "", uuid.Nil, false
	}

	return domain.EntityType(target.EntityType), entityID, true
}

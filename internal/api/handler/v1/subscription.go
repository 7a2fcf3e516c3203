package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asclub/club-api/internal/api/handler/v1/request"
	"github.com/asclub/club-api/internal/api/handler/v1/response"
	"github.com/asclub/club-api/internal/domain"
)

type SubscriptionService interface {
	CRUDService[domain.Subscription]
	List(ctx context.Context, activeOnly bool) ([]domain.Subscription, error)
	Subscribe(ctx context.Context, email, name string) (domain.Subscription, error)
	Unsubscribe(ctx context.Context, id uuid.UUID) (domain.Subscription, error)
}

type SubscriptionHandler struct {
	svc SubscriptionService
}

func NewSubscriptionHandler(svc SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		svc: svc,
	}
}

// HandleSubscribe godoc
// @Summary      Subscribe to the newsletter
// @Description  Subscribing an address twice returns the existing subscription.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request  body       request.SubscriptionRequest  true  "request body"
// @Success      201      {object}   domain.Subscription
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /subscriptions [post]
func (h *SubscriptionHandler) HandleSubscribe(ctx *gin.Context) {
	var req request.SubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	subscription, err := h.svc.Subscribe(ctx.Request.Context(), req.Email, req.Name)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSubscribe -> h.svc.Subscribe", "subscription", "", err)
		return
	}

	ctx.JSON(http.StatusCreated, subscription)
}

// HandleAdminListSubscriptions godoc
// @Summary      List newsletter subscriptions
// @Tags         admin
// @Produce      json
// @Param        active   query      bool    false  "only active subscriptions"
// @Success      200      {array}    domain.Subscription
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/subscriptions [get]
// @Security     BearerAuth
func (h *SubscriptionHandler) HandleAdminListSubscriptions(ctx *gin.Context) {
	activeOnly, _ := strconv.ParseBool(ctx.Query("active"))

	subscriptions, err := h.svc.List(ctx.Request.Context(), activeOnly)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleAdminListSubscriptions -> h.svc.List", "subscription", "", err)
		return
	}

	ctx.JSON(http.StatusOK, subscriptions)
}

// HandleAdminGetSubscription godoc
// @Summary      Get a subscription
// @Tags         admin
// @Produce      json
// @Param        id       path       string  true  "subscription id"
// @Success      200      {object}   domain.Subscription
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/subscriptions/{id} [get]
// @Security     BearerAuth
func (h *SubscriptionHandler) HandleAdminGetSubscription(ctx *gin.Context) {
	getOne(ctx, "v1.HandleAdminGetSubscription -> h.svc.Get", "subscription", h.svc.Get)
}

// HandleAdminCreateSubscription godoc
// @Summary      Add a subscriber
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body       request.AdminSubscriptionRequest  true  "request body"
// @Success      201      {object}   domain.Subscription
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Router       /admin/subscriptions [post]
// @Security     BearerAuth
func (h *SubscriptionHandler) HandleAdminCreateSubscription(ctx *gin.Context) {
	createOne[domain.Subscription, request.AdminSubscriptionRequest](ctx, "v1.HandleAdminCreateSubscription -> h.svc.Create", "subscription", h.svc)
}

// HandleAdminUpdateSubscription godoc
// @Summary      Replace a subscription
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path       string                            true  "subscription id"
// @Param        request  body       request.AdminSubscriptionRequest  true  "request body"
// @Success      200      {object}   domain.Subscription
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Router       /admin/subscriptions/{id} [put]
// @Security     BearerAuth
func (h *SubscriptionHandler) HandleAdminUpdateSubscription(ctx *gin.Context) {
	updateOne[domain.Subscription, request.AdminSubscriptionRequest](ctx, "v1.HandleAdminUpdateSubscription -> h.svc.Update", "subscription", h.svc)
}

// HandleAdminUnsubscribe godoc
// @Summary      Deactivate a subscription
// @Tags         admin
// @Produce      json
// @Param        id       path       string  true  "subscription id"
// @Success      200      {object}   domain.Subscription
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/subscriptions/{id}/unsubscribe [post]
// @Security     BearerAuth
func (h *SubscriptionHandler) HandleAdminUnsubscribe(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	subscription, err := h.svc.Unsubscribe(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleAdminUnsubscribe -> h.svc.Unsubscribe", "subscription", id, err)
		return
	}

	ctx.JSON(http.StatusOK, subscription)
}

// HandleAdminDeleteSubscription godoc
// @Summary      Delete a subscription
// @Tags         admin
// @Param        id       path       string  true  "subscription id"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/subscriptions/{id} [delete]
// @Security     BearerAuth
func (h *SubscriptionHandler) HandleAdminDeleteSubscription(ctx *gin.Context) {
	deleteOne(ctx, "v1.HandleAdminDeleteSubscription -> h.svc.Delete", "subscription", h.svc)
}

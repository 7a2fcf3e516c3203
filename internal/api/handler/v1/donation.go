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

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

var errInvalidQRSize = errors.New("size must be an integer between 64 and 1024")

type DonationService interface {
	CRUDService[domain.Donation]
	List(ctx context.Context, status domain.DonationStatus) ([]domain.Donation, error)
	Donate(ctx context.Context, donation domain.Donation) (domain.Donation, error)
	Progress(ctx context.Context) (domain.DonationProgress, error)
	QRCode(size int) ([]byte, error)
}

type DonationHandler struct {
	svc DonationService
}

func NewDonationHandler(svc DonationService) *DonationHandler {
	return &DonationHandler{
		svc: svc,
	}
}

// HandleDonate godoc
// @Summary      Make a donation
// @Description  Card donations return a client_secret to confirm the payment with Stripe.
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        request  body       request.DonationRequest  true  "request body"
// @Success      201      {object}   domain.Donation
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /donations [post]
func (h *DonationHandler) HandleDonate(ctx *gin.Context) {
	donation, ok := bindBody[domain.Donation, request.DonationRequest](ctx)
	if !ok {
		return
	}

	created, err := h.svc.Donate(ctx.Request.Context(), donation)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleDonate -> h.svc.Donate", "donation", "", err)
		return
	}

	ctx.JSON(http.StatusCreated, created.Public())
}

// HandleDonationProgress godoc
// @Summary      Fundraising progress
// @Tags         donations
// @Produce      json
// @Success      200      {object}   domain.DonationProgress
// @Failure      500      {object}   response.Err
// @Router       /donations/progress [get]
func (h *DonationHandler) HandleDonationProgress(ctx *gin.Context) {
	progress, err := h.svc.Progress(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleDonationProgress -> h.svc.Progress", "donation", "", err)
		return
	}

	ctx.JSON(http.StatusOK, progress)
}

// HandleDonationQRCode godoc
// @Summary      QR code of the donation page
// @Tags         donations
// @Produce      png
// @Param        size     query      int     false  "edge in pixels, default 256"
// @Success      200      {file}     binary
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /donations/qrcode [get]
func (h *DonationHandler) HandleDonationQRCode(ctx *gin.Context) {
	size := defaultQRSize
	if raw := ctx.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > maxQRSize {
			response.RenderErr(ctx, response.ErrBadRequest(errInvalidQRSize))
			return
		}
		size = n
	}

	png, err := h.svc.QRCode(size)
	if err != nil {
		if errors.Is(err, service.ErrDonationPageNotSet) {
			response.RenderErr(ctx, response.ErrNoResult(err.Error()))
			return
		}
		renderServiceErr(ctx, "v1.HandleDonationQRCode -> h.svc.QRCode", "donation", "", err)
		return
	}

	ctx.Header("Cache-Control", "public, max-age=3600")
	ctx.Data(http.StatusOK, "image/png", png)
}

// HandleAdminListDonations godoc
// @Summary      List donations
// @Tags         admin
// @Produce      json
// @Param        status   query      string  false  "pending, completed or failed"
// @Success      200      {array}    domain.Donation
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/donations [get]
// @Security     BearerAuth
func (h *DonationHandler) HandleAdminListDonations(ctx *gin.Context) {
	var req request.DonationQuery
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	donations, err := h.svc.List(ctx.Request.Context(), domain.DonationStatus(req.Status))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleAdminListDonations -> h.svc.List", "donation", "", err)
		return
	}

	ctx.JSON(http.StatusOK, donations)
}

// HandleAdminGetDonation godoc
// @Summary      Get a donation
// @Tags         admin
// @Produce      json
// @Param        id       path       string  true  "donation id"
// @Success      200      {object}   domain.Donation
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/donations/{id} [get]
// @Security     BearerAuth
func (h *DonationHandler) HandleAdminGetDonation(ctx *gin.Context) {
	getOne(ctx, "v1.HandleAdminGetDonation -> h.svc.Get", "donation", h.svc.Get)
}

// HandleAdminCreateDonation godoc
// @Summary      Record a donation received offline
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body       request.AdminDonationRequest  true  "request body"
// @Success      201      {object}   domain.Donation
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Router       /admin/donations [post]
// @Security     BearerAuth
func (h *DonationHandler) HandleAdminCreateDonation(ctx *gin.Context) {
	createOne[domain.Donation, request.AdminDonationRequest](ctx, "v1.HandleAdminCreateDonation -> h.svc.Create", "donation", h.svc)
}

// HandleAdminUpdateDonation godoc
// @Summary      Replace a donation, e.g. to mark it completed
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path       string                        true  "donation id"
// @Param        request  body       request.AdminDonationRequest  true  "request body"
// @Success      200      {object}   domain.Donation
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/donations/{id} [put]
// @Security     BearerAuth
func (h *DonationHandler) HandleAdminUpdateDonation(ctx *gin.Context) {
	updateOne[domain.Donation, request.AdminDonationRequest](ctx, "v1.HandleAdminUpdateDonation -> h.svc.Update", "donation", h.svc)
}

// HandleAdminDeleteDonation godoc
// @Summary      Delete a donation
// @Tags         admin
// @Param        id       path       string  true  "donation id"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/donations/{id} [delete]
// @Security     BearerAuth
func (h *DonationHandler) HandleAdminDeleteDonation(ctx *gin.Context) {
	deleteOne(ctx, "v1.HandleAdminDeleteDonation -> h.svc.Delete", "donation", h.svc)
}

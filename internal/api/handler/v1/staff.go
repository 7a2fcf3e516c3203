package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/asclub/club-api/internal/api/handler/v1/request"
	"github.com/asclub/club-api/internal/domain"
)

type StaffService interface {
	CRUDService[domain.Staff]
	List(ctx context.Context, activeOnly bool) ([]domain.Staff, error)
}

type StaffHandler struct {
	svc StaffService
}

func NewStaffHandler(svc StaffService) *StaffHandler {
	return &StaffHandler{
		svc: svc,
	}
}

// HandleListStaff godoc
// @Summary      List the active staff
// @Tags         staff
// @Produce      json
// @Success      200      {array}    domain.Staff
// @Failure      500      {object}   response.Err
// @Router       /staff [get]
func (h *StaffHandler) HandleListStaff(ctx *gin.Context) {
	h.list(ctx, true)
}

// HandleAdminListStaff godoc
// @Summary      List every staff member
// @Tags         admin
// @Produce      json
// @Param        active   query      bool  false  "only active staff"
// @Success      200      {array}    domain.Staff
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/staff [get]
// @Security     BearerAuth
func (h *StaffHandler) HandleAdminListStaff(ctx *gin.Context) {
	activeOnly, _ := strconv.ParseBool(ctx.Query("active"))
	h.list(ctx, activeOnly)
}

func (h *StaffHandler) list(ctx *gin.Context, activeOnly bool) {
	staff, err := h.svc.List(ctx.Request.Context(), activeOnly)
	if err != nil {
		renderServiceErr(ctx, "v1.ListStaff -> h.svc.List", "staff member", "", err)
		return
	}

	ctx.JSON(http.StatusOK, staff)
}

// HandleGetStaff godoc
// @Summary      Get a staff member
// @Tags         staff
// @Produce      json
// @Param        id       path       string  true  "staff member id"
// @Success      200      {object}   domain.Staff
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /staff/{id} [get]
// @Router       /admin/staff/{id} [get]
func (h *StaffHandler) HandleGetStaff(ctx *gin.Context) {
	getOne(ctx, "v1.HandleGetStaff -> h.svc.Get", "staff member", h.svc.Get)
}

// HandleCreateStaff godoc
// @Summary      Create a staff member
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body       request.StaffRequest  true  "request body"
// @Success      201      {object}   domain.Staff
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/staff [post]
// @Security     BearerAuth
func (h *StaffHandler) HandleCreateStaff(ctx *gin.Context) {
	createOne[domain.Staff, request.StaffRequest](ctx, "v1.HandleCreateStaff -> h.svc.Create", "staff member", h.svc)
}

// HandleUpdateStaff godoc
// @Summary      Replace a staff member
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path       string                 true  "staff member id"
// @Param        request  body       request.StaffRequest  true  "request body"
// @Success      200      {object}   domain.Staff
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/staff/{id} [put]
// @Security     BearerAuth
func (h *StaffHandler) HandleUpdateStaff(ctx *gin.Context) {
	updateOne[domain.Staff, request.StaffRequest](ctx, "v1.HandleUpdateStaff -> h.svc.Update", "staff member", h.svc)
}

// HandleDeleteStaff godoc
// @Summary      Delete a staff member
// @Tags         admin
// @Param        id       path       string  true  "staff member id"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/staff/{id} [delete]
// @Security     BearerAuth
func (h *StaffHandler) HandleDeleteStaff(ctx *gin.Context) {
	deleteOne(ctx, "v1.HandleDeleteStaff -> h.svc.Delete", "staff member", h.svc)
}

package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asclub/club-api/internal/api/handler/v1/request"
	"github.com/asclub/club-api/internal/domain"
)

type GalleryService interface {
	CRUDService[domain.Gallery]
	List(ctx context.Context) ([]domain.Gallery, error)
	ListPhotos(ctx context.Context, galleryID uuid.UUID) ([]domain.Photo, error)
	AddPhoto(ctx context.Context, galleryID uuid.UUID, photo domain.Photo) (domain.Photo, error)
	UpdatePhoto(ctx context.Context, galleryID, photoID uuid.UUID, photo domain.Photo) (domain.Photo, error)
	DeletePhoto(ctx context.Context, galleryID, photoID uuid.UUID) error
}

type GalleryHandler struct {
	svc GalleryService
}

func NewGalleryHandler(svc GalleryService) *GalleryHandler {
	return &GalleryHandler{
		svc: svc,
	}
}

// HandleListGalleries godoc
// @Summary      List photo galleries
// @Tags         galleries
// @Produce      json
// @Success      200      {array}    domain.Gallery
// @Failure      500      {object}   response.Err
// @Router       /galleries [get]
// @Router       /admin/galleries [get]
func (h *GalleryHandler) HandleListGalleries(ctx *gin.Context) {
	galleries, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListGalleries -> h.svc.List", "gallery", "", err)
		return
	}

	ctx.JSON(http.StatusOK, galleries)
}

// HandleGetGallery godoc
// @Summary      Get a gallery with its photos in display order
// @Tags         galleries
// @Produce      json
// @Param        id       path       string  true  "gallery id"
// @Success      200      {object}   domain.Gallery
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /galleries/{id} [get]
// @Router       /admin/galleries/{id} [get]
func (h *GalleryHandler) HandleGetGallery(ctx *gin.Context) {
	getOne(ctx, "v1.HandleGetGallery -> h.svc.Get", "gallery", h.svc.Get)
}

// HandleCreateGallery godoc
// @Summary      Create a gallery
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body       request.GalleryRequest  true  "request body"
// @Success      201      {object}   domain.Gallery
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/galleries [post]
// @Security     BearerAuth
func (h *GalleryHandler) HandleCreateGallery(ctx *gin.Context) {
	createOne[domain.Gallery, request.GalleryRequest](ctx, "v1.HandleCreateGallery -> h.svc.Create", "gallery", h.svc)
}

// HandleUpdateGallery godoc
// @Summary      Replace a gallery
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path       string                  true  "gallery id"
// @Param        request  body       request.GalleryRequest  true  "request body"
// @Success      200      {object}   domain.Gallery
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/galleries/{id} [put]
// @Security     BearerAuth
func (h *GalleryHandler) HandleUpdateGallery(ctx *gin.Context) {
	updateOne[domain.Gallery, request.GalleryRequest](ctx, "v1.HandleUpdateGallery -> h.svc.Update", "gallery", h.svc)
}

// HandleDeleteGallery godoc
// @Summary      Delete a gallery and its photos
// @Tags         admin
// @Param        id       path       string  true  "gallery id"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/galleries/{id} [delete]
// @Security     BearerAuth
func (h *GalleryHandler) HandleDeleteGallery(ctx *gin.Context) {
	deleteOne(ctx, "v1.HandleDeleteGallery -> h.svc.Delete", "gallery", h.svc)
}

// HandleListPhotos godoc
// @Summary      List the photos of a gallery
// @Tags         admin
// @Produce      json
// @Param        id       path       string  true  "gallery id"
// @Success      200      {array}    domain.Photo
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/galleries/{id}/photos [get]
// @Security     BearerAuth
func (h *GalleryHandler) HandleListPhotos(ctx *gin.Context) {
	galleryID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	photos, err := h.svc.ListPhotos(ctx.Request.Context(), galleryID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListPhotos -> h.svc.ListPhotos", "gallery", galleryID, err)
		return
	}

	ctx.JSON(http.StatusOK, photos)
}

// HandleAddPhoto godoc
// @Summary      Add a photo to a gallery
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path       string                true  "gallery id"
// @Param        request  body       request.PhotoRequest  true  "request body"
// @Success      201      {object}   domain.Photo
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/galleries/{id}/photos [post]
// @Security     BearerAuth
func (h *GalleryHandler) HandleAddPhoto(ctx *gin.Context) {
	galleryID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	photo, ok := bindBody[domain.Photo, request.PhotoRequest](ctx)
	if !ok {
		return
	}

	created, err := h.svc.AddPhoto(ctx.Request.Context(), galleryID, photo)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleAddPhoto -> h.svc.AddPhoto", "gallery", galleryID, err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdatePhoto godoc
// @Summary      Replace a photo's caption, urls or position
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path       string                true  "gallery id"
// @Param        photoID  path       string                true  "photo id"
// @Param        request  body       request.PhotoRequest  true  "request body"
// @Success      200      {object}   domain.Photo
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/galleries/{id}/photos/{photoID} [put]
// @Security     BearerAuth
func (h *GalleryHandler) HandleUpdatePhoto(ctx *gin.Context) {
	galleryID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	photoID, ok := parseID(ctx, "photoID")
	if !ok {
		return
	}

	photo, ok := bindBody[domain.Photo, request.PhotoRequest](ctx)
	if !ok {
		return
	}

	updated, err := h.svc.UpdatePhoto(ctx.Request.Context(), galleryID, photoID, photo)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdatePhoto -> h.svc.UpdatePhoto", "photo", photoID, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeletePhoto godoc
// @Summary      Remove a photo from a gallery
// @Tags         admin
// @Param        id       path       string  true  "gallery id"
// @Param        photoID  path       string  true  "photo id"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/galleries/{id}/photos/{photoID} [delete]
// @Security     BearerAuth
func (h *GalleryHandler) HandleDeletePhoto(ctx *gin.Context) {
	galleryID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	photoID, ok := parseID(ctx, "photoID")
	if !ok {
		return
	}

	if err := h.svc.DeletePhoto(ctx.Request.Context(), galleryID, photoID); err != nil {
		renderServiceErr(ctx, "v1.HandleDeletePhoto -> h.svc.DeletePhoto", "photo", photoID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}


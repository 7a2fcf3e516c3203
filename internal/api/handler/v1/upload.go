package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asclub/club-api/internal/api/handler/v1/response"
	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/service"
)

const formFieldFile = "file"

// multipart headers and the kind field on top of the file itself
const multipartOverhead = 1 << 20

var errMissingFile = errors.New("multipart field \"file\" is required")

type UploadService interface {
	Store(r io.Reader, kind domain.UploadKind) (domain.Upload, error)
	MaxBytes() int64
}

type UploadHandler struct {
	svc UploadService
}

func NewUploadHandler(svc UploadService) *UploadHandler {
	return &UploadHandler{
		svc: svc,
	}
}

// HandleUpload godoc
// @Summary      Upload an image
// @Description  Images only (jpeg, png, gif, webp). Gallery photos (kind=photo) also get a thumbnail.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData   file    true   "image"
// @Param        kind     formData   string  false  "image or photo"
// @Success      201      {object}   domain.Upload
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      413      {object}   response.Err
// @Failure      415      {object}   response.Err
// @Router       /admin/uploads [post]
// @Security     BearerAuth
func (h *UploadHandler) HandleUpload(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, h.svc.MaxBytes()+multipartOverhead)

	header, err := ctx.FormFile(formFieldFile)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RenderErr(ctx, response.ErrPayloadTooLarge(service.ErrFileTooLarge))
			return
		}
		response.RenderErr(ctx, response.ErrBadRequest(errMissingFile))
		return
	}

	kind := domain.UploadKind(ctx.DefaultPostForm("kind", string(domain.UploadImage)))

	file, err := header.Open()
	if err != nil {
		err = fmt.Errorf("v1.HandleUpload -> header.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	defer file.Close()

	upload, err := h.svc.Store(file, kind)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUploadKind):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrFileTooLarge):
			response.RenderErr(ctx, response.ErrPayloadTooLarge(err))
		case errors.Is(err, service.ErrUnsupportedMediaType):
			response.RenderErr(ctx, response.ErrUnsupportedMediaType(err))
		default:
			response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("v1.HandleUpload -> h.svc.Store -> %w", err)))
		}
		return
	}

	ctx.JSON(http.StatusCreated, upload)
}

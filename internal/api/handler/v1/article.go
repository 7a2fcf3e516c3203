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

type ArticleService interface {
	CRUDService[domain.Article]
	List(ctx context.Context, publishedOnly bool, limit int) ([]domain.Article, error)
	GetPublished(ctx context.Context, id uuid.UUID) (domain.Article, error)
}

type ArticleHandler struct {
	svc ArticleService
}

func NewArticleHandler(svc ArticleService) *ArticleHandler {
	return &ArticleHandler{
		svc: svc,
	}
}

// HandleListArticles godoc
// @Summary      List published news
// @Tags         articles
// @Produce      json
// @Param        limit    query      int     false  "maximum number of articles"
// @Success      200      {array}    domain.Article
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /articles [get]
func (h *ArticleHandler) HandleListArticles(ctx *gin.Context) {
	h.list(ctx, true)
}

// HandleAdminListArticles godoc
// @Summary      List every article, drafts included
// @Tags         admin
// @Produce      json
// @Param        limit    query      int     false  "maximum number of articles"
// @Success      200      {array}    domain.Article
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/articles [get]
// @Security     BearerAuth
func (h *ArticleHandler) HandleAdminListArticles(ctx *gin.Context) {
	h.list(ctx, false)
}

func (h *ArticleHandler) list(ctx *gin.Context, publishedOnly bool) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			response.RenderErr(ctx, response.ErrBadRequest(errInvalidLimit))
			return
		}
		limit = n
	}

	articles, err := h.svc.List(ctx.Request.Context(), publishedOnly, limit)
	if err != nil {
		renderServiceErr(ctx, "v1.ListArticles -> h.svc.List", "article", "", err)
		return
	}

	ctx.JSON(http.StatusOK, articles)
}

// HandleGetArticle godoc
// @Summary      Get a published article
// @Tags         articles
// @Produce      json
// @Param        id       path       string  true  "article id"
// @Success      200      {object}   domain.Article
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /articles/{id} [get]
func (h *ArticleHandler) HandleGetArticle(ctx *gin.Context) {
	getOne(ctx, "v1.HandleGetArticle -> h.svc.GetPublished", "article", h.svc.GetPublished)
}

// HandleAdminGetArticle godoc
// @Summary      Get any article
// @Tags         admin
// @Produce      json
// @Param        id       path       string  true  "article id"
// @Success      200      {object}   domain.Article
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /admin/articles/{id} [get]
// @Security     BearerAuth
func (h *ArticleHandler) HandleAdminGetArticle(ctx *gin.Context) {
	getOne(ctx, "v1.HandleAdminGetArticle -> h.svc.Get", "article", h.svc.Get)
}

// HandleCreateArticle godoc
// @Summary      Create an article
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body       request.ArticleRequest  true  "request body"
// @Success      201      {object}   domain.Article
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/articles [post]
// @Security     BearerAuth
func (h *ArticleHandler) HandleCreateArticle(ctx *gin.Context) {
	createOne[domain.Article, request.ArticleRequest](ctx, "v1.HandleCreateArticle -> h.svc.Create", "article", h.svc)
}

// HandleUpdateArticle godoc
// @Summary      Replace an article
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path       string                  true  "article id"
// @Param        request  body       request.ArticleRequest  true  "request body"
// @Success      200      {object}   domain.Article
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/articles/{id} [put]
// @Security     BearerAuth
func (h *ArticleHandler) HandleUpdateArticle(ctx *gin.Context) {
	updateOne[domain.Article, request.ArticleRequest](ctx, "v1.HandleUpdateArticle -> h.svc.Update", "article", h.svc)
}

// HandleDeleteArticle godoc
// @Summary      Delete an article
// @Tags         admin
// @Param        id       path       string  true  "article id"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/articles/{id} [delete]
// @Security     BearerAuth
func (h *ArticleHandler) HandleDeleteArticle(ctx *gin.Context) {
	deleteOne(ctx, "v1.HandleDeleteArticle -> h.svc.Delete", "article", h.svc)
}

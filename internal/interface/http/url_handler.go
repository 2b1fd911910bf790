package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/linkshort/internal/application"
	"github.com/oksasatya/linkshort/internal/domain/entity"
	"github.com/oksasatya/linkshort/pkg/apperror"
	"github.com/oksasatya/linkshort/pkg/response"
)

//go:generate mockgen -source=url_handler.go -destination=mocks/shortener_service_mock.go -package=mocks ShortenerService
type ShortenerService interface {
	Shorten(ctx context.Context, identity *entity.Identity, longURL string) (*application.LinkView, error)
	Resolve(ctx context.Context, alias string) (string, error)
	ListByOwner(ctx context.Context, identity *entity.Identity, limit, offset int) (*application.LinkPage, error)
	Search(ctx context.Context, identity *entity.Identity, q string, size int) ([]application.LinkView, error)
	Export(ctx context.Context, identity *entity.Identity) (string, error)
}

type URLHandler struct {
	Svc    ShortenerService
	Logger *logrus.Logger
}

func NewURLHandler(svc ShortenerService, logger *logrus.Logger) *URLHandler {
	return &URLHandler{Svc: svc, Logger: logger}
}

type createRequest struct {
	URL string `json:"url" binding:"required,absurl"`
}

type createResponse struct {
	application.LinkView
	// camelCase duplicate kept for clients of the earlier API
	ShortURLCamel string `json:"shortUrl"`
}

// Create POST /api/create
func (h *URLHandler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	link, err := h.Svc.Shorten(c.Request.Context(), identity(c), req.URL)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, createResponse{LinkView: *link, ShortURLCamel: link.ShortURL}, "short url created", nil)
}

// Redirect GET /:alias
func (h *URLHandler) Redirect(c *gin.Context) {
	target, err := h.Svc.Resolve(c.Request.Context(), c.Param("alias"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// List GET /api/user/urls?limit=&offset=
func (h *URLHandler) List(c *gin.Context) {
	limit, err1 := queryInt(c, "limit")
	offset, err2 := queryInt(c, "offset")
	if err1 != nil || err2 != nil {
		respondError(c, h.Logger, apperror.Validation("limit and offset must be integers"))
		return
	}
	page, err := h.Svc.ListByOwner(c.Request.Context(), identity(c), limit, offset)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, page.Items, "short urls", gin.H{
		"total":  page.Total,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

// Search GET /api/user/urls/search?q=&size=
func (h *URLHandler) Search(c *gin.Context) {
	size, err := queryInt(c, "size")
	if err != nil {
		respondError(c, h.Logger, apperror.Validation("size must be an integer"))
		return
	}
	items, err := h.Svc.Search(c.Request.Context(), identity(c), c.Query("q"), size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, items, "search results", gin.H{"count": len(items)})
}

// Export POST /api/user/urls/export
func (h *URLHandler) Export(c *gin.Context) {
	loc, err := h.Svc.Export(c.Request.Context(), identity(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"export_url": loc}, "export written", nil)
}

func queryInt(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
)

type CategoryHandler struct {
	catalog *domain.Catalog
}

func NewCategoryHandler(catalog *domain.Catalog) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/categories", h.List)
}

func (h *CategoryHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.catalog.Entries(),
	})
}

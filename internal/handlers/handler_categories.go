package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/cashflow_app/internal/core/ports/services"
	"github.com/SscSPs/cashflow_app/internal/core/reporting"
	"github.com/SscSPs/cashflow_app/internal/dto"
	"github.com/SscSPs/cashflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
	resolver        *reporting.Resolver
}

func registerCategoryRoutes(rg *gin.RouterGroup, cs portssvc.CategorySvcFacade, resolver *reporting.Resolver) {
	h := &categoryHandler{categoryService: cs, resolver: resolver}
	rg.GET("/categories", h.listCategories)
}

// listCategories godoc
// @Summary List categories
// @Description Lists the global categories and the caller's own, with display icon and color
// @Tags categories
// @Produce json
// @Param type query string false "income or outcome"
// @Success 200 {array} dto.CategoryResponse
// @Failure 400 {object} map[string]string "Invalid type"
// @Failure 500 {object} map[string]string "Failed to list categories"
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := userFromContext(c, logger)
	if !ok {
		return
	}

	var params dto.ListCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListCategories", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID, domain.CategoryType(params.Type))
	if err != nil {
		respondError(c, logger, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories, h.resolver))
}

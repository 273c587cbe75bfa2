package handlers

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_api/internal/httperr"
	"github.com/Skotchmaster/inventory_api/internal/logging"
	"github.com/Skotchmaster/inventory_api/internal/models"
	"github.com/Skotchmaster/inventory_api/internal/query"
	"github.com/Skotchmaster/inventory_api/internal/transport"
	"github.com/Skotchmaster/inventory_api/internal/util"
)

type SearchHandler struct {
	DB *gorm.DB
}

// Search is always read-only and open to anyone. name and category OR
// together; with neither present the full listing comes back rather than an
// empty result.
func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	page = offset/limit + 1

	filters := query.ParseSearchFilters(c.QueryParams())
	filtered := func() *gorm.DB {
		return filters.Apply(h.DB.WithContext(ctx).Model(&models.Product{}))
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		l.Error("search count failed", "error", err)
		return httperr.Internal(err)
	}

	var items []models.Product
	if err := query.Order(filtered()).
		Preload("Creator").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		l.Error("search query failed", "error", err)
		return httperr.Internal(err)
	}

	return paginated(c, page, limit, total, transport.ToProductResponses(items))
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/inventory_api/internal/authz"
	"github.com/Skotchmaster/inventory_api/internal/httperr"
	"github.com/Skotchmaster/inventory_api/internal/logging"
	"github.com/Skotchmaster/inventory_api/internal/models"
	"github.com/Skotchmaster/inventory_api/internal/mykafka"
	"github.com/Skotchmaster/inventory_api/internal/query"
	"github.com/Skotchmaster/inventory_api/internal/transport"
	"github.com/Skotchmaster/inventory_api/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	key := fmt.Sprint(event["user_id"])
	if err := h.Producer.PublishEvent(ctx, mykafka.ProductEventsTopic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", mykafka.ProductEventsTopic, "error", err)
	}
}

func roundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}

func paginated(c echo.Context, page, size int, total int64, items any) error {
	offset := (page - 1) * size
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        size,
			"total":       total,
			"total_pages": (total + int64(size) - 1) / int64(size),
			"has_prev":    page > 1,
			"has_next":    int64(offset+size) < total,
		},
	})
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	page = offset/limit + 1

	filters := query.ParseListFilters(c.QueryParams())
	filtered := func() *gorm.DB {
		return filters.Apply(h.DB.WithContext(ctx).Model(&models.Product{}))
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		l.Error("list count failed", "error", err)
		return httperr.Internal(err)
	}

	var items []models.Product
	if err := query.Order(filtered()).
		Preload("Creator").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		l.Error("list query failed", "error", err)
		return httperr.Internal(err)
	}

	return paginated(c, page, limit, total, transport.ToProductResponses(items))
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httperr.Validation("product id must be an integer", nil)
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).Preload("Creator").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product not found", "product_id", id)
			return httperr.NotFound("product not found")
		}
		return httperr.Internal(err)
	}

	return c.JSON(http.StatusOK, transport.ToProductResponse(&product))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")
	caller := authz.FromContext(ctx)

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// created_by is stamped from the authenticated identity, never bound
	// from the payload.
	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         roundPrice(*req.Price),
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		CreatedByID:   caller.UserID,
	}
	if err := h.DB.WithContext(ctx).Create(&product).Error; err != nil {
		l.Error("create failed", "error", err)
		return httperr.Internal(err)
	}
	product.Creator = &models.User{Username: caller.Username}

	h.publish(c, map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
		"user_id":    caller.UserID,
	})

	l.Info("product created", "product_id", product.ID)
	return c.JSON(http.StatusCreated, transport.ToProductResponse(&product))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httperr.Validation("product id must be an integer", nil)
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).Preload("Creator").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("product not found")
		}
		return httperr.Internal(err)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = roundPrice(*req.Price)
	product.Category = req.Category
	product.StockQuantity = req.StockQuantity
	product.ImageURL = req.ImageURL

	if err := h.DB.WithContext(ctx).Omit(clause.Associations).Save(&product).Error; err != nil {
		l.Error("update failed", "error", err)
		return httperr.Internal(err)
	}

	h.publish(c, map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
		"user_id":    authz.FromContext(ctx).UserID,
	})

	l.Info("product updated", "product_id", product.ID)
	return c.JSON(http.StatusOK, transport.ToProductResponse(&product))
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httperr.Validation("product id must be an integer", nil)
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).Preload("Creator").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("product not found")
		}
		return httperr.Internal(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = roundPrice(*req.Price)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if err := h.DB.WithContext(ctx).Omit(clause.Associations).Save(&product).Error; err != nil {
		l.Error("patch failed", "error", err)
		return httperr.Internal(err)
	}

	h.publish(c, map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
		"user_id":    authz.FromContext(ctx).UserID,
	})

	l.Info("product updated", "product_id", product.ID)
	return c.JSON(http.StatusOK, transport.ToProductResponse(&product))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httperr.Validation("product id must be an integer", nil)
	}

	res := h.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		l.Error("delete failed", "error", res.Error)
		return httperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("product not found")
	}

	h.publish(c, map[string]any{
		"type":       "product_deleted",
		"product_id": id,
		"user_id":    authz.FromContext(ctx).UserID,
	})

	l.Info("product deleted", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

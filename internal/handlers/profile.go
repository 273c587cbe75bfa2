package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_api/internal/authz"
	"github.com/Skotchmaster/inventory_api/internal/httperr"
	"github.com/Skotchmaster/inventory_api/internal/logging"
	"github.com/Skotchmaster/inventory_api/internal/models"
	"github.com/Skotchmaster/inventory_api/internal/transport"
)

// ProfileHandler serves /users/me. The target record is always the caller's
// own: no identifier is accepted from the client, "self" comes from the
// authenticated identity in the request context.
type ProfileHandler struct {
	DB *gorm.DB
}

func (h *ProfileHandler) self(c echo.Context) (*models.User, error) {
	ctx := c.Request().Context()
	id := authz.FromContext(ctx)

	var user models.User
	if err := h.DB.WithContext(ctx).First(&user, id.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.Authentication("authentication credentials were not provided or are invalid")
		}
		return nil, httperr.Internal(err)
	}
	return &user, nil
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user, err := h.self(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.ToProfileResponse(user))
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update")

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.self(c)
	if err != nil {
		return err
	}

	user.Username = req.Username
	user.Email = req.Email
	if err := h.save(c, user); err != nil {
		return err
	}

	l.Info("profile updated", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.ToProfileResponse(user))
}

func (h *ProfileHandler) PatchProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.patch")

	var req transport.PatchProfileRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.self(c)
	if err != nil {
		return err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if err := h.save(c, user); err != nil {
		return err
	}

	l.Info("profile updated", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.ToProfileResponse(user))
}

func (h *ProfileHandler) save(c echo.Context, user *models.User) error {
	ctx := c.Request().Context()

	var other models.User
	err := h.DB.WithContext(ctx).
		Where("username = ? AND id <> ?", user.Username, user.ID).
		First(&other).Error
	if err == nil {
		return httperr.Validation("invalid request body", map[string]string{
			"username": "a user with that username already exists",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.Internal(err)
	}

	if err := h.DB.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return httperr.Validation("invalid request body", map[string]string{
				"username": "a user with that username already exists",
			})
		}
		return httperr.Internal(err)
	}
	return nil
}

// DeleteProfile removes the caller's account. Owned products and the auth
// token go with it in one transaction, mirroring the store-level cascade.
func (h *ProfileHandler) DeleteProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.delete")

	user, err := h.self(c)
	if err != nil {
		return err
	}

	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("created_by_id = ?", user.ID).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, user.ID).Error
	})
	if err != nil {
		return httperr.Internal(err)
	}

	l.Info("account deleted", "user_id", user.ID)
	return c.NoContent(http.StatusNoContent)
}

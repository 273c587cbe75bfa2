package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_api/internal/hash"
	"github.com/Skotchmaster/inventory_api/internal/httperr"
	"github.com/Skotchmaster/inventory_api/internal/logging"
	"github.com/Skotchmaster/inventory_api/internal/models"
	"github.com/Skotchmaster/inventory_api/internal/mykafka"
	"github.com/Skotchmaster/inventory_api/internal/service"
	"github.com/Skotchmaster/inventory_api/internal/transport"
)

type AuthHandler struct {
	DB       *gorm.DB
	Tokens   *service.TokenService
	Producer *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", topic, "error", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var existing models.User
	err := h.DB.WithContext(ctx).Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		l.Warn("register rejected", "reason", "username taken")
		return httperr.Validation("invalid request body", map[string]string{
			"username": "a user with that username already exists",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.Internal(err)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return httperr.Internal(err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
	}
	if err := h.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return httperr.Validation("invalid request body", map[string]string{
				"username": "a user with that username already exists",
			})
		}
		return httperr.Internal(err)
	}

	h.publish(c, mykafka.UserEventsTopic, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("user registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, transport.ToProfileResponse(&user))
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// A single generic failure for both unknown user and wrong password so
	// the endpoint is not a username-existence oracle.
	var user models.User
	if err := h.DB.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login rejected")
			return httperr.Authentication("unable to log in with provided credentials")
		}
		return httperr.Internal(err)
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login rejected")
		return httperr.Authentication("unable to log in with provided credentials")
	}

	token, err := h.Tokens.GetOrCreate(ctx, user.ID)
	if err != nil {
		return httperr.Internal(err)
	}

	h.publish(c, mykafka.UserEventsTopic, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("user logged in", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.LoginResponse{
		Token:    token.Key,
		Username: user.Username,
		Email:    user.Email,
	})
}

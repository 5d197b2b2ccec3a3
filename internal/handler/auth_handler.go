package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/dto"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/gateway/auth"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/session"
	"github.com/labstack/echo/v4"
)

// AuthGateway is the slice of the auth client the handler needs.
type AuthGateway interface {
	CheckAvailability(ctx context.Context, phone string) (bool, error)
	Register(ctx context.Context, phone, password, name string) (*models.User, error)
	Login(ctx context.Context, phone, password string) (*models.User, error)
	ChangePassword(ctx context.Context, phone, oldPassword, newPassword string) error
}

type AuthHandler struct {
	gateway  AuthGateway
	sessions *session.Store
}

func NewAuthHandler(gateway AuthGateway, sessions *session.Store) *AuthHandler {
	return &AuthHandler{gateway: gateway, sessions: sessions}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)
	api.POST("/register", h.Register)
	api.POST("/check-user", h.CheckUser)
	api.POST("/change-password", h.ChangePassword)
	api.GET("/session", h.Session)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Phone == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone and password are required")
	}

	user, err := h.gateway.Login(c.Request().Context(), req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrRejected) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	if err := h.sessions.Save(*user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.SessionResponse{User: *user})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Phone == "" || req.Password == "" || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone, password and name are required")
	}

	user, err := h.gateway.Register(c.Request().Context(), req.Phone, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, auth.ErrRejected) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusCreated, dto.SessionResponse{User: *user})
}

func (h *AuthHandler) CheckUser(c echo.Context) error {
	var req dto.CheckUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	available, err := h.gateway.CheckAvailability(c.Request().Context(), req.Phone)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, dto.AvailabilityResponse{Available: available})
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req dto.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.gateway.ChangePassword(c.Request().Context(), req.Phone, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, auth.ErrRejected) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "password changed"})
}

func (h *AuthHandler) Session(c echo.Context) error {
	record, err := h.sessions.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return echo.NewHTTPError(http.StatusNotFound, "no cached session")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.SessionResponse{User: record.User})
}

package adaptor

import (
	"errors"
	"net/http"

	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/dto/response"
	"smartride-portal/internal/usecase"
	"smartride-portal/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	base
	service usecase.AuthService
}

func NewAuthHandler(b base, service usecase.AuthService) *AuthHandler {
	return &AuthHandler{
		base:    b,
		service: service,
	}
}

// Landing handles GET /
func (h *AuthHandler) Landing(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", response.PortalResponse{
		Page:    "landing",
		Session: sessionResponse(r),
	})
}

// LoginPage handles GET /{role}/login
func (h *AuthHandler) LoginPage(role entity.UserRole) http.HandlerFunc {
	return h.page("login", role)
}

// RegisterPage handles GET /{role}/register
func (h *AuthHandler) RegisterPage(role entity.UserRole) http.HandlerFunc {
	return h.page("register", role)
}

func (h *AuthHandler) page(name string, role entity.UserRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "success", response.PortalResponse{
			Page:    name,
			Portal:  role,
			Session: sessionResponse(r),
		})
	}
}

// Login handles POST /{role}/login
func (h *AuthHandler) Login(role entity.UserRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request.LoginRequest
		if err := decode(r, &req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}

		// Validate request
		if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
			utils.ResponseBadRequest(w, "Validation failed", validationErrors)
			return
		}

		req.Portal = role
		if previous, ok := utils.PortalToken(r); ok {
			req.Previous = &previous
		}
		userAgent, ip := r.UserAgent(), r.RemoteAddr
		req.UserAgent, req.IPAddress = &userAgent, &ip

		resp, session, err := h.service.Login(r.Context(), &req)
		if err != nil {
			if errors.Is(err, usecase.ErrRoleMismatch) {
				// The previous session, if any, is gone too.
				utils.ClearCookie(w, utils.SessionCookie, h.secure)
			}
			h.handleServiceError(w, r, err, "login", "Login failed")
			return
		}

		utils.SetCookie(w, utils.SessionCookie, session.Token.String(), session.ExpiresAt, h.secure)
		utils.ResponseSuccess(w, "Login successful", resp)
	}
}

// Register handles POST /{role}/register
func (h *AuthHandler) Register(role entity.UserRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request.RegisterRequest
		if err := decode(r, &req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
		req.Role = role

		// Validate request
		if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
			utils.ResponseBadRequest(w, "Validation failed", validationErrors)
			return
		}

		msg, err := h.service.Register(r.Context(), &req)
		if err != nil {
			h.handleServiceError(w, r, err, "register", "Registration failed")
			return
		}

		utils.ResponseCreated(w, "Registered successfully. Redirecting to login...", map[string]string{
			"message":  msg,
			"redirect": role.LoginPath(),
		})
	}
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized. Please login.")
		return
	}

	if err := h.service.Logout(r.Context(), session.Token); err != nil {
		h.handleServiceError(w, r, err, "logout", "Logout failed")
		return
	}

	h.log.Info("User logged out", zap.String("role", string(session.Role)))
	utils.ClearCookie(w, utils.SessionCookie, h.secure)
	utils.ResponseSuccess(w, "Logout successful", map[string]string{"redirect": "/"})
}

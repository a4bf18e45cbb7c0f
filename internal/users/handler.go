package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts register, login and profile. requireAuth guards profile.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.GET("/profile", requireAuth, h.profile)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is the wire shape returned by register and login.
type sessionResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func newSessionResponse(s Session) sessionResponse {
	return sessionResponse{ID: s.User.ID, Name: s.User.Name, Email: s.User.Email, Token: s.Token}
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid json body", nil)
		return
	}
	session, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("userId", session.User.ID)
	respond.Created(c, newSessionResponse(session))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid json body", nil)
		return
	}
	session, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			metrics.IncLoginFailure()
		}
		writeError(c, err)
		return
	}
	c.Set("userId", session.User.ID)
	respond.OK(c, newSessionResponse(session))
}

func (h *Handler) profile(c *gin.Context) {
	user, err := h.Svc.GetProfile(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, user)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmailExists):
		respond.Error(c, http.StatusBadRequest, "already_exists", "User already exists", nil)
	case errors.Is(err, ErrWeakPassword):
		respond.Error(c, http.StatusBadRequest, "weak_password", ErrWeakPassword.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
	default:
		respond.Internal(c, err)
	}
}

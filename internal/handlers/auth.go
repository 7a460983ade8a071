package handlers

import (
	"log/slog"
	"net/http"

	"github.com/RaajPratap/books-management-system/internal/auth"
	dom "github.com/RaajPratap/books-management-system/internal/domain"
	"github.com/RaajPratap/books-management-system/internal/dto"
	"github.com/RaajPratap/books-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles register, login and the current-user lookup.
type AuthHandler struct {
	userSvc *service.UserService
	log     *slog.Logger
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(userSvc *service.UserService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{userSvc: userSvc, log: log}
}

// Register godoc
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Account"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.MessageResponse
// @Failure      500   {object}  dto.MessageResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.log.InfoContext(c.Request.Context(), "user registered", "user_id", res.User.ID)
	c.JSON(http.StatusCreated, authToResponse(res))
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.MessageResponse
// @Failure      500   {object}  dto.MessageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.userSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, authToResponse(res))
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.MessageResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	token, ok := auth.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "not authorized, no token"})
		return
	}
	u, err := h.userSvc.WhoAmI(c.Request.Context(), token)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(u))
}

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func authToResponse(res service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{Token: res.Token, User: userToResponse(res.User)}
}

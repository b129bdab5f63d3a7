package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ecommerce-backend/internal/application"
	"github.com/oksasatya/ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/ecommerce-backend/internal/infrastructure/gcs"
	"github.com/oksasatya/ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/ecommerce-backend/pkg/apperr"
	"github.com/oksasatya/ecommerce-backend/pkg/helpers"
	"github.com/oksasatya/ecommerce-backend/pkg/response"
	"github.com/oksasatya/ecommerce-backend/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

// userJSON shapes a user for the response envelope. The password hash and
// token fields never leave the server.
func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"name":        u.Name,
		"email":       u.Email,
		"role":        u.Role,
		"avatar":      u.Avatar,
		"is_verified": u.IsVerified,
		"created_at":  u.CreatedAt,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpwd"`
}

// Register POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "provide all the required fields", validation.ToDetails(err))
		return
	}
	u, sess, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.OK(c, http.StatusCreated, "user registered successfully", response.Envelope{"user": userJSON(u)})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "provide email and password", validation.ToDetails(err))
		return
	}
	u, sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.OK(c, http.StatusOK, "login successful", response.Envelope{"user": userJSON(u)})
}

// Me GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, apperr.Unauthorized("login to access this resource"))
		return
	}
	response.OK(c, http.StatusOK, "", response.Envelope{"user": userJSON(u)})
}

// Logout POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.OK(c, http.StatusOK, "logged out successfully", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword POST /password/forgot?frontendUrl=...
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "provide a valid email", validation.ToDetails(err))
		return
	}
	frontendURL := c.Query("frontendUrl")
	if frontendURL == "" {
		response.FromError(c, apperr.Validation("frontendUrl query parameter is required"))
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email, frontendURL); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "password reset link sent to "+req.Email, nil)
}

type resetPasswordRequest struct {
	Password        string `json:"password" binding:"required,strongpwd"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ResetPassword PUT /password/reset/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "provide a valid new password", validation.ToDetails(err))
		return
	}
	u, sess, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password, req.ConfirmPassword)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.OK(c, http.StatusOK, "password reset successfully", response.Envelope{"user": userJSON(u)})
}

type updatePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,strongpwd"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required"`
}

// UpdatePassword PUT /password/update
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, apperr.Unauthorized("login to access this resource"))
		return
	}
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "provide all the required fields", validation.ToDetails(err))
		return
	}
	if err := h.Svc.UpdatePassword(c.Request.Context(), u, req.CurrentPassword, req.NewPassword, req.ConfirmNewPassword); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "password updated successfully", nil)
}

// UpdateProfile PUT /me/update (multipart, optional file field "avatar")
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, apperr.Unauthorized("login to access this resource"))
		return
	}
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	if name == "" || email == "" {
		response.FromError(c, apperr.Validation("name and email are required"))
		return
	}

	var avatar *application.ImageUpload
	if fh, err := c.FormFile("avatar"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			response.FromError(c, apperr.Validation("could not read avatar file"))
			return
		}
		defer func() { _ = f.Close() }()
		avatar = &application.ImageUpload{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Folder:      gcs.AvatarFolder,
		}
	}

	updated, err := h.Svc.UpdateProfile(c.Request.Context(), u, name, email, avatar)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "profile updated successfully", response.Envelope{"user": userJSON(updated)})
}

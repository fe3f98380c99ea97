package controllers

import (
	"errors"

	"github.com/Deji-py/eco-rider/pkg/resp"
	"github.com/Deji-py/eco-rider/services"
	"github.com/Deji-py/eco-rider/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type OTPReq struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type EmailReq struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordReq struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// POST /auth/register
func (h *AuthController) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := h.Svc.Register(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			resp.Conflict(c, "email already registered")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, gin.H{"userId": user.ID, "email": user.Email})
}

// POST /auth/login
func (h *AuthController) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := h.Svc.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailNotVerified):
			resp.Forbidden(c, "email not verified")
		case errors.Is(err, services.ErrInvalidCredentials):
			resp.Unauthorized(c, "invalid credentials")
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// POST /auth/verify-otp
func (h *AuthController) VerifyOTP(c *gin.Context) {
	var req OTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := h.Svc.VerifyOTP(req.Email, req.Code)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			resp.UnprocessableEntity(c, "invalid or expired code")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// POST /auth/resend-otp
func (h *AuthController) ResendOTP(c *gin.Context) {
	var req EmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.ResendOTP(req.Email); err != nil {
		resp.BadRequest(c, "cannot resend code")
		return
	}
	resp.OK(c, gin.H{"sent": true})
}

// POST /auth/forgot-password
func (h *AuthController) ForgotPassword(c *gin.Context) {
	var req EmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.RequestPasswordReset(req.Email); err != nil {
		resp.ServerError(c, err)
		return
	}
	// same answer whether or not the email exists
	resp.OK(c, gin.H{"sent": true})
}

// POST /auth/reset-password
func (h *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			resp.UnprocessableEntity(c, "invalid or expired code")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"reset": true})
}

// GET /auth/session — derived session state, used by the client router.
func (h *AuthController) Session(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	session, err := h.Svc.CurrentSession(uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, session)
}

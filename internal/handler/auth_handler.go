package handler

import (
	"net/http"

	"printshop/internal/middleware"
	"printshop/internal/model"
	"printshop/internal/service"
	"printshop/internal/utils"
	"printshop/internal/web"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	service      service.AuthService
	flashes      *web.FlashStore
	jwtUtil      *utils.JWTUtil
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, flashes *web.FlashStore, jwtUtil *utils.JWTUtil, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: s, flashes: flashes, jwtUtil: jwtUtil, cookieSecure: cookieSecure}
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type signupForm struct {
	Name            string `form:"name" binding:"required"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,min=6"`
	Role            string `form:"role" binding:"required,oneof=student staff"`
	InstitutionalID string `form:"institutional_id"`
	Batch           string `form:"batch"`
}

func (h *AuthHandler) Index(c *gin.Context) {
	if identity, ok := middleware.CurrentIdentity(c); ok {
		c.Redirect(http.StatusSeeOther, identity.Role.Dashboard())
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if identity, ok := middleware.CurrentIdentity(c); ok {
		c.Redirect(http.StatusSeeOther, identity.Role.Dashboard())
		return
	}
	c.HTML(http.StatusOK, "login.html", page(c, h.flashes, "Log in", gin.H{"Email": ""}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		flashRedirect(c, h.flashes, "error", "Email and password are required", "/login")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		fail(c, h.flashes, err, "/login")
		return
	}

	middleware.SetSessionCookie(c, token, int(h.jwtUtil.TTL().Seconds()), h.cookieSecure)
	c.Redirect(http.StatusSeeOther, user.Role.Dashboard())
}

func (h *AuthHandler) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", page(c, h.flashes, "Sign up", gin.H{"Form": signupForm{Role: string(model.RoleStudent)}}))
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		flashRedirect(c, h.flashes, "error", "Please fill in name, a valid email, a password of at least 6 characters and a role", "/signup")
		return
	}

	_, err := h.service.Register(c.Request.Context(), model.SignupRequest{
		Name:            form.Name,
		Email:           form.Email,
		Password:        form.Password,
		Role:            form.Role,
		InstitutionalID: form.InstitutionalID,
		Batch:           form.Batch,
	})
	if err != nil {
		fail(c, h.flashes, err, "/signup")
		return
	}
	flashRedirect(c, h.flashes, "info", "Account created", "/login")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cookieSecure)
	flashRedirect(c, h.flashes, "info", "You have been logged out", "/login")
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(r gin.IRouter) {
	r.GET("/", h.Index)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/signup", h.SignupPage)
	r.POST("/signup", h.Signup)
	r.GET("/logout", h.Logout)
}

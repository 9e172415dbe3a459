package controller

import (
	"errors"
	"net/http"

	"backend/customerrors"
	"backend/middleware"
	"backend/model"
	"backend/service"
	"backend/validator"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	userSvc service.UserService
}

func NewAuthController(userSvc service.UserService) *AuthController {
	return &AuthController{userSvc: userSvc}
}

func (ctrl *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/csrf/", ctrl.GetCsrfToken)
		authGroup.POST("/register/", ctrl.Register)
		authGroup.POST("/login/", ctrl.Login)
		authGroup.POST("/logout/", ctrl.Logout)

		protected := authGroup.Group("/")
		protected.Use(middleware.RequireLogin())
		{
			protected.GET("/user/", ctrl.CurrentUser)
		}
	}
}

// GetCsrfToken godoc
// @Summary      Issue CSRF Token
// @Description  Stores an anti-forgery token in the session and mirrors it as a cookie
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/csrf/ [get]
func (ctrl *AuthController) GetCsrfToken(c *gin.Context) {
	token, err := middleware.NewCsrfToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to generate CSRF token"})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionKeyCSRF, token)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save session"})
		return
	}

	c.SetCookie(middleware.CsrfCookieName, token, 0, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{
		"detail":    "CSRF cookies set",
		"csrfToken": token,
	})
}

// Register godoc
// @Summary      Register User
// @Description  Creates an account. Does not start a session.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body      model.RegisterRequest  true  "Account details"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /auth/register/ [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password required"})
		return
	}

	if err := validator.RegisterSchema.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password required"})
		return
	}

	if _, err := ctrl.userSvc.CreateUser(c.Request.Context(), req); err != nil {
		if errors.Is(err, customerrors.ErrUserAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{
				"detail": "Username already exists please choose another username",
			})
			return
		}
		log.Error().Err(err).Msg("user registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "User Registered Successfully"})
}

// Login godoc
// @Summary      User Login
// @Description  Verifies credentials and starts a cookie session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      model.LoginRequest  true  "Login credentials"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]string
// @Router       /auth/login/ [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password required"})
		return
	}

	if err := validator.LoginSchema.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password required"})
		return
	}

	user, err := ctrl.userSvc.VerifyCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, customerrors.ErrInvalidCredentials) {
			// Deliberately does not say which field was wrong
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid credentials"})
			return
		}
		log.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionKeyUser, user.Username)
	session.Set(middleware.SessionKeyEmail, user.Email)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"email":    user.Email,
		"detail":   "Login successful",
	})
}

// Logout godoc
// @Summary      User Logout
// @Description  Ends the session. Succeeds even when no session exists.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout/ [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "User Logged out successfully"})
}

// CurrentUser godoc
// @Summary      Get Current User
// @Description  Returns the identity bound to the session cookie
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /auth/user/ [get]
func (ctrl *AuthController) CurrentUser(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      user.Username,
		"email":         user.Email,
	})
}

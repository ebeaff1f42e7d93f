package controllers

import (
	"strings"
	"time"

	"github.com/Mina-Sayed/tocaan-payment-api/config"
	"github.com/Mina-Sayed/tocaan-payment-api/models"
	"github.com/Mina-Sayed/tocaan-payment-api/utils"
	"github.com/gin-gonic/gin"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account and issues a token
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Registration failed - invalid request: %v", err)
		utils.ValidationError(c, "Invalid registration data", err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existing int64
	config.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&existing)
	if existing > 0 {
		utils.LogError("Registration failed - email already in use: %s", req.Email)
		utils.Conflict(c, "Email is already registered")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Registration failed - could not hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Registration failed - could not create user: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for new user: %s", req.Email)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.LogInfo("User registered successfully: %s", req.Email)
	utils.Created(c, "Registration successful", gin.H{
		"user":  user,
		"token": tokenPayload(token),
	})
}

// Login authenticates a user and issues a token
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Login failed - invalid request: %v", err)
		utils.BadRequest(c, "Invalid email or password", err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login failed - user not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login failed - wrong password for: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user: %s", req.Email)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.LogInfo("User logged in successfully: %s", req.Email)
	utils.Success(c, "Login successful", tokenPayload(token))
}

// Me returns the authenticated user
func Me(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	utils.Success(c, "User retrieved", gin.H{"user": userVal.(models.User)})
}

// Refresh issues a fresh token for the authenticated user
func Refresh(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to refresh token for user: %d", user.ID)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.Success(c, "Token refreshed", tokenPayload(token))
}

// Logout blacklists the presented token until it expires
func Logout(c *gin.Context) {
	tokenVal, exists := c.Get("token")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	tokenString := tokenVal.(string)

	expiresAt := utils.TokenExpiry(tokenString)
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(utils.TokenTTL)
	}

	blacklisted := models.BlacklistedToken{
		Token:     tokenString,
		ExpiresAt: expiresAt,
	}
	if err := config.DB.Create(&blacklisted).Error; err != nil {
		utils.LogError("Failed to blacklist token: %v", err)
		utils.InternalServerError(c, "Failed to log out", nil)
		return
	}

	utils.Success(c, "Successfully logged out", nil)
}

func tokenPayload(token string) gin.H {
	return gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(utils.TokenTTL.Seconds()),
	}
}

package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fairwayclub/fantasy-golf/internal/api/middleware"
	"github.com/fairwayclub/fantasy-golf/internal/models"
	"github.com/fairwayclub/fantasy-golf/internal/services"
	"github.com/fairwayclub/fantasy-golf/pkg/config"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
	"github.com/fairwayclub/fantasy-golf/pkg/utils"
)

const otpTTL = 10 * time.Minute

type AuthHandler struct {
	db     *database.DB
	cfg    *config.Config
	cache  *services.CacheService
	sms    services.SMSService
	logger *logrus.Logger
}

func NewAuthHandler(db *database.DB, cfg *config.Config, cache *services.CacheService, sms services.SMSService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		db:     db,
		cfg:    cfg,
		cache:  cache,
		sms:    sms,
		logger: logger,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type authResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid registration payload", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendInternalError(c, "Failed to process password")
		return
	}

	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		utils.SendConflict(c, "Email or username already registered")
		return
	}

	h.logger.WithField("user", user.ID).Info("User registered")
	h.issueTokens(c, &user)
}

// Login exchanges credentials for a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid login payload", err.Error())
		return
	}

	var user models.User
	err := h.db.WithContext(c.Request.Context()).Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		utils.SendUnauthorized(c, "Invalid email or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.SendUnauthorized(c, "Invalid email or password")
		return
	}

	h.issueTokens(c, &user)
}

// Refresh rotates a refresh token into a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid refresh payload", err.Error())
		return
	}

	ctx := c.Request.Context()
	var stored models.RefreshToken
	err := h.db.WithContext(ctx).Where("token = ?", req.RefreshToken).First(&stored).Error
	if err != nil || !stored.Valid(time.Now()) {
		utils.SendUnauthorized(c, "Invalid or expired refresh token")
		return
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, stored.UserID).Error; err != nil {
		utils.SendUnauthorized(c, "Account no longer exists")
		return
	}

	now := time.Now()
	if err := h.db.WithContext(ctx).Model(&stored).Update("revoked_at", &now).Error; err != nil {
		utils.SendInternalError(c, "Failed to rotate refresh token")
		return
	}

	h.issueTokens(c, &user)
}

// Logout revokes every outstanding refresh token for the user
func (h *AuthHandler) Logout(c *gin.Context) {
	now := time.Now()
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", middleware.UserID(c)).
		Update("revoked_at", &now).Error
	if err != nil {
		utils.SendInternalError(c, "Failed to log out")
		return
	}
	utils.SendSuccess(c, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	var user models.User
	err := h.db.WithContext(c.Request.Context()).First(&user, middleware.UserID(c)).Error
	if err != nil {
		utils.SendNotFound(c, "User not found")
		return
	}
	utils.SendSuccess(c, user)
}

type sendCodeRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type verifyPhoneRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Code        string `json:"code" binding:"required,len=6"`
}

// SendPhoneCode texts a one-time code to the given number
func (h *AuthHandler) SendPhoneCode(c *gin.Context) {
	var req sendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid phone payload", err.Error())
		return
	}

	code, err := generateOTP()
	if err != nil {
		utils.SendInternalError(c, "Failed to generate verification code")
		return
	}

	ctx := c.Request.Context()
	if err := h.cache.Set(ctx, services.OTPCacheKey(req.PhoneNumber), code, otpTTL); err != nil {
		utils.SendInternalError(c, "Failed to store verification code")
		return
	}
	if err := h.sms.SendOTP(req.PhoneNumber, code); err != nil {
		utils.SendConflict(c, err.Error())
		return
	}

	utils.SendSuccess(c, gin.H{"message": "Verification code sent"})
}

// VerifyPhone confirms the code and marks the user's phone as verified
func (h *AuthHandler) VerifyPhone(c *gin.Context) {
	var req verifyPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid verification payload", err.Error())
		return
	}

	ctx := c.Request.Context()
	var stored string
	if err := h.cache.Get(ctx, services.OTPCacheKey(req.PhoneNumber), &stored); err != nil || stored != req.Code {
		utils.SendValidationError(c, "Invalid or expired verification code", "")
		return
	}
	h.cache.Delete(ctx, services.OTPCacheKey(req.PhoneNumber))

	err := h.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", middleware.UserID(c)).
		Updates(map[string]interface{}{
			"phone_number":   req.PhoneNumber,
			"phone_verified": true,
		}).Error
	if err != nil {
		utils.SendInternalError(c, "Failed to update phone number")
		return
	}

	utils.SendSuccess(c, gin.H{"message": "Phone number verified"})
}

func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) {
	accessToken, err := middleware.GenerateToken(h.cfg.JWTSecret, h.cfg.TokenTTL, user.ID, user.Username, user.IsAdmin)
	if err != nil {
		utils.SendInternalError(c, "Failed to issue access token")
		return
	}

	refreshToken, err := randomToken()
	if err != nil {
		utils.SendInternalError(c, "Failed to issue refresh token")
		return
	}
	record := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(h.cfg.RefreshTokenTTL),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&record).Error; err != nil {
		utils.SendInternalError(c, "Failed to persist refresh token")
		return
	}

	utils.SendSuccess(c, authResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// sendServiceError maps service sentinels onto the response taxonomy
func sendServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTournamentNotFound),
		errors.Is(err, services.ErrGolferNotFound),
		errors.Is(err, services.ErrSeasonNotFound),
		errors.Is(err, services.ErrPickNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, services.ErrRosterSize),
		errors.Is(err, services.ErrDuplicateGolfer),
		errors.Is(err, services.ErrCaptainNotInRoster),
		errors.Is(err, services.ErrGolferInactive),
		errors.Is(err, services.ErrBudgetExceeded):
		utils.SendValidationError(c, err.Error(), "")
	case errors.Is(err, services.ErrTransfersLocked),
		errors.Is(err, services.ErrNewTeamsDisabled),
		errors.Is(err, services.ErrTransferLimit):
		utils.SendStateLocked(c, err.Error())
	default:
		utils.SendInternalError(c, "Something went wrong")
	}
}

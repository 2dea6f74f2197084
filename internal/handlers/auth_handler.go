package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/audit"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/config"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httperr"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/middleware"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, dispatcher *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: dispatcher}
}

// --------- Requests ---------

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type TechnicianSignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`

	Specialization  string `json:"specialization" binding:"required"`
	ExperienceYears int    `json:"experience_years"`
	District        string `json:"district" binding:"required"`
	Province        string `json:"province" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	account, err := h.createAccount(c, req.Name, req.Email, req.Password, req.Phone, models.RoleCustomer)
	if err != nil {
		return
	}

	token, err := h.generateToken(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &account.ID,
		Action:   "customer_signed_up",
		Entity:   "account",
		EntityID: &account.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":  accountView(account),
		"token": token,
	})
}

func (h *AuthHandler) TechnicianSignup(c *gin.Context) {
	var req TechnicianSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validators.IsRwandanPhone(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Phone number must be a valid Rwandan mobile number.")
		return
	}

	account, err := h.createAccount(c, req.Name, req.Email, req.Password, req.Phone, models.RoleTechnician)
	if err != nil {
		return
	}

	profile := models.TechnicianProfile{
		AccountID:       account.ID,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		District:        req.District,
		Province:        req.Province,
		Status:          models.ApprovalPending,
	}

	if err := h.db.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_profile"})
		return
	}
	account.TechnicianProfile = &profile

	token, err := h.generateToken(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &account.ID,
		Action:   "technician_signed_up",
		Entity:   "account",
		EntityID: &account.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":  accountView(account),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var account models.Account
	if err := h.db.Preload("TechnicianProfile").
		Where("email = ?", email).
		First(&account).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	if !account.Active {
		httperr.Forbidden(c, "account_inactive", "This account has been deactivated.")
		return
	}

	token, err := h.generateToken(&account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &account.ID,
		Action:   "logged_in",
		Entity:   "account",
		EntityID: &account.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user":  accountView(&account),
		"token": token,
	})
}

// Me returns the principal the verifier attached to the request.
func (h *AuthHandler) Me(c *gin.Context) {
	account := c.MustGet(middleware.ContextAccount).(*models.Account)
	c.JSON(http.StatusOK, gin.H{"user": accountView(account)})
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	account := c.MustGet(middleware.ContextAccount).(*models.Account)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Name cannot be empty.")
			return
		}
		account.Name = name
	}
	if req.Phone != nil {
		if !validators.IsRwandanPhone(*req.Phone) {
			httperr.BadRequest(c, "invalid_phone", "Phone number must be a valid Rwandan mobile number.")
			return
		}
		account.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := h.db.Save(account).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not save your profile.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": accountView(account)})
}

// --------- Helpers ---------

func (h *AuthHandler) createAccount(
	c *gin.Context,
	name, email, password, phone string,
	role models.Role,
) (*models.Account, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
		return nil, gorm.ErrInvalidData
	}

	var count int64
	h.db.Model(&models.Account{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered", "An account with this email already exists.")
		return nil, gorm.ErrInvalidData
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return nil, err
	}

	account := models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        phone,
		Role:         role,
		Active:       true,
	}

	if err := h.db.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_account"})
		return nil, err
	}

	return &account, nil
}

func accountView(account *models.Account) gin.H {
	view := gin.H{
		"id":     account.ID,
		"name":   account.Name,
		"email":  account.Email,
		"phone":  account.Phone,
		"role":   account.Role,
		"active": account.Active,
	}
	if account.TechnicianProfile != nil {
		view["technician_profile"] = account.TechnicianProfile
	}
	return view
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(account *models.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":  account.ID,
		"role": account.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

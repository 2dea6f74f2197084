package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/config"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httperr"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
)

const (
	ContextAccountID = "accountID"
	ContextAccount   = "account"
	ContextRole      = "accountRole"
)

// AccountSource loads the account behind a verified token, with the
// technician profile joined in when present.
type AccountSource interface {
	FindAccountByID(ctx context.Context, id uint) (*models.Account, error)
}

// Authenticate verifies the bearer token, loads the account and
// attaches it to the request context. It does not check roles; chain
// a Require* gate after it.
func Authenticate(cfg *config.Config, accounts AccountSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "missing_token", "Authorization header is required.")
			return
		}

		tokenString := authHeader
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenString = parts[1]
		}
		if strings.TrimSpace(tokenString) == "" {
			abort(c, http.StatusUnauthorized, "missing_token", "Authorization header is required.")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abort(c, http.StatusUnauthorized, "token_expired", "Your session has expired, please log in again.")
				return
			}
			abort(c, http.StatusUnauthorized, "invalid_token", "Invalid authentication token.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abort(c, http.StatusUnauthorized, "invalid_token", "Invalid authentication token.")
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			abort(c, http.StatusUnauthorized, "invalid_token", "Invalid authentication token.")
			return
		}

		account, err := accounts.FindAccountByID(c.Request.Context(), uint(sub))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abort(c, http.StatusUnauthorized, "account_not_found", "Account no longer exists.")
				return
			}
			abort(c, http.StatusInternalServerError, "internal_error", "Could not verify your account.")
			return
		}

		if !account.Active {
			abort(c, http.StatusForbidden, "account_inactive", "This account has been deactivated.")
			return
		}

		c.Set(ContextAccountID, account.ID)
		c.Set(ContextAccount, account)
		c.Set(ContextRole, account.Role)

		c.Next()
	}
}

// RequireCustomer admits only CUSTOMER accounts.
func RequireCustomer() gin.HandlerFunc {
	return requireRole(models.RoleCustomer)
}

// RequireAdmin admits only ADMIN accounts.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(models.RoleAdmin)
}

// RequireTechnician admits only TECHNICIAN accounts whose profile has
// been approved. PENDING and REJECTED profiles get distinct messages.
func RequireTechnician() gin.HandlerFunc {
	return func(c *gin.Context) {
		account := c.MustGet(ContextAccount).(*models.Account)

		if account.Role != models.RoleTechnician {
			abort(c, http.StatusForbidden, "role_mismatch", "This action requires a technician account.")
			return
		}

		profile := account.TechnicianProfile
		if profile == nil {
			abort(c, http.StatusForbidden, "profile_missing", "No technician profile found for this account.")
			return
		}

		switch profile.Status {
		case models.ApprovalApproved:
			c.Next()
		case models.ApprovalPending:
			abort(c, http.StatusForbidden, "not_approved", "Your technician profile is pending approval.")
		case models.ApprovalRejected:
			abort(c, http.StatusForbidden, "not_approved", "Your technician profile was rejected, contact support.")
		default:
			abort(c, http.StatusForbidden, "not_approved", "Your technician profile is not approved.")
		}
	}
}

func requireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := c.MustGet(ContextAccount).(*models.Account)
		if account.Role != role {
			abort(c, http.StatusForbidden, "role_mismatch", "You do not have permission to perform this action.")
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, httperr.HTTPError{
		Code:    code,
		Message: message,
	})
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/audit"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httperr"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/middleware"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/timezone"
)

type TechnicianHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewTechnicianHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *TechnicianHandler {
	return &TechnicianHandler{db: db, audit: dispatcher}
}

// ======================================================
// PUBLIC / CUSTOMER BROWSING
// ======================================================

// Browse lists approved, active technicians. Supports district,
// province, specialization and free-text filters.
func (h *TechnicianHandler) Browse(c *gin.Context) {
	district := strings.ToLower(strings.TrimSpace(c.Query("district")))
	province := strings.ToLower(strings.TrimSpace(c.Query("province")))
	specialization := strings.ToLower(strings.TrimSpace(c.Query("specialization")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.
		Joins("JOIN technician_profiles ON technician_profiles.account_id = accounts.id").
		Where("accounts.role = ? AND accounts.active = ?", models.RoleTechnician, true).
		Where("technician_profiles.status = ?", models.ApprovalApproved).
		Preload("TechnicianProfile")

	if district != "" {
		q = q.Where("LOWER(technician_profiles.district) = ?", district)
	}
	if province != "" {
		q = q.Where("LOWER(technician_profiles.province) = ?", province)
	}
	if specialization != "" {
		q = q.Where("LOWER(technician_profiles.specialization) = ?", specialization)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(accounts.name) LIKE ? OR LOWER(technician_profiles.specialization) LIKE ?",
			like, like,
		)
	}

	var technicians []models.Account
	if err := q.
		Order("accounts.created_at DESC").
		Find(&technicians).Error; err != nil {

		httperr.Internal(c, "failed_to_list_technicians", "Could not load technicians.")
		return
	}

	views := make([]gin.H, 0, len(technicians))
	for i := range technicians {
		views = append(views, accountView(&technicians[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  views,
		"total": len(views),
	})
}

func (h *TechnicianHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var technician models.Account
	if err := h.db.
		Preload("TechnicianProfile").
		Where("id = ? AND role = ? AND active = ?", id, models.RoleTechnician, true).
		First(&technician).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "technician_not_found", "Technician not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_technician", "Could not load technician.")
		return
	}

	if technician.TechnicianProfile == nil ||
		technician.TechnicianProfile.Status != models.ApprovalApproved {
		httperr.NotFound(c, "technician_not_found", "Technician not found.")
		return
	}

	c.JSON(http.StatusOK, accountView(&technician))
}

// ======================================================
// ADMIN
// ======================================================

func (h *TechnicianHandler) AdminList(c *gin.Context) {
	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))

	q := h.db.
		Joins("JOIN technician_profiles ON technician_profiles.account_id = accounts.id").
		Where("accounts.role = ?", models.RoleTechnician).
		Preload("TechnicianProfile")

	if status != "" {
		q = q.Where("technician_profiles.status = ?", status)
	}

	var technicians []models.Account
	if err := q.
		Order("accounts.created_at DESC").
		Find(&technicians).Error; err != nil {

		httperr.Internal(c, "failed_to_list_technicians", "Could not load technicians.")
		return
	}

	c.JSON(http.StatusOK, technicians)
}

func (h *TechnicianHandler) Approve(c *gin.Context) {
	h.review(c, models.ApprovalApproved, "technician_approved")
}

func (h *TechnicianHandler) Reject(c *gin.Context) {
	h.review(c, models.ApprovalRejected, "technician_rejected")
}

// review moves a PENDING profile to its decided status.
func (h *TechnicianHandler) review(c *gin.Context, decision models.ApprovalStatus, action string) {
	adminID := c.MustGet(middleware.ContextAccountID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var profile models.TechnicianProfile
	if err := h.db.Where("account_id = ?", id).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "technician_not_found", "Technician not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_technician", "Could not load technician.")
		return
	}

	if profile.Status != models.ApprovalPending {
		httperr.BadRequest(c, "invalid_state", "Only pending profiles can be reviewed.")
		return
	}

	now := timezone.Now()
	profile.Status = decision
	profile.ReviewedAt = &now

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_technician", "Could not save the decision.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   action,
		Entity:   "technician_profile",
		EntityID: &profile.ID,
	})

	c.JSON(http.StatusOK, profile)
}

func (h *TechnicianHandler) Deactivate(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextAccountID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var account models.Account
	if err := h.db.First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "account_not_found", "Account not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_account", "Could not load account.")
		return
	}

	account.Active = false
	if err := h.db.Save(&account).Error; err != nil {
		httperr.Internal(c, "failed_to_update_account", "Could not deactivate account.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   "account_deactivated",
		Entity:   "account",
		EntityID: &account.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated."})
}

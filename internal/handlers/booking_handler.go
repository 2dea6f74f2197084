package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/audit"
	domain "github.com/Tech-Care-Rwanda/tech-care-sub001/internal/domain/booking"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httperr"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/middleware"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBookingHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *BookingHandler {
	return &BookingHandler{db: db, audit: dispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	TechnicianID uint   `json:"technician_id" binding:"required"`
	LocationID   uint   `json:"location_id" binding:"required"`
	Service      string `json:"service" binding:"required"`
	Description  string `json:"description"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	Time         string `json:"time" binding:"required"` // HH:mm
	Notes        string `json:"notes"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextAccountID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	// The location must exist and belong to the booking customer.
	var loc models.Location
	if err := h.db.First(&loc, req.LocationID).Error; err != nil {
		httperr.BadRequest(c, "location_not_found", "Location not found.")
		return
	}
	if loc.CustomerID != customerID {
		httperr.Forbidden(c, "location_forbidden", "You do not have access to this location.")
		return
	}

	// Only approved, active technicians take bookings.
	var technician models.Account
	if err := h.db.
		Preload("TechnicianProfile").
		Where("id = ? AND role = ? AND active = ?", req.TechnicianID, models.RoleTechnician, true).
		First(&technician).Error; err != nil {

		httperr.BadRequest(c, "technician_not_found", "Technician not found.")
		return
	}
	if technician.TechnicianProfile == nil ||
		technician.TechnicianProfile.Status != models.ApprovalApproved {
		httperr.BadRequest(c, "technician_not_approved", "This technician is not accepting bookings.")
		return
	}

	scheduledAt, err := timezone.ParseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}
	if scheduledAt.Before(timezone.Now()) {
		httperr.BadRequest(c, "scheduled_in_past", "A booking must be scheduled in the future.")
		return
	}

	booking := models.Booking{
		Reference:    uuid.NewString(),
		CustomerID:   customerID,
		TechnicianID: technician.ID,
		LocationID:   loc.ID,
		Service:      req.Service,
		Description:  req.Description,
		ScheduledAt:  scheduledAt,
		Status:       string(domain.InitialStatus()),
		Notes:        req.Notes,
	}

	if err := h.db.Create(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_create_booking", "Could not create the booking.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &customerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &booking.ID,
	})

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextAccountID).(uint)

	var bookings []models.Booking
	if err := h.db.
		Preload("Technician").
		Preload("Location").
		Where("customer_id = ?", customerID).
		Order("scheduled_at DESC").
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_bookings", "Could not load your bookings.")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextAccountID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var booking models.Booking
	if err := h.db.
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&booking).Error; err != nil {

		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if err := domain.Cancel(&booking, timezone.Now()); err != nil {
		httperr.BadRequest(c, "invalid_state", "This booking can no longer be cancelled.")
		return
	}

	if err := h.db.Save(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_cancel_booking", "Could not cancel the booking.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &customerID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &booking.ID,
	})

	c.JSON(http.StatusOK, booking)
}

// ======================================================
// TECHNICIAN
// ======================================================

func (h *BookingHandler) ListAssigned(c *gin.Context) {
	technicianID := c.MustGet(middleware.ContextAccountID).(uint)

	var bookings []models.Booking
	if err := h.db.
		Preload("Customer").
		Preload("Location").
		Where("technician_id = ?", technicianID).
		Order("scheduled_at ASC").
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_bookings", "Could not load assigned bookings.")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, "booking_confirmed", domain.Confirm)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, "booking_completed", domain.Complete)
}

func (h *BookingHandler) transition(
	c *gin.Context,
	action string,
	apply func(*models.Booking, time.Time) error,
) {
	technicianID := c.MustGet(middleware.ContextAccountID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var booking models.Booking
	if err := h.db.
		Where("id = ? AND technician_id = ?", id, technicianID).
		First(&booking).Error; err != nil {

		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if err := apply(&booking, timezone.Now()); err != nil {
		httperr.BadRequest(c, "invalid_state", "This booking cannot change to that state.")
		return
	}

	if err := h.db.Save(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_update_booking", "Could not update the booking.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &technicianID,
		Action:   action,
		Entity:   "booking",
		EntityID: &booking.ID,
	})

	c.JSON(http.StatusOK, booking)
}

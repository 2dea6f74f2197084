package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/geocode"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httperr"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httpresp"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/middleware"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/models"
	ucLocation "github.com/Tech-Care-Rwanda/tech-care-sub001/internal/usecase/location"
)

// ======================================================
// HANDLER
// ======================================================

type LocationHandler struct {
	create *ucLocation.CreateLocation
	list   *ucLocation.ListLocations
	get    *ucLocation.GetLocation
	update *ucLocation.UpdateLocation
	delete *ucLocation.DeleteLocation
}

func NewLocationHandler(
	create *ucLocation.CreateLocation,
	list *ucLocation.ListLocations,
	get *ucLocation.GetLocation,
	update *ucLocation.UpdateLocation,
	del *ucLocation.DeleteLocation,
) *LocationHandler {
	return &LocationHandler{
		create: create,
		list:   list,
		get:    get,
		update: update,
		delete: del,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateLocationRequest struct {
	AddressName string `json:"address_name"`
	Description string `json:"description"`
	District    string `json:"district"`
	Province    string `json:"province"`
}

type UpdateLocationRequest struct {
	AddressName string `json:"address_name"`
	Description string `json:"description"`
	District    string `json:"district"`
	Province    string `json:"province"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *LocationHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextAccountID).(uint)

	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	loc, err := h.create.Execute(c.Request.Context(), ucLocation.CreateLocationInput{
		CustomerID:  customerID,
		AddressName: req.AddressName,
		Description: req.Description,
		District:    req.District,
		Province:    req.Province,
	})
	if err != nil {
		writeLocationError(c, err)
		return
	}

	httpresp.Created(c, loc)
}

func (h *LocationHandler) List(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextAccountID).(uint)

	locations, err := h.list.Execute(c.Request.Context(), customerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_locations", "Could not load your locations.")
		return
	}

	httpresp.List(c, locations)
}

func (h *LocationHandler) Get(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	role := c.MustGet(middleware.ContextRole).(models.Role)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	loc, err := h.get.Execute(c.Request.Context(), accountID, role, id)
	if err != nil {
		writeLocationError(c, err)
		return
	}

	httpresp.OK(c, loc)
}

func (h *LocationHandler) Update(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextAccountID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	loc, err := h.update.Execute(c.Request.Context(), ucLocation.UpdateLocationInput{
		CustomerID:  customerID,
		LocationID:  id,
		AddressName: req.AddressName,
		Description: req.Description,
		District:    req.District,
		Province:    req.Province,
	})
	if err != nil {
		writeLocationError(c, err)
		return
	}

	httpresp.OK(c, loc)
}

func (h *LocationHandler) Delete(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextAccountID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), customerID, id); err != nil {
		writeLocationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted."})
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

// writeLocationError maps use-case outcome codes to HTTP statuses.
func writeLocationError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch code {
	case ucLocation.CodeMissingFields:
		httperr.BadRequest(c, code, "Description, district and province are required.")
	case geocode.CodeGeocodeFailed:
		httperr.BadRequest(c, code, "Could not resolve this address, please provide a valid address.")
	case ucLocation.CodeNotFound:
		httperr.NotFound(c, code, "Location not found.")
	case ucLocation.CodeForbidden:
		httperr.Forbidden(c, code, "You do not have access to this location.")
	case ucLocation.CodeHasBookings:
		httperr.BadRequest(c, code, "Cannot delete a location linked to bookings.")
	default:
		httperr.Internal(c, code, "Something went wrong.")
	}
}

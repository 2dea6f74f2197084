package location

// Outcome codes shared by the location use cases. The handler layer
// maps them to HTTP statuses.
const (
	CodeMissingFields = "missing_required_fields"
	CodeNotFound      = "location_not_found"
	CodeForbidden     = "location_forbidden"
	CodeHasBookings   = "location_has_bookings"
)

const defaultAddressName = "Home"

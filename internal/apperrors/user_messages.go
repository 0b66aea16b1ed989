package apperrors

// User-friendly error messages
const (
	MsgFeedUnavailable  = "Listing data is temporarily unavailable. Please try again in a few minutes."
	MsgResolutionFailed = "We couldn't pinpoint that location right now. Please try again or provide a street address."
	MsgInvalidSearch    = "The search request is incomplete. City, property type, price and build area are required."
	MsgRateLimited      = "You're searching too quickly! Please wait a moment and try again."
	MsgInternalError    = "Something went wrong on our end. Please try again later."
)

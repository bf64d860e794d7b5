package constants

const (
	NotFound            = "{\"message\":\"We couldn't find this resource anywhere!\",\"error\":true}"
	NotFoundPage        = "{\"message\":\"This endpoint doesn't exist!\",\"error\":true}"
	BadRequest          = "{\"message\":\"The request was malformed or missing required fields\",\"error\":true}"
	Forbidden           = "{\"message\":\"You're not allowed to do this!\",\"error\":true}"
	Unauthorized        = "{\"message\":\"You're not authorized to do this, did you forget an API token?\",\"error\":true}"
	InternalError       = "{\"message\":\"Something went wrong on our end!\",\"error\":true}"
	MethodNotAllowed    = "{\"message\":\"That method is not allowed for this endpoint!\",\"error\":true}"
	BodyRequired        = "{\"message\":\"This endpoint requires a request body\",\"error\":true}"
	Success             = "{\"message\":\"Success!\",\"error\":false}"
	TimelineUnavailable = "{\"message\":\"Timeline unavailable, please retry\",\"error\":true}"
)

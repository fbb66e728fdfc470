package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrNotFound = ErrorResponse{
		Status:  "error",
		Error:   "not_found",
		Details: "No card at this position",
	}

	ErrInvalidTheme = ErrorResponse{
		Status:  "error",
		Error:   "invalid_theme",
		Details: "Theme must be light or red-black",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Internal server error",
	}

	ErrUnavailable = ErrorResponse{
		Status: "error",
		Error:  "unavailable",
	}
)

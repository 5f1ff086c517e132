package api

import "github.com/samscloud-io/trace-api/store"

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1001: "invalid authorization format",
		1002: "phone number does not match our records",
		1003: "invalid token",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1100: store.ErrPhoneNumberTaken.Error(),
		1101: store.ErrSubjectNotFound.Error(),

		1200: store.ErrUnknownTestResult.Error(),
		1201: store.ErrReportNotFound.Error(),

		1300: store.ErrEventNotFound.Error(),
		1301: store.ErrNotEventOwner.Error(),
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorPhoneMismatch              = errorJSON(1002)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorPhoneNumberTaken = errorJSON(1100)
	errorSubjectNotFound  = errorJSON(1101)

	errorUnknownTestResult = errorJSON(1200)
	errorReportNotFound    = errorJSON(1201)

	errorEventNotFound = errorJSON(1300)
	errorNotEventOwner = errorJSON(1301)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}

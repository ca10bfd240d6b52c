package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	CodeOK                  = 0
	CodeBadRequest          = 1
	CodeUnauthorized        = 401
	CodeForbidden           = 403
	CodeTooManyRequests     = 429
	InternalServerErrorCode = 500
	CodeUnavailable         = 503

	DateTimeFormat = "2006-01-02 15:04:05"
)

package apperrors

// ErrorCode is the stable machine code sent in console JSON error bodies.
// The values mirror the client failure categories so the browser can branch on them.
type ErrorCode string

const (
	ErrCodeAuthenticationFailure ErrorCode = "authentication_failure"
	ErrCodeAuthorizationFailure  ErrorCode = "authorization_failure"
	ErrCodeClientInput           ErrorCode = "client_input_error"
	ErrCodeInternalError         ErrorCode = "internal_error"
	ErrCodeInvalidURLParam       ErrorCode = "invalid_url_param"
	ErrCodeLocalConfiguration    ErrorCode = "local_configuration_error"
	ErrCodeMalformedBody         ErrorCode = "malformed_body"
	ErrCodeMalformedResponse     ErrorCode = "malformed_response"
	ErrCodeNetworkUnreachable    ErrorCode = "network_unreachable"
	ErrCodeRateLimitExceeded     ErrorCode = "rate_limit_exceeded"
	ErrCodeRequestTooLarge       ErrorCode = "request_too_large"
	ErrCodeResourceNotFound      ErrorCode = "resource_not_found"
	ErrCodeServerFault           ErrorCode = "server_fault"
	ErrCodeSessionExpired        ErrorCode = "session_expired"
	ErrCodeUnexpectedStatus      ErrorCode = "unexpected_status"
	ErrCodeValidationFailure     ErrorCode = "validation_failure"
)

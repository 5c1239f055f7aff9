package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/survey-system/surveyconsole/internal/apperrors"
)

// Category classifies a failed call. Every failure belongs to exactly one category.
type Category int

const (
	CategoryClientInput        Category = iota // 400
	CategoryAuthentication                     // 401
	CategoryAuthorization                      // 403
	CategoryNotFound                           // 404
	CategoryValidation                         // 422
	CategoryServerFault                        // 500
	CategoryUnexpectedStatus                   // any other non-2xx status
	CategoryNetworkUnreachable                 // no response received (includes timeouts)
	CategoryLocalConfiguration                 // the request could not be built, nothing was sent
	CategoryMalformedResponse                  // 2xx response that could not be decoded

	categoryCount
)

// Effect is the side effect a category has beyond the notification
type Effect int

const (
	EffectNone Effect = iota
	// EffectEndSession clears the stored credential and redirects to login
	EffectEndSession
)

// outcome is what happens for a category. outcomes must have an entry for every category
type outcome struct {
	name        string
	code        apperrors.ErrorCode
	effect      Effect
	level       Level
	userMessage func(status int, detail string) string
}

func prefixed(prefix string) func(int, string) string {
	return func(_ int, detail string) string {
		return prefix + ": " + detail
	}
}

func fixed(msg string) func(int, string) string {
	return func(int, string) string {
		return msg
	}
}

var outcomes = [categoryCount]outcome{
	CategoryClientInput: {
		name: "client_input", code: apperrors.ErrCodeClientInput,
		effect: EffectNone, level: LevelError, userMessage: prefixed("Request error"),
	},
	CategoryAuthentication: {
		name: "authentication", code: apperrors.ErrCodeAuthenticationFailure,
		effect: EffectEndSession, level: LevelError, userMessage: prefixed("Authentication failed"),
	},
	CategoryAuthorization: {
		name: "authorization", code: apperrors.ErrCodeAuthorizationFailure,
		effect: EffectNone, level: LevelError, userMessage: prefixed("Insufficient permissions"),
	},
	CategoryNotFound: {
		name: "not_found", code: apperrors.ErrCodeResourceNotFound,
		effect: EffectNone, level: LevelError, userMessage: prefixed("Resource not found"),
	},
	CategoryValidation: {
		name: "validation", code: apperrors.ErrCodeValidationFailure,
		effect: EffectNone, level: LevelError, userMessage: prefixed("Validation failed"),
	},
	CategoryServerFault: {
		name: "server_fault", code: apperrors.ErrCodeServerFault,
		effect: EffectNone, level: LevelError, userMessage: prefixed("Internal server error"),
	},
	CategoryUnexpectedStatus: {
		name: "unexpected_status", code: apperrors.ErrCodeUnexpectedStatus,
		effect: EffectNone, level: LevelError,
		userMessage: func(status int, detail string) string {
			return fmt.Sprintf("Error %d: %s", status, detail)
		},
	},
	CategoryNetworkUnreachable: {
		name: "network_unreachable", code: apperrors.ErrCodeNetworkUnreachable,
		effect: EffectNone, level: LevelError,
		userMessage: fixed("Network connection failed, please check your network settings."),
	},
	CategoryLocalConfiguration: {
		name: "local_configuration", code: apperrors.ErrCodeLocalConfiguration,
		effect: EffectNone, level: LevelError, userMessage: fixed("Request configuration error."),
	},
	CategoryMalformedResponse: {
		name: "malformed_response", code: apperrors.ErrCodeMalformedResponse,
		effect: EffectNone, level: LevelError, userMessage: fixed("The server returned an unexpected response."),
	},
}

func (c Category) valid() bool {
	return c >= 0 && c < categoryCount
}

func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return outcomes[c].name
}

// Code is the machine readable code used in console error responses
func (c Category) Code() apperrors.ErrorCode {
	if !c.valid() {
		return apperrors.ErrCodeInternalError
	}
	return outcomes[c].code
}

func (c Category) Effect() Effect {
	if !c.valid() {
		return EffectNone
	}
	return outcomes[c].effect
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	for i, o := range outcomes {
		if o.name == string(text) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", text)
}

// CategoryForStatus maps a non-2xx http status to its category
func CategoryForStatus(status int) Category {
	switch status {
	case http.StatusBadRequest:
		return CategoryClientInput
	case http.StatusUnauthorized:
		return CategoryAuthentication
	case http.StatusForbidden:
		return CategoryAuthorization
	case http.StatusNotFound:
		return CategoryNotFound
	case http.StatusUnprocessableEntity:
		return CategoryValidation
	case http.StatusInternalServerError:
		return CategoryServerFault
	default:
		return CategoryUnexpectedStatus
	}
}

// DefaultErrorMessage is used when neither the response body nor the status explain the failure
const DefaultErrorMessage = "Request failed, please try again later."

// ClientError represents an error encountered when communicating with the survey API
// StatusCode 0 = the request was not sent or no response was received, >0 = HTTP response received
type ClientError struct {
	StatusCode  int      `json:"status_code"`
	Category    Category `json:"category"`
	UserMessage string   `json:"user_message"`
	LogMessage  string   `json:"log_message"`
	Err         error    `json:"-"`
}

func (e *ClientError) Error() string {
	return e.LogMessage
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// UserError returns the user-friendly message
func (e *ClientError) UserError() string {
	return e.UserMessage
}

// Code returns the machine readable error code
func (e *ClientError) Code() apperrors.ErrorCode {
	return e.Category.Code()
}

func newClientError(category Category, status int, detail, logMessage string, err error) *ClientError {
	return &ClientError{
		StatusCode:  status,
		Category:    category,
		UserMessage: outcomes[category].userMessage(status, detail),
		LogMessage:  logMessage,
		Err:         err,
	}
}

// NewClientConnectionError creates a ClientError for network/connection issues, including timeouts
func NewClientConnectionError(err error) *ClientError {
	return newClientError(CategoryNetworkUnreachable, 0, "", fmt.Sprintf("network error: %v", err), err)
}

// NewClientInternalError creates a ClientError for a request that could not be sent, supply the error and an explanation of what was being done when the error occurred
func NewClientInternalError(err error, while string) *ClientError {
	return newClientError(CategoryLocalConfiguration, 0, "", fmt.Sprintf("internal error: %v while %v", err, while), err)
}

// NewClientDecodeError creates a ClientError for a successful response that did not have the expected content
func NewClientDecodeError(err error, status int, while string) *ClientError {
	return newClientError(CategoryMalformedResponse, status, "", fmt.Sprintf("decode error: %v while %v", err, while), err)
}

// maxErrorBodySize caps how much of an error response is read
const maxErrorBodySize = 1 << 20

// NewClientApiError creates a ClientError from a non-2xx HTTP response sent by the survey API
func NewClientApiError(res *http.Response) *ClientError {
	var body []byte
	if res.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(res.Body, maxErrorBodySize))
	}

	detail := ErrorDetail(body, res)
	category := CategoryForStatus(res.StatusCode)

	logMsg := fmt.Sprintf("survey api status %d", res.StatusCode)
	if res.Request != nil {
		logMsg = fmt.Sprintf("survey api %s %s status %d", res.Request.Method, res.Request.URL.Path, res.StatusCode)
	}
	logMsg += " - " + detail

	return newClientError(category, res.StatusCode, detail, logMsg, nil)
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationItem struct {
	Loc json.RawMessage `json:"loc"`
	Msg string          `json:"msg"`
}

// ErrorDetail derives the message describing a failed response. In order of preference:
//   - a string "detail" field
//   - an array "detail" field (validation errors), rendered as "<loc joined with .> <msg>" items separated by "; "
//   - a "message" field
//   - the http status text
//   - DefaultErrorMessage
func ErrorDetail(body []byte, res *http.Response) string {
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		if msg := detailMessage(eb.Detail); msg != "" {
			return msg
		}
		if eb.Message != "" {
			return eb.Message
		}
	}

	if res != nil {
		if text := statusText(res); text != "" {
			return text
		}
	}

	return DefaultErrorMessage
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}

	var items []validationItem
	if json.Unmarshal(raw, &items) != nil || len(items) == 0 {
		return ""
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, location(item.Loc)+" "+item.Msg)
	}
	return strings.Join(parts, "; ")
}

// location joins the elements of a validation error location (e.g. ["body", "answers", 0] -> body.answers.0)
func location(raw json.RawMessage) string {
	var elems []json.RawMessage
	if json.Unmarshal(raw, &elems) != nil {
		return "Field"
	}

	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		var s string
		if json.Unmarshal(e, &s) == nil {
			parts = append(parts, s)
			continue
		}
		parts = append(parts, strings.TrimSpace(string(e)))
	}
	return strings.Join(parts, ".")
}

func statusText(res *http.Response) string {
	if text := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(res.StatusCode)
}

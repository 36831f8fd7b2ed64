package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/shared/errors"
)

// APIResponse is the uniform response envelope.
type APIResponse struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data,omitempty"`
	Errors     []errors.ErrorItem `json:"errors"`
	Warnings   []errors.Warning   `json:"warnings"`
	StatusCode int                `json:"statusCode"`
	Message    string             `json:"message,omitempty"`
}

// WarningCarrier is implemented by results that report non-fatal notices.
type WarningCarrier interface {
	ResponseWarnings() []errors.Warning
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

func newEnvelope(statusCode int, data interface{}, message string) APIResponse {
	resp := APIResponse{
		Success:    true,
		Data:       data,
		Errors:     []errors.ErrorItem{},
		Warnings:   []errors.Warning{},
		StatusCode: statusCode,
		Message:    message,
	}
	if wc, ok := data.(WarningCarrier); ok {
		if w := wc.ResponseWarnings(); len(w) > 0 {
			resp.Warnings = w
		}
	}
	return resp
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, newEnvelope(statusCode, data, message))
}

// CreatedResponse sends a created response
func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	msg := "Resource created successfully"
	if len(message) > 0 {
		msg = message[0]
	}
	c.JSON(http.StatusCreated, newEnvelope(http.StatusCreated, data, msg))
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success:    false,
		Errors:     []errors.ErrorItem{{Message: message, Type: "error"}},
		Warnings:   []errors.Warning{},
		StatusCode: statusCode,
	})
}

// ErrorResponseWithError sends an error response built from err. All collected
// errors are reported; unclassified ones are marked critical.
func ErrorResponseWithError(c *gin.Context, err error) {
	items, statusCode := errors.ToItems(err)
	c.JSON(statusCode, APIResponse{
		Success:    false,
		Errors:     items,
		Warnings:   []errors.Warning{},
		StatusCode: statusCode,
	})
}

// ListSuccessResponse sends a successful list response with pagination
func ListSuccessResponse(c *gin.Context, items interface{}, total int64, page, pageSize int, message ...string) {
	msg := ""
	if len(message) > 0 {
		msg = message[0]
	}
	list := ListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}
	c.JSON(http.StatusOK, newEnvelope(http.StatusOK, list, msg))
}

// NoContentResponse sends a no content response
func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

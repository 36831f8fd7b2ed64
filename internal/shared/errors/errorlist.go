package errors

import (
	"errors"
	"net/http"
	"strings"
)

// ErrorList collects several errors so they can be reported together
// instead of failing on the first one.
type ErrorList struct {
	errs []error
}

// Add appends err to the list. Nil errors are ignored.
func (l *ErrorList) Add(err error) {
	if err == nil {
		return
	}
	var nested *ErrorList
	if errors.As(err, &nested) && nested != l {
		l.errs = append(l.errs, nested.errs...)
		return
	}
	l.errs = append(l.errs, err)
}

// Len returns the number of collected errors.
func (l *ErrorList) Len() int {
	return len(l.errs)
}

// Errors returns the collected errors.
func (l *ErrorList) Errors() []error {
	return l.errs
}

// Error implements the error interface.
func (l *ErrorList) Error() string {
	msgs := make([]string, 0, len(l.errs))
	for _, err := range l.errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (l *ErrorList) Unwrap() []error {
	return l.errs
}

// OrNil returns the list as an error, or nil if it is empty.
func (l *ErrorList) OrNil() error {
	if l == nil || len(l.errs) == 0 {
		return nil
	}
	return l
}

// ErrorItem is the wire representation of a single error inside the
// response envelope.
type ErrorItem struct {
	Message    string         `json:"message"`
	Code       string         `json:"code,omitempty"`
	Type       string         `json:"type"`
	IsCritical bool           `json:"isCritical"`
	Params     map[string]any `json:"params,omitempty"`
}

// Warning is a non-fatal notice returned alongside successful data.
type Warning struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

// StatusCoder is implemented by errors that carry their own HTTP status.
type StatusCoder interface {
	StatusCode() int
}

const unexpectedErrorMessage = "An unexpected error occurred"

// ToItems converts any error into envelope items and the HTTP status to respond with.
// Unclassified errors are marked critical and default to 400 unless they carry
// their own status code. Internal AppErrors respond with 500.
func ToItems(err error) ([]ErrorItem, int) {
	if err == nil {
		return nil, http.StatusOK
	}

	var list *ErrorList
	if errors.As(err, &list) && list.Len() > 0 {
		items := make([]ErrorItem, 0, list.Len())
		status := 0
		for _, e := range list.Errors() {
			item, code := toItem(e)
			items = append(items, item)
			if status == 0 {
				status = code
			}
		}
		return items, status
	}

	item, status := toItem(err)
	return []ErrorItem{item}, status
}

func toItem(err error) (ErrorItem, int) {
	if appErr := GetAppError(err); appErr != nil {
		msg := appErr.Message
		if appErr.IsCritical() {
			msg = unexpectedErrorMessage
		}
		return ErrorItem{
			Message:    msg,
			Code:       appErr.Reason,
			Type:       string(appErr.Type),
			IsCritical: appErr.IsCritical(),
			Params:     appErr.Params,
		}, appErr.Code
	}

	status := http.StatusBadRequest
	var sc StatusCoder
	if errors.As(err, &sc) && sc.StatusCode() > 0 {
		status = sc.StatusCode()
	}
	return ErrorItem{
		Message:    unexpectedErrorMessage,
		Type:       string(ErrorTypeInternal),
		IsCritical: true,
	}, status
}

package httpError

import "net/http"

type CommonError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *CommonError) Error() string {
	return e.Message
}

func newError(code int) *CommonError {
	return &CommonError{Code: code, Message: http.StatusText(code)}
}

func NewBadRequest() *CommonError {
	return newError(http.StatusBadRequest)
}

func NewUnauthorized() *CommonError {
	return newError(http.StatusUnauthorized)
}

func NewNotFound() *CommonError {
	return newError(http.StatusNotFound)
}

func NewConflict() *CommonError {
	return newError(http.StatusConflict)
}

func NewInternalServerError() *CommonError {
	return newError(http.StatusInternalServerError)
}

func NewServiceUnavailable() *CommonError {
	return newError(http.StatusServiceUnavailable)
}

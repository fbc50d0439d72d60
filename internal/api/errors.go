package api

import (
	"errors"
	"garage/internal/models"
	"garage/internal/repository"
)

type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeEmailTaken         Code = "EMAIL_TAKEN"
	CodeInvalidInput       Code = "INVALID_INPUT"
	CodeInvalidTransition  Code = "INVALID_TRANSITION"
	CodeInternal           Code = "INTERNAL"
)

// ErrInvalidTransition rejects a status change that moves an appointment backwards.
var ErrInvalidTransition = errors.New("status transition not allowed")

// Error is the failure channel of every facade call.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

var sentinels = []struct {
	err  error
	code Code
}{
	{repository.ErrNotFound, CodeNotFound},
	{repository.ErrInvalidCredentials, CodeInvalidCredentials},
	{repository.ErrEmailTaken, CodeEmailTaken},
	{models.ErrInvalidInput, CodeInvalidInput},
	{ErrInvalidTransition, CodeInvalidTransition},
}

// translate maps a layer error onto an *Error; unknown errors become INTERNAL without exposing their text.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return &Error{Code: s.code, Message: err.Error(), cause: err}
		}
	}
	return &Error{Code: CodeInternal, Message: "internal error", cause: err}
}

// CodeOf returns the code of err, INTERNAL when err is not an *Error.
func CodeOf(err error) Code {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return CodeInternal
}

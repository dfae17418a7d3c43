package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type Kind string

const (
	KindTransport    Kind = "transport"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindServer       Kind = "server"
)

const unknownMessage = "unknown error"

// Error is returned by every client call. Message is safe to show to users.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return string(e.Kind) + " (" + http.StatusText(e.Status) + "): " + e.Message
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err means the session is no longer valid.
func IsUnauthorized(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindUnauthorized
}

// IsNotFound reports whether the server answered 404.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusNotFound
}

// IsConflict reports whether the server refused a write because of existing
// references, as when deleting a species that still has plants.
func IsConflict(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusConflict
}

func errorFromResponse(status int, body []byte) *Error {
	kind := KindServer
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status >= 400 && status < 500:
		kind = KindValidation
	}
	return &Error{Kind: kind, Status: status, Message: extractMessage(status, body)}
}

// extractMessage prefers the server's "message" (a string, or a list joined
// with ", "), then "error_description", then the status text.
func extractMessage(status int, body []byte) string {
	var payload struct {
		Message          json.RawMessage `json:"message"`
		ErrorDescription string          `json:"error_description"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := rawMessage(payload.Message); msg != "" {
			return msg
		}
		if payload.ErrorDescription != "" {
			return payload.ErrorDescription
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return unknownMessage
}

func rawMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.TrimSpace(single)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return ""
}

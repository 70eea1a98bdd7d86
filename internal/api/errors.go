// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Error is a failed backend response. Message carries the backend's own
// message when one was sent, a generic fallback otherwise. Fields holds
// per-field validation messages from 422 responses, verbatim.
type Error struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// FieldMessages flattens the per-field validation messages into a stable,
// field-ordered list for display.
func (e *Error) FieldMessages() []string {
	if len(e.Fields) == 0 {
		return nil
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var msgs []string
	for _, f := range fields {
		msgs = append(msgs, e.Fields[f]...)
	}
	return msgs
}

// IsAuthError reports whether err is a 401 response, i.e. the token was
// missing, expired, or revoked. Callers must treat this as a signal to
// invalidate the local session.
func IsAuthError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsValidation reports whether err is a 422 response carrying field errors.
func IsValidation(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnprocessableEntity
}

// errorBody is the backend's error response shape.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// decodeError maps a non-2xx response to *Error. Bodies that are not the
// expected JSON shape degrade to a generic message so callers always get
// something presentable.
func decodeError(status int, body []byte) error {
	apiErr := &Error{
		Status:  status,
		Message: fmt.Sprintf("request failed with status %d", status),
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			apiErr.Message = eb.Message
		}
		apiErr.Fields = eb.Errors
	}

	return apiErr
}

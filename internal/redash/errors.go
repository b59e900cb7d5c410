// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package redash

// In this file: typed failures returned by the Redash API client.

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Kind classifies a backend failure.
type Kind uint8

//go:generate stringer -type Kind -trimprefix Kind
const (
	// KindGeneric is a failure with a status code that has no dedicated
	// kind.
	KindGeneric Kind = iota
	// KindAuthentication is returned for 401 responses.
	KindAuthentication
	// KindNotFound is returned for 404 responses.
	KindNotFound
	// KindValidation is returned for 400 responses, and for requests
	// that are rejected before reaching the backend.
	KindValidation
	// KindRateLimit is returned for 429 responses.
	KindRateLimit
	// KindServer is returned for 500 responses.
	KindServer
)

// statusKind maps the response status codes to error kinds.  Anything not in
// this table is KindGeneric.
var statusKind = map[int]Kind{
	401: KindAuthentication,
	404: KindNotFound,
	400: KindValidation,
	429: KindRateLimit,
	500: KindServer,
}

// kindMessage holds the default messages for each kind.
var kindMessage = map[Kind]string{
	KindAuthentication: "Invalid API key or unauthorized access",
	KindNotFound:       "Resource not found",
	KindValidation:     "Invalid request parameters",
	KindRateLimit:      "API rate limit exceeded",
	KindServer:         "Redash server error",
}

// Sentinel errors that can be used with errors.Is to test the kind of an
// *Error.
var (
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrValidation     = &Error{Kind: KindValidation}
	ErrRateLimit      = &Error{Kind: KindRateLimit}
	ErrServer         = &Error{Kind: KindServer}
)

// Error is a typed backend failure.
type Error struct {
	Kind Kind
	// Message is the human readable message.
	Message string
	// StatusCode is the HTTP status code of the response, or 0 if the error
	// was raised before a request was made.
	StatusCode int
	// Body is the raw response body, if any.
	Body string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if msg, ok := kindMessage[e.Kind]; ok {
		return msg
	}
	return "Redash API request failed"
}

// Is reports whether target is an *Error of the same Kind.  This allows
// errors.Is(err, ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// newStatusError creates the *Error for the response status code.
func newStatusError(code int, status string, body string) *Error {
	kind, ok := statusKind[code]
	if !ok {
		return &Error{
			Kind:       KindGeneric,
			Message:    "API request failed: " + statusText(code, status),
			StatusCode: code,
			Body:       body,
		}
	}
	return &Error{
		Kind:       kind,
		Message:    kindMessage[kind],
		StatusCode: code,
		Body:       body,
	}
}

// statusText strips the numeric code from the status line, i.e. "418 I'm a
// teapot" becomes "I'm a teapot".
func statusText(code int, status string) string {
	prefix := fmt.Sprintf("%d ", code)
	if s, ok := strings.CutPrefix(status, prefix); ok {
		return s
	}
	if status == "" {
		return fmt.Sprintf("status %d", code)
	}
	return status
}

// NewValidationError returns a KindValidation error for a request that was
// rejected locally, without calling the API.  It carries the status of the
// validation kind.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message, StatusCode: http.StatusBadRequest}
}

// AsError returns the *Error in err's chain, if there is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Format renders e as a single diagnostic string:
//
//	Redash API Error: <message> (Status: <code>)
//	Details: <details>
//
// The status part is present only if the status code is known.  Details are
// taken from the "message" field of the response body, if the body is a JSON
// object that has one, otherwise the raw body is used verbatim.
func Format(e *Error) string {
	var sb strings.Builder
	sb.WriteString("Redash API Error: ")
	sb.WriteString(e.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " (Status: %d)", e.StatusCode)
	}
	if e.Body != "" {
		var parsed struct {
			Message any `json:"message"`
		}
		details := e.Body
		if err := json.Unmarshal([]byte(e.Body), &parsed); err == nil {
			if msg := detailText(parsed.Message); msg != "" {
				details = msg
			}
		}
		sb.WriteString("\nDetails: " + details)
	}
	return sb.String()
}

func detailText(v any) string {
	switch m := v.(type) {
	case nil:
		return ""
	case string:
		return m
	default:
		b, err := json.Marshal(m)
		if err != nil {
			return fmt.Sprint(m)
		}
		return string(b)
	}
}

// ErrJobExpired is returned by the job lookup when the job is not found on
// the server.  Jobs are short-lived, so this usually means that the job has
// expired.
var ErrJobExpired = errors.New("it may have expired or been deleted")

// TimeoutError is returned by the Poller when the job does not reach a
// terminal state in time.
type TimeoutError struct {
	JobID   string
	Timeout time.Duration
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("job %s: execution timed out after %dms (elapsed: %s)", e.JobID, e.Timeout.Milliseconds(), e.Elapsed.Round(time.Millisecond))
}

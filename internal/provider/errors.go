// Package provider holds the error shape shared by every external provider adapter.
package provider

import (
	"errors"
	"fmt"
	"strings"
)

// Transport error codes reported when the connection itself failed.
const (
	CodeConnReset = "ECONNRESET"
	CodeTimeout   = "ETIMEDOUT"
)

// Error is a normalized provider failure. Adapters convert SDK errors into it
// at the boundary so classification never depends on a vendor type.
type Error struct {
	Provider string
	Status   int
	Code     string
	Type     string
	Message  string
	Nested   string
	Err      error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Provider != "" {
		sb.WriteString(e.Provider)
		sb.WriteString(": ")
	}
	if e.Status != 0 {
		fmt.Fprintf(&sb, "status %d: ", e.Status)
	}
	sb.WriteString(e.Text())
	return sb.String()
}

// Text returns the most specific human-readable message available.
func (e *Error) Text() string {
	switch {
	case e.Nested != "":
		return e.Nested
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	case e.Code != "":
		return e.Code
	}
	return "unknown provider error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message extracts the most useful message from any error, preferring the
// nested provider message when one is present.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Text()
	}
	return err.Error()
}

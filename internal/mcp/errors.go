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

package mcp

// In this file: dispatcher errors.

import (
	"errors"
	"strings"
)

// ErrUnknownTool is returned by CallTool when there is no tool with the
// requested name.
var ErrUnknownTool = errors.New("unknown tool")

// Violation is a single schema constraint violated by the tool arguments.
type Violation struct {
	// Path is the JSON pointer to the offending value, "" is the arguments
	// object itself.
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	path := v.Path
	if path == "" {
		path = "(arguments)"
	}
	return path + ": " + v.Reason
}

// InputError is returned when the tool arguments do not match the tool input
// schema.
type InputError struct {
	Tool       string
	Violations []Violation
}

func (e *InputError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid input for tool " + e.Tool + ":")
	for _, v := range e.Violations {
		sb.WriteString("\n  - " + v.String())
	}
	return sb.String()
}

// ToolError is the backend failure formatted for the caller.
type ToolError struct {
	Tool    string
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

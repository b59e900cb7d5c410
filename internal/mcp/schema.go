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

// In this file: tool argument validation.

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// compileSchema compiles the input schema of the tool.
func compileSchema(tool mcplib.Tool) (*jsonschema.Schema, error) {
	var raw []byte
	if tool.RawInputSchema != nil {
		raw = tool.RawInputSchema
	} else {
		var err error
		if raw, err = json.Marshal(tool.InputSchema); err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	url := tool.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
}

// validateArgs validates the arguments against the schema.  Schema failures
// are returned as *InputError.
func validateArgs(sch *jsonschema.Schema, tool string, args map[string]any) error {
	var v any = args
	if args == nil {
		v = map[string]any{}
	}
	err := sch.Validate(v)
	if err == nil {
		return nil
	}
	var vErr *jsonschema.ValidationError
	if !errors.As(err, &vErr) {
		return err
	}
	return &InputError{Tool: tool, Violations: violations(vErr)}
}

// printer renders the violation reasons.
var printer = message.NewPrinter(language.English)

// violations returns the leaf violations of the validation error.
func violations(vErr *jsonschema.ValidationError) []Violation {
	var vv []Violation
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			vv = append(vv, Violation{
				Path:   jsonPointer(e.InstanceLocation),
				Reason: e.ErrorKind.LocalizedString(printer),
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(vErr)
	return vv
}

// jsonPointer formats the instance location as RFC 6901 JSON pointer.
func jsonPointer(loc []string) string {
	var sb strings.Builder
	for _, tok := range loc {
		sb.WriteByte('/')
		sb.WriteString(ptrEscaper.Replace(tok))
	}
	return sb.String()
}

var ptrEscaper = strings.NewReplacer("~", "~0", "/", "~1")

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

import (
	"encoding/json"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/rusq/redashmcp/internal/redash"
	"github.com/rusq/redashmcp/internal/redash/mock_redash"
)

// firstText returns the text of the first TextContent in the result.
func firstText(t *testing.T, r *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content, "result has no content")
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok, "first content item is not TextContent")
	return txt.Text
}

func ptr[T any](v T) *T { return &v }

func TestTools_dispatch(t *testing.T) {
	result := &redash.QueryResult{ID: 100, Data: redash.QueryData{Rows: []map[string]any{{"n": 1}}}}
	tests := []struct {
		name  string
		tool  string
		args  map[string]any
		setup func(m *mock_redash.MockAPI)
		want  any
	}{
		{
			name: "execute_query_and_wait default data source",
			tool: ToolExecuteQueryAndWait,
			args: map[string]any{"query": "SELECT 1"},
			setup: func(m *mock_redash.MockAPI) {
				m.EXPECT().ExecuteQueryAndWait(gomock.Any(), redash.QueryParams{Query: "SELECT 1"}).Return(result, nil)
			},
			want: result,
		},
		{
			name: "execute_query_and_wait all arguments",
			tool: ToolExecuteQueryAndWait,
			args: map[string]any{"query": "SELECT 1", "data_source_id": float64(3), "max_age": float64(0)},
			setup: func(m *mock_redash.MockAPI) {
				m.EXPECT().ExecuteQueryAndWait(gomock.Any(), redash.QueryParams{DataSourceID: 3, Query: "SELECT 1", MaxAge: ptr(0)}).Return(result, nil)
			},
			want: result,
		},
		{
			name: "list_data_sources",
			tool: ToolListDataSources,
			args: nil,
			setup: func(m *mock_redash.MockAPI) {
				m.EXPECT().ListDataSources(gomock.Any()).Return([]redash.DataSource{{ID: 1, Name: "pg"}}, nil)
			},
			want: []redash.DataSource{{ID: 1, Name: "pg"}},
		},
		{
			name: "get_data_source",
			tool: ToolGetDataSource,
			args: map[string]any{"data_source_id": float64(1)},
			setup: func(m *mock_redash.MockAPI) {
				m.EXPECT().GetDataSource(gomock.Any(), 1).Return(&redash.DataSource{ID: 1, Name: "pg"}, nil)
			},
			want: &redash.DataSource{ID: 1, Name: "pg"},
		},
		{
			name: "get_query",
			tool: ToolGetQuery,
			args: map[string]any{"query_id": float64(5)},
			setup: func(m *mock_redash.MockAPI) {
				m.EXPECT().GetQuery(gomock.Any(), 5).Return(&redash.SavedQuery{ID: 5, Query: "SELECT 5"}, nil)
			},
			want: &redash.SavedQuery{ID: 5, Query: "SELECT 5"},
		},
		{
			name: "search_queries keyword only",
			tool: ToolSearchQueries,
			args: map[string]any{"q": "users"},
			setup: func(m *mock_redash.MockAPI) {
				m.EXPECT().SearchQueries(gomock.Any(), "users", 0, 0).Return(&redash.SavedQueryList{Count: 0}, nil)
			},
			want: &redash.SavedQueryList{Count: 0},
		},
		{
			name: "search_queries paginated",
			tool: ToolSearchQueries,
			args: map[string]any{"q": "test", "page": float64(2), "page_size": float64(10)},
			setup: func(m *mock_redash.MockAPI) {
				m.EXPECT().SearchQueries(gomock.Any(), "test", 2, 10).Return(&redash.SavedQueryList{Count: 1, Page: 2, PageSize: 10}, nil)
			},
			want: &redash.SavedQueryList{Count: 1, Page: 2, PageSize: 10},
		},
		{
			name: "get_query_result",
			tool: ToolGetQueryResult,
			args: map[string]any{"query_result_id": float64(100)},
			setup: func(m *mock_redash.MockAPI) {
				m.EXPECT().GetQueryResult(gomock.Any(), 100).Return(result, nil)
			},
			want: result,
		},
		{
			name: "get_saved_query_result",
			tool: ToolGetSavedQueryResult,
			args: map[string]any{"query_id": float64(5)},
			setup: func(m *mock_redash.MockAPI) {
				m.EXPECT().GetSavedQueryResult(gomock.Any(), 5).Return(result, nil)
			},
			want: result,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			srv, m := newTestServer(t, ctrl)
			tt.setup(m)

			res, err := srv.CallTool(t.Context(), tt.tool, tt.args)
			require.NoError(t, err)
			require.Len(t, res.Content, 1)
			assert.False(t, res.IsError)

			want, err := json.MarshalIndent(tt.want, "", "  ")
			require.NoError(t, err)
			assert.Equal(t, string(want), firstText(t, res))
		})
	}
}

func TestResultJSON(t *testing.T) {
	res, err := resultJSON(map[string]any{"a": []int{1}})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}", firstText(t, res))

	_, err = resultJSON(make(chan int))
	assert.Error(t, err)
}

func TestResultErr(t *testing.T) {
	res := resultErr(ErrUnknownTool)
	assert.True(t, res.IsError)
	assert.Equal(t, "unknown tool", firstText(t, res))
}

func TestStringArg(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		argName string
		want    string
	}{
		{"present string", map[string]any{"key": "value"}, "key", "value"},
		{"missing key", map[string]any{}, "key", ""},
		{"wrong type", map[string]any{"key": 42}, "key", ""},
		{"nil args", nil, "key", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stringArg(tt.args, tt.argName))
		})
	}
}

func TestIntArg(t *testing.T) {
	tests := []struct {
		name   string
		args   map[string]any
		want   int
		wantOK bool
	}{
		{"float64 value", map[string]any{"n": float64(42)}, 42, true},
		{"int value", map[string]any{"n": 7}, 7, true},
		{"int64 value", map[string]any{"n": int64(8)}, 8, true},
		{"json number", map[string]any{"n": json.Number("9")}, 9, true},
		{"missing key", map[string]any{}, 0, false},
		{"nil args", nil, 0, false},
		{"wrong type", map[string]any{"n": "not-a-number"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := intArg(tt.args, "n")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransport_Set(t *testing.T) {
	tests := []struct {
		in      string
		want    Transport
		wantErr bool
	}{
		{"stdio", TransportStdio, false},
		{"SSE", TransportSSE, false},
		{"http", TransportHTTP, false},
		{"streamable-http", TransportHTTP, false},
		{"carrier-pigeon", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got Transport
			err := got.Set(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, string(tt.want), got.String())
		})
	}
}

func TestViolation_String(t *testing.T) {
	assert.Equal(t, "(arguments): missing property 'q'", Violation{Reason: "missing property 'q'"}.String())
	assert.Equal(t, "/page: minimum: got 0, want 1", Violation{Path: "/page", Reason: "minimum: got 0, want 1"}.String())
}

func TestJSONPointer(t *testing.T) {
	assert.Equal(t, "", jsonPointer(nil))
	assert.Equal(t, "/a/b~1c/d~0e", jsonPointer([]string{"a", "b/c", "d~e"}))
}

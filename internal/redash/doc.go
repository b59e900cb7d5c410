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

// Package redash is a small client for the Redash REST API.  It covers the
// subset of the API that the MCP server exposes as tools: query execution,
// job status, data sources and saved queries.
//
// All failures returned by the backend are reported as a single *Error
// value, whose Kind is derived from the HTTP status code of the response.
// Long-running query executions are turned into synchronous calls by the
// Poller, which checks the job status at a fixed interval until the job
// reaches a terminal state or the deadline expires.
package redash

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

// In this file: Redash API data types.

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// QueryParams is the request body for the query execution.
type QueryParams struct {
	DataSourceID int    `json:"data_source_id"`
	Query        string `json:"query"`
	MaxAge       *int   `json:"max_age,omitempty"`
}

// Column describes a result column.
type Column struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	FriendlyName string `json:"friendly_name"`
}

// QueryData is the tabular data of the query result.
type QueryData struct {
	Columns []Column         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// QueryResult is a materialised query result.
type QueryResult struct {
	ID           int       `json:"id"`
	QueryHash    string    `json:"query_hash"`
	Query        string    `json:"query"`
	Data         QueryData `json:"data"`
	DataSourceID int       `json:"data_source_id"`
	Runtime      float64   `json:"runtime"`
	RetrievedAt  string    `json:"retrieved_at"`
}

// DataSource is the Redash data source.
type DataSource struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	Syntax            string  `json:"syntax,omitempty"`
	Paused            bool    `json:"paused"`
	PauseReason       *string `json:"pause_reason"`
	SupportsAutoLimit bool    `json:"supports_auto_limit"`
	ViewOnly          bool    `json:"view_only"`
}

// User is the short user description, as embedded into other objects.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// SavedQuery is the saved query.
type SavedQuery struct {
	ID                int            `json:"id"`
	Name              string         `json:"name"`
	Description       *string        `json:"description"`
	Query             string         `json:"query"`
	DataSourceID      int            `json:"data_source_id"`
	LatestQueryDataID *int           `json:"latest_query_data_id"`
	IsArchived        bool           `json:"is_archived"`
	IsDraft           bool           `json:"is_draft"`
	Tags              []string       `json:"tags"`
	Options           map[string]any `json:"options,omitempty"`
	User              *User          `json:"user,omitempty"`
	CreatedAt         string         `json:"created_at"`
	UpdatedAt         string         `json:"updated_at"`
}

// SavedQueryList is a page of saved queries.
type SavedQueryList struct {
	Count    int          `json:"count"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Results  []SavedQuery `json:"results"`
}

// Job is the asynchronous query execution job.
type Job struct {
	ID            string    `json:"id"`
	Status        JobStatus `json:"status"`
	Error         string    `json:"error,omitempty"`
	QueryResultID ResultID  `json:"query_result_id,omitempty"`
	UpdatedAt     any       `json:"updated_at,omitempty"`
}

// jobEnvelope is the job lookup response.  Depending on the version, the API
// returns either {"job": {...}} or the bare job object.
type jobEnvelope struct {
	Job *Job `json:"job"`
}

// ResultID is the query result identifier.  The API encodes it either as a
// number or as a string, and uses null when there is no result.
type ResultID int

// UnmarshalJSON implements json.Unmarshaler.
func (id *ResultID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid query result id %s: %w", b, err)
	}
	*id = ResultID(n)
	return nil
}

// JobStatus is the job status.  The numeric values are the same as the
// integer codes used by the API.
type JobStatus uint8

//go:generate stringer -type JobStatus -trimprefix Job -linecomment
const (
	JobUnknown   JobStatus = iota // unknown
	JobQueued                     // queued
	JobRunning                    // running
	JobSucceeded                  // succeeded
	JobFailed                     // failed
	JobCancelled                  // cancelled
)

// jobStatusNames maps all known string encodings to a status.
var jobStatusNames = map[string]JobStatus{
	"queued":     JobQueued,
	"pending":    JobQueued,
	"running":    JobRunning,
	"started":    JobRunning,
	"processing": JobRunning,
	"succeeded":  JobSucceeded,
	"success":    JobSucceeded,
	"finished":   JobSucceeded,
	"failed":     JobFailed,
	"failure":    JobFailed,
	"cancelled":  JobCancelled,
	"canceled":   JobCancelled,
}

// Terminal returns true if the job will not change its status anymore.
func (s JobStatus) Terminal() bool {
	return s == JobSucceeded || s == JobFailed || s == JobCancelled
}

// ParseJobStatus parses the string or numeric job status.
func ParseJobStatus(s string) (JobStatus, error) {
	if st, ok := jobStatusNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(JobQueued) || int(JobCancelled) < n {
		return JobUnknown, fmt.Errorf("unknown job status: %q", s)
	}
	return JobStatus(n), nil
}

// MarshalJSON implements json.Marshaler.
func (s JobStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.  It accepts both integer codes
// (1-5) and string names.
func (s *JobStatus) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = JobUnknown
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	var (
		st  JobStatus
		err error
	)
	switch val := v.(type) {
	case string:
		st, err = ParseJobStatus(val)
	case float64:
		st, err = ParseJobStatus(strconv.FormatFloat(val, 'f', -1, 64))
	default:
		err = fmt.Errorf("unsupported job status value: %s", b)
	}
	if err != nil {
		return err
	}
	*s = st
	return nil
}

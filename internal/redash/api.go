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

// In this file: the backend operations.

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// API is the set of the Redash operations exposed as tools.
type API interface {
	// ExecuteQueryAndWait submits the query and waits for its result.  If
	// p.DataSourceID is zero, the default data source is used.
	ExecuteQueryAndWait(ctx context.Context, p QueryParams) (*QueryResult, error)
	ListDataSources(ctx context.Context) ([]DataSource, error)
	GetDataSource(ctx context.Context, id int) (*DataSource, error)
	GetQuery(ctx context.Context, id int) (*SavedQuery, error)
	SearchQueries(ctx context.Context, q string, page, pageSize int) (*SavedQueryList, error)
	GetQueryResult(ctx context.Context, id int) (*QueryResult, error)
	GetSavedQueryResult(ctx context.Context, queryID int) (*QueryResult, error)
}

// Messages of the query execution failures.
const (
	msgNoDataSource = "data_source_id is required either in params or as DEFAULT_DATA_SOURCE_ID environment variable"
	msgNoResult     = "query completed but no result was returned"
	msgCancelled    = "query execution was cancelled"
)

var (
	// ErrNoResult is returned when the job succeeded, but has no reference
	// to the query result.
	ErrNoResult = errors.New(msgNoResult)
	// ErrCancelled is returned when the job was cancelled.
	ErrCancelled = errors.New(msgCancelled)
)

// Service implements API on top of the Requester.
type Service struct {
	r             Requester
	poller        *Poller
	defDataSource int
}

var _ API = (*Service)(nil)

// ServiceOption is the Service option.
type ServiceOption func(*Service)

// WithDefaultDataSource sets the data source used when the caller does not
// specify one.  Zero means there is no default.
func WithDefaultDataSource(id int) ServiceOption {
	return func(s *Service) {
		s.defDataSource = id
	}
}

// WithPoller sets the job poller.
func WithPoller(p *Poller) ServiceOption {
	return func(s *Service) {
		if p != nil {
			s.poller = p
		}
	}
}

// NewService creates a new Service.
func NewService(r Requester, opts ...ServiceOption) *Service {
	s := &Service{r: r}
	for _, opt := range opts {
		opt(s)
	}
	if s.poller == nil {
		s.poller = NewPoller(r)
	}
	return s
}

// DefaultDataSource returns the default data source ID or 0, if there is
// none.
func (s *Service) DefaultDataSource() int {
	return s.defDataSource
}

// submitResponse is the response of the query submission.  Either Job or
// QueryResult is set.
type submitResponse struct {
	Job         *Job         `json:"job"`
	QueryResult *QueryResult `json:"query_result"`
}

// queryResultResponse wraps the query result.
type queryResultResponse struct {
	QueryResult *QueryResult `json:"query_result"`
}

func (s *Service) ExecuteQueryAndWait(ctx context.Context, p QueryParams) (*QueryResult, error) {
	if p.DataSourceID == 0 {
		p.DataSourceID = s.defDataSource
	}
	if p.DataSourceID == 0 {
		return nil, NewValidationError(msgNoDataSource)
	}
	resp, err := Post[submitResponse](ctx, s.r, "/api/query_results", p)
	if err != nil {
		return nil, err
	}
	if resp.QueryResult != nil && resp.Job == nil {
		if len(resp.QueryResult.Data.Columns) > 0 || resp.QueryResult.Data.Rows != nil {
			return resp.QueryResult, nil
		}
		return s.GetQueryResult(ctx, resp.QueryResult.ID)
	}
	if resp.Job == nil || resp.Job.ID == "" {
		return nil, errors.New("unexpected response: neither job nor query result")
	}

	job, err := s.poller.Wait(ctx, resp.Job.ID)
	if err != nil {
		return nil, err
	}
	switch job.Status {
	case JobFailed:
		return nil, fmt.Errorf("query execution failed: %s", job.Error)
	case JobCancelled:
		return nil, ErrCancelled
	}
	if job.QueryResultID == 0 {
		return nil, ErrNoResult
	}
	return s.GetQueryResult(ctx, int(job.QueryResultID))
}

func (s *Service) GetQueryResult(ctx context.Context, id int) (*QueryResult, error) {
	return s.queryResult(ctx, "/api/query_results/"+strconv.Itoa(id)+".json")
}

func (s *Service) GetSavedQueryResult(ctx context.Context, queryID int) (*QueryResult, error) {
	return s.queryResult(ctx, "/api/queries/"+strconv.Itoa(queryID)+"/results.json")
}

func (s *Service) queryResult(ctx context.Context, path string) (*QueryResult, error) {
	resp, err := Get[queryResultResponse](ctx, s.r, path)
	if err != nil {
		return nil, err
	}
	if resp.QueryResult == nil {
		return nil, fmt.Errorf("%s: response has no query result", path)
	}
	return resp.QueryResult, nil
}

func (s *Service) ListDataSources(ctx context.Context) ([]DataSource, error) {
	return Get[[]DataSource](ctx, s.r, "/api/data_sources")
}

func (s *Service) GetDataSource(ctx context.Context, id int) (*DataSource, error) {
	ds, err := Get[DataSource](ctx, s.r, "/api/data_sources/"+strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

func (s *Service) GetQuery(ctx context.Context, id int) (*SavedQuery, error) {
	q, err := Get[SavedQuery](ctx, s.r, "/api/queries/"+strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// SearchQueries searches the saved queries.  page and pageSize are omitted
// from the request if zero.
func (s *Service) SearchQueries(ctx context.Context, q string, page, pageSize int) (*SavedQueryList, error) {
	v := url.Values{}
	v.Set("q", q)
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		v.Set("page_size", strconv.Itoa(pageSize))
	}
	l, err := Get[SavedQueryList](ctx, s.r, "/api/queries?"+v.Encode())
	if err != nil {
		return nil, err
	}
	return &l, nil
}

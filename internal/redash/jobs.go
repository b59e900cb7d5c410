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

// In this file: job lookup.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// GetJob returns the current state of the job.  A job that is not found is
// reported as ErrJobExpired, as the job resources are short-lived.
func GetJob(ctx context.Context, r Requester, jobID string) (*Job, error) {
	if jobID == "" {
		return nil, NewValidationError("job id is empty")
	}
	raw, err := Get[json.RawMessage](ctx, r, "/api/jobs/"+url.PathEscape(jobID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("job with ID %s not found: %w", jobID, ErrJobExpired)
		}
		return nil, err
	}
	return decodeJob(raw)
}

// decodeJob decodes either the wrapped {"job": {...}} or the bare job object.
func decodeJob(raw json.RawMessage) (*Job, error) {
	var env jobEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	if env.Job != nil {
		return env.Job, nil
	}
	var j Job
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return &j, nil
}

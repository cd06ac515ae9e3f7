// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

package port

import (
	"context"
	"errors"

	"github.com/caarlos0/env/v11"
)

// APIError wraps every failure returned by the Port API client.
type APIError struct {
	err error
}

func (e *APIError) Error() string {
	return "port: " + e.err.Error()
}

func (e *APIError) Unwrap() error {
	return e.err
}

func (e *APIError) Is(target error) bool {
	apiErr, ok := target.(*APIError)
	if !ok {
		return false
	}

	return e.err.Error() == apiErr.err.Error()
}

func handleError(err error) error {
	if err == nil {
		return nil
	}

	var parseErr env.AggregateError
	if errors.As(err, &parseErr) {
		err = parseErr.Errors[0]
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return &APIError{
		err: err,
	}
}

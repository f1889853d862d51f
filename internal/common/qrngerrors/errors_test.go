package qrngerrors

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestClassificationSeesThroughWrapping(t *testing.T) {
	tests := map[string]struct {
		err  error
		want func(error) bool
	}{
		"authentication":         {&ErrAuthenticationFailed{}, IsAuthenticationFailed},
		"wrapped authentication": {errors.Wrap(&ErrAuthenticationFailed{}, "foo"), IsAuthenticationFailed},
		"stacked authentication": {errors.WithStack(&ErrAuthenticationFailed{Message: "bad token"}), IsAuthenticationFailed},
		"no resource":            {errors.WithStack(&ErrNoResourceAvailable{Considered: 3}), IsNoResourceAvailable},
		"execution":              {errors.WithMessage(&ErrExecutionFailed{JobID: "j"}, "foo"), IsExecutionFailed},
		"rendering":              {&ErrRenderingFailed{Path: "p", Causes: errors.New("x")}, IsRenderingFailed},
		"invalid argument":       {errors.WithStack(&ErrInvalidArgument{Name: "shots"}), IsInvalidArgument},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.True(t, tc.want(tc.err))
		})
	}
}

func TestClassificationDoesNotCrossMatch(t *testing.T) {
	err := errors.WithStack(&ErrExecutionFailed{JobID: "j", Backend: "b", Reason: "allowance exhausted"})
	assert.False(t, IsAuthenticationFailed(err))
	assert.False(t, IsNoResourceAvailable(err))
	assert.False(t, IsRenderingFailed(err))
	assert.False(t, IsInvalidArgument(err))
	assert.True(t, IsExecutionFailed(err))
}

func TestErrorMessages(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"authentication without detail": {
			&ErrAuthenticationFailed{},
			"authentication with the quantum service failed",
		},
		"authentication with detail": {
			&ErrAuthenticationFailed{Message: "token rejected"},
			"authentication with the quantum service failed; token rejected",
		},
		"no resource": {
			&ErrNoResourceAvailable{Considered: 4, Message: "all backends are either down or simulators"},
			"no operational hardware backend available (4 backends considered); all backends are either down or simulators",
		},
		"execution with job id": {
			&ErrExecutionFailed{JobID: "job-1", Backend: "ibm_kyiv", Reason: "calibration in progress"},
			`job "job-1" failed on backend "ibm_kyiv": calibration in progress`,
		},
		"invalid argument": {
			&ErrInvalidArgument{Name: "shots", Value: 0, Message: "must be positive"},
			`value '\x00' is invalid for field "shots"; must be positive`,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestRenderingFailedUnwrapsCauses(t *testing.T) {
	var causes *multierror.Error
	causes = multierror.Append(causes, errors.New("png failed"), errors.New("svg failed"))
	err := &ErrRenderingFailed{Path: "qrng_results.png", Causes: causes.ErrorOrNil()}

	assert.Contains(t, err.Error(), "qrng_results.png")
	assert.Contains(t, err.Error(), "png failed")
	assert.Contains(t, err.Error(), "svg failed")
	assert.NotNil(t, errors.Unwrap(err))
}

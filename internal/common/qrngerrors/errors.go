// Package qrngerrors contains the error types returned by the qrng pipeline.
// Callers should classify failures with errors.As (or the Is* helpers below)
// rather than by matching message text.
//
// If multiple errors occur in some function (e.g., if both rendering tiers
// fail), that function should return an error of type multierror.Error from
// package github.com/hashicorp/go-multierror that encapsulates those
// individual errors.
package qrngerrors

import (
	"errors"
	"fmt"
)

// ErrAuthenticationFailed is returned when the credential token is missing,
// malformed, or rejected by the remote service. It is never retried.
type ErrAuthenticationFailed struct {
	// Optional message to include in the error message
	Message string
}

func (err *ErrAuthenticationFailed) Error() string {
	if err.Message == "" {
		return "authentication with the quantum service failed"
	}
	return fmt.Sprintf("authentication with the quantum service failed; %s", err.Message)
}

// ErrNoResourceAvailable is returned when no backend passes the selection
// filter (operational, not a simulator).
type ErrNoResourceAvailable struct {
	// Number of backends considered before filtering
	Considered int
	Message    string
}

func (err *ErrNoResourceAvailable) Error() (s string) {
	s = fmt.Sprintf("no operational hardware backend available (%d backends considered)", err.Considered)
	if err.Message != "" {
		s = s + fmt.Sprintf("; %s", err.Message)
	}
	return
}

// ErrExecutionFailed is returned when a job was submitted but terminated
// unsuccessfully on the remote side, including execution-time allowance
// exhaustion. The job must not be retried without caller opt-in.
type ErrExecutionFailed struct {
	JobID   string // ID assigned by the service at submission, if any
	Backend string // Name of the backend the job ran on
	Reason  string // Failure reason reported by the service
}

func (err *ErrExecutionFailed) Error() (s string) {
	if err.JobID != "" {
		s = fmt.Sprintf("job %q failed on backend %q", err.JobID, err.Backend)
	} else {
		s = fmt.Sprintf("job execution failed on backend %q", err.Backend)
	}
	if err.Reason != "" {
		s = s + fmt.Sprintf(": %s", err.Reason)
	}
	return
}

// ErrRenderingFailed is returned when every rendering tier failed to persist
// the frequency chart. It is non-fatal: the pipeline logs it and the run is
// still considered successful.
type ErrRenderingFailed struct {
	Path   string // Output path that could not be written
	Causes error  // Aggregated per-tier failures
}

func (err *ErrRenderingFailed) Error() string {
	return fmt.Sprintf("could not render histogram to %q: %s", err.Path, err.Causes)
}

func (err *ErrRenderingFailed) Unwrap() error {
	return err.Causes
}

// ErrInvalidArgument is a generic error to be returned on invalid argument.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidArgument struct {
	Name    string      // Name of the field referred to, e.g., "shots"
	Value   interface{} // The invalid value that was provided
	Message string      // An optional message explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %q is invalid for field %q", err.Value, err.Name)
	}
	return fmt.Sprintf("value %q is invalid for field %q; %s", err.Value, err.Name, err.Message)
}

// IsAuthenticationFailed uses errors.As to look through the chain of errors,
// as opposed to just considering the topmost error in the chain.
func IsAuthenticationFailed(err error) bool {
	var e *ErrAuthenticationFailed
	return errors.As(err, &e)
}

func IsNoResourceAvailable(err error) bool {
	var e *ErrNoResourceAvailable
	return errors.As(err, &e)
}

func IsExecutionFailed(err error) bool {
	var e *ErrExecutionFailed
	return errors.As(err, &e)
}

func IsRenderingFailed(err error) bool {
	var e *ErrRenderingFailed
	return errors.As(err, &e)
}

func IsInvalidArgument(err error) bool {
	var e *ErrInvalidArgument
	return errors.As(err, &e)
}

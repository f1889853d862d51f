package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/malinowski-marek/qrng/internal/common/qrngerrors"
	"github.com/malinowski-marek/qrng/pkg/client/domain"
)

// ServiceClient is a handle to the remote quantum execution service. It
// exposes the capability interface the pipeline consumes: enumerate
// backends, submit a job, poll for its result. The wire format is the
// service's REST API; callers only see domain types.
type ServiceClient struct {
	serviceUrl string
	token      string
	httpClient *http.Client
}

// SubmitJobRequest is the payload for one job submission.
type SubmitJobRequest struct {
	// Program is the circuit serialized as OpenQASM 3 text.
	Program string `json:"program"`
	Format  string `json:"format"`
	Backend string `json:"backend"`
	Shots   int    `json:"shots"`
}

// Account verifies the credential and returns account details, including the
// remaining execution-time allowance.
func (c *ServiceClient) Account(ctx context.Context) (*domain.Account, error) {
	account := &domain.Account{}
	if err := c.get(ctx, "/v1/account", account); err != nil {
		return nil, err
	}
	return account, nil
}

// Backends lists the execution resources visible to the account.
func (c *ServiceClient) Backends(ctx context.Context) ([]domain.Backend, error) {
	var response struct {
		Backends []domain.Backend `json:"backends"`
	}
	if err := c.get(ctx, "/v1/backends", &response); err != nil {
		return nil, err
	}
	return response.Backends, nil
}

// SubmitJob submits one job and returns immediately with the job identifier
// assigned by the service. Submission is not retried: a duplicate submission
// would consume execution-time allowance twice.
func (c *ServiceClient) SubmitJob(ctx context.Context, req *SubmitJobRequest) (*domain.Job, error) {
	job := &domain.Job{}
	if err := c.do(ctx, http.MethodPost, "/v1/jobs", req, job); err != nil {
		return nil, err
	}
	log.Infof("Submitted job id: %s (backend: %s)", job.ID, job.Backend)
	return job, nil
}

// JobStatus polls the current state of a job.
func (c *ServiceClient) JobStatus(ctx context.Context, jobId string) (*domain.Job, error) {
	job := &domain.Job{}
	if err := c.get(ctx, fmt.Sprintf("/v1/jobs/%s", jobId), job); err != nil {
		return nil, err
	}
	return job, nil
}

// JobResult fetches the outcome-count mapping of a completed job.
func (c *ServiceClient) JobResult(ctx context.Context, jobId string) (domain.Counts, error) {
	var response struct {
		Counts domain.Counts `json:"counts"`
	}
	if err := c.get(ctx, fmt.Sprintf("/v1/jobs/%s/result", jobId), &response); err != nil {
		return nil, err
	}
	return response.Counts, nil
}

// AwaitJob polls the job until it reaches a terminal state or ctx is
// cancelled. The caller bounds the wait through ctx; the service's own queue
// and timeout policy are otherwise in charge.
func (c *ServiceClient) AwaitJob(ctx context.Context, jobId string, pollInterval time.Duration) (*domain.Job, error) {
	for {
		job, err := c.JobStatus(ctx, jobId)
		if err != nil {
			return nil, err
		}
		if job.Status.Terminal() {
			return job, nil
		}
		log.Debugf("Job %s is %s, polling again in %s", jobId, job.Status, pollInterval)
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "gave up waiting for job %s", jobId)
		case <-time.After(pollInterval):
		}
	}
}

// get issues a GET with bounded retry on transient failures (network errors
// and 5xx responses). Authentication failures and 4xx responses are returned
// immediately.
func (c *ServiceClient) get(ctx context.Context, path string, out interface{}) error {
	return retry.Do(
		func() error {
			return c.do(ctx, http.MethodGet, path, nil, out)
		},
		retry.Attempts(4),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
}

func (c *ServiceClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.WithStack(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serviceUrl+path, reader)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return errors.WithStack(err)
		}
		return &transientError{errors.Wrapf(err, "error calling %s %s", method, path)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrapf(err, "error decoding response from %s %s", method, path)
		}
		return nil
	}

	message := readApiError(resp.Body)
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.WithStack(&qrngerrors.ErrAuthenticationFailed{Message: message})
	case resp.StatusCode >= 500:
		return &transientError{errors.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, message)}
	default:
		return errors.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, message)
	}
}

func readApiError(body io.Reader) string {
	var apiError struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&apiError); err != nil || apiError.Message == "" {
		return "no detail provided by the service"
	}
	return apiError.Message
}

// transientError marks failures that are safe to retry: the request may not
// have reached the service, or the service reported a server-side fault.
type transientError struct {
	err error
}

func (e *transientError) Error() string {
	return e.err.Error()
}

func (e *transientError) Unwrap() error {
	return e.err
}

func isTransient(err error) bool {
	var t *transientError
	return stderrors.As(err, &t)
}

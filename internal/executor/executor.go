// Package executor runs one circuit on the least busy operational hardware
// backend and blocks until a terminal job state is observed.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/malinowski-marek/qrng/internal/circuit"
	"github.com/malinowski-marek/qrng/internal/common/qrngerrors"
	"github.com/malinowski-marek/qrng/pkg/client"
	"github.com/malinowski-marek/qrng/pkg/client/domain"
)

// QuantumService is the slice of the service client the executor consumes.
// *client.ServiceClient satisfies it; tests substitute a stub.
type QuantumService interface {
	Backends(ctx context.Context) ([]domain.Backend, error)
	SubmitJob(ctx context.Context, req *client.SubmitJobRequest) (*domain.Job, error)
	AwaitJob(ctx context.Context, jobId string, pollInterval time.Duration) (*domain.Job, error)
	JobResult(ctx context.Context, jobId string) (domain.Counts, error)
}

// Config holds the user-customizable execution parameters.
type Config struct {
	// Number of independent binary sources; output domain is [0, 2^Qubits-1].
	Qubits int
	// Number of repetitions of the circuit; one sample per repetition.
	Shots int
	// Transpiler effort, 0-2. Higher is slower but yields shorter circuits.
	OptimizationLevel int
	// Time between job status polls.
	PollInterval time.Duration
	// Upper bound on the whole execution including queueing.
	// Zero means wait indefinitely.
	Timeout time.Duration
}

// DefaultConfig returns the documented defaults: 6 qubits, 1024 shots,
// light transpilation, 5s polling, no timeout.
func DefaultConfig() *Config {
	return &Config{
		Qubits:            6,
		Shots:             1024,
		OptimizationLevel: 1,
		PollInterval:      5 * time.Second,
	}
}

func (config *Config) Validate() error {
	if config.Qubits < 1 {
		return errors.WithStack(&qrngerrors.ErrInvalidArgument{
			Name:    "Qubits",
			Value:   config.Qubits,
			Message: "must be positive",
		})
	}
	if config.Qubits > 64 {
		return errors.WithStack(&qrngerrors.ErrInvalidArgument{
			Name:    "Qubits",
			Value:   config.Qubits,
			Message: "outcomes are decoded to 64-bit integers",
		})
	}
	if config.Shots < 1 {
		return errors.WithStack(&qrngerrors.ErrInvalidArgument{
			Name:    "Shots",
			Value:   config.Shots,
			Message: "must be positive",
		})
	}
	if config.OptimizationLevel < 0 || config.OptimizationLevel > 2 {
		return errors.WithStack(&qrngerrors.ErrInvalidArgument{
			Name:    "OptimizationLevel",
			Value:   config.OptimizationLevel,
			Message: "must be between 0 and 2",
		})
	}
	if config.PollInterval <= 0 {
		return errors.WithStack(&qrngerrors.ErrInvalidArgument{
			Name:    "PollInterval",
			Value:   config.PollInterval,
			Message: "must be positive",
		})
	}
	return nil
}

// SelectBackend picks, among operational non-simulator backends, the one
// with the fewest pending jobs.
func SelectBackend(backends []domain.Backend) (*domain.Backend, error) {
	var selected *domain.Backend
	for i := range backends {
		b := &backends[i]
		if !b.Operational || b.Simulator {
			continue
		}
		if selected == nil || b.PendingJobs < selected.PendingJobs {
			selected = b
		}
	}
	if selected == nil {
		return nil, errors.WithStack(&qrngerrors.ErrNoResourceAvailable{
			Considered: len(backends),
			Message:    "all backends are either down or simulators",
		})
	}
	return selected, nil
}

// Execute adapts the circuit to the selected backend, submits it, and waits
// for the result. Validation happens before any network call, so an invalid
// shot count never consumes execution-time allowance. Queueing delay is the
// service's responsibility; the caller bounds the wait with Config.Timeout.
func Execute(ctx context.Context, service QuantumService, config *Config, circ *circuit.Circuit) (*domain.Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	backends, err := service.Backends(ctx)
	if err != nil {
		return nil, err
	}
	backend, err := SelectBackend(backends)
	if err != nil {
		return nil, err
	}
	log.Infof("Selected backend: %s (%d qubits, %d pending jobs)", backend.Name, backend.NumQubits, backend.PendingJobs)

	// Fail closed rather than silently shrinking the output domain.
	if circ.Qubits > backend.NumQubits {
		return nil, errors.WithStack(&qrngerrors.ErrInvalidArgument{
			Name:    "Qubits",
			Value:   circ.Qubits,
			Message: fmt.Sprintf("backend %s only has %d qubits", backend.Name, backend.NumQubits),
		})
	}

	adapted, err := circuit.Transpile(circ, config.OptimizationLevel)
	if err != nil {
		return nil, err
	}
	log.Infof("Transpiled circuit for %s: depth %d -> %d, ops %d -> %d",
		backend.Name, circ.Depth(), adapted.Depth(), circ.OpCount(), adapted.OpCount())

	job, err := service.SubmitJob(ctx, &client.SubmitJobRequest{
		Program: adapted.QASM(),
		Format:  "openqasm3",
		Backend: backend.Name,
		Shots:   config.Shots,
	})
	if err != nil {
		return nil, err
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}
	log.Infof("Waiting for job %s (%d shots); queueing time depends on backend load", job.ID, config.Shots)
	job, err = service.AwaitJob(ctx, job.ID, config.PollInterval)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobCompleted {
		return nil, errors.WithStack(&qrngerrors.ErrExecutionFailed{
			JobID:   job.ID,
			Backend: backend.Name,
			Reason:  failureReason(job),
		})
	}

	counts, err := service.JobResult(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	if counts.Shots() != config.Shots {
		return nil, errors.WithStack(&qrngerrors.ErrExecutionFailed{
			JobID:   job.ID,
			Backend: backend.Name,
			Reason:  fmt.Sprintf("result contains %d shots, expected %d", counts.Shots(), config.Shots),
		})
	}
	return &domain.Result{Counts: counts, Backend: backend.Name}, nil
}

func failureReason(job *domain.Job) string {
	if job.Reason != "" {
		return job.Reason
	}
	return fmt.Sprintf("job finished with status %s", job.Status)
}

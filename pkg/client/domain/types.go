package domain

// JobStatus is the lifecycle state of a job as reported by the remote
// service. The client only ever observes Submitted plus whatever state the
// service reports on subsequent polls.
type JobStatus string

const (
	JobSubmitted JobStatus = "SUBMITTED"
	JobQueued    JobStatus = "QUEUED"
	JobRunning   JobStatus = "RUNNING"
	JobCompleted JobStatus = "COMPLETED"
	JobFailed    JobStatus = "FAILED"
	JobCancelled JobStatus = "CANCELLED"
)

// Terminal returns true if no further state transitions are possible.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobCompleted, JobFailed, JobCancelled:
		return true
	}
	return false
}

// Backend describes a remote execution resource. Backends are selected, not
// owned, by the client; their lifecycle is entirely on the service side.
type Backend struct {
	Name        string `json:"name"`
	NumQubits   int    `json:"num_qubits"`
	Operational bool   `json:"operational"`
	Simulator   bool   `json:"simulator"`
	// Number of jobs currently queued on this backend.
	PendingJobs int    `json:"pending_jobs"`
	Status      string `json:"status"`
}

// Job is a submitted circuit bound to one backend.
type Job struct {
	ID      string    `json:"id"`
	Backend string    `json:"backend"`
	Shots   int       `json:"shots"`
	Status  JobStatus `json:"status"`
	// Reason is populated by the service when Status is FAILED or CANCELLED.
	Reason string `json:"reason,omitempty"`
}

// Counts maps fixed-length measurement bitstrings to the number of shots
// that produced each outcome. All keys have identical length and the values
// sum to the job's shot count.
type Counts map[string]int

// Shots returns the total number of shots recorded in the mapping.
func (c Counts) Shots() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Result is the outcome of one completed job.
type Result struct {
	Counts  Counts
	Backend string
}

// Samples is a flat, order-randomized sequence of integers decoded from a
// Counts mapping. Each value lies in [0, 2^n-1] for the n used to build the
// circuit.
type Samples []uint64

// Account describes the authenticated account, including the remaining
// execution-time allowance metered by the service.
type Account struct {
	Email            string `json:"email"`
	Plan             string `json:"plan"`
	RemainingSeconds int    `json:"remaining_seconds"`
}

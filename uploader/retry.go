package uploader

import "github.com/wrenko/ragsend-go/types"

// RetryOutcome reports what a retry request did.
type RetryOutcome int

const (
	RetryStarted RetryOutcome = iota
	RetryUnknown
	RetryNotFailed
)

// Retry relaunches a failed task under its existing ID. Tasks not in
// the error state, unknown IDs, and tasks whose payload is already
// gone are left untouched.
func (o *Orchestrator) Retry(id string) RetryOutcome {
	task, ok := o.store.Get(id)
	if !ok {
		return RetryUnknown
	}
	if task.Status != types.TaskError {
		return RetryNotFailed
	}
	o.mu.Lock()
	_, ok = o.jobs[id]
	o.mu.Unlock()
	if !ok {
		return RetryUnknown
	}
	o.start(id)
	return RetryStarted
}

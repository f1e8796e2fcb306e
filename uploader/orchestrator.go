package uploader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wrenko/ragsend-go/backend"
	"github.com/wrenko/ragsend-go/notify"
	"github.com/wrenko/ragsend-go/tasks"
	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
)

type job struct {
	file     types.FileMeta
	domainID string
	metadata string
	source   Source
	cleanup  func()
}

// Orchestrator runs one goroutine per upload and folds the outcome back
// into the task store and the notification queue. Outcomes are data,
// nothing here panics on a failed transfer.
type Orchestrator struct {
	endpoint backend.Endpoint
	store    *tasks.Store
	queue    *notify.Queue

	mu   sync.Mutex
	jobs map[string]*job
	wg   sync.WaitGroup

	// OnComplete, when set, observes every finished attempt.
	OnComplete func(taskID string, doc *types.Document, err error)
}

func New(endpoint backend.Endpoint, store *tasks.Store, queue *notify.Queue) *Orchestrator {
	return &Orchestrator{
		endpoint: endpoint,
		store:    store,
		queue:    queue,
		jobs:     make(map[string]*job),
	}
}

// Launch registers the task's payload and starts its first attempt.
func (o *Orchestrator) Launch(task types.UploadTask, src Source, cleanup func()) {
	o.mu.Lock()
	o.jobs[task.ID] = &job{
		file:     task.File,
		domainID: task.DomainID,
		metadata: task.Metadata,
		source:   src,
		cleanup:  cleanup,
	}
	o.mu.Unlock()
	o.start(task.ID)
}

// start flips the task to uploading and spawns the transfer goroutine.
// The MarkUploading gate lets concurrent starts for one ID run once.
func (o *Orchestrator) start(id string) {
	if !o.store.MarkUploading(id) {
		return
	}
	o.wg.Add(1)
	go o.run(id)
}

func (o *Orchestrator) run(id string) {
	defer o.wg.Done()
	o.mu.Lock()
	j := o.jobs[id]
	o.mu.Unlock()
	if j == nil {
		return
	}

	doc, err := o.attempt(id, j)

	o.mu.Lock()
	_, active := o.jobs[id]
	o.mu.Unlock()
	if !active {
		// Removed while in flight, drop the late result.
		return
	}

	if err != nil {
		msg := failureMessage(err)
		o.store.MarkError(id, msg)
		o.queue.Push(notify.UploadFailed(j.file.Name, msg))
		tool.DefaultLogger.Warnf("Upload of %s failed: %s", j.file.Name, msg)
	} else {
		o.store.MarkSuccess(id, doc.ID)
		o.queue.Push(notify.UploadSucceeded(j.file.Name))
		tool.DefaultLogger.Infof("Upload of %s finished as document %s", j.file.Name, doc.ID)
		// Retry only applies to failed tasks, the payload is done.
		o.Forget(id)
	}
	if o.OnComplete != nil {
		o.OnComplete(id, doc, err)
	}
}

func (o *Orchestrator) attempt(id string, j *job) (*types.Document, error) {
	body, err := j.source.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open payload: %v", err)
	}
	defer func() {
		if err := body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close payload for %s: %v", j.file.Name, err)
		}
	}()
	size := j.file.Size
	return o.endpoint.UploadDocument(context.Background(), backend.UploadRequest{
		DomainID: j.domainID,
		FileName: j.file.Name,
		FileType: j.file.Type,
		Size:     size,
		Metadata: j.metadata,
		Body:     body,
	}, func(sent int64) {
		o.store.UpdateProgress(id, percent(sent, size))
	})
}

// percent converts a byte count to an integer percentage of total.
// Zero-byte payloads report 0 until the final success mark.
func percent(sent, total int64) int {
	if total <= 0 {
		return 0
	}
	pct := int(sent * 100 / total)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// failureMessage prefers the backend's detail text over the transport error.
func failureMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}

// Forget drops the task's payload and runs its cleanup. A transfer
// already in flight is not aborted, its result is dropped on arrival.
func (o *Orchestrator) Forget(id string) {
	o.mu.Lock()
	j := o.jobs[id]
	delete(o.jobs, id)
	o.mu.Unlock()
	if j != nil && j.cleanup != nil {
		j.cleanup()
	}
}

// Wait blocks until every launched transfer goroutine has finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

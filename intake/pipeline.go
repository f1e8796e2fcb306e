package intake

import (
	"github.com/wrenko/ragsend-go/notify"
	"github.com/wrenko/ragsend-go/tasks"
	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
	"github.com/wrenko/ragsend-go/uploader"
)

// Incoming is one candidate file with a way to read its bytes and a
// cleanup hook for when the payload is no longer needed.
type Incoming struct {
	Meta    types.FileMeta
	Source  uploader.Source
	Cleanup func()
}

// Pipeline validates batches and hands the accepted files to the
// orchestrator. Submit never fails, every refusal is recorded as data.
type Pipeline struct {
	policy Policy
	store  *tasks.Store
	queue  *notify.Queue
	orch   *uploader.Orchestrator
}

func NewPipeline(policy Policy, store *tasks.Store, queue *notify.Queue, orch *uploader.Orchestrator) *Pipeline {
	return &Pipeline{policy: policy, store: store, queue: queue, orch: orch}
}

func (p *Pipeline) Policy() Policy {
	return p.policy
}

// Submit validates every file of the batch, creates tasks for the
// accepted ones and starts their uploads. Rejected files surface as a
// rejection entry plus an error toast, their payloads are cleaned up
// right away.
func (p *Pipeline) Submit(domainID, metadata string, batch []Incoming) ([]types.UploadTask, []types.Rejection) {
	var created []types.UploadTask
	var rejected []types.Rejection
	for _, in := range batch {
		if reasons := p.policy.Check(in.Meta); len(reasons) > 0 {
			rejected = append(rejected, types.Rejection{File: in.Meta, Reasons: reasons})
			p.queue.Push(notify.FileRejected(in.Meta.Name, reasons))
			if in.Cleanup != nil {
				in.Cleanup()
			}
			continue
		}
		task := types.UploadTask{
			ID:       tool.GenerateRandomUUID(),
			File:     in.Meta,
			DomainID: domainID,
			Metadata: metadata,
			Status:   types.TaskQueued,
		}
		p.store.Add(task)
		if stored, ok := p.store.Get(task.ID); ok {
			task = stored
		}
		created = append(created, task)
		p.orch.Launch(task, in.Source, in.Cleanup)
	}
	return created, rejected
}

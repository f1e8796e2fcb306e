package push

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	pb "github.com/cheggaaa/pb/v3"

	"github.com/wrenko/ragsend-go/backend"
	"github.com/wrenko/ragsend-go/intake"
	"github.com/wrenko/ragsend-go/notify"
	"github.com/wrenko/ragsend-go/share"
	"github.com/wrenko/ragsend-go/tasks"
	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
	"github.com/wrenko/ragsend-go/uploader"
)

// Options configure a one-shot push from the command line.
type Options struct {
	DomainRef string // domain ID or name, falls back to the config default
	Metadata  string
	Files     []string
	Out       io.Writer // defaults to os.Stdout
}

// Run uploads the given files and blocks until every task settles.
// Validation failures and upload errors both count against the exit.
func Run(ctx context.Context, client *backend.Client, cfg *types.AppConfig, opts Options) error {
	if len(opts.Files) == 0 {
		return fmt.Errorf("no files given")
	}
	domainRef := opts.DomainRef
	if domainRef == "" {
		domainRef = cfg.DefaultDomain
	}
	if domainRef == "" {
		return fmt.Errorf("no domain given: pass -domain or set defaultDomain in the config")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if hs, err := client.Health(ctx); err != nil {
		return fmt.Errorf("backend not reachable: %v", err)
	} else if hs.Status != "healthy" {
		tool.DefaultLogger.Warnf("Backend reports status %s", hs.Status)
	}

	domain, err := share.ResolveDomain(ctx, client, domainRef)
	if err != nil {
		return err
	}

	batch := make([]intake.Incoming, 0, len(opts.Files))
	for _, path := range opts.Files {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %v", path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		name := filepath.Base(path)
		batch = append(batch, intake.Incoming{
			Meta: types.FileMeta{
				Name: name,
				Size: info.Size(),
				Type: tool.DetectFileType(name),
			},
			Source: uploader.FileSource(path),
		})
	}

	// A private store and queue keep the push isolated from any
	// console instance on the same machine.
	store := tasks.NewStore()
	queue := notify.New(len(opts.Files) + 1)
	orch := uploader.New(client, store, queue)
	pipeline := intake.NewPipeline(intake.PolicyFromConfig(cfg), store, queue, orch)

	created, rejected := pipeline.Submit(domain.ID, opts.Metadata, batch)
	for _, rej := range rejected {
		fmt.Fprintf(out, "rejected %s: %s\n", rej.File.Name, strings.Join(rej.Reasons, "; "))
	}
	if len(created) == 0 {
		return fmt.Errorf("no files accepted")
	}

	var totalBytes int64
	for _, task := range created {
		totalBytes += task.File.Size
	}

	bar := pb.New64(totalBytes)
	bar.Set(pb.Bytes, true)
	bar.SetWriter(out)
	if err := bar.Err(); err != nil {
		return err
	}
	bar.Start()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-store.Changes():
			case <-ticker.C:
			}
			if updateBar(bar, store) {
				return
			}
		}
	}()

	orch.Wait()
	<-done
	updateBar(bar, store)
	bar.Finish()

	// The queue keeps newest first; replay oldest first for the log.
	toasts := queue.Snapshot()
	for i := len(toasts) - 1; i >= 0; i-- {
		fmt.Fprintf(out, "%s: %s\n", toasts[i].Title, toasts[i].Message)
	}

	failed := len(rejected)
	for _, task := range store.Snapshot() {
		if task.Status == types.TaskError {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files not uploaded", failed, len(opts.Files))
	}
	return nil
}

// updateBar pushes the aggregate progress into the bar and reports
// whether every task reached a terminal state.
func updateBar(bar *pb.ProgressBar, store *tasks.Store) bool {
	var current int64
	allDone := true
	uploading := ""
	for _, task := range store.Snapshot() {
		switch task.Status {
		case types.TaskSuccess:
			current += task.File.Size
		case types.TaskError:
			current += task.File.Size * int64(task.Progress) / 100
		case types.TaskUploading:
			current += task.File.Size * int64(task.Progress) / 100
			uploading = task.File.Name
			allDone = false
		default:
			allDone = false
		}
	}
	bar.SetCurrent(current)
	if uploading != "" {
		bar.Set("prefix", ellipsis(uploading, 40)+": ")
	} else {
		bar.Set("prefix", "")
	}
	return allDone
}

func ellipsis(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return "[...]" + s[len(s)-length+5:]
}

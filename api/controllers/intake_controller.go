package controllers

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wrenko/ragsend-go/intake"
	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
	"github.com/wrenko/ragsend-go/uploader"
)

const spoolDirName = "ragsend-spool"

// IntakeController accepts file batches from the console frontend.
type IntakeController struct {
	pipeline *intake.Pipeline
}

func NewIntakeController(pipeline *intake.Pipeline) *IntakeController {
	return &IntakeController{pipeline: pipeline}
}

// HandleIntake validates a multipart batch and starts uploads for the
// accepted files. Rejections come back in the same response.
// POST /api/console/v1/intake (fields: domainId, metadata; file parts keyed "files")
func (ic *IntakeController) HandleIntake(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid multipart form: "+err.Error()))
		return
	}
	domainId := strings.TrimSpace(c.PostForm("domainId"))
	if domainId == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Missing required field: domainId"))
		return
	}
	metadata := c.PostForm("metadata")

	headers := form.File["files"]
	if len(headers) == 0 {
		// Empty selection is a no-op, mirroring a cancelled file picker.
		c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(types.IntakeResult{
			Tasks:      []types.UploadTask{},
			Rejections: []types.Rejection{},
		}))
		return
	}

	batch, err := spoolBatch(c, headers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to save file: "+err.Error()))
		return
	}
	created, rejected := ic.pipeline.Submit(domainId, metadata, batch)
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(intakeResult(created, rejected)))
}

// intakeResult keeps empty lists as [] in the JSON response.
func intakeResult(created []types.UploadTask, rejected []types.Rejection) types.IntakeResult {
	if created == nil {
		created = []types.UploadTask{}
	}
	if rejected == nil {
		rejected = []types.Rejection{}
	}
	return types.IntakeResult{Tasks: created, Rejections: rejected}
}

// spoolBatch copies the multipart parts into a temp spool so failed
// tasks can be retried without the client resending bytes.
func spoolBatch(c *gin.Context, headers []*multipart.FileHeader) ([]intake.Incoming, error) {
	spoolDir := filepath.Join(os.TempDir(), spoolDirName)
	if err := os.MkdirAll(spoolDir, 0o750); err != nil {
		return nil, err
	}
	var batch []intake.Incoming
	for _, header := range headers {
		name := filepath.Base(header.Filename)
		if name == "" || name == "." {
			name = "upload"
		}
		spool, err := os.CreateTemp(spoolDir, "intake-*")
		if err != nil {
			cleanupBatch(batch)
			return nil, err
		}
		path := spool.Name()
		spool.Close()
		if err := c.SaveUploadedFile(header, path); err != nil {
			os.Remove(path)
			cleanupBatch(batch)
			return nil, err
		}
		batch = append(batch, intake.Incoming{
			Meta: types.FileMeta{
				Name: name,
				Size: header.Size,
				Type: partContentType(header, name),
			},
			Source:  uploader.FileSource(path),
			Cleanup: func() { os.Remove(path) },
		})
	}
	return batch, nil
}

func cleanupBatch(batch []intake.Incoming) {
	for _, in := range batch {
		if in.Cleanup != nil {
			in.Cleanup()
		}
	}
}

// partContentType prefers the client's part header over sniffing the
// extension.
func partContentType(header *multipart.FileHeader, name string) string {
	ct := header.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		return tool.DetectFileType(name)
	}
	return ct
}

package uploader

import (
	"bytes"
	"io"
	"os"
)

// Source supplies the payload bytes for one task. Open is called once
// per attempt, a retry reopens the source from the start.
type Source interface {
	Open() (io.ReadCloser, error)
}

// FileSource reads the payload from a file on disk.
type FileSource string

func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

// BytesSource serves an in-memory payload.
type BytesSource []byte

func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

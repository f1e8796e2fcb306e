package backend

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
)

// Endpoint is the slice of the document backend the upload path needs.
type Endpoint interface {
	UploadDocument(ctx context.Context, req UploadRequest, onProgress func(sent int64)) (*types.Document, error)
}

// UploadRequest carries one file to the backend's document endpoint.
type UploadRequest struct {
	DomainID string
	FileName string
	FileType string
	Size     int64
	Metadata string
	Body     io.Reader
}

// APIError is a non-2xx backend response with its detail message.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
}

// Client talks to the document backend REST API.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	uploadClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   tool.GetHttpClient(),
		uploadClient: tool.GetUploadHttpClient(),
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// UploadDocument streams the file as multipart form data and returns the
// created document. onProgress receives the cumulative byte count of the
// file part as it is consumed.
func (c *Client) UploadDocument(ctx context.Context, req UploadRequest, onProgress func(sent int64)) (*types.Document, error) {
	if req.DomainID == "" {
		return nil, fmt.Errorf("domain ID is required")
	}
	if req.FileName == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if req.Body == nil {
		return nil, fmt.Errorf("file body is required")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go c.writeUploadForm(pw, mw, req, onProgress)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/documents/", pr)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %v", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.uploadClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("upload cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to reach backend: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close upload response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %v", err)
	}

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		var doc types.Document
		if err := sonic.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse document response: %v", err)
		}
		if doc.ID == "" {
			return nil, fmt.Errorf("backend response missing document ID")
		}
		tool.DefaultLogger.Infof("Document %s created for %s", doc.ID, req.FileName)
		return &doc, nil
	default:
		return nil, apiError(resp.StatusCode, body)
	}
}

// writeUploadForm streams the multipart body into the pipe. Errors are
// propagated to the reading side through CloseWithError.
func (c *Client) writeUploadForm(pw *io.PipeWriter, mw *multipart.Writer, req UploadRequest, onProgress func(sent int64)) {
	fail := func(err error) {
		pw.CloseWithError(err)
	}
	if err := mw.WriteField("domain_id", req.DomainID); err != nil {
		fail(fmt.Errorf("failed to write domain field: %v", err))
		return
	}
	part, err := createFilePart(mw, req.FileName, req.FileType)
	if err != nil {
		fail(fmt.Errorf("failed to create file part: %v", err))
		return
	}
	if _, err := io.Copy(part, &progressReader{r: req.Body, report: onProgress}); err != nil {
		fail(fmt.Errorf("failed to stream file: %v", err))
		return
	}
	if req.Metadata != "" {
		if err := mw.WriteField("metadata", req.Metadata); err != nil {
			fail(fmt.Errorf("failed to write metadata field: %v", err))
			return
		}
	}
	if err := mw.Close(); err != nil {
		fail(fmt.Errorf("failed to finish multipart body: %v", err))
		return
	}
	pw.Close()
}

// createFilePart opens the file field with an explicit content type so
// the backend sees the detected MIME type instead of octet-stream.
func createFilePart(mw *multipart.Writer, fileName, fileType string) (io.Writer, error) {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(fileName)))
	if fileType != "" {
		header.Set("Content-Type", fileType)
	}
	return mw.CreatePart(header)
}

// apiError parses the backend's {"detail": ...} error body, falling back
// to a generic message per status code.
func apiError(status int, body []byte) *APIError {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := sonic.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		return &APIError{StatusCode: status, Detail: parsed.Detail}
	}
	var detail string
	switch status {
	case http.StatusBadRequest:
		detail = "invalid upload request"
	case http.StatusNotFound:
		detail = "domain not found"
	case http.StatusRequestEntityTooLarge:
		detail = "file too large"
	case http.StatusInternalServerError:
		detail = "internal server error"
	default:
		detail = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Detail: detail}
}

// ListDomains fetches every domain the backend knows about.
func (c *Client) ListDomains(ctx context.Context) ([]types.Domain, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/domains/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build domains request: %v", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backend: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close domains response body: %v", err)
		}
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}
	var list types.DomainList
	if err := sonic.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to parse domain list: %v", err)
	}
	return list.Domains, nil
}

// Health probes the backend's health endpoint.
func (c *Client) Health(ctx context.Context) (*types.HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build health request: %v", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backend: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close health response body: %v", err)
		}
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}
	var status types.HealthStatus
	if err := sonic.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse health response: %v", err)
	}
	return &status, nil
}

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/wrenko/ragsend-go/types"
)

func TestUploadDocumentSuccess(t *testing.T) {
	content := []byte("%PDF-1.4 test content")
	var gotDomain, gotFilename, gotMetadata string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/documents/" || r.Method != http.MethodPost {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("Failed to parse multipart form: %v", err)
		}
		gotDomain = r.FormValue("domain_id")
		gotMetadata = r.FormValue("metadata")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("Failed to read file part: %v", err)
		}
		defer file.Close()
		gotFilename = header.Filename
		gotBody, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(types.Document{
			ID:       "doc-1",
			DomainID: gotDomain,
			Filename: header.Filename,
			FileSize: int64(len(gotBody)),
			Status:   "pending",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	var lastSent atomic.Int64
	doc, err := client.UploadDocument(context.Background(), UploadRequest{
		DomainID: "domain-1",
		FileName: "test.pdf",
		FileType: "application/pdf",
		Size:     int64(len(content)),
		Metadata: `{"source":"unit"}`,
		Body:     bytes.NewReader(content),
	}, func(sent int64) {
		lastSent.Store(sent)
	})
	if err != nil {
		t.Fatalf("Expected upload to succeed, got %v", err)
	}
	if doc.ID != "doc-1" {
		t.Errorf("Expected document ID doc-1, got %q", doc.ID)
	}
	if gotDomain != "domain-1" {
		t.Errorf("Expected domain_id domain-1, got %q", gotDomain)
	}
	if gotFilename != "test.pdf" {
		t.Errorf("Expected filename test.pdf, got %q", gotFilename)
	}
	if gotMetadata != `{"source":"unit"}` {
		t.Errorf("Expected metadata field, got %q", gotMetadata)
	}
	if !bytes.Equal(gotBody, content) {
		t.Errorf("Expected backend to receive %d bytes, got %d", len(content), len(gotBody))
	}
	if lastSent.Load() != int64(len(content)) {
		t.Errorf("Expected final progress %d, got %d", len(content), lastSent.Load())
	}
}

func TestUploadDocumentBackendDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Invalid file type. Allowed types: pdf, docx, txt, md, rtf"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.UploadDocument(context.Background(), UploadRequest{
		DomainID: "domain-1",
		FileName: "test.exe",
		Body:     bytes.NewReader([]byte("MZ")),
	}, nil)
	if err == nil {
		t.Fatalf("Expected upload to fail")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", apiErr.StatusCode)
	}
	want := "Invalid file type. Allowed types: pdf, docx, txt, md, rtf"
	if apiErr.Detail != want {
		t.Errorf("Expected detail %q, got %q", want, apiErr.Detail)
	}
}

func TestUploadDocumentOpaqueErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.UploadDocument(context.Background(), UploadRequest{
		DomainID: "domain-1",
		FileName: "test.pdf",
		Body:     bytes.NewReader([]byte("x")),
	}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.Detail != "internal server error" {
		t.Errorf("Expected fallback detail, got %q", apiErr.Detail)
	}
}

func TestUploadDocumentValidatesRequest(t *testing.T) {
	client := NewClient("http://127.0.0.1:9")
	if _, err := client.UploadDocument(context.Background(), UploadRequest{
		FileName: "test.pdf",
		Body:     bytes.NewReader([]byte("x")),
	}, nil); err == nil {
		t.Errorf("Expected missing domain ID to fail")
	}
	if _, err := client.UploadDocument(context.Background(), UploadRequest{
		DomainID: "domain-1",
		Body:     bytes.NewReader([]byte("x")),
	}, nil); err == nil {
		t.Errorf("Expected missing file name to fail")
	}
}

func TestListDomains(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/domains/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.DomainList{
			Domains: []types.Domain{
				{ID: "d1", Name: "engineering"},
				{ID: "d2", Name: "support"},
			},
			Total: 2,
			Limit: 100,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	domains, err := client.ListDomains(context.Background())
	if err != nil {
		t.Fatalf("Expected domain list, got %v", err)
	}
	if len(domains) != 2 || domains[0].Name != "engineering" {
		t.Errorf("Expected 2 domains starting with engineering, got %+v", domains)
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "healthy", "timestamp": "2025-06-01T12:00:00Z", "version": "1.0.0", "environment": "development"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Expected health status, got %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("Expected healthy status, got %q", status.Status)
	}
}

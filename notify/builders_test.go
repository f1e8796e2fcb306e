package notify

import (
	"testing"

	"github.com/wrenko/ragsend-go/types"
)

func TestFileRejectedMessage(t *testing.T) {
	n := FileRejected("test.exe", []string{"File type must be one of: pdf, docx, txt, md, rtf"})
	if n.Kind != types.NotifyError {
		t.Errorf("Expected error kind, got %q", n.Kind)
	}
	if n.Title != "File rejected" {
		t.Errorf("Expected title %q, got %q", "File rejected", n.Title)
	}
	want := "test.exe: File type must be one of: pdf, docx, txt, md, rtf"
	if n.Message != want {
		t.Errorf("Expected message %q, got %q", want, n.Message)
	}
	if n.DurationMs != ErrorDurationMs {
		t.Errorf("Expected duration %d, got %d", ErrorDurationMs, n.DurationMs)
	}
}

func TestFileRejectedJoinsReasons(t *testing.T) {
	n := FileRejected("big.exe", []string{"bad type", "too large"})
	want := "big.exe: bad type; too large"
	if n.Message != want {
		t.Errorf("Expected message %q, got %q", want, n.Message)
	}
}

func TestUploadSucceeded(t *testing.T) {
	n := UploadSucceeded("report.pdf")
	if n.Kind != types.NotifySuccess {
		t.Errorf("Expected success kind, got %q", n.Kind)
	}
	if n.Title != "Upload successful" {
		t.Errorf("Expected title %q, got %q", "Upload successful", n.Title)
	}
	if n.Message != "report.pdf uploaded" {
		t.Errorf("Expected message %q, got %q", "report.pdf uploaded", n.Message)
	}
}

func TestUploadFailed(t *testing.T) {
	n := UploadFailed("report.pdf", "File too large. Maximum size: 10485760 bytes")
	if n.Kind != types.NotifyError {
		t.Errorf("Expected error kind, got %q", n.Kind)
	}
	if n.Title != "Upload failed" {
		t.Errorf("Expected title %q, got %q", "Upload failed", n.Title)
	}
	want := "report.pdf: File too large. Maximum size: 10485760 bytes"
	if n.Message != want {
		t.Errorf("Expected message %q, got %q", want, n.Message)
	}
}

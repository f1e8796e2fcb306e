package tool

import (
	"net/http"
	"time"
)

var (
	DefaultTimeout       = 30 * time.Second
	ConnectionHttpClient *http.Client
	UploadHttpClient     *http.Client
)

func init() {
	ConnectionHttpClient = NewHTTPClient(DefaultTimeout)
	// Uploads carry no client-level timeout, cancellation goes through
	// the request context.
	UploadHttpClient = NewHTTPClient(0)
}

// NewHTTPClient creates an HTTP client with pooled connections.
// A timeout of 0 means no client-level deadline.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// SetRequestTimeout rebuilds the short-call client with the configured timeout.
func SetRequestTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ConnectionHttpClient = NewHTTPClient(timeout)
}

func GetHttpClient() *http.Client {
	return ConnectionHttpClient
}

func GetUploadHttpClient() *http.Client {
	return UploadHttpClient
}

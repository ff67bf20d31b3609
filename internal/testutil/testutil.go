package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// TempWorkdir is a temporary working directory for command tests
type TempWorkdir struct {
	Path  string
	T     *testing.T
	oldWd string
}

// NewTempWorkdir creates a temporary directory and changes into it
func NewTempWorkdir(t *testing.T) *TempWorkdir {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "wayback-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	oldWd, err := os.Getwd()
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to change directory: %v", err)
	}

	return &TempWorkdir{
		Path:  tmpDir,
		T:     t,
		oldWd: oldWd,
	}
}

// Cleanup restores the previous working directory and removes the temp dir
func (w *TempWorkdir) Cleanup() {
	w.T.Helper()
	if err := os.Chdir(w.oldWd); err != nil {
		w.T.Errorf("failed to restore working directory: %v", err)
	}
	if err := os.RemoveAll(w.Path); err != nil {
		w.T.Errorf("failed to cleanup temp dir: %v", err)
	}
}

// CreateFile creates a file in the working directory
func (w *TempWorkdir) CreateFile(name, content string) {
	w.T.Helper()
	path := filepath.Join(w.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		w.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		w.T.Fatalf("failed to create file: %v", err)
	}
}

// FileExists checks if a file exists in the working directory
func (w *TempWorkdir) FileExists(name string) bool {
	w.T.Helper()
	_, err := os.Stat(filepath.Join(w.Path, name))
	return err == nil
}

// ReadFile returns the content of a file in the working directory
func (w *TempWorkdir) ReadFile(name string) string {
	w.T.Helper()
	data, err := os.ReadFile(filepath.Join(w.Path, name))
	if err != nil {
		w.T.Fatalf("failed to read file: %v", err)
	}
	return string(data)
}

// CDXServer is a fake CDX endpoint that records the requests it receives
type CDXServer struct {
	*httptest.Server

	mu         sync.Mutex
	queries    []url.Values
	userAgents []string
}

// Queries returns the query parameters of every request received so far
func (s *CDXServer) Queries() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.queries...)
}

// UserAgents returns the User-Agent header of every request received so far
func (s *CDXServer) UserAgents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.userAgents...)
}

// NewCDXServer starts a fake CDX endpoint answering with status and body
func NewCDXServer(t *testing.T, status int, body string) *CDXServer {
	t.Helper()

	s := &CDXServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.queries = append(s.queries, r.URL.Query())
		s.userAgents = append(s.userAgents, r.UserAgent())
		s.mu.Unlock()

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)

	return s
}

// NewHangingServer starts an endpoint that never answers until the client
// gives up
func NewHangingServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	return server
}

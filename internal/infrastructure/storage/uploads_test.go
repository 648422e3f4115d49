package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// uploadFileHeader builds a real multipart.FileHeader the way Echo would
// receive it.
func uploadFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("csvFile", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	return req.MultipartForm.File["csvFile"][0]
}

func TestUploadStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewUploadStore(dir)
	if err != nil {
		t.Fatalf("NewUploadStore returned error: %v", err)
	}

	fh := uploadFileHeader(t, "students.csv", "name,email\nAlice,a@kgkite.ac.in\n")

	path, err := store.Save(fh)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("file saved outside base dir: %s", path)
	}
	if !strings.HasSuffix(path, ".csv") {
		t.Fatalf("original extension not preserved: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "name,email\nAlice,a@kgkite.ac.in\n" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestUploadStore_SaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewUploadStore returned error: %v", err)
	}

	fh := uploadFileHeader(t, "roster.csv", "a,b\n")

	first, err := store.Save(fh)
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	second, err := store.Save(fh)
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if first == second {
		t.Fatalf("saved files must not collide: %s", first)
	}
}

func TestNewUploadStore_CreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	if _, err := NewUploadStore(dir); err != nil {
		t.Fatalf("NewUploadStore returned error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("base dir not created: %v", err)
	}
}

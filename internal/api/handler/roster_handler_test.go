package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
)

type stubRosterService struct {
	studentsFn func(ctx context.Context, filePath string) (*domain.ImportSummary, error)
	alumniFn   func(ctx context.Context, filePath string) (*domain.ImportSummary, error)
}

func (s *stubRosterService) ImportStudents(ctx context.Context, filePath string) (*domain.ImportSummary, error) {
	return s.studentsFn(ctx, filePath)
}

func (s *stubRosterService) ImportAlumni(ctx context.Context, filePath string) (*domain.ImportSummary, error) {
	return s.alumniFn(ctx, filePath)
}

type stubUploadSaver struct {
	path  string
	saved []string
}

func (s *stubUploadSaver) Save(fh *multipart.FileHeader) (string, error) {
	s.saved = append(s.saved, fh.Filename)
	return s.path, nil
}

// rosterRequest builds a multipart request carrying a csvFile field.
func rosterRequest(t *testing.T, field, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, "students.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/roster/students", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestRosterHandler_ImportStudents_Success(t *testing.T) {
	e := newTestEcho()
	saver := &stubUploadSaver{path: "/tmp/roster-abc.csv"}
	svc := &stubRosterService{
		studentsFn: func(_ context.Context, filePath string) (*domain.ImportSummary, error) {
			if filePath != "/tmp/roster-abc.csv" {
				t.Fatalf("service should receive the saved path, got %q", filePath)
			}
			return &domain.ImportSummary{
				TotalRows: 3,
				Inserted:  1,
				Skipped:   2,
				Errors: []domain.RowError{
					{Row: 3, Email: "dup@kgkite.ac.in", Err: "user already exists and is already verified"},
					{Row: 4, Err: "missing required fields: name/email"},
				},
				NewIdentities: []domain.NewIdentity{{Name: "Alice", Email: "alice@kgkite.ac.in"}},
			}, nil
		},
	}
	h := NewRosterHandler(svc, saver)

	req := rosterRequest(t, "csvFile", "name,email\nAlice,alice@kgkite.ac.in\n")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ImportStudents(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(saver.saved) != 1 {
		t.Fatalf("upload not saved")
	}

	var resp struct {
		Success bool `json:"success"`
		Summary *struct {
			TotalRows int              `json:"totalRows"`
			Inserted  int              `json:"inserted"`
			Skipped   int              `json:"skipped"`
			Errors    []map[string]any `json:"errors"`
			NewUsers  []map[string]any `json:"newUsers"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Summary == nil {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
	if resp.Summary.TotalRows != 3 || resp.Summary.Inserted != 1 || resp.Summary.Skipped != 2 {
		t.Fatalf("unexpected summary: %+v", resp.Summary)
	}
	if len(resp.Summary.Errors) != 2 || resp.Summary.Errors[0]["row"].(float64) != 3 {
		t.Fatalf("unexpected errors: %+v", resp.Summary.Errors)
	}
	if len(resp.Summary.NewUsers) != 1 || resp.Summary.NewUsers[0]["email"] != "alice@kgkite.ac.in" {
		t.Fatalf("unexpected newUsers: %+v", resp.Summary.NewUsers)
	}
}

func TestRosterHandler_ImportStudents_StreamError(t *testing.T) {
	e := newTestEcho()
	svc := &stubRosterService{
		studentsFn: func(_ context.Context, _ string) (*domain.ImportSummary, error) {
			return nil, domain.ErrMalformedStream
		},
	}
	h := NewRosterHandler(svc, &stubUploadSaver{path: "/tmp/roster-abc.csv"})

	req := rosterRequest(t, "csvFile", "broken")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ImportStudents(c); err != nil {
		t.Fatalf("stream errors render directly, got %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != false {
		t.Fatalf("expected success=false: %+v", resp)
	}
	if _, hasSummary := resp["summary"]; hasSummary {
		t.Fatalf("stream error must not include a summary: %+v", resp)
	}
}

func TestRosterHandler_ImportStudents_MissingFile(t *testing.T) {
	e := newTestEcho()
	h := NewRosterHandler(&stubRosterService{}, &stubUploadSaver{})

	req := rosterRequest(t, "wrongField", "name,email\n")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ImportStudents(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestRosterHandler_ImportAlumni_Success(t *testing.T) {
	e := newTestEcho()
	svc := &stubRosterService{
		alumniFn: func(_ context.Context, _ string) (*domain.ImportSummary, error) {
			return &domain.ImportSummary{TotalRows: 1, Inserted: 1, Errors: []domain.RowError{}, NewIdentities: []domain.NewIdentity{}}, nil
		},
	}
	h := NewRosterHandler(svc, &stubUploadSaver{path: "/tmp/roster-def.csv"})

	req := rosterRequest(t, "csvFile", "name,email\nFrank,frank@kgkite.ac.in\n")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ImportAlumni(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

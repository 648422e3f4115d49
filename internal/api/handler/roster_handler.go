package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kgconnect/alumni-portal/internal/api/metrics"
	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

// rosterFileField is the multipart form field carrying the uploaded CSV.
const rosterFileField = "csvFile"

// UploadSaver persists an incoming multipart file and returns its local path.
type UploadSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
}

// RosterHandler handles bulk roster CSV uploads.
type RosterHandler struct {
	service ports.RosterService
	uploads UploadSaver
}

func NewRosterHandler(service ports.RosterService, uploads UploadSaver) *RosterHandler {
	return &RosterHandler{service: service, uploads: uploads}
}

type rosterImportResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Summary *domain.ImportSummary `json:"summary,omitempty"`
}

// ImportStudents handles POST /api/roster/students.
//
// @Summary      Bulk import a student roster CSV
// @Tags         roster
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        csvFile  formData  file  true  "Student roster CSV"
// @Success      200      {object}  rosterImportResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      500      {object}  rosterImportResponse
// @Router       /api/roster/students [post]
func (h *RosterHandler) ImportStudents(c echo.Context) error {
	return h.runImport(c, domain.RoleStudent, h.service.ImportStudents)
}

// ImportAlumni handles POST /api/roster/alumni.
//
// @Summary      Bulk import an alumni roster CSV
// @Tags         roster
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        csvFile  formData  file  true  "Alumni roster CSV"
// @Success      200      {object}  rosterImportResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      500      {object}  rosterImportResponse
// @Router       /api/roster/alumni [post]
func (h *RosterHandler) ImportAlumni(c echo.Context) error {
	return h.runImport(c, domain.RoleAlumni, h.service.ImportAlumni)
}

type importFunc func(ctx context.Context, filePath string) (*domain.ImportSummary, error)

func (h *RosterHandler) runImport(c echo.Context, role string, run importFunc) error {
	fh, err := c.FormFile(rosterFileField)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing csvFile upload")
	}

	path, err := h.uploads.Save(fh)
	if err != nil {
		return err
	}

	start := time.Now()
	summary, err := run(c.Request().Context(), path)
	metrics.RosterImportDuration.WithLabelValues(role).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, domain.ErrMalformedStream) {
			metrics.RosterImportsTotal.WithLabelValues(role, "stream_error").Inc()
			return c.JSON(http.StatusInternalServerError, rosterImportResponse{
				Success: false,
				Message: "roster file could not be parsed",
			})
		}
		metrics.RosterImportsTotal.WithLabelValues(role, "error").Inc()
		return err
	}

	metrics.RosterImportsTotal.WithLabelValues(role, "completed").Inc()
	metrics.RosterRowsTotal.WithLabelValues(role, "inserted").Add(float64(summary.Inserted))
	metrics.RosterRowsTotal.WithLabelValues(role, "skipped").Add(float64(summary.Skipped))

	return c.JSON(http.StatusOK, rosterImportResponse{
		Success: true,
		Message: "roster processed",
		Summary: summary,
	})
}

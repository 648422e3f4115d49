package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

type salaryRangeRequest struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

type createJobRequest struct {
	Title             string              `json:"title"               validate:"required"`
	Company           string              `json:"company"             validate:"required"`
	CompanyWebsiteURL string              `json:"company_website_url" validate:"required,url"`
	Description       string              `json:"description"         validate:"required"`
	Location          string              `json:"location"`
	JobType           string              `json:"job_type"`
	Salary            *salaryRangeRequest `json:"salary"`
}

type updateJobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open closed"`
}

type applyResponse struct {
	ApplicationURL string `json:"application_url"`
}

// List handles GET /api/jobs. An optional ?status= filter narrows the result.
//
// @Summary      List job postings
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (open|closed)"
// @Success      200     {array}   domain.Job
// @Failure      401     {object}  errorResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.service.ListJobs(c.Request().Context(), domain.JobStatus(c.QueryParam("status")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Get handles GET /api/jobs/:id.
//
// @Summary      Get a job posting
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  errorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Create handles POST /api/jobs (alumni and admin).
//
// @Summary      Create a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  domain.Job
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input := ports.CreateJobInput{
		Title:             req.Title,
		Company:           req.Company,
		CompanyWebsiteURL: req.CompanyWebsiteURL,
		Description:       req.Description,
		Location:          req.Location,
		JobType:           req.JobType,
		PostedBy:          userID,
	}
	if req.Salary != nil {
		input.Salary = &domain.SalaryRange{
			Min:      req.Salary.Min,
			Max:      req.Salary.Max,
			Currency: req.Salary.Currency,
		}
	}

	job, err := h.service.CreateJob(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// UpdateStatus handles PATCH /api/jobs/:id/status.
//
// @Summary      Open or close a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Job id"
// @Param        body  body      updateJobStatusRequest  true  "New status"
// @Success      200   {object}  domain.Job
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/jobs/{id}/status [patch]
func (h *JobHandler) UpdateStatus(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateJobStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	job, err := h.service.UpdateJobStatus(c.Request().Context(), c.Param("id"), userID, role, domain.JobStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Delete handles DELETE /api/jobs/:id.
//
// @Summary      Delete a job posting
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Job id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteJob(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Apply handles POST /api/jobs/:id/apply — returns the external application
// URL; applications themselves happen on the company site.
//
// @Summary      Apply to a job posting
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  applyResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/jobs/{id}/apply [post]
func (h *JobHandler) Apply(c echo.Context) error {
	url, err := h.service.Apply(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, applyResponse{ApplicationURL: url})
}

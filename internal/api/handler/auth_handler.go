package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kgconnect/alumni-portal/internal/core/domain"
	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

// AuthHandler handles registration, login and the account claim flow.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name         string `json:"name"          validate:"required"`
	CollegeEmail string `json:"college_email" validate:"required,email"`
	Password     string `json:"password"      validate:"required,min=6"`
	Role         string `json:"role"          validate:"required,oneof=student alumni"`
	Department   string `json:"department"`
	RollNumber   string `json:"roll_number"`
	Batch        string `json:"batch"`
}

type loginRequest struct {
	CollegeEmail string `json:"college_email" validate:"required,email"`
	Password     string `json:"password"      validate:"required"`
}

type claimRequest struct {
	CollegeEmail string `json:"college_email" validate:"required,email"`
	Password     string `json:"password"      validate:"required,min=6"`
}

type authResponse struct {
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Register creates a new account. Students matching the pre-verified registry
// are verified immediately; everyone else waits for admin approval.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:         req.Name,
		CollegeEmail: req.CollegeEmail,
		Password:     req.Password,
		Role:         req.Role,
		Department:   req.Department,
		RollNumber:   req.RollNumber,
		Batch:        req.Batch,
	})
	if err != nil {
		return err
	}

	resp := authResponse{Token: result.Token, User: result.User}
	if result.Pending {
		resp.Message = "registration received, awaiting admin approval"
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login authenticates an account and returns a JWT.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.CollegeEmail, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// Claim sets the first real password on an account the roster import created
// without usable credentials.
//
// @Summary      Claim a bulk-imported account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      claimRequest  true  "Claim details"
// @Success      200   {object}  authResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/claim [post]
func (h *AuthHandler) Claim(c echo.Context) error {
	var req claimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.authService.ClaimAccount(c.Request().Context(), req.CollegeEmail, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// Me returns the authenticated account's profile.
//
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

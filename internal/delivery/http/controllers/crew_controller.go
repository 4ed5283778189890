package controllers

import (
	"log/slog"
	"net/http"
	"net/url"

	"shoresquad/internal/delivery/http/helpers"
	"shoresquad/internal/domain"
)

// CreateCrewRequest is the request body for POST /crews.
type CreateCrewRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (c CreateCrewRequest) input() domain.CreateCrewInput {
	return domain.CreateCrewInput{Name: c.Name, Location: c.Location}
}

// Validate implements Validator.
func (c CreateCrewRequest) Validate() []string {
	return c.input().Validate()
}

// BindForm implements FormBinder.
func (c *CreateCrewRequest) BindForm(form url.Values) error {
	c.Name = form.Get("name")
	c.Location = form.Get("location")
	return nil
}

// CrewSuccessResponse is the success response envelope carrying one crew.
type CrewSuccessResponse struct {
	Data  *domain.Crew      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CrewListSuccessResponse is the success response envelope for GET /crews.
type CrewListSuccessResponse struct {
	Data  []*domain.Crew    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type CrewController struct {
	Logger  *slog.Logger
	Service domain.SquadService
}

func NewCrewController(logger *slog.Logger, svc domain.SquadService) *CrewController {
	return &CrewController{Logger: logger, Service: svc}
}

// ListCrews godoc
// @Summary List crews
// @Tags crews
// @Produce json
// @Success 200 {object} controllers.CrewListSuccessResponse
// @Router /crews [get]
func (c *CrewController) ListCrews(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.ListCrews(r.Context()))
}

// CreateCrew godoc
// @Summary Create a crew
// @Description Creates a crew with the current user as its first member and makes it the user's crew.
// @Tags crews
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param crew body CreateCrewRequest true "Crew data"
// @Success 201 {object} controllers.CrewSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /crews [post]
func (c *CrewController) CreateCrew(w http.ResponseWriter, r *http.Request) {
	var req CreateCrewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	crew, err := c.Service.CreateCrew(r.Context(), req.input())
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "crew not found")
		return
	}
	helpers.WriteResult(w, r, http.StatusCreated, crew)
}

// JoinCrew godoc
// @Summary Join a crew
// @Description Adds the current user to the crew. Joining twice is a no-op.
// @Tags crews
// @Produce json
// @Param crewID path int true "Crew ID"
// @Success 200 {object} controllers.CrewSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /crews/{crewID}/join [post]
func (c *CrewController) JoinCrew(w http.ResponseWriter, r *http.Request) {
	crewID, ok := helpers.PathID(w, r, "crewID")
	if !ok {
		return
	}
	crew, err := c.Service.JoinCrew(r.Context(), crewID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "crew not found")
		return
	}
	helpers.WriteResult(w, r, http.StatusOK, crew)
}

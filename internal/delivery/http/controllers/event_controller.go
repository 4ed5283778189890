package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"shoresquad/internal/delivery/http/helpers"
	"shoresquad/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	CrewSize    int    `json:"crewSize"`
}

func (c CreateEventRequest) input() domain.CreateEventInput {
	return domain.CreateEventInput{
		Name:        c.Name,
		Date:        c.Date,
		Location:    c.Location,
		Description: c.Description,
		CrewSize:    c.CrewSize,
	}
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	return c.input().Validate()
}

// BindForm implements FormBinder for the create-event form.
func (c *CreateEventRequest) BindForm(form url.Values) error {
	crewSize, err := helpers.FormInt(form, "crewSize")
	if err != nil {
		return err
	}
	c.Name = form.Get("name")
	c.Date = form.Get("date")
	c.Location = form.Get("location")
	c.Description = form.Get("description")
	c.CrewSize = crewSize
	return nil
}

// EventSuccessResponse is the success response envelope carrying one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for GET /events.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.SquadService
}

func NewEventController(logger *slog.Logger, svc domain.SquadService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List cleanup events
// @Description Returns every event in creation order.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListSuccessResponse
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.ListEvents(r.Context()))
}

// CreateEvent godoc
// @Summary Create a cleanup event
// @Description Creates an event owned by the current user. The event is placed at the user's location when known, otherwise at the default map center. Form posts are redirected to the page.
// @Tags events
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Success 303 "form submission accepted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), req.input())
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteResult(w, r, http.StatusCreated, event)
}

// JoinEvent godoc
// @Summary Join an event
// @Description Adds the current user to the event's joined list. Joining twice is a no-op.
// @Tags events
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/join [post]
func (c *EventController) JoinEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.JoinEvent(r.Context(), eventID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteResult(w, r, http.StatusOK, event)
}

// ShareEvent godoc
// @Summary Share an event
// @Description Sends the event invitation through the configured share channel, or shows a share reminder when none is available.
// @Tags events
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 202 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/share [post]
func (c *EventController) ShareEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	if err := c.Service.ShareEvent(r.Context(), eventID); err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteResult(w, r, http.StatusAccepted, nil)
}

func (c *EventController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeServiceError(c.Logger, w, r, err, "event not found")
}

// writeServiceError maps domain errors onto the response envelope.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFound)
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

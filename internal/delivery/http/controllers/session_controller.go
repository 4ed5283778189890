package controllers

import (
	"log/slog"
	"net/http"
	"net/url"

	"shoresquad/internal/delivery/http/helpers"
	"shoresquad/internal/domain"
)

// UpdateMeRequest is the request body for PUT /me. An empty name resets the
// session to the anonymous user.
type UpdateMeRequest struct {
	Name string `json:"name"`
}

// BindForm implements FormBinder.
func (u *UpdateMeRequest) BindForm(form url.Values) error {
	u.Name = form.Get("name")
	return nil
}

// IdentitySuccessResponse is the success response envelope for /me.
type IdentitySuccessResponse struct {
	Data  domain.Identity   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SessionController exposes the session identity.
type SessionController struct {
	Logger  *slog.Logger
	Service domain.SquadService
}

func NewSessionController(logger *slog.Logger, svc domain.SquadService) *SessionController {
	return &SessionController{Logger: logger, Service: svc}
}

// GetMe godoc
// @Summary Current identity
// @Description Returns the current user, the acting name, the user's crew and the resolved location.
// @Tags session
// @Produce json
// @Success 200 {object} controllers.IdentitySuccessResponse
// @Router /me [get]
func (c *SessionController) GetMe(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.Identity(r.Context()))
}

// UpdateMe godoc
// @Summary Set the current user
// @Tags session
// @Accept json
// @Produce json
// @Param me body UpdateMeRequest true "Display name"
// @Success 200 {object} controllers.IdentitySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /me [put]
func (c *SessionController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateMeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	identity := c.Service.SetCurrentUser(r.Context(), req.Name)
	c.Logger.InfoContext(r.Context(), "current user changed", "actor", identity.Actor)
	helpers.WriteResult(w, r, http.StatusOK, identity)
}

package controllers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"shoresquad/internal/delivery/http/helpers"
	"shoresquad/internal/domain"
	"shoresquad/internal/notify"
	"shoresquad/internal/render"
)

//go:embed templates/*.html
var pageFS embed.FS

var pageTemplate = template.Must(template.ParseFS(pageFS, "templates/*.html"))

// RegionVersionHeader reports the version of a served fragment.
const RegionVersionHeader = "X-Region-Version"

// Fragment is a rendered display region.
type Fragment interface {
	HTML() template.HTML
	Version() uint64
}

// LayerSource exposes the map layers.
type LayerSource interface {
	Document() render.LayerDocument
}

// ToastSource exposes the visible notifications.
type ToastSource interface {
	Active() []notify.Toast
}

// ViewController serves the page shell and the rendered regions.
type ViewController struct {
	Logger    *slog.Logger
	Service   domain.SquadService
	Fragments map[string]Fragment
	Layers    LayerSource
	Toasts    ToastSource
}

func NewViewController(logger *slog.Logger, svc domain.SquadService, fragments map[string]Fragment, layers LayerSource, toasts ToastSource) *ViewController {
	return &ViewController{
		Logger:    logger,
		Service:   svc,
		Fragments: fragments,
		Layers:    layers,
		Toasts:    toasts,
	}
}

type pageData struct {
	Identity domain.Identity
	Events   template.HTML
	Crews    template.HTML
	Weather  template.HTML
	Toasts   []notify.Toast
	Map      bool
}

// Page renders the application shell with every region inlined.
func (c *ViewController) Page(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Identity: c.Service.Identity(r.Context()),
		Events:   c.fragmentHTML("events"),
		Crews:    c.fragmentHTML("crews"),
		Weather:  c.fragmentHTML("weather"),
		Toasts:   c.Toasts.Active(),
		Map:      c.Layers.Document().Ready,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.ExecuteTemplate(w, "page.html", data); err != nil {
		c.Logger.ErrorContext(r.Context(), "render page failed", "err", err)
	}
}

func (c *ViewController) fragmentHTML(name string) template.HTML {
	if f, ok := c.Fragments[name]; ok {
		return f.HTML()
	}
	return ""
}

// Fragment godoc
// @Summary Rendered region
// @Description Returns the current HTML of the events, crews or weather region. X-Region-Version increases on every re-render.
// @Tags views
// @Produce html
// @Param name path string true "Region name" Enums(events, crews, weather)
// @Success 200 {string} string "HTML fragment"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /fragments/{name} [get]
func (c *ViewController) Fragment(w http.ResponseWriter, r *http.Request) {
	f, ok := c.Fragments[r.PathValue("name")]
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "unknown fragment")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(RegionVersionHeader, strconv.FormatUint(f.Version(), 10))
	_, _ = w.Write([]byte(f.HTML()))
}

// MapLayerSuccessResponse is the success response envelope for GET /map.
type MapLayerSuccessResponse struct {
	Data  render.LayerDocument `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Map godoc
// @Summary Map layers
// @Description Returns the viewport, tile layer and markers for the browser map.
// @Tags views
// @Produce json
// @Success 200 {object} controllers.MapLayerSuccessResponse
// @Router /map [get]
func (c *ViewController) Map(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Layers.Document())
}

// Notifications godoc
// @Summary Visible notifications
// @Tags views
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is a list of toasts"
// @Router /notifications [get]
func (c *ViewController) Notifications(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Toasts.Active())
}

// Healthz godoc
// @Summary Liveness probe
// @Tags ops
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /healthz [get]
func (c *ViewController) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

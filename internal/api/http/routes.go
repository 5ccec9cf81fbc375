package httpapi

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/i474232898/weather-lookup/internal/location"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/widget"
)

// SessionCookie carries the id of the browser's widget.
const SessionCookie = "wl_session"

var validate = validator.New()

// Sessions is the widget registry the handlers read from.
type Sessions interface {
	GetOrCreate(id string) (*widget.Widget, bool)
}

// LocatorFunc picks the position source for a request that carries none.
type LocatorFunc func(c *fiber.Ctx) location.Locator

// Deps holds what the handlers need.
type Deps struct {
	Sessions Sessions
	Fetcher  *weather.Fetcher
	// DefaultLocator may be nil, in which case mounting falls back to the
	// default place.
	DefaultLocator LocatorFunc
	Logger         *zap.Logger
}

type handlers struct {
	Deps
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	h := &handlers{deps}

	app.Get("/", h.index)
	app.Get("/search", h.searchPage)

	v1 := app.Group("/api/v1")
	v1.Get("/widget", h.widgetState)
	v1.Post("/widget/mount", h.mount)
	v1.Post("/widget/search", h.search)
	v1.Get("/weather/current", h.current)
}

// widgetResponse is the JSON shape of a widget.
type widgetResponse struct {
	Session string       `json:"session"`
	State   widget.State `json:"state"`
	View    widget.View  `json:"view"`
	Mounted *bool        `json:"mounted,omitempty"`
	Fetched *bool        `json:"fetched,omitempty"`
}

func newWidgetResponse(id string, w *widget.Widget) widgetResponse {
	s := w.State()
	return widgetResponse{Session: id, State: s, View: widget.Render(s)}
}

// session returns the caller's widget, issuing a session cookie on first use.
func (h *handlers) session(c *fiber.Ctx) (string, *widget.Widget) {
	id := c.Cookies(SessionCookie)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	w, created := h.Sessions.GetOrCreate(id)
	if created {
		h.Logger.Debug("widget session created", zap.String("session", id))
	}
	return id, w
}

// coordsQuery is the optional position a request may carry.
type coordsQuery struct {
	Lat *float64 `mapstructure:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon *float64 `mapstructure:"lon" validate:"omitempty,gte=-180,lte=180"`
}

func (q coordsQuery) complete() bool {
	return q.Lat != nil && q.Lon != nil
}

func (q coordsQuery) coordinates() weather.Coordinates {
	return weather.Coordinates{Lat: *q.Lat, Lon: *q.Lon}
}

// parseCoordsQuery decodes lat/lon from the query string. Both or neither
// must be present.
func parseCoordsQuery(c *fiber.Ctx) (coordsQuery, error) {
	var q coordsQuery

	raw := map[string]string{}
	for _, k := range []string{"lat", "lon"} {
		if v := c.Query(k); v != "" {
			raw[k] = v
		}
	}
	if err := mapstructure.WeakDecode(raw, &q); err != nil {
		return q, err
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	if (q.Lat == nil) != (q.Lon == nil) {
		return q, errors.New("lat and lon must be given together")
	}
	return q, nil
}

// locatorFor picks the position source for the first visit: browser-supplied
// coordinates, an explicit denial, or the configured default.
func (h *handlers) locatorFor(c *fiber.Ctx) (location.Locator, error) {
	q, err := parseCoordsQuery(c)
	if err != nil {
		return nil, err
	}
	switch {
	case q.complete():
		return location.Fixed(q.coordinates()), nil
	case c.Query("geo") == "denied":
		return location.Denied{}, nil
	case h.DefaultLocator != nil:
		return h.DefaultLocator(c), nil
	default:
		return nil, nil
	}
}

func (h *handlers) renderPage(c *fiber.Ctx, w *widget.Widget) error {
	var buf bytes.Buffer
	if err := widget.RenderHTML(&buf, w.State()); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *handlers) index(c *fiber.Ctx) error {
	_, w := h.session(c)

	l, err := h.locatorFor(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	w.Mount(c.UserContext(), l)

	return h.renderPage(c, w)
}

func (h *handlers) searchPage(c *fiber.Ctx) error {
	_, w := h.session(c)
	w.Search(c.UserContext(), c.Query("q"))
	return h.renderPage(c, w)
}

func (h *handlers) widgetState(c *fiber.Ctx) error {
	id, w := h.session(c)
	return c.JSON(newWidgetResponse(id, w))
}

// mountRequest is the browser's geolocation outcome.
type mountRequest struct {
	Lat    *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon    *float64 `json:"lon" validate:"omitempty,gte=-180,lte=180"`
	Denied bool     `json:"denied"`
}

func (h *handlers) mount(c *fiber.Ctx) error {
	var req mountRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if (req.Lat == nil) != (req.Lon == nil) {
		return fiber.NewError(fiber.StatusBadRequest, "lat and lon must be given together")
	}

	id, w := h.session(c)

	var l location.Locator
	switch {
	case req.Denied:
		l = location.Denied{}
	case req.Lat != nil:
		l = location.Fixed{Lat: *req.Lat, Lon: *req.Lon}
	case h.DefaultLocator != nil:
		l = h.DefaultLocator(c)
	}

	mounted := w.Mount(c.UserContext(), l)

	resp := newWidgetResponse(id, w)
	resp.Mounted = &mounted
	return c.JSON(resp)
}

// searchRequest is a search-bar submission.
type searchRequest struct {
	Query string `json:"query"`
}

func (h *handlers) search(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	id, w := h.session(c)
	fetched := w.Search(c.UserContext(), req.Query)

	resp := newWidgetResponse(id, w)
	resp.Fetched = &fetched
	return c.JSON(resp)
}

// current is a stateless lookup by ?q= or ?lat=&lon=.
func (h *handlers) current(c *fiber.Ctx) error {
	coords, err := parseCoordsQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	place := strings.TrimSpace(c.Query("q"))

	var q weather.LocationQuery
	switch {
	case coords.complete():
		q = weather.CoordinatesQuery(coords.coordinates())
	case place != "":
		q = weather.PlaceQuery(place)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "either q or lat and lon are required")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 15*time.Second)
	defer cancel()

	reading, err := h.Fetcher.Fetch(ctx, q)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, weather.Message(err))
	}

	return c.JSON(reading)
}

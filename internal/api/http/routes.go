package httpapi

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/dashboard/views"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const sessionCookie = "wd_session"

var validate = validator.New()

// Deps are the components the HTTP layer talks to.
type Deps struct {
	Service      *weather.Service
	Renderer     *dashboard.Renderer
	ForecastDays int
	Logger       *slog.Logger
}

// RegisterRoutes wires the HTML dashboard and JSON API into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.ForecastDays < 1 || d.ForecastDays > weather.MaxForecastDays {
		d.ForecastDays = weather.MaxForecastDays
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		sid := sessionID(c)
		view := d.Renderer.Current(sid)
		return renderHTML(c, d.Logger, func(w io.Writer) error {
			return views.RenderDashboard(w, &views.DashboardPage{Title: "Dashboard", View: view, ForecastDays: d.ForecastDays})
		})
	})

	app.Post("/", func(c *fiber.Ctx) error {
		sid := sessionID(c)
		view := d.Renderer.Submit(c.UserContext(), sid, dashboard.Input{
			City:  c.FormValue("city"),
			Units: c.FormValue("units"),
		})
		title := view.City
		if title == "" {
			title = "Dashboard"
		}
		return renderHTML(c, d.Logger, func(w io.Writer) error {
			return views.RenderDashboard(w, &views.DashboardPage{Title: title, View: view, ForecastDays: d.ForecastDays})
		})
	})

	app.Get("/forecast", func(c *fiber.Ctx) error {
		city := strings.TrimSpace(c.Query("city"))
		days := c.QueryInt("days", d.ForecastDays)

		var view dashboard.ForecastView
		units, err := weather.ParseUnits(c.Query("units"), d.Renderer.DefaultUnits())
		if err != nil {
			view = dashboard.BuildForecastView(city, d.Renderer.DefaultUnits(), weather.Forecast{}, err)
		} else {
			f, err := d.Service.Forecast(c.UserContext(), city, units, days)
			view = dashboard.BuildForecastView(city, units, f, err)
		}
		return renderHTML(c, d.Logger, func(w io.Writer) error {
			return views.RenderForecast(w, &views.ForecastPage{Title: "Forecast", View: view})
		})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := parseLookupQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reading, err := d.Service.Fetch(c.UserContext(), q.City, weather.Units(q.Units))
		if err != nil {
			return apiError(err)
		}
		return c.JSON(reading)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		var req forecastQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		forecast, err := d.Service.Forecast(c.UserContext(), req.Lookup.City, weather.Units(req.Lookup.Units), req.Days)
		if err != nil {
			return apiError(err)
		}
		return c.JSON(forecast)
	})
}

// lookupQuery holds query parameters identifying what to look up.
type lookupQuery struct {
	City  string `validate:"required"`
	Units string `validate:"required,oneof=metric imperial"`
}

func parseLookupQuery(c *fiber.Ctx) (lookupQuery, error) {
	var q lookupQuery

	q.City = strings.TrimSpace(c.Query("city"))
	q.Units = strings.ToLower(strings.TrimSpace(c.Query("units", string(weather.UnitsMetric))))

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Lookup lookupQuery
	Days   int `validate:"required,min=1,max=5"`
}

func (f *forecastQuery) bind(c *fiber.Ctx) error {
	q, err := parseLookupQuery(c)
	if err != nil {
		return err
	}
	f.Lookup = q

	if c.Query("days") == "" {
		return errors.New("days query parameter is required")
	}
	f.Days = c.QueryInt("days", 0)
	return nil
}

// apiError maps a weather error to an HTTP status for JSON clients.
func apiError(err error) *fiber.Error {
	msg := dashboard.ErrorMessage(err)
	switch {
	case weather.IsInputError(err):
		return fiber.NewError(fiber.StatusBadRequest, msg)
	case errors.Is(err, weather.ErrCityNotFound):
		return fiber.NewError(fiber.StatusNotFound, msg)
	case errors.Is(err, weather.ErrRateLimited):
		return fiber.NewError(fiber.StatusTooManyRequests, msg)
	case errors.Is(err, weather.ErrNetwork):
		return fiber.NewError(fiber.StatusGatewayTimeout, msg)
	default:
		return fiber.NewError(fiber.StatusBadGateway, msg)
	}
}

// sessionID returns the caller's dashboard session, issuing a new cookie when
// the request carries none (or a forged one).
func sessionID(c *fiber.Ctx) string {
	if id := c.Cookies(sessionCookie); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}

	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return id
}

func renderHTML(c *fiber.Ctx, logger *slog.Logger, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logger.Error("template render failed", "path", c.Path(), "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Fetcher is the weather client contract the renderer depends on.
type Fetcher interface {
	Fetch(ctx context.Context, city string, units weather.Units) (weather.Reading, error)
}

// Outcome is the last thing a session asked for and what came back: either a
// reading or an error, never both.
type Outcome struct {
	City    string
	Units   weather.Units
	Reading *weather.Reading
	Err     error
	At      time.Time
}

// Input is the raw form submission.
type Input struct {
	City  string
	Units string
}

// Renderer turns user submissions into dashboard views. It owns the per-session
// "last result" slot; nothing is shared between sessions.
type Renderer struct {
	client       Fetcher
	sessions     *store.Sessions[Outcome]
	defaultUnits weather.Units
	logger       *slog.Logger
}

func NewRenderer(client Fetcher, sessions *store.Sessions[Outcome], defaultUnits weather.Units, logger *slog.Logger) *Renderer {
	if !defaultUnits.Valid() {
		defaultUnits = weather.UnitsMetric
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		client:       client,
		sessions:     sessions,
		defaultUnits: defaultUnits,
		logger:       logger,
	}
}

// DefaultUnits is the unit system preselected for new sessions.
func (r *Renderer) DefaultUnits() weather.Units {
	return r.defaultUnits
}

// Submit performs one client call for the session and replaces its last
// outcome. A submission still in flight for the same session is cancelled.
func (r *Renderer) Submit(ctx context.Context, sessionID string, in Input) View {
	out := Outcome{
		City:  strings.Clone(strings.TrimSpace(in.City)),
		Units: r.defaultUnits,
		At:    time.Now().UTC(),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ticket := r.sessions.Begin(sessionID, cancel)

	units, err := weather.ParseUnits(in.Units, r.defaultUnits)
	if err != nil {
		out.Err = err
	} else {
		out.Units = units
		reading, err := r.client.Fetch(ctx, in.City, units)
		if err != nil {
			out.Err = err
		} else {
			out.Reading = &reading
		}
	}

	if !r.sessions.Commit(sessionID, ticket, out) {
		r.logger.Debug("submission superseded", "session", sessionID, "city", out.City)
	}
	return BuildView(out)
}

// Current returns the view for the session's last outcome, or the empty prompt
// when nothing was submitted yet.
func (r *Renderer) Current(sessionID string) View {
	out, err := r.sessions.Get(sessionID)
	if err != nil {
		return View{Units: r.defaultUnits, Prompt: true}
	}
	return BuildView(out)
}

// View is the dashboard view model. Exactly one of Reading and Error is set
// unless Prompt is true.
type View struct {
	City    string
	Units   weather.Units
	Prompt  bool
	Reading *ReadingView
	Error   string
}

// ReadingView carries the reading plus display-ready strings.
type ReadingView struct {
	weather.Reading

	Title       string
	Icon        Icon
	Description string
	TempText    string
	FeelsText   string
	HumidText   string
	WindText    string
	PressText   string
	CloudsText  string
	RainText    string
	SunriseText string
	SunsetText  string
	TimeText    string
}

// BuildView maps an outcome to its view model. It performs no I/O.
func BuildView(out Outcome) View {
	v := View{City: out.City, Units: out.Units}
	if out.Err != nil || out.Reading == nil {
		v.Error = ErrorMessage(out.Err)
		if v.Error == "" {
			v.Error = MsgProviderFailure
		}
		return v
	}
	rv := newReadingView(*out.Reading)
	v.Reading = &rv
	return v
}

func newReadingView(r weather.Reading) ReadingView {
	tempLabel := r.Units.TemperatureLabel()

	title := r.City
	if r.Country != "" {
		title = fmt.Sprintf("%s, %s", r.City, r.Country)
	}

	rv := ReadingView{
		Reading:     r,
		Title:       title,
		Icon:        ResolveIcon(r.IconID),
		Description: TitleCase(r.Condition),
		TempText:    fmt.Sprintf("%.1f%s", r.Temperature, tempLabel),
		HumidText:   fmt.Sprintf("%d%%", r.Humidity),
		WindText:    fmt.Sprintf("%s %s", formatFloat(r.WindSpeed), r.Units.WindSpeedLabel()),
		PressText:   fmt.Sprintf("%d hPa", r.Pressure),
		RainText:    fmt.Sprintf("%s mm", formatFloat(r.Rain1h)),
		SunriseText: formatClock(r.Sunrise),
		SunsetText:  formatClock(r.Sunset),
		TimeText:    "N/A",
	}
	if r.FeelsLike != nil {
		rv.FeelsText = fmt.Sprintf("Feels like %.1f%s", *r.FeelsLike, tempLabel)
	}
	if r.Clouds != nil {
		rv.CloudsText = fmt.Sprintf("%d%%", *r.Clouds)
	}
	if !r.ObservedAt.IsZero() {
		rv.TimeText = r.ObservedAt.Format("Monday, 02 Jan 2006 15:04 MST")
	}
	return rv
}

// TitleCase capitalises each word of a provider description.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatClock(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format("15:04 MST")
}

package dashboard

import (
	"fmt"
	"strings"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ForecastView is the view model for the multi-day forecast page.
type ForecastView struct {
	City  string
	Units weather.Units
	Days  []ForecastDayView
	Trend *TrendChart
	Error string
}

type ForecastDayView struct {
	weather.ForecastDay

	Icon        Icon
	Description string
	MinText     string
	MaxText     string
	RainText    string
}

// BuildForecastView maps a forecast (or the error that replaced it) to its view.
func BuildForecastView(city string, units weather.Units, f weather.Forecast, err error) ForecastView {
	v := ForecastView{City: city, Units: units}
	if err != nil {
		v.Error = ErrorMessage(err)
		return v
	}
	if f.City != "" {
		v.City = f.City
	}

	label := units.TemperatureLabel()
	for _, d := range f.Days {
		v.Days = append(v.Days, ForecastDayView{
			ForecastDay: d,
			Icon:        ResolveIcon(d.IconID),
			Description: TitleCase(d.Condition),
			MinText:     fmt.Sprintf("%.1f%s", d.TempMin, label),
			MaxText:     fmt.Sprintf("%.1f%s", d.TempMax, label),
			RainText:    fmt.Sprintf("%.1f mm", d.RainMM),
		})
	}
	v.Trend = buildTrendChart(f.Days, label)
	return v
}

// Trend chart geometry, in SVG user units.
const (
	chartWidth  = 600
	chartHeight = 220
	chartLeft   = 48
	chartRight  = 16
	chartTop    = 16
	chartBottom = 32
)

// TrendChart is a pre-computed inline SVG of daily min/max temperature lines
// over rainfall bars.
type TrendChart struct {
	Width, Height int
	MinPoints     string
	MaxPoints     string
	Bars          []TrendBar
	Ticks         []TrendTick
	HighLabel     string
	LowLabel      string
	Baseline      float64
	Left, Right   float64
}

type TrendBar struct {
	X, Y, W, H float64
	Title      string
}

type TrendTick struct {
	X    float64
	Text string
}

func buildTrendChart(days []weather.ForecastDay, tempLabel string) *TrendChart {
	if len(days) == 0 {
		return nil
	}

	lo, hi := days[0].TempMin, days[0].TempMax
	maxRain := 0.0
	for _, d := range days {
		lo = min(lo, d.TempMin)
		hi = max(hi, d.TempMax)
		maxRain = max(maxRain, d.RainMM)
	}
	if hi == lo {
		hi = lo + 1
	}

	plotW := float64(chartWidth - chartLeft - chartRight)
	plotH := float64(chartHeight - chartTop - chartBottom)
	baseline := float64(chartTop) + plotH
	step := plotW / float64(len(days))

	x := func(i int) float64 { return chartLeft + (float64(i)+0.5)*step }
	y := func(t float64) float64 { return chartTop + (hi-t)/(hi-lo)*plotH }

	c := &TrendChart{
		Width:     chartWidth,
		Height:    chartHeight,
		HighLabel: fmt.Sprintf("%.1f%s", hi, tempLabel),
		LowLabel:  fmt.Sprintf("%.1f%s", lo, tempLabel),
		Baseline:  baseline,
		Left:      chartLeft,
		Right:     chartWidth - chartRight,
	}

	var minPts, maxPts []string
	for i, d := range days {
		minPts = append(minPts, fmt.Sprintf("%.1f,%.1f", x(i), y(d.TempMin)))
		maxPts = append(maxPts, fmt.Sprintf("%.1f,%.1f", x(i), y(d.TempMax)))
		c.Ticks = append(c.Ticks, TrendTick{X: x(i), Text: d.Date})

		if maxRain > 0 && d.RainMM > 0 {
			// Rain bars use the lower half of the plot.
			h := d.RainMM / maxRain * plotH / 2
			w := step * 0.4
			c.Bars = append(c.Bars, TrendBar{
				X:     x(i) - w/2,
				Y:     baseline - h,
				W:     w,
				H:     h,
				Title: fmt.Sprintf("%s: %.1f mm", d.Date, d.RainMM),
			})
		}
	}
	c.MinPoints = strings.Join(minPts, " ")
	c.MaxPoints = strings.Join(maxPts, " ")
	return c
}

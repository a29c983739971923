package weather

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func ptr(v float64) *float64 { return &v }

func TestAggregateForecastGroupsByLocalDate(t *testing.T) {
	is := is.New(t)

	// 23:00 UTC is already the next day at UTC+2.
	samples := []ForecastSample{
		{Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), Temperature: ptr(20)},
		{Timestamp: time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC), Temperature: ptr(14)},
	}

	days := AggregateForecast(samples, 2*3600, 5)
	is.Equal(len(days), 2)
	is.Equal(days[0].Date, "2025-06-01")
	is.Equal(days[1].Date, "2025-06-02")
	is.Equal(days[1].TempMin, 14.0)
}

func TestAggregateForecastMostCommonTieGoesToFirst(t *testing.T) {
	is := is.New(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	samples := []ForecastSample{
		{Timestamp: base.Add(3 * time.Hour), Temperature: ptr(10), Condition: "few clouds", IconID: "02d"},
		{Timestamp: base.Add(6 * time.Hour), Temperature: ptr(12), Condition: "light rain", IconID: "10d"},
		{Timestamp: base.Add(9 * time.Hour), Temperature: ptr(11), Condition: "light rain", IconID: "10d"},
		{Timestamp: base.Add(12 * time.Hour), Temperature: ptr(9), Condition: "few clouds", IconID: "02d"},
	}

	days := AggregateForecast(samples, 0, 5)
	is.Equal(len(days), 1)
	is.Equal(days[0].Condition, "few clouds")
	is.Equal(days[0].IconID, "02d")
	is.Equal(days[0].TempMin, 9.0)
	is.Equal(days[0].TempMax, 12.0)
}

func TestAggregateForecastSkipsDaysWithoutTemperatures(t *testing.T) {
	is := is.New(t)

	samples := []ForecastSample{
		{Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), Condition: "mist"},
		{Timestamp: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC), Temperature: ptr(18), Condition: "clear sky"},
	}

	days := AggregateForecast(samples, 0, 5)
	is.Equal(len(days), 1)
	is.Equal(days[0].Date, "2025-06-02")
}

func TestAggregateForecastLimitsDays(t *testing.T) {
	is := is.New(t)

	var samples []ForecastSample
	for d := 0; d < 6; d++ {
		samples = append(samples, ForecastSample{
			Timestamp:   time.Date(2025, 6, 1+d, 12, 0, 0, 0, time.UTC),
			Temperature: ptr(float64(d)),
		})
	}

	days := AggregateForecast(samples, 0, 3)
	is.Equal(len(days), 3)
	is.Equal(days[2].Date, "2025-06-03")

	is.Equal(len(AggregateForecast(nil, 0, 3)), 0)
	is.Equal(len(AggregateForecast(samples, 0, 0)), 0)
}

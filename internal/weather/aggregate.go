package weather

import (
	"sort"
	"time"
)

// AggregateForecast buckets samples into calendar days in the location's local
// time (utcOffsetSeconds east of UTC) and summarises each day.
// Temperatures give min/max, rainfall is summed and the condition and icon are
// the most frequent per day, ties going to the one seen first. Days without any
// temperature sample are dropped. At most days entries are returned.
func AggregateForecast(samples []ForecastSample, utcOffsetSeconds int, days int) []ForecastDay {
	if len(samples) == 0 || days <= 0 {
		return nil
	}

	zone := time.FixedZone("local", utcOffsetSeconds)
	buckets := make(map[string][]ForecastSample)
	for _, s := range samples {
		if s.Timestamp.IsZero() {
			continue
		}
		k := s.Timestamp.In(zone).Format(time.DateOnly)
		buckets[k] = append(buckets[k], s)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]ForecastDay, 0, days)
	for _, k := range keys {
		if len(out) >= days {
			break
		}
		day, ok := aggregateDay(k, buckets[k])
		if !ok {
			continue
		}
		out = append(out, day)
	}
	return out
}

func aggregateDay(date string, samples []ForecastSample) (ForecastDay, bool) {
	var (
		haveTemp bool
		minTemp  float64
		maxTemp  float64
		rain     float64
		conds    []string
		icons    []string
	)

	for _, s := range samples {
		if s.Temperature != nil {
			t := *s.Temperature
			if !haveTemp || t < minTemp {
				minTemp = t
			}
			if !haveTemp || t > maxTemp {
				maxTemp = t
			}
			haveTemp = true
		}
		rain += s.RainMM
		if s.Condition != "" {
			conds = append(conds, s.Condition)
		}
		if s.IconID != "" {
			icons = append(icons, s.IconID)
		}
	}

	if !haveTemp {
		return ForecastDay{}, false
	}

	return ForecastDay{
		Date:      date,
		TempMin:   minTemp,
		TempMax:   maxTemp,
		RainMM:    rain,
		Condition: mostCommon(conds),
		IconID:    mostCommon(icons),
	}, true
}

// mostCommon picks the most frequent value; on a tie the earliest wins.
func mostCommon(values []string) string {
	counts := make(map[string]int, len(values))
	best, bestCount := "", 0
	for _, v := range values {
		counts[v]++
	}
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

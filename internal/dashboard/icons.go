package dashboard

import "fmt"

// Icon is the display asset for a provider icon code.
type Icon struct {
	Code  string
	Emoji string
	Label string
	URL   string
}

const iconURLFormat = "https://openweathermap.org/img/wn/%s@4x.png"

var fallbackIcon = Icon{Emoji: "🌡️", Label: "Weather"}

// icons covers every OpenWeatherMap icon code; d/n is day/night.
var icons = map[string]Icon{
	"01d": {Emoji: "☀️", Label: "Clear sky"},
	"01n": {Emoji: "🌙", Label: "Clear sky"},
	"02d": {Emoji: "🌤️", Label: "Few clouds"},
	"02n": {Emoji: "☁️", Label: "Few clouds"},
	"03d": {Emoji: "⛅", Label: "Scattered clouds"},
	"03n": {Emoji: "☁️", Label: "Scattered clouds"},
	"04d": {Emoji: "☁️", Label: "Broken clouds"},
	"04n": {Emoji: "☁️", Label: "Broken clouds"},
	"09d": {Emoji: "🌧️", Label: "Shower rain"},
	"09n": {Emoji: "🌧️", Label: "Shower rain"},
	"10d": {Emoji: "🌦️", Label: "Rain"},
	"10n": {Emoji: "🌧️", Label: "Rain"},
	"11d": {Emoji: "⛈️", Label: "Thunderstorm"},
	"11n": {Emoji: "⛈️", Label: "Thunderstorm"},
	"13d": {Emoji: "❄️", Label: "Snow"},
	"13n": {Emoji: "❄️", Label: "Snow"},
	"50d": {Emoji: "🌫️", Label: "Mist"},
	"50n": {Emoji: "🌫️", Label: "Mist"},
}

// ResolveIcon looks up the display asset for a provider icon code. Unknown
// codes get a neutral icon without an image URL.
func ResolveIcon(code string) Icon {
	icon, ok := icons[code]
	if !ok {
		icon = fallbackIcon
		icon.Code = code
		return icon
	}
	icon.Code = code
	icon.URL = fmt.Sprintf(iconURLFormat, code)
	return icon
}

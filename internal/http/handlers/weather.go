package handlers

import (
	"errors"
	"net"
	"net/http"
	"strconv"

	"farmstead/internal/providers/weather"
)

// WeatherCurrent proxies a current-conditions lookup. Accepts either
// ?q=<city> or ?lat=&lon=; with neither, the client IP is resolved through
// the GeoIP database, the server analog of the browser's geolocation
// default. The provider key never leaves the server.
func (a *App) WeatherCurrent(w http.ResponseWriter, r *http.Request) {
	if a.Weather == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "weather lookup is not configured")
		return
	}

	var (
		current *weather.Current
		err     error
	)
	q := r.URL.Query()
	switch {
	case q.Get("q") != "":
		current, err = a.Weather.CurrentByCity(r.Context(), q.Get("q"))
	case q.Get("lat") != "" && q.Get("lon") != "":
		var lat, lon float64
		if lat, err = strconv.ParseFloat(q.Get("lat"), 64); err == nil {
			lon, err = strconv.ParseFloat(q.Get("lon"), 64)
		}
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "lat and lon must be numeric")
			return
		}
		current, err = a.Weather.CurrentByCoords(r.Context(), lat, lon)
	default:
		loc := a.locateClient(r)
		if loc == nil {
			a.error(w, http.StatusBadRequest, "bad_request", "provide a city name or coordinates")
			return
		}
		current, err = a.Weather.CurrentByCoords(r.Context(), loc.Lat, loc.Lon)
	}

	if err != nil {
		if errors.Is(err, weather.ErrLocationNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "city not found")
			return
		}
		a.Logger.Error().Err(err).Msg("weather lookup failed")
		a.error(w, http.StatusBadGateway, "bad_gateway", "weather provider unavailable")
		return
	}
	a.json(w, http.StatusOK, current)
}

func (a *App) locateClient(r *http.Request) *struct{ Lat, Lon float64 } {
	if a.Geo == nil {
		return nil
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	loc, err := a.Geo.Locate(host)
	if err != nil {
		return nil
	}
	return &struct{ Lat, Lon float64 }{Lat: loc.Lat, Lon: loc.Lon}
}

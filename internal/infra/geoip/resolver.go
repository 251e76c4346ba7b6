package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrUnavailable is returned when the resolver is not initialized.
var ErrUnavailable = errors.New("geoip resolver unavailable")

// Location is a resolved approximate position for a client IP.
type Location struct {
	City string
	Lat  float64
	Lon  float64
}

// LocationResolver resolves approximate locations from IP addresses. It
// backs the weather lookup's default location when the caller supplies
// neither a city nor coordinates.
type LocationResolver interface {
	Locate(ip string) (*Location, error)
}

// Resolver provides city lookups backed by a MaxMind GeoIP2 city database.
type Resolver struct {
	reader *geoip2.Reader
}

// NewResolver opens the GeoIP database at the given path. When the path is
// empty, nil is returned and callers must treat the lookup as unavailable.
func NewResolver(path string) (LocationResolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// Locate returns the city name and coordinates for the provided IP.
func (r *Resolver) Locate(ip string) (*Location, error) {
	if r == nil || r.reader == nil {
		return nil, ErrUnavailable
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("geoip: invalid ip %q", ip)
	}
	record, err := r.reader.City(parsed)
	if err != nil {
		return nil, fmt.Errorf("geoip: lookup city: %w", err)
	}
	if record == nil {
		return nil, ErrUnavailable
	}
	loc := &Location{
		City: record.City.Names["en"],
		Lat:  record.Location.Latitude,
		Lon:  record.Location.Longitude,
	}
	if loc.City == "" && loc.Lat == 0 && loc.Lon == 0 {
		return nil, ErrUnavailable
	}
	return loc, nil
}

// Close closes the underlying database reader.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}

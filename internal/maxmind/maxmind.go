// Package maxmind locates IP addresses using a local GeoIP2 or GeoLite2 City database.
package maxmind

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/henvic/geostore"
	"github.com/oschwald/geoip2-golang"
)

// ErrInvalidIP is returned when the address cannot be parsed.
var ErrInvalidIP = errors.New("invalid ip address")

// language used for place names.
const language = "en"

// Open a MaxMind City database file.
func Open(path string) (*Reader, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open geoip2 database: %w", err)
	}
	return &Reader{db: db}, nil
}

// Reader for the MaxMind database.
type Reader struct {
	db *geoip2.Reader
}

// Locate the IP address.
func (r *Reader) Locate(ctx context.Context, ip string) (*geostore.Location, error) {
	addr := net.ParseIP(ip)
	if addr == nil {
		return nil, ErrInvalidIP
	}
	record, err := r.db.City(addr)
	if err != nil {
		return nil, fmt.Errorf("geoip2 lookup failed: %w", err)
	}
	return toLocation(record), nil
}

// Close the database.
func (r *Reader) Close() error {
	return r.db.Close()
}

func toLocation(record *geoip2.City) *geostore.Location {
	var loc geostore.Location
	loc.Country = name(record.Country.Names)
	if len(record.Subdivisions) > 0 {
		loc.Region = name(record.Subdivisions[0].Names)
	}
	loc.City = name(record.City.Names)

	// The database has no coordinates for some networks, and reports them as 0,0.
	if record.Location.Latitude != 0 || record.Location.Longitude != 0 {
		lat, lon := record.Location.Latitude, record.Location.Longitude
		loc.Latitude, loc.Longitude = &lat, &lon
	}
	return &loc
}

func name(names map[string]string) *string {
	if v, ok := names[language]; ok && v != "" {
		return &v
	}
	return nil
}

var _ geostore.Provider = (*Reader)(nil)

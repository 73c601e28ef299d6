package geostore

// Geolocation record.
type Geolocation struct {
	ID        int64    `db:"id" json:"id"`
	IPOrURL   string   `db:"ip_or_url" json:"ip_or_url"`
	Country   *string  `db:"country" json:"country"`
	Region    *string  `db:"region" json:"region"`
	City      *string  `db:"city" json:"city"`
	Latitude  *float64 `db:"latitude" json:"latitude"`
	Longitude *float64 `db:"longitude" json:"longitude"`
}

// Location data returned by a geolocation provider.
// Any field might be missing.
type Location struct {
	Country   *string
	Region    *string
	City      *string
	Latitude  *float64
	Longitude *float64
}

// LookupResult is a resolved location ready to be stored.
type LookupResult struct {
	// Identifier is the address used for the lookup.
	// For domain names, this is the resolved IP address rather than the domain.
	Identifier string

	Location
}

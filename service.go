package geostore

import (
	"context"
	"errors"
	"log/slog"
)

// NewService creates the geolocation service.
func NewService(db DB, resolver Resolver, provider Provider, log *slog.Logger) *Service {
	return &Service{
		db:       db,
		resolver: resolver,
		provider: provider,
		log:      log,
	}
}

// Service for the API.
type Service struct {
	db       DB
	resolver Resolver
	provider Provider
	log      *slog.Logger
}

// DB layer.
//
//go:generate mockgen --build_flags=--mod=mod -package mock -destination internal/mock/mock.go . DB,Resolver,Provider
type DB interface {
	// CreateGeolocation stores a new record.
	// It returns ErrConflict if a record with the same identifier exists.
	CreateGeolocation(ctx context.Context, result LookupResult) (*Geolocation, error)

	// GetGeolocation returns a record by id, or nil if it doesn't exist.
	GetGeolocation(ctx context.Context, id int64) (*Geolocation, error)

	// GetGeolocationByIdentifier returns a record by identifier, or nil if it doesn't exist.
	GetGeolocationByIdentifier(ctx context.Context, identifier string) (*Geolocation, error)

	// ListGeolocations returns all records ordered by id.
	ListGeolocations(ctx context.Context) ([]Geolocation, error)

	// DeleteGeolocation removes a record and reports whether it existed.
	DeleteGeolocation(ctx context.Context, id int64) (bool, error)

	// Ping checks if the database is reachable.
	Ping(ctx context.Context) error
}

var _ DB = (*Postgres)(nil) // Check if methods expected by geostore.DB are implemented correctly.

// Provider of geolocation data.
type Provider interface {
	// Locate returns the location of an IP address.
	Locate(ctx context.Context, ip string) (*Location, error)
}

// Lookup resolves the input and fetches its geolocation data from the provider.
func (s *Service) Lookup(ctx context.Context, raw string) (*LookupResult, error) {
	id, err := ParseIdentifier(raw)
	if err != nil {
		return nil, err
	}
	return s.lookup(ctx, id)
}

func (s *Service) lookup(ctx context.Context, id Identifier) (*LookupResult, error) {
	address := id.Value
	if id.Kind == KindDomain {
		// Resolution failures aren't fatal: the provider gets the domain name instead,
		// and the provider error is what the caller sees.
		ip, err := s.resolver.Resolve(ctx, id.Value)
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case err != nil:
			s.log.Warn("could not resolve domain name",
				slog.String("domain", id.Value),
				slog.Any("error", err),
			)
		default:
			s.log.Debug("resolved domain name",
				slog.String("domain", id.Value),
				slog.String("ip", ip),
			)
			address = ip
		}
	}

	loc, err := s.provider.Locate(ctx, address)
	if errors.Is(err, context.Canceled) {
		return nil, err
	}
	if err != nil {
		s.log.Error("geolocation provider request failed",
			slog.String("address", address),
			slog.Any("error", err),
		)
		return nil, ErrUpstream
	}
	if loc == nil || loc.Country == nil || *loc.Country == "" {
		s.log.Error("geolocation provider returned no country",
			slog.String("address", address),
		)
		return nil, ErrUpstream
	}

	return &LookupResult{
		Identifier: address,
		Location:   *loc,
	}, nil
}

// CreateGeolocation looks up the given IP address or domain name and stores the result.
func (s *Service) CreateGeolocation(ctx context.Context, raw string) (*Geolocation, error) {
	id, err := ParseIdentifier(raw)
	if err != nil {
		return nil, err
	}

	// Fast path only. The unique constraint on the database is what prevents duplicates.
	existing, err := s.db.GetGeolocationByIdentifier(ctx, id.Value)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	result, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	loc, err := s.db.CreateGeolocation(ctx, *result)
	if err != nil {
		return nil, err
	}
	s.log.Info("geolocation created",
		slog.Int64("id", loc.ID),
		slog.String("ip_or_url", loc.IPOrURL),
	)
	return loc, nil
}

// Geolocation returns a record by id.
func (s *Service) Geolocation(ctx context.Context, id int64) (*Geolocation, error) {
	loc, err := s.db.GetGeolocation(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, ErrNotFound
	}
	return loc, nil
}

// GeolocationByIdentifier returns a record by its IP address or domain name.
// Input that doesn't parse as an identifier is looked up as is.
func (s *Service) GeolocationByIdentifier(ctx context.Context, identifier string) (*Geolocation, error) {
	if id, err := ParseIdentifier(identifier); err == nil {
		identifier = id.Value
	}
	loc, err := s.db.GetGeolocationByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, ErrNotFound
	}
	return loc, nil
}

// Geolocations returns all records.
func (s *Service) Geolocations(ctx context.Context) ([]Geolocation, error) {
	locs, err := s.db.ListGeolocations(ctx)
	if err != nil {
		return nil, err
	}
	if locs == nil {
		locs = []Geolocation{}
	}
	return locs, nil
}

// DeleteGeolocation removes a record by id.
func (s *Service) DeleteGeolocation(ctx context.Context, id int64) error {
	ok, err := s.db.DeleteGeolocation(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.log.Info("geolocation deleted", slog.Int64("id", id))
	return nil
}

// Ping checks if the service dependencies are available.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

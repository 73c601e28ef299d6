package geostore

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"github.com/henvic/pgtools"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgres creates a new Postgres database.
func NewPostgres(pool *pgxpool.Pool, log *slog.Logger) *Postgres {
	return &Postgres{pool: pool, log: log}
}

// Postgres database implementation.
type Postgres struct {
	// pool of Postgres connections.
	pool *pgxpool.Pool

	// log is a log for the operations.
	log *slog.Logger
}

// wildcard expands to the geolocation columns, in the order of the Geolocation struct fields:
// id,ip_or_url,country,region,city,latitude,longitude
var wildcard = pgtools.Wildcard(Geolocation{})

var createGeolocationQuery = `INSERT INTO geolocation (
ip_or_url, country, region, city, latitude, longitude
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + wildcard

// CreateGeolocation stores a new record.
func (pg Postgres) CreateGeolocation(ctx context.Context, result LookupResult) (*Geolocation, error) {
	var loc Geolocation
	err := pgx.BeginFunc(ctx, pg.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, createGeolocationQuery,
			result.Identifier,
			result.Country,
			result.Region,
			result.City,
			result.Latitude,
			result.Longitude)
		if err != nil {
			return err
		}
		loc, err = pgx.CollectOneRow(rows, pgx.RowToStructByPos[Geolocation])
		return err
	})
	if err != nil {
		return nil, pg.storageError(err, "cannot create geolocation",
			slog.String("ip_or_url", result.Identifier))
	}
	return &loc, nil
}

var getGeolocationQuery = `SELECT ` + wildcard + ` FROM geolocation WHERE id = $1 LIMIT 1;`

// GetGeolocation returns a record by id.
func (pg Postgres) GetGeolocation(ctx context.Context, id int64) (*Geolocation, error) {
	return pg.getGeolocation(ctx, getGeolocationQuery, id)
}

var getGeolocationByIdentifierQuery = `SELECT ` + wildcard + ` FROM geolocation WHERE ip_or_url = $1 LIMIT 1;`

// GetGeolocationByIdentifier returns a record by its IP address or domain name.
func (pg Postgres) GetGeolocationByIdentifier(ctx context.Context, identifier string) (*Geolocation, error) {
	return pg.getGeolocation(ctx, getGeolocationByIdentifierQuery, identifier)
}

func (pg Postgres) getGeolocation(ctx context.Context, query string, arg any) (*Geolocation, error) {
	rows, err := pg.pool.Query(ctx, query, arg)
	var loc Geolocation
	if err == nil {
		loc, err = pgx.CollectOneRow(rows, pgx.RowToStructByPos[Geolocation])
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pg.storageError(err, "cannot get geolocation from database", slog.Any("key", arg))
	}
	return &loc, nil
}

var listGeolocationsQuery = `SELECT ` + wildcard + ` FROM geolocation ORDER BY id;`

// ListGeolocations returns all records ordered by id.
func (pg Postgres) ListGeolocations(ctx context.Context) ([]Geolocation, error) {
	rows, err := pg.pool.Query(ctx, listGeolocationsQuery)
	var locs []Geolocation
	if err == nil {
		locs, err = pgx.CollectRows(rows, pgx.RowToStructByPos[Geolocation])
	}
	if err != nil {
		return nil, pg.storageError(err, "cannot list geolocations")
	}
	return locs, nil
}

const deleteGeolocationQuery = `DELETE FROM geolocation WHERE id = $1;`

// DeleteGeolocation removes a record by id.
func (pg Postgres) DeleteGeolocation(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := pgx.BeginFunc(ctx, pg.pool, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, deleteGeolocationQuery, id)
		deleted = ct.RowsAffected() > 0
		return err
	})
	if err != nil {
		return false, pg.storageError(err, "cannot delete geolocation", slog.Int64("id", id))
	}
	return deleted, nil
}

// Ping the database.
func (pg Postgres) Ping(ctx context.Context) error {
	if err := pg.pool.Ping(ctx); err != nil {
		return pg.storageError(err, "cannot ping database")
	}
	return nil
}

// storageError logs a database error and returns an error that is safe to expose.
func (pg Postgres) storageError(err error, msg string, attrs ...slog.Attr) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	classified := classifyStorageError(err)
	if classified == ErrConflict {
		pg.log.LogAttrs(context.Background(), slog.LevelInfo, msg+": unique violation", attrs...)
		return classified
	}
	attrs = append(attrs, slog.Any("error", err))
	pg.log.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
	return classified
}

// classifyStorageError maps driver errors to the storage errors.
func classifyStorageError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return ErrConflict
		case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code):
			return ErrStorageIntegrity
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsOperatorIntervention(pgErr.Code),
			pgerrcode.IsInsufficientResources(pgErr.Code):
			return ErrStorageUnavailable
		}
		return ErrStorageUnexpected
	}

	var (
		connectErr *pgconn.ConnectError
		netErr     net.Error
	)
	if errors.As(err, &connectErr) || errors.As(err, &netErr) || pgconn.Timeout(err) {
		return ErrStorageUnavailable
	}
	return ErrStorageUnexpected
}

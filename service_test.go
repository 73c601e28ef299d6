package geostore_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/henvic/geostore"
	"github.com/henvic/geostore/internal/mock"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	db       *mock.MockDB
	resolver *mock.MockResolver
	provider *mock.MockProvider
}

func newServiceMocks(t testing.TB) (*geostore.Service, serviceMocks) {
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		db:       mock.NewMockDB(ctrl),
		resolver: mock.NewMockResolver(ctrl),
		provider: mock.NewMockProvider(ctrl),
	}
	return geostore.NewService(m.db, m.resolver, m.provider, slog.Default()), m
}

func TestServiceCreateGeolocation(t *testing.T) {
	t.Parallel()
	spain := &geostore.Location{
		Country:   ptr("Spain"),
		Region:    ptr("Madrid"),
		City:      ptr("Madrid"),
		Latitude:  ptr(40.4168),
		Longitude: ptr(-3.7038),
	}

	tests := []struct {
		name    string
		ctx     context.Context
		raw     string
		mock    func(m serviceMocks)
		want    *geostore.Geolocation
		wantErr error
	}{
		{
			name: "ip",
			ctx:  context.Background(),
			raw:  "8.8.8.8",
			mock: func(m serviceMocks) {
				m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), "8.8.8.8").Return(nil, nil)
				m.provider.EXPECT().Locate(gomock.Any(), "8.8.8.8").Return(spain, nil)
				m.db.EXPECT().CreateGeolocation(gomock.Any(), geostore.LookupResult{
					Identifier: "8.8.8.8",
					Location:   *spain,
				}).Return(&geostore.Geolocation{
					ID:        1,
					IPOrURL:   "8.8.8.8",
					Country:   spain.Country,
					Region:    spain.Region,
					City:      spain.City,
					Latitude:  spain.Latitude,
					Longitude: spain.Longitude,
				}, nil)
			},
			want: &geostore.Geolocation{
				ID:        1,
				IPOrURL:   "8.8.8.8",
				Country:   ptr("Spain"),
				Region:    ptr("Madrid"),
				City:      ptr("Madrid"),
				Latitude:  ptr(40.4168),
				Longitude: ptr(-3.7038),
			},
		},
		{
			name: "domain_resolved",
			ctx:  context.Background(),
			raw:  "https://Example.com",
			mock: func(m serviceMocks) {
				m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), "example.com").Return(nil, nil)
				m.resolver.EXPECT().Resolve(gomock.Any(), "example.com").Return("93.184.216.34", nil)
				m.provider.EXPECT().Locate(gomock.Any(), "93.184.216.34").Return(spain, nil)
				m.db.EXPECT().CreateGeolocation(gomock.Any(), geostore.LookupResult{
					Identifier: "93.184.216.34",
					Location:   *spain,
				}).Return(&geostore.Geolocation{ID: 2, IPOrURL: "93.184.216.34", Country: spain.Country}, nil)
			},
			want: &geostore.Geolocation{ID: 2, IPOrURL: "93.184.216.34", Country: ptr("Spain")},
		},
		{
			name: "domain_resolution_fallback",
			ctx:  context.Background(),
			raw:  "example.com",
			mock: func(m serviceMocks) {
				m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), "example.com").Return(nil, nil)
				m.resolver.EXPECT().Resolve(gomock.Any(), "example.com").Return("", geostore.ErrResolution)
				m.provider.EXPECT().Locate(gomock.Any(), "example.com").Return(spain, nil)
				m.db.EXPECT().CreateGeolocation(gomock.Any(), geostore.LookupResult{
					Identifier: "example.com",
					Location:   *spain,
				}).Return(&geostore.Geolocation{ID: 3, IPOrURL: "example.com", Country: spain.Country}, nil)
			},
			want: &geostore.Geolocation{ID: 3, IPOrURL: "example.com", Country: ptr("Spain")},
		},
		{
			name:    "invalid",
			ctx:     context.Background(),
			raw:     "invalid_url",
			wantErr: geostore.ErrInvalidIdentifier,
		},
		{
			name:    "empty",
			ctx:     context.Background(),
			raw:     "",
			wantErr: geostore.ErrInvalidIdentifier,
		},
		{
			name: "exists",
			ctx:  context.Background(),
			raw:  "8.8.8.8",
			mock: func(m serviceMocks) {
				m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), "8.8.8.8").Return(&geostore.Geolocation{ID: 1, IPOrURL: "8.8.8.8"}, nil)
			},
			wantErr: geostore.ErrConflict,
		},
		{
			name: "unique_violation",
			ctx:  context.Background(),
			raw:  "8.8.8.8",
			mock: func(m serviceMocks) {
				m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), "8.8.8.8").Return(nil, nil)
				m.provider.EXPECT().Locate(gomock.Any(), "8.8.8.8").Return(spain, nil)
				m.db.EXPECT().CreateGeolocation(gomock.Any(), gomock.Any()).Return(nil, geostore.ErrConflict)
			},
			wantErr: geostore.ErrConflict,
		},
		{
			name: "provider_error",
			ctx:  context.Background(),
			raw:  "8.8.8.8",
			mock: func(m serviceMocks) {
				m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), "8.8.8.8").Return(nil, nil)
				m.provider.EXPECT().Locate(gomock.Any(), "8.8.8.8").Return(nil, errors.New("unexpected status code 500"))
			},
			wantErr: geostore.ErrUpstream,
		},
		{
			name: "provider_empty_payload",
			ctx:  context.Background(),
			raw:  "8.8.8.8",
			mock: func(m serviceMocks) {
				m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), "8.8.8.8").Return(nil, nil)
				m.provider.EXPECT().Locate(gomock.Any(), "8.8.8.8").Return(&geostore.Location{}, nil)
			},
			wantErr: geostore.ErrUpstream,
		},
		{
			name: "provider_empty_country",
			ctx:  context.Background(),
			raw:  "8.8.8.8",
			mock: func(m serviceMocks) {
				m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), "8.8.8.8").Return(nil, nil)
				m.provider.EXPECT().Locate(gomock.Any(), "8.8.8.8").Return(&geostore.Location{Country: ptr(""), City: ptr("Madrid")}, nil)
			},
			wantErr: geostore.ErrUpstream,
		},
		{
			name: "storage_unavailable",
			ctx:  context.Background(),
			raw:  "8.8.8.8",
			mock: func(m serviceMocks) {
				m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), "8.8.8.8").Return(nil, geostore.ErrStorageUnavailable)
			},
			wantErr: geostore.ErrStorageUnavailable,
		},
		{
			name: "resolver_canceled",
			ctx:  canceledContext(),
			raw:  "example.com",
			mock: func(m serviceMocks) {
				m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), "example.com").Return(nil, nil)
				m.resolver.EXPECT().Resolve(gomock.Any(), "example.com").Return("", context.Canceled)
			},
			wantErr: context.Canceled,
		},
		{
			name: "provider_canceled",
			ctx:  canceledContext(),
			raw:  "8.8.8.8",
			mock: func(m serviceMocks) {
				m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), "8.8.8.8").Return(nil, nil)
				m.provider.EXPECT().Locate(gomock.Any(), "8.8.8.8").Return(nil, context.Canceled)
			},
			wantErr: context.Canceled,
		},
		{
			name: "deadline_exceeded_ctx",
			ctx:  deadlineExceededContext(),
			raw:  "8.8.8.8",
			mock: func(m serviceMocks) {
				m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), "8.8.8.8").Return(nil, context.DeadlineExceeded)
			},
			wantErr: context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, m := newServiceMocks(t)
			if tt.mock != nil {
				tt.mock(m)
			}
			got, err := s.CreateGeolocation(tt.ctx, tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Service.CreateGeolocation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !cmp.Equal(tt.want, got) {
				t.Errorf("value returned by Service.CreateGeolocation() doesn't match: %v", cmp.Diff(tt.want, got))
			}
		})
	}
}

func TestServiceLookup(t *testing.T) {
	t.Parallel()
	s, m := newServiceMocks(t)
	m.resolver.EXPECT().Resolve(gomock.Any(), "www.google.com").Return("142.250.184.196", nil)
	m.provider.EXPECT().Locate(gomock.Any(), "142.250.184.196").Return(&geostore.Location{
		Country: ptr("United States"),
	}, nil)

	got, err := s.Lookup(context.Background(), "http://www.google.com")
	if err != nil {
		t.Fatalf("Service.Lookup() error = %v", err)
	}
	want := &geostore.LookupResult{
		Identifier: "142.250.184.196",
		Location:   geostore.Location{Country: ptr("United States")},
	}
	if !cmp.Equal(want, got) {
		t.Errorf("value returned by Service.Lookup() doesn't match: %v", cmp.Diff(want, got))
	}

	if _, err := s.Lookup(context.Background(), "999.999.999.999"); !errors.Is(err, geostore.ErrInvalidIdentifier) {
		t.Errorf("Service.Lookup() error = %v, wantErr %v", err, geostore.ErrInvalidIdentifier)
	}
}

func TestServiceGeolocation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		id      int64
		mock    func(m *mock.MockDB)
		want    *geostore.Geolocation
		wantErr error
	}{
		{
			name: "found",
			id:   7,
			mock: func(m *mock.MockDB) {
				m.EXPECT().GetGeolocation(gomock.Any(), int64(7)).Return(&geostore.Geolocation{ID: 7, IPOrURL: "1.1.1.1"}, nil)
			},
			want: &geostore.Geolocation{ID: 7, IPOrURL: "1.1.1.1"},
		},
		{
			name: "not_found",
			id:   8,
			mock: func(m *mock.MockDB) {
				m.EXPECT().GetGeolocation(gomock.Any(), int64(8)).Return(nil, nil)
			},
			wantErr: geostore.ErrNotFound,
		},
		{
			name: "database_error",
			id:   9,
			mock: func(m *mock.MockDB) {
				m.EXPECT().GetGeolocation(gomock.Any(), int64(9)).Return(nil, geostore.ErrStorageUnexpected)
			},
			wantErr: geostore.ErrStorageUnexpected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, m := newServiceMocks(t)
			tt.mock(m.db)
			got, err := s.Geolocation(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Service.Geolocation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !cmp.Equal(tt.want, got) {
				t.Errorf("value returned by Service.Geolocation() doesn't match: %v", cmp.Diff(tt.want, got))
			}
		})
	}
}

func TestServiceGeolocationByIdentifier(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		identifier string
		lookup     string
		found      *geostore.Geolocation
		wantErr    error
	}{
		{
			name:       "normalized",
			identifier: "http://Example.COM",
			lookup:     "example.com",
			found:      &geostore.Geolocation{ID: 1, IPOrURL: "example.com"},
		},
		{
			name:       "ipv6",
			identifier: "2001:DB8:0:0:0:0:0:1",
			lookup:     "2001:db8::1",
			found:      &geostore.Geolocation{ID: 2, IPOrURL: "2001:db8::1"},
		},
		{
			name:       "unparsable_as_is",
			identifier: "not a host",
			lookup:     "not a host",
			wantErr:    geostore.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, m := newServiceMocks(t)
			m.db.EXPECT().GetGeolocationByIdentifier(gomock.Any(), tt.lookup).Return(tt.found, nil)
			got, err := s.GeolocationByIdentifier(context.Background(), tt.identifier)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Service.GeolocationByIdentifier() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !cmp.Equal(tt.found, got) {
				t.Errorf("value returned by Service.GeolocationByIdentifier() doesn't match: %v", cmp.Diff(tt.found, got))
			}
		})
	}
}

func TestServiceGeolocations(t *testing.T) {
	t.Parallel()
	s, m := newServiceMocks(t)
	m.db.EXPECT().ListGeolocations(gomock.Any()).Return(nil, nil)

	got, err := s.Geolocations(context.Background())
	if err != nil {
		t.Fatalf("Service.Geolocations() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Service.Geolocations() = %#v, want empty non-nil slice", got)
	}

	s, m = newServiceMocks(t)
	want := []geostore.Geolocation{{ID: 1, IPOrURL: "8.8.8.8"}, {ID: 2, IPOrURL: "example.com"}}
	m.db.EXPECT().ListGeolocations(gomock.Any()).Return(want, nil)
	got, err = s.Geolocations(context.Background())
	if err != nil {
		t.Fatalf("Service.Geolocations() error = %v", err)
	}
	if !cmp.Equal(want, got) {
		t.Errorf("value returned by Service.Geolocations() doesn't match: %v", cmp.Diff(want, got))
	}
}

func TestServiceDeleteGeolocation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		deleted bool
		err     error
		wantErr error
	}{
		{name: "deleted", deleted: true},
		{name: "not_found", wantErr: geostore.ErrNotFound},
		{name: "database_error", err: geostore.ErrStorageUnavailable, wantErr: geostore.ErrStorageUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, m := newServiceMocks(t)
			m.db.EXPECT().DeleteGeolocation(gomock.Any(), int64(42)).Return(tt.deleted, tt.err)
			if err := s.DeleteGeolocation(context.Background(), 42); !errors.Is(err, tt.wantErr) {
				t.Errorf("Service.DeleteGeolocation() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServicePing(t *testing.T) {
	t.Parallel()
	s, m := newServiceMocks(t)
	m.db.EXPECT().Ping(gomock.Any()).Return(geostore.ErrStorageUnavailable)
	if err := s.Ping(context.Background()); !errors.Is(err, geostore.ErrStorageUnavailable) {
		t.Errorf("Service.Ping() error = %v, wantErr %v", err, geostore.ErrStorageUnavailable)
	}
}

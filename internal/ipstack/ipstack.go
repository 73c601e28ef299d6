// Package ipstack is a client for the ipstack geolocation API.
// See https://ipstack.com/documentation
package ipstack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/henvic/geostore"
)

// DefaultTimeout for requests to the API.
const DefaultTimeout = 5 * time.Second

// ErrLookupFailed is returned when the API request fails for any reason.
var ErrLookupFailed = errors.New("ipstack lookup failed")

// New creates an ipstack client.
func New(baseURL, accessKey string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		timeout:   timeout,
		http:      &http.Client{},
		log:       log,
	}
}

// Client for the ipstack API.
type Client struct {
	baseURL   string
	accessKey string
	timeout   time.Duration
	http      *http.Client
	log       *slog.Logger
}

type apiError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

// response from the standard lookup endpoint. Fields not used are omitted.
type response struct {
	Success     *bool     `json:"success"`
	Error       *apiError `json:"error"`
	CountryName *string   `json:"country_name"`
	RegionName  *string   `json:"region_name"`
	City        *string   `json:"city"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
}

// Locate the IP address.
func (c *Client) Locate(ctx context.Context, ip string) (*geostore.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(ip), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, redact(err))
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("requesting geolocation data", slog.String("ip", ip))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bit of the body to allow the connection to be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrLookupFailed, resp.StatusCode)
	}

	var data response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: cannot decode response: %w", ErrLookupFailed, err)
	}
	if data.Error != nil {
		return nil, fmt.Errorf("%w: API error %d (%s): %s", ErrLookupFailed, data.Error.Code, data.Error.Type, data.Error.Info)
	}
	if data.Success != nil && !*data.Success {
		return nil, fmt.Errorf("%w: API request unsuccessful", ErrLookupFailed)
	}

	return &geostore.Location{
		Country:   data.CountryName,
		Region:    data.RegionName,
		City:      data.City,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
	}, nil
}

func (c *Client) endpoint(ip string) string {
	q := url.Values{}
	q.Set("access_key", c.accessKey)
	return c.baseURL + "/" + url.PathEscape(ip) + "?" + q.Encode()
}

// redact removes the request URL from errors, as it contains the access key.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

var _ geostore.Provider = (*Client)(nil)

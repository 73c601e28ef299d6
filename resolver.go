package geostore

import (
	"context"
	"fmt"
	"net"
)

// Resolver resolves domain names to IP addresses.
type Resolver interface {
	// Resolve returns an IP address for the given host.
	Resolve(ctx context.Context, host string) (string, error)
}

// NewDNSResolver creates a Resolver using DNS.
// If r is nil, net.DefaultResolver is used.
func NewDNSResolver(r *net.Resolver) *DNSResolver {
	if r == nil {
		r = net.DefaultResolver
	}
	return &DNSResolver{r: r}
}

// DNSResolver does a forward lookup for address records.
type DNSResolver struct {
	r *net.Resolver
}

// Resolve returns the first IPv4 address found for host,
// or the first IPv6 address if the host has no IPv4 address.
func (d *DNSResolver) Resolve(ctx context.Context, host string) (string, error) {
	addrs, err := d.r.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrResolution, err)
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("%w: no address records for %s", ErrResolution, host)
	}
	for _, addr := range addrs {
		if addr.Unmap().Is4() {
			return addr.Unmap().String(), nil
		}
	}
	return addrs[0].String(), nil
}

var _ Resolver = (*DNSResolver)(nil)

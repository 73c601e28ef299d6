package geostore

import (
	"net/netip"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// IdentifierKind tells whether an identifier is an IP address or a domain name.
type IdentifierKind int

// Identifier kinds.
const (
	KindIP IdentifierKind = iota + 1
	KindDomain
)

func (k IdentifierKind) String() string {
	switch k {
	case KindIP:
		return "ip"
	case KindDomain:
		return "domain"
	default:
		return "unknown"
	}
}

// Identifier is a normalized IP address or domain name.
type Identifier struct {
	Value string
	Kind  IdentifierKind
}

func (i Identifier) String() string {
	return i.Value
}

// protocolPrefixes removed before parsing. Only the first match is removed.
var protocolPrefixes = []string{"http://", "https://", "ftp://"}

// ParseIdentifier normalizes an IP address or domain name.
//
// A leading protocol prefix is stripped.
// IP addresses are returned in their canonical form, domain names in lowercase.
// Domain names must have a registrable name followed by a known public suffix.
func ParseIdentifier(raw string) (Identifier, error) {
	value := raw
	for _, prefix := range protocolPrefixes {
		if strings.HasPrefix(value, prefix) {
			value = value[len(prefix):]
			break
		}
	}

	if addr, err := netip.ParseAddr(value); err == nil {
		return Identifier{Value: addr.String(), Kind: KindIP}, nil
	}

	domain := strings.ToLower(value)
	if isRegistrableDomain(domain) {
		return Identifier{Value: domain, Kind: KindDomain}, nil
	}
	return Identifier{}, &ValidationError{Input: raw}
}

// isRegistrableDomain checks if the lowercase domain has at least one label
// in front of an ICANN suffix listed in the Public Suffix List.
// Hosts are restricted to hostname labels: paths, ports and userinfo are rejected.
func isRegistrableDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if !isHostnameLabel(label) {
			return false
		}
	}

	suffix, icann := publicsuffix.PublicSuffix(domain)
	if !icann {
		// Domains not matching any rule get the last label as suffix.
		// Private suffixes such as github.io sit on an ICANN suffix and are registrable themselves.
		return strings.Contains(suffix, ".")
	}
	return len(domain) > len(suffix)+1 && strings.HasSuffix(domain, "."+suffix)
}

func isHostnameLabel(label string) bool {
	if len(label) == 0 || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for _, c := range label {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

package validators

import (
	"net"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// EmailDomainChecker accepts an e-mail when its domain has an MX or an
// address record. Lookups are cached per domain, including failures.
type EmailDomainChecker struct {
	cache *cache.Cache

	lookupMX func(string) ([]*net.MX, error)
	lookupIP func(string) ([]net.IP, error)
}

func NewEmailDomainChecker(ttl time.Duration) *EmailDomainChecker {
	return &EmailDomainChecker{
		cache:    cache.New(ttl, 2*ttl),
		lookupMX: net.LookupMX,
		lookupIP: net.LookupIP,
	}
}

func (v *EmailDomainChecker) Valid(email string) bool {
	domain, ok := emailDomain(email)
	if !ok {
		return false
	}

	if cached, found := v.cache.Get(domain); found {
		return cached.(bool)
	}

	valid := v.resolves(domain)
	v.cache.SetDefault(domain, valid)
	return valid
}

func (v *EmailDomainChecker) resolves(domain string) bool {
	if mx, err := v.lookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := v.lookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

func emailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return strings.ToLower(email[at+1:]), true
}

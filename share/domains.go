package share

import (
	"context"
	"fmt"
	"strings"
	"time"

	ttlworker "github.com/FloatTech/ttl"

	"github.com/wrenko/ragsend-go/tool"
	"github.com/wrenko/ragsend-go/types"
)

const (
	DefaultDomainTTL = 300 * time.Second
	domainCacheKey   = "directory"
)

// DomainLister is the slice of the backend client the directory needs.
type DomainLister interface {
	ListDomains(ctx context.Context) ([]types.Domain, error)
}

var domainCache = ttlworker.NewCache[string, []types.Domain](DefaultDomainTTL)

// SetDomainTTL rebuilds the domain cache with the given lifetime.
func SetDomainTTL(d time.Duration) {
	if d <= 0 {
		d = DefaultDomainTTL
	}
	domainCache = ttlworker.NewCache[string, []types.Domain](d)
}

// Domains returns the backend's domains, served from cache while fresh.
func Domains(ctx context.Context, lister DomainLister) ([]types.Domain, error) {
	if cached := domainCache.Get(domainCacheKey); len(cached) > 0 {
		return cached, nil
	}
	domains, err := lister.ListDomains(ctx)
	if err != nil {
		return nil, err
	}
	domainCache.Set(domainCacheKey, domains)
	tool.DefaultLogger.Debugf("Cached %d domains", len(domains))
	return domains, nil
}

// InvalidateDomains drops the cached directory.
func InvalidateDomains() {
	domainCache.Delete(domainCacheKey)
}

// ResolveDomain matches ref against domain IDs first, then names
// case-insensitively.
func ResolveDomain(ctx context.Context, lister DomainLister, ref string) (types.Domain, error) {
	domains, err := Domains(ctx, lister)
	if err != nil {
		return types.Domain{}, err
	}
	for _, d := range domains {
		if d.ID == ref {
			return d, nil
		}
	}
	for _, d := range domains {
		if strings.EqualFold(d.Name, ref) {
			return d, nil
		}
	}
	return types.Domain{}, fmt.Errorf("unknown domain: %s", ref)
}

package enrich

import (
	"hash/fnv"
	"strings"
	"time"

	"leadscope/internal/cache"
	"leadscope/internal/model"
)

// Cache key namespaces.
const (
	ipKeyPrefix      = "ip:"
	companyKeyPrefix = "company:"
)

// CompanySource resolves a domain to a company profile. The static dataset
// table implements it; a live vendor integration would satisfy the same
// interface without touching the pipeline.
type CompanySource interface {
	Lookup(domain string) (model.CompanyProfile, bool)
	Domains() []string
}

// noData is the cached sentinel for a confirmed dataset miss. Caching the
// miss (with a shorter TTL than hits) stops repeated futile lookups for
// persistently unknown domains while letting them be retried sooner.
type noData struct{}

// Resolver maps a domain to a company profile through a cache-then-dataset
// waterfall.
type Resolver struct {
	cache   *cache.Cache
	source  CompanySource
	hitTTL  time.Duration
	missTTL time.Duration
}

// NewResolver creates a resolver backed by the given cache and source.
func NewResolver(c *cache.Cache, source CompanySource, hitTTL, missTTL time.Duration) *Resolver {
	return &Resolver{
		cache:   c,
		source:  source,
		hitTTL:  hitTTL,
		missTTL: missTTL,
	}
}

// Resolve returns the profile for domain, consulting the cache before the
// dataset. Hits are cached under the long TTL, misses as a sentinel under
// the short one.
func (r *Resolver) Resolve(domain string) (*model.CompanyProfile, bool) {
	key := companyKeyPrefix + domain

	if v, ok := r.cache.Get(key); ok {
		if _, miss := v.(noData); miss {
			return nil, false
		}
		p := v.(model.CompanyProfile)
		return &p, true
	}

	p, ok := r.source.Lookup(domain)
	if !ok {
		r.cache.Set(key, noData{}, r.missTTL)
		return nil, false
	}

	r.cache.Set(key, p, r.hitTTL)
	return &p, true
}

// Fallback deterministically synthesizes a best-effort profile for a domain
// with no dataset entry. Never cached here; the pipeline caches the overall
// result one level up.
func (r *Resolver) Fallback(domain, companyNameHint string) *model.CompanyProfile {
	name := companyNameHint
	if name == "" {
		name = deriveCompanyName(domain)
	}

	website := ""
	if domain != "" {
		website = "https://" + domain
	}

	return &model.CompanyProfile{
		CompanyName:      name,
		Domain:           domain,
		Employees:        estimateEmployees(domain),
		Industry:         "Technology",
		Headquarters:     "Unknown",
		Revenue:          "Unknown",
		Website:          website,
		EnrichmentSource: model.SourceFallback,
	}
}

// AvailableDomains enumerates the backing dataset's keys. Diagnostics only.
func (r *Resolver) AvailableDomains() []string {
	return r.source.Domains()
}

var employeeBuckets = []string{
	"1-10",
	"11-50",
	"51-200",
	"201-500",
	"501-1,000",
	"1,001-5,000",
}

// estimateEmployees buckets the domain by hash so repeated fallbacks for the
// same domain always agree.
func estimateEmployees(domain string) string {
	h := fnv.New32a()
	h.Write([]byte(domain))
	return employeeBuckets[int(h.Sum32())%len(employeeBuckets)]
}

// deriveCompanyName turns "example.com" into "Example".
func deriveCompanyName(domain string) string {
	base, _, _ := strings.Cut(domain, ".")
	if base == "" {
		return "Unknown"
	}
	return strings.ToUpper(base[:1]) + base[1:]
}

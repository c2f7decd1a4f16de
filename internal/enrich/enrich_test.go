package enrich

import (
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"leadscope/internal/cache"
	"leadscope/internal/dataset"
	"leadscope/internal/model"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	ips, err := dataset.LoadIPTable("")
	if err != nil {
		t.Fatalf("LoadIPTable error: %v", err)
	}
	companies, err := dataset.LoadCompanyTable("")
	if err != nil {
		t.Fatalf("LoadCompanyTable error: %v", err)
	}

	svc := NewService(Config{
		Cache:     cache.New(1000),
		IPs:       ips,
		Companies: companies,
	})
	t.Cleanup(svc.Close)
	return svc
}

func TestEnrichUnknownIP(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Enrich("1.2.3.4")
	if err != nil {
		t.Fatalf("Enrich error: %v", err)
	}
	if res.Status != model.StatusFiltered {
		t.Fatalf("status = %q, want filtered", res.Status)
	}
	if res.Reason != ReasonNoData {
		t.Fatalf("reason = %q, want %q", res.Reason, ReasonNoData)
	}
}

func TestEnrichISP(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Enrich("125.20.250.6")
	if err != nil {
		t.Fatalf("Enrich error: %v", err)
	}
	if res.Status != model.StatusFiltered {
		t.Fatalf("status = %q, want filtered", res.Status)
	}
	if res.Reason != ReasonISPOrHosting {
		t.Fatalf("reason = %q, want %q", res.Reason, ReasonISPOrHosting)
	}
}

func TestEnrichHosting(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Enrich("52.95.110.1")
	if err != nil {
		t.Fatalf("Enrich error: %v", err)
	}
	if res.Status != model.StatusFiltered || res.Reason != ReasonISPOrHosting {
		t.Fatalf("got %q/%q, want filtered/%q", res.Status, res.Reason, ReasonISPOrHosting)
	}
}

func TestEnrichBusinessFromDataset(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Enrich("204.79.197.200")
	if err != nil {
		t.Fatalf("Enrich error: %v", err)
	}
	if res.Status != model.StatusSuccess {
		t.Fatalf("status = %q, want success", res.Status)
	}
	if res.IPRecord == nil || res.IPRecord.ASDomain != "microsoft.com" {
		t.Fatalf("unexpected IP record: %+v", res.IPRecord)
	}
	if res.CompanyProfile.EnrichmentSource != model.SourceDataset {
		t.Fatalf("source = %q, want dataset", res.CompanyProfile.EnrichmentSource)
	}
	if !strings.Contains(res.CompanyProfile.CompanyName, "Microsoft") {
		t.Fatalf("company = %q, want it to contain Microsoft", res.CompanyProfile.CompanyName)
	}
}

func TestEnrichBusinessFallback(t *testing.T) {
	svc := newTestService(t)

	// basecamp.com is in the IP table but has no company profile.
	res, err := svc.Enrich("37.16.31.1")
	if err != nil {
		t.Fatalf("Enrich error: %v", err)
	}
	if res.Status != model.StatusSuccess {
		t.Fatalf("status = %q, want success", res.Status)
	}
	if res.CompanyProfile.EnrichmentSource != model.SourceFallback {
		t.Fatalf("source = %q, want fallback", res.CompanyProfile.EnrichmentSource)
	}
	if res.CompanyProfile.Industry != "Technology" {
		t.Fatalf("industry = %q, want Technology", res.CompanyProfile.Industry)
	}
	if res.CompanyProfile.CompanyName != "Basecamp, LLC" {
		t.Fatalf("company = %q, want the AS name hint", res.CompanyProfile.CompanyName)
	}
}

func TestEnrichIdempotentAndCached(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Enrich("204.79.197.200")
	if err != nil {
		t.Fatalf("Enrich error: %v", err)
	}
	active := svc.Stats().Cache.ActiveEntries

	second, err := svc.Enrich("204.79.197.200")
	if err != nil {
		t.Fatalf("Enrich error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated enrich differs: %+v vs %+v", first, second)
	}
	if got := svc.Stats().Cache.ActiveEntries; got != active {
		t.Fatalf("active entries grew from %d to %d; second call not served from cache", active, got)
	}
}

func TestEnrichInvalidIP(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Enrich("not-an-ip"); err != ErrInvalidIP {
		t.Fatalf("Enrich error = %v, want ErrInvalidIP", err)
	}
}

func TestClearCache(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Enrich("8.8.8.8"); err != nil {
		t.Fatalf("Enrich error: %v", err)
	}
	if n := svc.ClearCache(); n == 0 {
		t.Fatal("ClearCache removed nothing after an enrich")
	}
	if got := svc.Stats().Cache.TotalEntries; got != 0 {
		t.Fatalf("TotalEntries = %d after clear, want 0", got)
	}
}

func TestAvailableDomains(t *testing.T) {
	svc := newTestService(t)

	domains := svc.AvailableDomains()
	if !slices.Contains(domains, "microsoft.com") {
		t.Fatalf("domains %v missing microsoft.com", domains)
	}
	if !slices.IsSorted(domains) {
		t.Fatal("domains not sorted")
	}
}

type countingSource struct {
	profiles map[string]model.CompanyProfile
	lookups  int
}

func (s *countingSource) Lookup(domain string) (model.CompanyProfile, bool) {
	s.lookups++
	p, ok := s.profiles[domain]
	return p, ok
}

func (s *countingSource) Domains() []string {
	domains := make([]string, 0, len(s.profiles))
	for d := range s.profiles {
		domains = append(domains, d)
	}
	return domains
}

func TestResolverCachesHits(t *testing.T) {
	src := &countingSource{profiles: map[string]model.CompanyProfile{
		"example.com": {CompanyName: "Example Corp", Domain: "example.com", EnrichmentSource: model.SourceDataset},
	}}
	r := NewResolver(cache.New(0), src, time.Minute, time.Minute)

	for range 3 {
		p, ok := r.Resolve("example.com")
		if !ok {
			t.Fatal("Resolve missed a known domain")
		}
		if p.CompanyName != "Example Corp" {
			t.Fatalf("company = %q, want Example Corp", p.CompanyName)
		}
	}
	if src.lookups != 1 {
		t.Fatalf("source consulted %d times, want 1", src.lookups)
	}
}

func TestResolverCachesMisses(t *testing.T) {
	src := &countingSource{profiles: map[string]model.CompanyProfile{}}
	r := NewResolver(cache.New(0), src, time.Minute, time.Minute)

	for range 3 {
		if _, ok := r.Resolve("unknown.example"); ok {
			t.Fatal("Resolve returned a profile for an unknown domain")
		}
	}
	if src.lookups != 1 {
		t.Fatalf("source consulted %d times, want 1 (miss not cached)", src.lookups)
	}
}

func TestResolverMissExpiresSooner(t *testing.T) {
	src := &countingSource{profiles: map[string]model.CompanyProfile{}}
	r := NewResolver(cache.New(0), src, time.Minute, 20*time.Millisecond)

	r.Resolve("unknown.example")
	time.Sleep(40 * time.Millisecond)
	r.Resolve("unknown.example")

	if src.lookups != 2 {
		t.Fatalf("source consulted %d times, want 2 after sentinel expiry", src.lookups)
	}
}

func TestFallbackDeterministic(t *testing.T) {
	r := NewResolver(cache.New(0), &countingSource{}, time.Minute, time.Minute)

	a := r.Fallback("widgets.io", "")
	b := r.Fallback("widgets.io", "")

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("fallback not deterministic: %+v vs %+v", a, b)
	}
	if a.EnrichmentSource != model.SourceFallback {
		t.Fatalf("source = %q, want fallback", a.EnrichmentSource)
	}
	if a.Industry != "Technology" {
		t.Fatalf("industry = %q, want Technology", a.Industry)
	}
	if a.CompanyName != "Widgets" {
		t.Fatalf("derived name = %q, want Widgets", a.CompanyName)
	}
	if a.Website != "https://widgets.io" {
		t.Fatalf("website = %q", a.Website)
	}
}

func TestFallbackUsesNameHint(t *testing.T) {
	r := NewResolver(cache.New(0), &countingSource{}, time.Minute, time.Minute)

	p := r.Fallback("widgets.io", "Widgets Incorporated")
	if p.CompanyName != "Widgets Incorporated" {
		t.Fatalf("company = %q, want the hint", p.CompanyName)
	}
}

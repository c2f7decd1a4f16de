// Package enrich implements the visitor-enrichment pipeline: classify an IP
// against the static reference data, resolve business IPs to a company
// profile, and cache every verdict with a TTL matched to its stability.
package enrich

import (
	"errors"
	"net"
	"time"

	"github.com/charmbracelet/log"

	"leadscope/internal/cache"
	"leadscope/internal/dataset"
	"leadscope/internal/model"
)

// Filtered verdict reasons.
const (
	ReasonNoData       = "No data found for this IP."
	ReasonISPOrHosting = "ISP or Hosting"
)

// ErrInvalidIP is returned when the input is not a syntactically valid IP
// address. The HTTP layer validates first; this is the defensive backstop.
var ErrInvalidIP = errors.New("enrich: invalid IP address")

// Config wires a Service. Zero TTLs get the defaults below. A zero
// SweepInterval disables the background sweep; expiry then happens lazily
// on read only.
type Config struct {
	Cache     *cache.Cache
	IPs       *dataset.IPTable
	Companies *dataset.CompanyTable
	ASNDB     *dataset.ASNDB // optional

	SuccessTTL    time.Duration // success verdicts and company hits
	FilteredTTL   time.Duration // filtered verdicts and company misses
	SweepInterval time.Duration
}

// Service is the enrichment pipeline.
type Service struct {
	cache     *cache.Cache
	ips       *dataset.IPTable
	companies *dataset.CompanyTable
	resolver  *Resolver
	asndb     *dataset.ASNDB

	successTTL  time.Duration
	filteredTTL time.Duration

	stop chan struct{}
}

// NewService builds the pipeline. Call Close when done.
func NewService(cfg Config) *Service {
	if cfg.SuccessTTL <= 0 {
		cfg.SuccessTTL = 24 * time.Hour
	}
	if cfg.FilteredTTL <= 0 {
		cfg.FilteredTTL = time.Hour
	}

	s := &Service{
		cache:       cfg.Cache,
		ips:         cfg.IPs,
		companies:   cfg.Companies,
		resolver:    NewResolver(cfg.Cache, cfg.Companies, cfg.SuccessTTL, cfg.FilteredTTL),
		asndb:       cfg.ASNDB,
		successTTL:  cfg.SuccessTTL,
		filteredTTL: cfg.FilteredTTL,
		stop:        make(chan struct{}),
	}

	if cfg.SweepInterval > 0 {
		go s.sweepLoop(cfg.SweepInterval)
	}
	return s
}

// Enrich classifies ipAddr and returns its verdict. Repeated calls for the
// same IP are served from cache until the verdict's TTL expires.
func (s *Service) Enrich(ipAddr string) (*model.EnrichmentResult, error) {
	if net.ParseIP(ipAddr) == nil {
		return nil, ErrInvalidIP
	}

	key := ipKeyPrefix + ipAddr
	if v, ok := s.cache.Get(key); ok {
		return v.(*model.EnrichmentResult), nil
	}

	rec, found := s.ips.Lookup(ipAddr)
	if !found {
		rec, found = s.asndb.Classify(ipAddr)
	}
	if !found {
		res := model.Filtered(ReasonNoData)
		s.cache.Set(key, res, s.filteredTTL)
		log.Debug("enrich", "ip", ipAddr, "verdict", "filtered", "reason", "no data")
		return res, nil
	}

	if rec.Type == model.IPTypeISP || rec.Type == model.IPTypeHosting {
		res := model.Filtered(ReasonISPOrHosting)
		s.cache.Set(key, res, s.filteredTTL)
		log.Debug("enrich", "ip", ipAddr, "verdict", "filtered", "as", rec.ASName, "type", rec.Type)
		return res, nil
	}

	profile, ok := s.resolver.Resolve(rec.ASDomain)
	if !ok {
		profile = s.resolver.Fallback(rec.ASDomain, rec.ASName)
	}

	res := model.Success(&rec, profile)
	s.cache.Set(key, res, s.successTTL)
	log.Debug("enrich", "ip", ipAddr, "verdict", "success",
		"company", profile.CompanyName, "source", profile.EnrichmentSource)
	return res, nil
}

// AvailableDomains forwards to the resolver's diagnostic listing.
func (s *Service) AvailableDomains() []string {
	return s.resolver.AvailableDomains()
}

// Stats describes the pipeline's cache and reference data.
type Stats struct {
	Cache       cache.Stats `json:"cache"`
	IPRecords   int         `json:"ip_records"`
	Companies   int         `json:"companies"`
	ASNDBLoaded bool        `json:"asn_db_loaded"`
}

// Stats returns a diagnostics snapshot. Never evicts.
func (s *Service) Stats() Stats {
	return Stats{
		Cache:       s.cache.Stats(),
		IPRecords:   s.ips.Len(),
		Companies:   s.companies.Len(),
		ASNDBLoaded: s.asndb.Loaded(),
	}
}

// ClearCache drops every cached verdict and company profile, returning the
// number of entries removed.
func (s *Service) ClearCache() int {
	n := s.cache.Clear()
	log.Info("cache cleared", "removed", n)
	return n
}

func (s *Service) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.cache.Sweep(); n > 0 {
				log.Debug("cache sweep", "removed", n)
			}
		case <-s.stop:
			return
		}
	}
}

// Close stops the background sweep and releases the MMDB reader.
func (s *Service) Close() {
	close(s.stop)
	s.asndb.Close()
}

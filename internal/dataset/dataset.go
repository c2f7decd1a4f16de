// Package dataset holds the static reference tables the enrichment pipeline
// classifies against: the IP-to-organization table and the domain-to-company
// table. Both ship with embedded defaults and can be replaced wholesale by a
// JSON file at startup. Lookups are exact-match by key; there is no CIDR or
// subnet matching.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"leadscope/internal/model"
)

// IPTable maps IP addresses to the organization announcing them.
type IPTable struct {
	records map[string]model.IPRecord
}

// LoadIPTable builds the IP reference table. With an empty path the embedded
// defaults are used; otherwise the JSON file (an object keyed by IP) replaces
// them. A malformed file is a startup error, never a silent fallback.
func LoadIPTable(path string) (*IPTable, error) {
	records := make(map[string]model.IPRecord, len(defaultIPRecords))
	for ip, rec := range defaultIPRecords {
		records[ip] = rec
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("dataset: read IP table: %w", err)
		}
		loaded := make(map[string]model.IPRecord)
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("dataset: parse IP table: %w", err)
		}
		records = loaded
		log.Info("IP reference table loaded", "path", path, "records", len(records))
	}

	for ip, rec := range records {
		rec.IP = ip
		records[ip] = rec
	}
	return &IPTable{records: records}, nil
}

// Lookup returns the record for ip by exact string match.
func (t *IPTable) Lookup(ip string) (model.IPRecord, bool) {
	rec, ok := t.records[ip]
	return rec, ok
}

// Len returns the number of records in the table.
func (t *IPTable) Len() int {
	return len(t.records)
}

// CompanyTable maps domains to enriched company profiles.
type CompanyTable struct {
	profiles map[string]model.CompanyProfile
}

// LoadCompanyTable builds the company reference table, with the same
// embedded-defaults / JSON-override behavior as LoadIPTable.
func LoadCompanyTable(path string) (*CompanyTable, error) {
	profiles := make(map[string]model.CompanyProfile, len(defaultCompanies))
	for domain, p := range defaultCompanies {
		profiles[domain] = p
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("dataset: read company table: %w", err)
		}
		loaded := make(map[string]model.CompanyProfile)
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("dataset: parse company table: %w", err)
		}
		profiles = loaded
		log.Info("company reference table loaded", "path", path, "companies", len(profiles))
	}

	for domain, p := range profiles {
		p.Domain = domain
		p.EnrichmentSource = model.SourceDataset
		if p.Website == "" {
			p.Website = "https://" + strings.TrimPrefix(domain, "www.")
		}
		profiles[domain] = p
	}
	return &CompanyTable{profiles: profiles}, nil
}

// Lookup returns the profile for domain by exact string match.
func (t *CompanyTable) Lookup(domain string) (model.CompanyProfile, bool) {
	p, ok := t.profiles[domain]
	return p, ok
}

// Domains lists the table's keys in sorted order. Diagnostics only.
func (t *CompanyTable) Domains() []string {
	domains := make([]string, 0, len(t.profiles))
	for d := range t.profiles {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}

// Len returns the number of profiles in the table.
func (t *CompanyTable) Len() int {
	return len(t.profiles)
}

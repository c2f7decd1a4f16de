package model

import "time"

// IP record types as they appear in the reference dataset.
const (
	IPTypeBusiness = "business"
	IPTypeISP      = "isp"
	IPTypeHosting  = "hosting"
)

// Enrichment sources for a company profile.
const (
	SourceDataset  = "dataset"
	SourceFallback = "fallback"
)

// Enrichment result statuses.
const (
	StatusFiltered = "filtered"
	StatusSuccess  = "success"
)

// IPRecord is one row of the static IP-to-organization reference table.
type IPRecord struct {
	IP       string `json:"ip"`
	ASN      string `json:"asn"`
	ASName   string `json:"as_name"`
	ASDomain string `json:"as_domain"`
	Type     string `json:"type"`
}

// CompanyProfile describes the organization behind a business IP.
type CompanyProfile struct {
	CompanyName      string `json:"company_name"`
	Domain           string `json:"domain"`
	Employees        string `json:"employees"`
	Industry         string `json:"industry"`
	Headquarters     string `json:"headquarters"`
	Revenue          string `json:"revenue"`
	Website          string `json:"website"`
	EnrichmentSource string `json:"enrichment_source"`
}

// EnrichmentResult is the verdict for a single visitor IP. Filtered traffic
// carries a reason; successful enrichments carry the matched record and the
// resolved company profile.
type EnrichmentResult struct {
	Status         string          `json:"status"`
	Reason         string          `json:"reason,omitempty"`
	IPRecord       *IPRecord       `json:"ip_record,omitempty"`
	CompanyProfile *CompanyProfile `json:"company_profile,omitempty"`
}

// Filtered builds a filtered verdict with the given reason.
func Filtered(reason string) *EnrichmentResult {
	return &EnrichmentResult{Status: StatusFiltered, Reason: reason}
}

// Success builds a successful enrichment verdict.
func Success(rec *IPRecord, profile *CompanyProfile) *EnrichmentResult {
	return &EnrichmentResult{Status: StatusSuccess, IPRecord: rec, CompanyProfile: profile}
}

// Visit is a persisted record of an enriched visitor.
type Visit struct {
	ID          int64           `json:"id"`
	IP          string          `json:"ip"`
	CompanyName string          `json:"company_name"`
	Domain      string          `json:"domain"`
	Source      string          `json:"source"`
	Profile     *CompanyProfile `json:"profile,omitempty"`
	VisitedAt   time.Time       `json:"visited_at"`
}

// User is a registered account.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is the register/login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ErrorResponse is returned on error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

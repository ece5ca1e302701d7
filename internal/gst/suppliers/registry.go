// Package suppliers fuzzy-matches free-text foreign supplier names
// against a registry of known multinational vendors, suggesting
// default SAC/HSN codes, GST rates and billing metadata that the RCM
// calculator consumes.
package suppliers

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"lekha/internal/domain"
)

const (
	// acceptThreshold is the minimum similarity for a candidate to win.
	acceptThreshold = 0.7
	// reviewThreshold: winners below this are flagged for manual review.
	reviewThreshold = 0.8
)

// regionOverrides maps subsidiary markers found in supplier names to
// billing overrides. An Ireland subsidiary bills in EUR regardless of
// the parent's default.
var regionOverrides = map[string]struct {
	currency string
	country  string
}{
	"ireland":      {currency: "EUR", country: "IE"},
	"singapore":    {currency: "SGD", country: "SG"},
	"emea":         {currency: "EUR", country: ""},
	"asia pacific": {currency: "SGD", country: ""},
}

var countryCodePattern = regexp.MustCompile(`^[A-Za-z]{2}$`)

// Query describes a supplier being entered by a user.
type Query struct {
	Name               string
	Country            string
	Domain             string
	ServiceDescription string
	ServiceTypeHint    domain.ServiceTypeHint
}

// Defaults are the suggested invoice-entry defaults for a supplier.
type Defaults struct {
	Code            string  `json:"code"`
	GSTRate         float64 `json:"gst_rate"`
	ServiceCategory string  `json:"service_category"`
	Currency        string  `json:"currency"`
	BillingCountry  string  `json:"billing_country"`
}

// MatchResult is the outcome of a registry lookup.
type MatchResult struct {
	IsKnownSupplier      bool              `json:"is_known_supplier"`
	SupplierCode         string            `json:"supplier_code,omitempty"`
	MatchConfidence      float64           `json:"match_confidence"`
	MatchedFields        []string          `json:"matched_fields,omitempty"`
	EntityType           domain.EntityType `json:"entity_type,omitempty"`
	RequiresManualReview bool              `json:"requires_manual_review"`
	Defaults             Defaults          `json:"defaults"`
}

// Registry is an immutable in-memory index of known supplier
// profiles, safe for concurrent lookups.
type Registry struct {
	profiles []domain.ForeignSupplierProfile
}

// NewRegistry builds a registry over the given profiles.
func NewRegistry(profiles []domain.ForeignSupplierProfile) *Registry {
	return &Registry{profiles: profiles}
}

// DefaultRegistry builds a registry over the built-in vendor set.
func DefaultRegistry() *Registry {
	return NewRegistry(BuiltinProfiles())
}

// Match finds the best-scoring known supplier for the query, or
// returns unknown-supplier defaults. Empty names and malformed
// country codes are caller-input errors.
func (r *Registry) Match(q Query) (*MatchResult, error) {
	name := normalizeName(q.Name)
	if name == "" {
		return nil, domain.ErrMissingSupplierName
	}
	if q.Country != "" && !countryCodePattern.MatchString(q.Country) {
		return nil, domain.ErrInvalidCountryCode
	}

	var (
		best       *domain.ForeignSupplierProfile
		bestScore  float64
		bestFields []string
	)

	for i := range r.profiles {
		p := &r.profiles[i]
		score, fields := scoreProfile(p, name, q.Domain)
		if score > bestScore {
			best, bestScore, bestFields = p, score, fields
		}
	}

	if best == nil || bestScore < acceptThreshold {
		return unknownSupplierResult(q), nil
	}

	res := &MatchResult{
		IsKnownSupplier:      true,
		SupplierCode:         best.SupplierCode,
		MatchConfidence:      bestScore,
		MatchedFields:        bestFields,
		EntityType:           domain.EntityParent,
		RequiresManualReview: bestScore < reviewThreshold,
		Defaults: Defaults{
			Code:            best.DefaultCode,
			GSTRate:         best.DefaultGSTRate,
			ServiceCategory: best.ServiceCategory,
			Currency:        best.DefaultCurrency,
			BillingCountry:  best.BillingCountry,
		},
	}

	if marker, ok := subsidiaryMarker(name); ok {
		res.EntityType = domain.EntitySubsidiary
		override := regionOverrides[marker]
		if override.currency != "" {
			res.Defaults.Currency = override.currency
		}
		if override.country != "" {
			res.Defaults.BillingCountry = override.country
		}
	}

	return res, nil
}

func scoreProfile(p *domain.ForeignSupplierProfile, name, domainName string) (float64, []string) {
	var score float64
	var fields []string

	for _, pattern := range p.NamePatterns {
		np := normalizeName(pattern)
		if np == "" {
			continue
		}
		s := similarity(name, np)
		// Subsidiary names embed the parent pattern as whole tokens
		// ("google ireland limited" contains "google"); whole-string
		// edit distance alone would score these too low.
		if s < tokenContainScore && containsTokens(name, np) {
			s = tokenContainScore
		}
		if s > score {
			score = s
		}
	}
	if score > 0 {
		fields = append(fields, "name")
	}

	if domainName != "" {
		qd := strings.ToLower(strings.TrimSpace(domainName))
		for _, rd := range p.Domains {
			if strings.Contains(qd, rd) || strings.Contains(rd, qd) {
				score = 1.0
				fields = append(fields, "domain")
				break
			}
		}
	}

	return score, fields
}

// tokenContainScore is the similarity assigned when a name pattern
// appears as whole tokens inside the queried name. High enough to win,
// below the exact-match score of 1.
const tokenContainScore = 0.9

func containsTokens(name, pattern string) bool {
	return strings.Contains(" "+name+" ", " "+pattern+" ")
}

// similarity is the normalized Levenshtein similarity
// 1 - editDistance/maxLen; equal strings are exactly 1.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

func subsidiaryMarker(name string) (string, bool) {
	for marker := range regionOverrides {
		if strings.Contains(name, marker) {
			return marker, true
		}
	}
	return "", false
}

func unknownSupplierResult(q Query) *MatchResult {
	defaults := Defaults{
		Code:            FallbackSAC,
		GSTRate:         FallbackGSTRate,
		ServiceCategory: "other professional services",
		Currency:        "USD",
		BillingCountry:  strings.ToUpper(q.Country),
	}

	switch q.ServiceTypeHint {
	case domain.ServiceHintSoftware:
		defaults.Code = sacSoftwareLicense
		defaults.ServiceCategory = "software licensing"
	case domain.ServiceHintCloud:
		defaults.Code = sacCloudHosting
		defaults.ServiceCategory = "cloud infrastructure"
	case domain.ServiceHintConsulting:
		defaults.Code = sacConsulting
		defaults.ServiceCategory = "business consulting"
	}

	return &MatchResult{
		IsKnownSupplier:      false,
		MatchConfidence:      0,
		RequiresManualReview: true,
		Defaults:             defaults,
	}
}

var nameNoise = regexp.MustCompile(`[^\p{L}\p{N} ]+`)
var multiSpace = regexp.MustCompile(`\s+`)

// normalizeName lowercases, strips punctuation and collapses spaces.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nameNoise.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

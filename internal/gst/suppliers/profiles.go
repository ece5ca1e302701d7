package suppliers

import "lekha/internal/domain"

// Default SAC codes for unknown foreign suppliers, by service hint.
// 998319 ("other professional services") is the generic fallback.
const (
	FallbackSAC        = "998319"
	FallbackGSTRate    = 18.0
	sacSoftwareLicense = "997331"
	sacCloudHosting    = "998315"
	sacConsulting      = "998312"
)

// builtinProfiles is the closed registry of known multinational
// vendors. Seeded at build time; registering a new vendor is an
// administrative path outside this engine.
var builtinProfiles = []domain.ForeignSupplierProfile{
	{
		SupplierCode:    "GOOGLE",
		NamePatterns:    []string{"google", "google llc", "google cloud", "google workspace", "alphabet"},
		Domains:         []string{"google.com", "cloud.google.com", "workspace.google.com"},
		DefaultCode:     sacCloudHosting,
		DefaultGSTRate:  18,
		ServiceCategory: "cloud infrastructure and productivity",
		DefaultCurrency: "USD",
		BillingCountry:  "US",
	},
	{
		SupplierCode:    "MICROSOFT",
		NamePatterns:    []string{"microsoft", "microsoft corporation", "microsoft azure", "microsoft 365"},
		Domains:         []string{"microsoft.com", "azure.com", "office.com"},
		DefaultCode:     sacCloudHosting,
		DefaultGSTRate:  18,
		ServiceCategory: "cloud infrastructure and productivity",
		DefaultCurrency: "USD",
		BillingCountry:  "US",
	},
	{
		SupplierCode:    "AWS",
		NamePatterns:    []string{"amazon web services", "aws", "amazon aws"},
		Domains:         []string{"aws.amazon.com", "amazonaws.com"},
		DefaultCode:     sacCloudHosting,
		DefaultGSTRate:  18,
		ServiceCategory: "cloud infrastructure",
		DefaultCurrency: "USD",
		BillingCountry:  "US",
	},
	{
		SupplierCode:    "META",
		NamePatterns:    []string{"meta", "meta platforms", "facebook"},
		Domains:         []string{"meta.com", "facebook.com"},
		DefaultCode:     "998365",
		DefaultGSTRate:  18,
		ServiceCategory: "online advertising",
		DefaultCurrency: "USD",
		BillingCountry:  "US",
	},
	{
		SupplierCode:    "ADOBE",
		NamePatterns:    []string{"adobe", "adobe systems", "adobe inc"},
		Domains:         []string{"adobe.com"},
		DefaultCode:     sacSoftwareLicense,
		DefaultGSTRate:  18,
		ServiceCategory: "software licensing",
		DefaultCurrency: "USD",
		BillingCountry:  "US",
	},
	{
		SupplierCode:    "ATLASSIAN",
		NamePatterns:    []string{"atlassian", "atlassian pty", "jira", "confluence"},
		Domains:         []string{"atlassian.com"},
		DefaultCode:     sacSoftwareLicense,
		DefaultGSTRate:  18,
		ServiceCategory: "software licensing",
		DefaultCurrency: "USD",
		BillingCountry:  "AU",
	},
	{
		SupplierCode:    "SALESFORCE",
		NamePatterns:    []string{"salesforce", "salesforce com", "slack technologies", "slack"},
		Domains:         []string{"salesforce.com", "slack.com"},
		DefaultCode:     sacCloudHosting,
		DefaultGSTRate:  18,
		ServiceCategory: "software as a service",
		DefaultCurrency: "USD",
		BillingCountry:  "US",
	},
	{
		SupplierCode:    "ZOOM",
		NamePatterns:    []string{"zoom", "zoom video communications"},
		Domains:         []string{"zoom.us", "zoom.com"},
		DefaultCode:     sacCloudHosting,
		DefaultGSTRate:  18,
		ServiceCategory: "communications",
		DefaultCurrency: "USD",
		BillingCountry:  "US",
	},
	{
		SupplierCode:    "OPENAI",
		NamePatterns:    []string{"openai", "openai llc"},
		Domains:         []string{"openai.com"},
		DefaultCode:     sacCloudHosting,
		DefaultGSTRate:  18,
		ServiceCategory: "software as a service",
		DefaultCurrency: "USD",
		BillingCountry:  "US",
	},
	{
		SupplierCode:    "GITHUB",
		NamePatterns:    []string{"github", "github inc"},
		Domains:         []string{"github.com"},
		DefaultCode:     sacSoftwareLicense,
		DefaultGSTRate:  18,
		ServiceCategory: "software development tools",
		DefaultCurrency: "USD",
		BillingCountry:  "US",
	},
	{
		SupplierCode:    "LINKEDIN",
		NamePatterns:    []string{"linkedin", "linkedin corporation"},
		Domains:         []string{"linkedin.com"},
		DefaultCode:     "998365",
		DefaultGSTRate:  18,
		ServiceCategory: "online advertising and recruitment",
		DefaultCurrency: "USD",
		BillingCountry:  "US",
	},
	{
		SupplierCode:    "FIGMA",
		NamePatterns:    []string{"figma", "figma inc"},
		Domains:         []string{"figma.com"},
		DefaultCode:     sacSoftwareLicense,
		DefaultGSTRate:  18,
		ServiceCategory: "software as a service",
		DefaultCurrency: "USD",
		BillingCountry:  "US",
	},
}

// BuiltinProfiles returns a copy of the built-in vendor registry.
func BuiltinProfiles() []domain.ForeignSupplierProfile {
	out := make([]domain.ForeignSupplierProfile, len(builtinProfiles))
	copy(out, builtinProfiles)
	return out
}

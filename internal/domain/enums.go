package domain

// CodeType classifies an HSN/SAC classification code.
type CodeType string

const (
	CodeTypeHSN     CodeType = "hsn"
	CodeTypeSAC     CodeType = "sac"
	CodeTypeInvalid CodeType = "invalid"
)

// SupplyType is the place-of-supply classification of a transaction.
type SupplyType string

const (
	SupplyIntrastate SupplyType = "intrastate"
	SupplyInterstate SupplyType = "interstate"
	SupplyImport     SupplyType = "import"
)

// RCMType identifies the reverse-charge variant of a self-invoice.
type RCMType string

const (
	RCMImportOfServices   RCMType = "import_of_services"
	RCMIndianUnregistered RCMType = "indian_unregistered"
)

// ITCCategory classifies an input tax credit claim.
type ITCCategory string

const (
	ITCCategoryInputs        ITCCategory = "inputs"
	ITCCategoryCapitalGoods  ITCCategory = "capital_goods"
	ITCCategoryInputServices ITCCategory = "input_services"
)

// EligibilityStatus is the lifecycle state of an ITC claim.
// Transitions are one-directional except reversed → reclaimed after
// late payment to the supplier.
type EligibilityStatus string

const (
	EligibilityEligible       EligibilityStatus = "eligible"
	EligibilityBlocked        EligibilityStatus = "blocked"
	EligibilityPaymentPending EligibilityStatus = "payment_pending"
	EligibilityExpired        EligibilityStatus = "expired"
	EligibilityReversed       EligibilityStatus = "reversed"
	EligibilityReclaimed      EligibilityStatus = "reclaimed"
)

// MatchStatus is the outcome of matching a purchase invoice against a
// GSTR-2B entry.
type MatchStatus string

const (
	MatchStatusMatched        MatchStatus = "matched"
	MatchStatusAmountMismatch MatchStatus = "amount_mismatch"
	MatchStatusNoMatch        MatchStatus = "no_match"
	MatchStatusUnmatched      MatchStatus = "unmatched"
)

// GSTR3BTable identifies where a liability or credit is reported on GSTR-3B.
type GSTR3BTable string

const (
	GSTR3BTable31a GSTR3BTable = "3.1(a)"
	GSTR3BTable31d GSTR3BTable = "3.1(d)"
	GSTR3BTable4A3 GSTR3BTable = "4(A)(3)"
)

// ClaimUrgency flags how close an ITC claim is to its filing deadline.
type ClaimUrgency string

const (
	UrgencyCritical ClaimUrgency = "critical" // ≤30 days remaining
	UrgencyHigh     ClaimUrgency = "high"     // ≤60 days
	UrgencyMedium   ClaimUrgency = "medium"   // ≤90 days
	UrgencyNormal   ClaimUrgency = "normal"
)

// EntityType distinguishes a multinational parent from a regional subsidiary.
type EntityType string

const (
	EntityParent     EntityType = "parent"
	EntitySubsidiary EntityType = "subsidiary"
)

// ServiceTypeHint refines default classification for unknown foreign suppliers.
type ServiceTypeHint string

const (
	ServiceHintSoftware   ServiceTypeHint = "software"
	ServiceHintCloud      ServiceTypeHint = "cloud"
	ServiceHintConsulting ServiceTypeHint = "consulting"
)

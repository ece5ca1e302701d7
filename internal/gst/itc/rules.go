package itc

import "fmt"

// Rule is one row of the Section 17(5) blocked-credit table. The
// statutory exceptions are evaluated in code against the typed
// per-category requests; the row carries the citation and wording an
// accountant sees.
type Rule struct {
	Category    ExpenseCategory `db:"category"`
	Section     string          `db:"section"`
	Description string          `db:"description"`
	Active      bool            `db:"active"`
}

// RuleSource supplies the blocked-category rule rows. Callers inject
// one: production wiring loads rows from the rule repository, tests
// inject a fixture. A category with no active row is eligible by
// default.
type RuleSource interface {
	Rules() []Rule
}

// StaticRuleSource is an in-memory RuleSource.
type StaticRuleSource struct {
	rows []Rule
}

// NewStaticRuleSource builds a RuleSource over a fixed set of rows.
func NewStaticRuleSource(rows []Rule) *StaticRuleSource {
	return &StaticRuleSource{rows: rows}
}

func (s *StaticRuleSource) Rules() []Rule { return s.rows }

// DefaultRules returns the statutory Section 17(5) table.
func DefaultRules() []Rule {
	return []Rule{
		{Category: CategoryMotorVehicle, Section: "17(5)(a)", Description: "Motor vehicles with seating capacity of 13 or fewer persons", Active: true},
		{Category: CategoryFoodBeverage, Section: "17(5)(b)(i)", Description: "Food and beverages, outdoor catering", Active: true},
		{Category: CategoryClubMembership, Section: "17(5)(b)(iii)/(c)", Description: "Membership of a club, health and fitness centre", Active: true},
		{Category: CategoryInsurance, Section: "17(5)(b)(iii)/(c)", Description: "Health insurance and life insurance", Active: true},
		{Category: CategoryWorksContract, Section: "17(5)(c)/(d)", Description: "Works contract services and construction of immovable property", Active: true},
		{Category: CategoryPersonalConsumption, Section: "17(5)(e)", Description: "Goods or services used for personal consumption", Active: true},
		{Category: CategoryCSR, Section: "17(5)(fa)", Description: "Corporate social responsibility expenditure", Active: true},
		{Category: CategoryLostGoods, Section: "17(5)(f)", Description: "Goods lost, stolen, destroyed or written off", Active: true},
	}
}

// CategoryDecision is the outcome of checking one transaction against
// the blocked-credit table.
type CategoryDecision struct {
	Blocked       bool
	Proportionate bool // mixed-use: partial credit via Rule 42/43 instead of a block
	Section       string
	Reason        string
}

// EvaluateCategory checks a typed category request against the rule
// rows. A transaction whose category has no active row, or which
// satisfies the row's statutory exception, is eligible.
func EvaluateCategory(req CategoryRequest, source RuleSource) CategoryDecision {
	rule, ok := findRule(source, req.Category())
	if !ok {
		return CategoryDecision{}
	}

	switch r := req.(type) {
	case MotorVehicleRequest:
		if r.SeatingCapacity > 13 {
			return CategoryDecision{}
		}
		if r.Usage == UsageTaxiService || r.Usage == UsagePassengerTransport || r.Usage == UsageDrivingSchool {
			return CategoryDecision{}
		}
		return blocked(rule, fmt.Sprintf(
			"motor vehicle with %d seats used for %s is blocked under Section %s; credit is allowed only for taxi or passenger-transport businesses",
			r.SeatingCapacity, r.Usage, rule.Section))

	case FoodBeverageRequest:
		if r.LegallyMandated {
			return CategoryDecision{}
		}
		return blocked(rule, fmt.Sprintf(
			"food and beverages are blocked under Section %s unless providing them is a legal obligation", rule.Section))

	case ClubMembershipRequest:
		return blocked(rule, fmt.Sprintf(
			"club or fitness-centre membership is blocked under Section %s with no exception", rule.Section))

	case InsuranceRequest:
		return blocked(rule, fmt.Sprintf(
			"%s insurance premium is blocked under Section %s with no exception", r.PolicyKind, rule.Section))

	case WorksContractRequest:
		if r.ResultIsPlantMachinery && r.UsedInTaxableSupply {
			return CategoryDecision{}
		}
		return blocked(rule, fmt.Sprintf(
			"works contract / construction of immovable property is blocked under Section %s; the exception requires the result to be plant and machinery used in further taxable supply", rule.Section))

	case PersonalConsumptionRequest:
		if r.BusinessUsePercentage > 0 {
			return CategoryDecision{
				Proportionate: true,
				Section:       rule.Section,
				Reason: fmt.Sprintf(
					"mixed business/personal use (%.0f%% business): proportionate credit applies instead of a full Section %s block",
					r.BusinessUsePercentage, rule.Section),
			}
		}
		return blocked(rule, fmt.Sprintf(
			"goods or services for personal consumption are blocked under Section %s", rule.Section))

	case CSRRequest:
		return blocked(rule, fmt.Sprintf(
			"CSR expenditure is never eligible for credit (Section %s)", rule.Section))

	case LostGoodsRequest:
		return blocked(rule, fmt.Sprintf(
			"goods %s are blocked under Section %s with no exception", lossPhrase(r.Reason), rule.Section))
	}

	// General and unknown requests fall outside the blocked table.
	return CategoryDecision{}
}

func findRule(source RuleSource, cat ExpenseCategory) (Rule, bool) {
	for _, r := range source.Rules() {
		if r.Category == cat && r.Active {
			return r, true
		}
	}
	return Rule{}, false
}

func blocked(rule Rule, reason string) CategoryDecision {
	return CategoryDecision{Blocked: true, Section: rule.Section, Reason: reason}
}

func lossPhrase(reason GoodsLossReason) string {
	switch reason {
	case LossWrittenOff:
		return "written off"
	case LossStolen:
		return "stolen"
	case LossDestroyed:
		return "destroyed"
	default:
		return "lost"
	}
}

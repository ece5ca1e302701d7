// Package itc decides whether tax paid under reverse charge is
// creditable, partially creditable, or lost: Section 17(5) blocked
// categories, Rule 42/43 proportionate credit, the November-30
// claim deadline, and the 180-day payment reversal rule.
package itc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"lekha/internal/domain"
)

// Payment to the supplier outstanding beyond this many days from the
// invoice date forces a reversal of the credit (second proviso to
// Section 16(2)).
const reversalAfterDays = 180

// ReclaimPolicy controls whether reclaiming a reversed credit after
// late payment re-checks the original November-30 deadline. The
// permissive default mirrors long-standing practice; strict mode
// expires reclaims whose original window has closed.
type ReclaimPolicy struct {
	IgnoreDeadline bool
}

// EligibilityRequest describes one RCM transaction to evaluate.
type EligibilityRequest struct {
	SourceRef       string
	Category        domain.ITCCategory
	TaxAmount       decimal.Decimal
	SelfInvoiceDate time.Time

	// RCM gating.
	PaymentCompleted        bool
	PaymentOutstandingDays  int
	SupplierRegCancelled    bool
	GTAWithoutITCScheme     bool

	// Proportionate inputs. Turnovers drive Rule 42/43 when supplied;
	// the flat business-use percentage only applies to simple
	// mixed-use goods without the taxable/exempt split.
	TaxableTurnover decimal.Decimal
	ExemptTurnover  decimal.Decimal
}

// EligibilityResult is the full outcome of an eligibility call.
type EligibilityResult struct {
	SourceRef              string                   `json:"source_transaction_ref,omitempty"`
	IsEligible             bool                     `json:"is_eligible"`
	Status                 domain.EligibilityStatus `json:"status"`
	EligibleAmount         decimal.Decimal          `json:"eligible_amount"`
	BlockedCategories      []string                 `json:"blocked_categories,omitempty"`
	IneligibleReason       string                   `json:"ineligible_reason,omitempty"`
	ReversalRequired       bool                     `json:"reversal_required"`
	ComplianceRequirements []string                 `json:"compliance_requirements,omitempty"`
	GSTR3BTable            domain.GSTR3BTable       `json:"gstr3b_table,omitempty"`
	Deadline               time.Time                `json:"deadline"`
	DaysRemaining          int                      `json:"days_remaining"`
	Urgency                domain.ClaimUrgency      `json:"urgency"`
	AppliedRule            string                   `json:"applied_rule,omitempty"` // "Rule 42" / "Rule 43" when proportionate
}

// Engine evaluates ITC eligibility against an injected rule source.
// The clock is injectable so deadline tests are deterministic.
type Engine struct {
	rules  RuleSource
	now    func() time.Time
	policy ReclaimPolicy
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's notion of "now".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithReclaimPolicy overrides the reclaim-after-reversal policy.
func WithReclaimPolicy(p ReclaimPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// NewEngine creates an eligibility engine over the given rule source.
func NewEngine(rules RuleSource, opts ...Option) *Engine {
	e := &Engine{
		rules:  rules,
		now:    time.Now,
		policy: ReclaimPolicy{IgnoreDeadline: true},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the full eligibility decision for one RCM transaction:
// category blocking, time limit, payment gating, proportionate credit,
// and reversal triggers.
func (e *Engine) Evaluate(req EligibilityRequest, catReq CategoryRequest) EligibilityResult {
	now := e.now()
	deadline := CalculateDeadline(req.SelfInvoiceDate)
	res := EligibilityResult{
		SourceRef:      req.SourceRef,
		EligibleAmount: decimal.Zero,
		Deadline:       deadline,
		DaysRemaining:  DaysRemaining(deadline, now),
	}
	res.Urgency = UrgencyFor(res.DaysRemaining)

	if catReq == nil {
		catReq = GeneralRequest{}
	}
	decision := EvaluateCategory(catReq, e.rules)

	if decision.Blocked {
		res.Status = domain.EligibilityBlocked
		res.BlockedCategories = append(res.BlockedCategories,
			fmt.Sprintf("%s [Section %s]", catReq.Category(), decision.Section))
		res.IneligibleReason = decision.Reason
		return res
	}

	if Expired(deadline, now) {
		res.Status = domain.EligibilityExpired
		res.Urgency = domain.UrgencyCritical
		res.IneligibleReason = fmt.Sprintf(
			"claim deadline %s has passed; credit for the self-invoice dated %s is forfeit",
			deadline.Format("2006-01-02"), req.SelfInvoiceDate.Format("2006-01-02"))
		return res
	}

	if req.GTAWithoutITCScheme {
		res.Status = domain.EligibilityBlocked
		res.IneligibleReason = "transporter opted for the 5% GST without ITC scheme; credit is not available on this GTA supply"
		return res
	}

	if !req.PaymentCompleted {
		res.Status = domain.EligibilityPaymentPending
		res.ComplianceRequirements = append(res.ComplianceRequirements,
			"complete payment to the supplier before claiming the credit")
		if req.PaymentOutstandingDays > reversalAfterDays {
			res.ReversalRequired = true
			res.ComplianceRequirements = append(res.ComplianceRequirements, fmt.Sprintf(
				"payment outstanding %d days exceeds the %d-day limit; reverse the credit with interest and reclaim on payment",
				req.PaymentOutstandingDays, reversalAfterDays))
		}
		return res
	}

	if req.SupplierRegCancelled {
		res.Status = domain.EligibilityEligible
		res.ReversalRequired = true
		res.ComplianceRequirements = append(res.ComplianceRequirements,
			"supplier's registration was cancelled; reverse the credit for supplies after the cancellation date")
	} else {
		res.Status = domain.EligibilityEligible
	}

	res.IsEligible = true
	res.GSTR3BTable = domain.GSTR3BTable4A3

	if decision.Proportionate || e.hasTurnoverSplit(req) {
		amount, rule := ProportionateCredit(req, catReq)
		res.EligibleAmount = amount
		res.AppliedRule = rule
		reversed := req.TaxAmount.Sub(amount)
		if reversed.IsPositive() {
			res.ComplianceRequirements = append(res.ComplianceRequirements, fmt.Sprintf(
				"reverse %s of the credit attributable to exempt or non-business use under %s",
				reversed.RoundBank(2), rule))
		}
		return res
	}

	res.EligibleAmount = req.TaxAmount
	return res
}

func (e *Engine) hasTurnoverSplit(req EligibilityRequest) bool {
	return req.TaxableTurnover.Add(req.ExemptTurnover).IsPositive() && req.ExemptTurnover.IsPositive()
}

// ProportionateCredit apportions the tax by the taxable share of total
// supplies: Rule 42 for inputs and input services, Rule 43 for capital
// goods (the same ratio, tracked over the asset's useful life by the
// caller). Without a turnover split, the flat business-use percentage
// of a mixed-use request is applied instead.
func ProportionateCredit(req EligibilityRequest, catReq CategoryRequest) (decimal.Decimal, string) {
	rule := "Rule 42"
	if req.Category == domain.ITCCategoryCapitalGoods {
		rule = "Rule 43"
	}

	total := req.TaxableTurnover.Add(req.ExemptTurnover)
	if total.IsPositive() && req.ExemptTurnover.IsPositive() {
		ratio := req.TaxableTurnover.Div(total)
		return req.TaxAmount.Mul(ratio).RoundBank(2), rule
	}
	if total.IsPositive() {
		// Entire turnover taxable: nothing to apportion away.
		return req.TaxAmount.RoundBank(2), rule
	}

	if pc, ok := catReq.(PersonalConsumptionRequest); ok {
		pct := decimal.NewFromFloat(pc.BusinessUsePercentage).Div(decimal.NewFromInt(100))
		return req.TaxAmount.Mul(pct).RoundBank(2), "business-use percentage"
	}
	return req.TaxAmount.RoundBank(2), rule
}

// Reverse marks an eligible or reclaimed claim as reversed (payment
// outstanding past 180 days, or supplier registration cancelled). The
// reason is recorded on the claim for the GSTR-3B working papers.
func (e *Engine) Reverse(claim domain.ITCClaim, reason string) (domain.ITCClaim, error) {
	switch claim.Status {
	case domain.EligibilityEligible, domain.EligibilityReclaimed, domain.EligibilityPaymentPending:
	default:
		return claim, fmt.Errorf("reverse claim %s from %s: %w", claim.ID, claim.Status, domain.ErrInvalidStatusChange)
	}
	claim.Status = domain.EligibilityReversed
	claim.StatusReason = reason
	return claim, nil
}

// Reclaim restores a reversed credit in the month the supplier is
// finally paid. Under the default policy the original amount is
// restored without re-checking the deadline; strict mode expires the
// claim when the original November-30 window has already closed.
func (e *Engine) Reclaim(claim domain.ITCClaim, paymentDate time.Time) (domain.ITCClaim, error) {
	if claim.Status != domain.EligibilityReversed {
		return claim, fmt.Errorf("reclaim claim %s from %s: %w", claim.ID, claim.Status, domain.ErrInvalidStatusChange)
	}
	if !e.policy.IgnoreDeadline && Expired(claim.Deadline, paymentDate) {
		claim.Status = domain.EligibilityExpired
		claim.StatusReason = fmt.Sprintf("reclaim window closed; deadline %s had passed when payment was made on %s",
			claim.Deadline.Format("2006-01-02"), paymentDate.Format("2006-01-02"))
		return claim, nil
	}
	claim.Status = domain.EligibilityReclaimed
	claim.StatusReason = fmt.Sprintf("reclaimed on payment dated %s", paymentDate.Format("2006-01-02"))
	claim.Urgency = UrgencyFor(DaysRemaining(claim.Deadline, paymentDate))
	return claim, nil
}

// Utilize draws down part of a claim against output tax liability.
// Only eligible or reclaimed credit can be utilized, and the running
// total can never exceed the claim's credit.
func (e *Engine) Utilize(claim domain.ITCClaim, amount decimal.Decimal) (domain.ITCClaim, error) {
	if !amount.IsPositive() {
		return claim, fmt.Errorf("utilize claim %s: %w", claim.ID, domain.ErrInvalidAmount)
	}
	switch claim.Status {
	case domain.EligibilityEligible, domain.EligibilityReclaimed:
	default:
		return claim, fmt.Errorf("utilize claim %s from %s: %w", claim.ID, claim.Status, domain.ErrInvalidStatusChange)
	}
	utilized := claim.UtilizedAmount.Add(amount)
	if utilized.GreaterThan(claim.TotalITCAmount) {
		remaining := claim.TotalITCAmount.Sub(claim.UtilizedAmount)
		return claim, fmt.Errorf("utilize claim %s: %s requested, %s remaining: %w",
			claim.ID, amount, remaining, domain.ErrUtilizationExceeded)
	}
	claim.UtilizedAmount = utilized
	return claim, nil
}

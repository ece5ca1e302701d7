package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lekha/internal/domain"
	"lekha/internal/gst/itc"
	"lekha/internal/gst/rcm"
	"lekha/internal/port"
)

// ITCInputs carries the eligibility context for an RCM transaction:
// the expense category and its statutory exception details, payment
// state, and the turnover split driving proportionate credit.
type ITCInputs struct {
	Category       domain.ITCCategory
	CategoryDetail itc.CategoryRequest

	PaymentCompleted       bool
	PaymentOutstandingDays int
	SupplierRegCancelled   bool
	GTAWithoutITCScheme    bool

	TaxableTurnover decimal.Decimal
	ExemptTurnover  decimal.Decimal
}

// RCMOutcome is the combined result of processing one RCM event:
// the self-invoice, its Rule 47A date check, the eligibility decision,
// and a tracked claim when any credit survives.
type RCMOutcome struct {
	SelfInvoice *domain.SelfInvoice   `json:"self_invoice"`
	Validation  rcm.DateValidation    `json:"validation"`
	Eligibility itc.EligibilityResult `json:"eligibility"`
	Claim       *domain.ITCClaim      `json:"claim,omitempty"`
}

// ComplianceService runs the full RCM pipeline: self-invoice
// computation followed by ITC eligibility.
type ComplianceService interface {
	ProcessIndianUnregistered(ctx context.Context, req rcm.IndianUnregisteredRequest, inputs ITCInputs) (*RCMOutcome, error)
	ProcessImportOfServices(ctx context.Context, req rcm.ImportOfServicesRequest, inputs ITCInputs) (*RCMOutcome, error)
}

type complianceService struct {
	ruleRepo port.ITCRuleRepository
	opts     []itc.Option
}

// NewComplianceService creates a ComplianceService. A nil rule
// repository falls back to the statutory Section 17(5) table; engine
// options (clock, reclaim policy) pass through to each evaluation.
func NewComplianceService(ruleRepo port.ITCRuleRepository, opts ...itc.Option) ComplianceService {
	return &complianceService{ruleRepo: ruleRepo, opts: opts}
}

func (s *complianceService) ProcessIndianUnregistered(ctx context.Context, req rcm.IndianUnregisteredRequest, inputs ITCInputs) (*RCMOutcome, error) {
	result, err := rcm.CalculateIndianUnregistered(req)
	if err != nil {
		return nil, fmt.Errorf("compliance: indian unregistered self-invoice: %w", err)
	}
	return s.finish(ctx, result, inputs)
}

func (s *complianceService) ProcessImportOfServices(ctx context.Context, req rcm.ImportOfServicesRequest, inputs ITCInputs) (*RCMOutcome, error) {
	result, err := rcm.CalculateImportOfServices(req)
	if err != nil {
		return nil, fmt.Errorf("compliance: import of services self-invoice: %w", err)
	}
	return s.finish(ctx, result, inputs)
}

func (s *complianceService) finish(ctx context.Context, result *rcm.Result, inputs ITCInputs) (*RCMOutcome, error) {
	engine, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}

	inv := result.SelfInvoice
	sourceRef := fmt.Sprintf("%s/%s", inv.SupplierName, inv.InvoiceDate.Format("2006-01-02"))
	eligibility := engine.Evaluate(itc.EligibilityRequest{
		SourceRef:              sourceRef,
		Category:               inputs.Category,
		TaxAmount:              inv.ITCClaimable,
		SelfInvoiceDate:        inv.InvoiceDate,
		PaymentCompleted:       inputs.PaymentCompleted,
		PaymentOutstandingDays: inputs.PaymentOutstandingDays,
		SupplierRegCancelled:   inputs.SupplierRegCancelled,
		GTAWithoutITCScheme:    inputs.GTAWithoutITCScheme,
		TaxableTurnover:        inputs.TaxableTurnover,
		ExemptTurnover:         inputs.ExemptTurnover,
	}, inputs.CategoryDetail)

	outcome := &RCMOutcome{
		SelfInvoice: inv,
		Validation:  result.Validation,
		Eligibility: eligibility,
	}

	if eligibility.Status == domain.EligibilityEligible || eligibility.Status == domain.EligibilityPaymentPending {
		amount := eligibility.EligibleAmount
		if eligibility.Status == domain.EligibilityPaymentPending {
			// Credit not yet claimable; track the full amount at stake.
			amount = inv.ITCClaimable
		}
		outcome.Claim = &domain.ITCClaim{
			ID:             uuid.New(),
			SourceRef:      eligibility.SourceRef,
			Category:       inputs.Category,
			TotalITCAmount: amount,
			Status:         eligibility.Status,
			Deadline:       eligibility.Deadline,
			Urgency:        eligibility.Urgency,
		}
	}

	log.Printf("compliance: %s self-invoice for %s: liability %s, status %s",
		inv.RCMType, inv.SupplierName, inv.RCMLiability, eligibility.Status)
	return outcome, nil
}

// engine builds an eligibility engine over the active rule rows,
// falling back to the statutory defaults when no repository is wired.
func (s *complianceService) engine(ctx context.Context) (*itc.Engine, error) {
	if s.ruleRepo == nil {
		return itc.NewEngine(itc.NewStaticRuleSource(itc.DefaultRules()), s.opts...), nil
	}
	rules, err := s.ruleRepo.LoadActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("compliance: load blocked-credit rules: %w", err)
	}
	return itc.NewEngine(itc.NewStaticRuleSource(rules), s.opts...), nil
}

package itc_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/gst/itc"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newEngine(now time.Time, opts ...itc.Option) *itc.Engine {
	opts = append([]itc.Option{itc.WithClock(fixedClock(now))}, opts...)
	return itc.NewEngine(itc.NewStaticRuleSource(itc.DefaultRules()), opts...)
}

func baseRequest() itc.EligibilityRequest {
	return itc.EligibilityRequest{
		SourceRef:        "SI-2024-001",
		Category:         domain.ITCCategoryInputServices,
		TaxAmount:        d("1800"),
		SelfInvoiceDate:  date(2024, time.October, 15),
		PaymentCompleted: true,
	}
}

func TestCalculateDeadline(t *testing.T) {
	t.Run("fy_2024_25", func(t *testing.T) {
		// Any date Apr 2024 – Mar 2025 → 30 Nov 2025.
		assert.Equal(t, date(2025, time.November, 30), itc.CalculateDeadline(date(2024, time.October, 12)))
		assert.Equal(t, date(2025, time.November, 30), itc.CalculateDeadline(date(2024, time.April, 1)))
		assert.Equal(t, date(2025, time.November, 30), itc.CalculateDeadline(date(2025, time.March, 31)))
	})

	t.Run("fy_boundary", func(t *testing.T) {
		assert.Equal(t, date(2026, time.November, 30), itc.CalculateDeadline(date(2025, time.April, 1)))
	})
}

func TestDaysRemaining(t *testing.T) {
	deadline := date(2025, time.November, 30)

	t.Run("strictly_decreases", func(t *testing.T) {
		prev := itc.DaysRemaining(deadline, date(2025, time.January, 1))
		for _, asOf := range []time.Time{
			date(2025, time.June, 1),
			date(2025, time.November, 1),
			date(2025, time.November, 29),
		} {
			cur := itc.DaysRemaining(deadline, asOf)
			assert.Less(t, cur, prev)
			prev = cur
		}
	})

	t.Run("floors_at_zero", func(t *testing.T) {
		assert.Equal(t, 0, itc.DaysRemaining(deadline, date(2025, time.December, 25)))
	})
}

func TestUrgencyFor(t *testing.T) {
	assert.Equal(t, domain.UrgencyCritical, itc.UrgencyFor(30))
	assert.Equal(t, domain.UrgencyHigh, itc.UrgencyFor(31))
	assert.Equal(t, domain.UrgencyHigh, itc.UrgencyFor(60))
	assert.Equal(t, domain.UrgencyMedium, itc.UrgencyFor(90))
	assert.Equal(t, domain.UrgencyNormal, itc.UrgencyFor(91))
}

func TestEvaluateCategory(t *testing.T) {
	rules := itc.NewStaticRuleSource(itc.DefaultRules())

	t.Run("motor_vehicle_employee_transport_blocked", func(t *testing.T) {
		dec := itc.EvaluateCategory(itc.MotorVehicleRequest{SeatingCapacity: 5, Usage: itc.UsageEmployeeTransport}, rules)
		assert.True(t, dec.Blocked)
		assert.Equal(t, "17(5)(a)", dec.Section)
	})

	t.Run("motor_vehicle_taxi_eligible", func(t *testing.T) {
		dec := itc.EvaluateCategory(itc.MotorVehicleRequest{SeatingCapacity: 5, Usage: itc.UsageTaxiService}, rules)
		assert.False(t, dec.Blocked)
	})

	t.Run("bus_over_13_seats_eligible", func(t *testing.T) {
		dec := itc.EvaluateCategory(itc.MotorVehicleRequest{SeatingCapacity: 40, Usage: itc.UsageEmployeeTransport}, rules)
		assert.False(t, dec.Blocked)
	})

	t.Run("food_blocked_unless_mandated", func(t *testing.T) {
		dec := itc.EvaluateCategory(itc.FoodBeverageRequest{}, rules)
		assert.True(t, dec.Blocked)
		assert.Equal(t, "17(5)(b)(i)", dec.Section)

		dec = itc.EvaluateCategory(itc.FoodBeverageRequest{LegallyMandated: true, MandateNote: "Factories Act canteen"}, rules)
		assert.False(t, dec.Blocked)
	})

	t.Run("club_and_insurance_always_blocked", func(t *testing.T) {
		dec := itc.EvaluateCategory(itc.ClubMembershipRequest{MembershipKind: "gym"}, rules)
		assert.True(t, dec.Blocked)

		dec = itc.EvaluateCategory(itc.InsuranceRequest{PolicyKind: "health"}, rules)
		assert.True(t, dec.Blocked)
	})

	t.Run("works_contract_plant_machinery_exception", func(t *testing.T) {
		dec := itc.EvaluateCategory(itc.WorksContractRequest{}, rules)
		assert.True(t, dec.Blocked)

		dec = itc.EvaluateCategory(itc.WorksContractRequest{ResultIsPlantMachinery: true, UsedInTaxableSupply: true}, rules)
		assert.False(t, dec.Blocked)

		// Plant & machinery not put to taxable use stays blocked.
		dec = itc.EvaluateCategory(itc.WorksContractRequest{ResultIsPlantMachinery: true}, rules)
		assert.True(t, dec.Blocked)
	})

	t.Run("personal_consumption", func(t *testing.T) {
		dec := itc.EvaluateCategory(itc.PersonalConsumptionRequest{}, rules)
		assert.True(t, dec.Blocked)
		assert.Equal(t, "17(5)(e)", dec.Section)

		dec = itc.EvaluateCategory(itc.PersonalConsumptionRequest{BusinessUsePercentage: 60}, rules)
		assert.False(t, dec.Blocked)
		assert.True(t, dec.Proportionate)
	})

	t.Run("csr_and_lost_goods_never_eligible", func(t *testing.T) {
		assert.True(t, itc.EvaluateCategory(itc.CSRRequest{}, rules).Blocked)

		dec := itc.EvaluateCategory(itc.LostGoodsRequest{Reason: itc.LossWrittenOff}, rules)
		assert.True(t, dec.Blocked)
		assert.Equal(t, "17(5)(f)", dec.Section)
	})

	t.Run("general_eligible_by_default", func(t *testing.T) {
		dec := itc.EvaluateCategory(itc.GeneralRequest{Description: "audit fees"}, rules)
		assert.False(t, dec.Blocked)
	})

	t.Run("inactive_rule_row_disables_block", func(t *testing.T) {
		rows := itc.DefaultRules()
		for i := range rows {
			if rows[i].Category == itc.CategoryCSR {
				rows[i].Active = false
			}
		}
		src := itc.NewStaticRuleSource(rows)
		assert.False(t, itc.EvaluateCategory(itc.CSRRequest{}, src).Blocked)
	})
}

func TestEngineEvaluate(t *testing.T) {
	now := date(2025, time.January, 10)

	t.Run("fully_eligible", func(t *testing.T) {
		e := newEngine(now)
		res := e.Evaluate(baseRequest(), itc.GeneralRequest{})
		assert.True(t, res.IsEligible)
		assert.Equal(t, domain.EligibilityEligible, res.Status)
		assert.Equal(t, "SI-2024-001", res.SourceRef)
		assert.True(t, res.EligibleAmount.Equal(d("1800")))
		assert.Equal(t, domain.GSTR3BTable4A3, res.GSTR3BTable)
		assert.Equal(t, date(2025, time.November, 30), res.Deadline)
		assert.False(t, res.ReversalRequired)
	})

	t.Run("blocked_category", func(t *testing.T) {
		e := newEngine(now)
		res := e.Evaluate(baseRequest(), itc.InsuranceRequest{PolicyKind: "life"})
		assert.False(t, res.IsEligible)
		assert.Equal(t, domain.EligibilityBlocked, res.Status)
		assert.True(t, res.EligibleAmount.IsZero())
		require.Len(t, res.BlockedCategories, 1)
		assert.Contains(t, res.BlockedCategories[0], "17(5)")
		assert.Contains(t, res.IneligibleReason, "Section")
	})

	t.Run("expired_past_deadline", func(t *testing.T) {
		e := newEngine(date(2025, time.December, 1))
		res := e.Evaluate(baseRequest(), itc.GeneralRequest{})
		assert.False(t, res.IsEligible)
		assert.Equal(t, domain.EligibilityExpired, res.Status)
		assert.Equal(t, 0, res.DaysRemaining)
		assert.Contains(t, res.IneligibleReason, "2025-11-30")
	})

	t.Run("payment_pending_not_blocked", func(t *testing.T) {
		e := newEngine(now)
		req := baseRequest()
		req.PaymentCompleted = false
		res := e.Evaluate(req, itc.GeneralRequest{})
		assert.False(t, res.IsEligible)
		assert.Equal(t, domain.EligibilityPaymentPending, res.Status)
		assert.NotEmpty(t, res.ComplianceRequirements)
		assert.False(t, res.ReversalRequired)
	})

	t.Run("payment_outstanding_past_180_days_requires_reversal", func(t *testing.T) {
		e := newEngine(now)
		req := baseRequest()
		req.PaymentCompleted = false
		req.PaymentOutstandingDays = 200
		res := e.Evaluate(req, itc.GeneralRequest{})
		assert.True(t, res.ReversalRequired)
	})

	t.Run("gta_without_itc_scheme", func(t *testing.T) {
		e := newEngine(now)
		req := baseRequest()
		req.GTAWithoutITCScheme = true
		res := e.Evaluate(req, itc.GeneralRequest{})
		assert.False(t, res.IsEligible)
		assert.Contains(t, res.IneligibleReason, "5%")
	})

	t.Run("supplier_registration_cancelled", func(t *testing.T) {
		e := newEngine(now)
		req := baseRequest()
		req.SupplierRegCancelled = true
		res := e.Evaluate(req, itc.GeneralRequest{})
		assert.True(t, res.IsEligible)
		assert.True(t, res.ReversalRequired)
	})

	t.Run("rule_42_turnover_split", func(t *testing.T) {
		e := newEngine(now)
		req := baseRequest()
		req.TaxAmount = d("1000")
		req.TaxableTurnover = d("80000")
		req.ExemptTurnover = d("20000")
		res := e.Evaluate(req, itc.GeneralRequest{})
		assert.True(t, res.IsEligible)
		assert.True(t, res.EligibleAmount.Equal(d("800")), "eligible = %s", res.EligibleAmount)
		assert.Equal(t, "Rule 42", res.AppliedRule)
		assert.NotEmpty(t, res.ComplianceRequirements)
	})

	t.Run("rule_43_for_capital_goods", func(t *testing.T) {
		e := newEngine(now)
		req := baseRequest()
		req.Category = domain.ITCCategoryCapitalGoods
		req.TaxAmount = d("50000")
		req.TaxableTurnover = d("60000")
		req.ExemptTurnover = d("40000")
		res := e.Evaluate(req, itc.GeneralRequest{})
		assert.True(t, res.EligibleAmount.Equal(d("30000")))
		assert.Equal(t, "Rule 43", res.AppliedRule)
	})

	t.Run("flat_business_use_without_turnover_split", func(t *testing.T) {
		e := newEngine(now)
		req := baseRequest()
		req.TaxAmount = d("1000")
		res := e.Evaluate(req, itc.PersonalConsumptionRequest{BusinessUsePercentage: 60})
		assert.True(t, res.IsEligible)
		assert.True(t, res.EligibleAmount.Equal(d("600")), "eligible = %s", res.EligibleAmount)
		assert.Equal(t, "business-use percentage", res.AppliedRule)
	})

	t.Run("urgency_escalates_near_deadline", func(t *testing.T) {
		res := newEngine(date(2025, time.November, 15)).Evaluate(baseRequest(), itc.GeneralRequest{})
		assert.Equal(t, domain.UrgencyCritical, res.Urgency)

		res = newEngine(date(2025, time.October, 15)).Evaluate(baseRequest(), itc.GeneralRequest{})
		assert.Equal(t, domain.UrgencyHigh, res.Urgency)

		res = newEngine(date(2025, time.September, 15)).Evaluate(baseRequest(), itc.GeneralRequest{})
		assert.Equal(t, domain.UrgencyMedium, res.Urgency)

		res = newEngine(date(2025, time.January, 15)).Evaluate(baseRequest(), itc.GeneralRequest{})
		assert.Equal(t, domain.UrgencyNormal, res.Urgency)
	})
}

func TestReverseAndReclaim(t *testing.T) {
	now := date(2025, time.June, 1)

	claim := domain.ITCClaim{
		ID:             uuid.New(),
		SourceRef:      "SI-2024-001",
		Category:       domain.ITCCategoryInputServices,
		TotalITCAmount: d("1800"),
		Status:         domain.EligibilityEligible,
		Deadline:       date(2025, time.November, 30),
	}

	t.Run("reverse_then_reclaim", func(t *testing.T) {
		e := newEngine(now)
		reversed, err := e.Reverse(claim, "payment outstanding 185 days")
		require.NoError(t, err)
		assert.Equal(t, domain.EligibilityReversed, reversed.Status)
		assert.Equal(t, "payment outstanding 185 days", reversed.StatusReason)

		reclaimed, err := e.Reclaim(reversed, date(2025, time.July, 1))
		require.NoError(t, err)
		assert.Equal(t, domain.EligibilityReclaimed, reclaimed.Status)
		assert.Contains(t, reclaimed.StatusReason, "2025-07-01")
		assert.True(t, reclaimed.TotalITCAmount.Equal(d("1800")))
	})

	t.Run("default_policy_reclaims_past_deadline", func(t *testing.T) {
		e := newEngine(now)
		reversed, err := e.Reverse(claim, "late payment")
		require.NoError(t, err)

		reclaimed, err := e.Reclaim(reversed, date(2026, time.February, 1))
		require.NoError(t, err)
		assert.Equal(t, domain.EligibilityReclaimed, reclaimed.Status)
	})

	t.Run("strict_policy_expires_past_deadline", func(t *testing.T) {
		e := newEngine(now, itc.WithReclaimPolicy(itc.ReclaimPolicy{IgnoreDeadline: false}))
		reversed, err := e.Reverse(claim, "late payment")
		require.NoError(t, err)

		reclaimed, err := e.Reclaim(reversed, date(2026, time.February, 1))
		require.NoError(t, err)
		assert.Equal(t, domain.EligibilityExpired, reclaimed.Status)
	})

	t.Run("invalid_transitions_rejected", func(t *testing.T) {
		e := newEngine(now)
		_, err := e.Reclaim(claim, now) // still eligible, never reversed
		assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)

		blockedClaim := claim
		blockedClaim.Status = domain.EligibilityBlocked
		_, err = e.Reverse(blockedClaim, "n/a")
		assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
	})
}

func TestUtilize(t *testing.T) {
	e := newEngine(date(2025, time.June, 1))

	claim := domain.ITCClaim{
		ID:             uuid.New(),
		SourceRef:      "SI-2024-001",
		Category:       domain.ITCCategoryInputServices,
		TotalITCAmount: d("1800"),
		Status:         domain.EligibilityEligible,
		Deadline:       date(2025, time.November, 30),
	}

	t.Run("draws_down_running_total", func(t *testing.T) {
		first, err := e.Utilize(claim, d("1000"))
		require.NoError(t, err)
		assert.True(t, first.UtilizedAmount.Equal(d("1000")))

		second, err := e.Utilize(first, d("800"))
		require.NoError(t, err)
		assert.True(t, second.UtilizedAmount.Equal(d("1800")))
	})

	t.Run("cannot_exceed_total_credit", func(t *testing.T) {
		partial, err := e.Utilize(claim, d("1500"))
		require.NoError(t, err)

		_, err = e.Utilize(partial, d("301"))
		assert.ErrorIs(t, err, domain.ErrUtilizationExceeded)
	})

	t.Run("only_eligible_or_reclaimed_credit", func(t *testing.T) {
		reversed := claim
		reversed.Status = domain.EligibilityReversed
		_, err := e.Utilize(reversed, d("100"))
		assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)

		reclaimed := claim
		reclaimed.Status = domain.EligibilityReclaimed
		_, err = e.Utilize(reclaimed, d("100"))
		assert.NoError(t, err)
	})

	t.Run("rejects_non_positive_amounts", func(t *testing.T) {
		_, err := e.Utilize(claim, decimal.Zero)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)

		_, err = e.Utilize(claim, d("-50"))
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

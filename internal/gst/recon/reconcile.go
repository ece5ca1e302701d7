package recon

import (
	"github.com/shopspring/decimal"

	"lekha/internal/domain"
)

// Pair is an invoice with the GSTR-2B entry it was evaluated against.
type Pair struct {
	Invoice domain.PurchaseInvoice `json:"invoice"`
	Entry   domain.GSTR2BEntry     `json:"entry"`
	Result  PairResult             `json:"result"`
}

// Summary aggregates a reconciliation run.
type Summary struct {
	TotalInvoices       int             `json:"total_invoices"`
	TotalEntries        int             `json:"total_entries"`
	MatchedCount        int             `json:"matched_count"`
	AmountMismatchCount int             `json:"amount_mismatch_count"`
	NotIn2BCount        int             `json:"not_in_2b_count"`
	In2BOnlyCount       int             `json:"in_2b_only_count"`
	TotalMatchedITC     decimal.Decimal `json:"total_matched_itc"`
}

// Result partitions a full reconciliation run. It is derived data,
// recomputed from scratch on every run, never patched incrementally.
type Result struct {
	Matched          []Pair                   `json:"matched"`
	AmountMismatches []Pair                   `json:"amount_mismatches"`
	NotIn2B          []domain.PurchaseInvoice `json:"not_in_2b"`
	In2BOnly         []domain.GSTR2BEntry     `json:"in_2b_only"`
	Summary          Summary                  `json:"summary"`
}

// Run reconciles the full invoice list against the full GSTR-2B entry
// list. Candidates are bucketed by normalized GSTIN + invoice number,
// so several invoices from the same vendor match independently and
// never cross-match to the wrong invoice number. Each entry is
// consumed by at most one invoice; leftovers land in In2BOnly. The run
// is deterministic and idempotent over unchanged inputs.
func (m *Matcher) Run(invoices []domain.PurchaseInvoice, entries []domain.GSTR2BEntry) *Result {
	res := &Result{
		Matched:          []Pair{},
		AmountMismatches: []Pair{},
		NotIn2B:          []domain.PurchaseInvoice{},
		In2BOnly:         []domain.GSTR2BEntry{},
	}

	type bucketKey struct{ gstin, invoiceNo string }
	buckets := make(map[bucketKey][]int, len(entries))
	consumed := make([]bool, len(entries))
	for i := range entries {
		key := bucketKey{
			gstin:     normalizeGSTIN(entries[i].VendorGSTIN),
			invoiceNo: NormalizeInvoiceNumber(entries[i].InvoiceNumber),
		}
		buckets[key] = append(buckets[key], i)
	}

	for _, inv := range invoices {
		key := bucketKey{
			gstin:     normalizeGSTIN(inv.VendorGSTIN),
			invoiceNo: NormalizeInvoiceNumber(inv.InvoiceNumber),
		}

		bestIdx := -1
		var best PairResult
		for _, idx := range buckets[key] {
			if consumed[idx] {
				continue
			}
			pr := m.MatchPair(&inv, &entries[idx])
			if pr.Status == domain.MatchStatusNoMatch {
				continue
			}
			if bestIdx == -1 || pr.Confidence > best.Confidence {
				bestIdx, best = idx, pr
			}
		}

		if bestIdx == -1 {
			// ITC at risk: the government has no record of this purchase.
			res.NotIn2B = append(res.NotIn2B, inv)
			continue
		}

		consumed[bestIdx] = true
		entry := entries[bestIdx]
		entry.MatchStatus = best.Status
		pair := Pair{Invoice: inv, Entry: entry, Result: best}
		if best.Status == domain.MatchStatusMatched {
			res.Matched = append(res.Matched, pair)
			res.Summary.TotalMatchedITC = res.Summary.TotalMatchedITC.Add(inv.TotalTax())
		} else {
			res.AmountMismatches = append(res.AmountMismatches, pair)
		}
	}

	for i := range entries {
		if !consumed[i] {
			// Possible unrecorded liability: reported inward supply with
			// no recorded purchase.
			entry := entries[i]
			entry.MatchStatus = domain.MatchStatusUnmatched
			res.In2BOnly = append(res.In2BOnly, entry)
		}
	}

	res.Summary.TotalInvoices = len(invoices)
	res.Summary.TotalEntries = len(entries)
	res.Summary.MatchedCount = len(res.Matched)
	res.Summary.AmountMismatchCount = len(res.AmountMismatches)
	res.Summary.NotIn2BCount = len(res.NotIn2B)
	res.Summary.In2BOnlyCount = len(res.In2BOnly)
	if res.Summary.TotalMatchedITC.IsZero() {
		res.Summary.TotalMatchedITC = decimal.Zero.Round(2)
	}
	return res
}

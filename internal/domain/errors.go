package domain

import "errors"

var (
	ErrInvalidAmount        = errors.New("taxable amount must be positive")
	ErrInvalidRate          = errors.New("rate is not a recognized GST slab")
	ErrInvalidStateCode     = errors.New("invalid state code")
	ErrForeignRecipient     = errors.New("recipient jurisdiction cannot be outside India")
	ErrMissingSupplierName  = errors.New("supplier name is required")
	ErrMissingGSTIN         = errors.New("supplier GSTIN is required")
	ErrInvalidGSTIN         = errors.New("malformed GSTIN")
	ErrNoLineItems          = errors.New("self-invoice requires at least one line item")
	ErrIncompleteFXDetails  = errors.New("foreign currency, amount and exchange rate must be provided together")
	ErrInvalidCountryCode   = errors.New("invalid country code")
	ErrUtilizationExceeded  = errors.New("utilized amount exceeds total ITC amount")
	ErrInvalidStatusChange  = errors.New("eligibility status transition not allowed")
)

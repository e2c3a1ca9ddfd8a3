package domain

import "errors"

// Domain errors
var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrEntryNotFound         = errors.New("entry not found")
	ErrBudgetNotFound        = errors.New("budget not found")
	ErrBudgetAlreadyExists   = errors.New("budget already exists for this category and period")
	ErrNameRequired          = errors.New("name is required")
	ErrDescriptionRequired   = errors.New("description is required")
	ErrAmountRequired        = errors.New("amount is required")
	ErrInvalidEntryType      = errors.New("invalid entry type")
	ErrInvalidPeriod         = errors.New("invalid month/year period")
	ErrInvalidMonthCount     = errors.New("month count must be at least 1")
	ErrInvalidLimit          = errors.New("limit must be at least 1")
	ErrBudgetLimitRequired   = errors.New("budget limit is required")
)

// Validation constants
const (
	MaxCategoryNameLength = 100
	MaxDescriptionLength  = 255
)

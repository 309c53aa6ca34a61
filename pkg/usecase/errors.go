package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrActionNotFound = errors.New("action not found")
)

// Context keys for error values
const (
	ActionIDKey  = "action_id"
	CompanyIDKey = "company_id"
	ColumnKey    = "column"
)

package model

import "github.com/m-mizutani/goerr/v2"

// Domain validation errors
var (
	ErrTitleRequired         = goerr.New("action title is required")
	ErrInvalidDateRange      = goerr.New("estimated end date must not be before estimated start date")
	ErrBlockedReasonRequired = goerr.New("blocked reason is required")
	ErrInvalidStatus         = goerr.New("invalid action status")
)

// Context keys for error values
const (
	ActionIDKey = "action_id"
	StatusKey   = "status"
)

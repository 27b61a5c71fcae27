package models

import (
	"errors"
)

var ErrOrderNotFound = errors.New("order not found")
var ErrOrderNotCancellable = errors.New("order already entered payment flow")
var ErrDuplicatePendingOrder = errors.New("order already exists for this plan")
var (
	ErrNoRecord          = errors.New("models: no matching record found")
	ErrPlanNotFound      = errors.New("plan not found")
	ErrPackageNotFound   = errors.New("credit package not found")
	ErrManifestNotFound  = errors.New("manifest not found")
	ErrJobNotFound       = errors.New("scrape job not found")
	ErrInvalidDomainName = errors.New("invalid domain name")
	ErrMissingField      = errors.New("required field missing")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidAPIKey     = errors.New("invalid api key")
	ErrDraftNotFound     = errors.New("draft not found")
)

package sale

import "errors"

var (
	ErrSaleNotFound     = errors.New("sale not found")
	ErrCampaignNotFound = errors.New("campaign not found")

	// Persistence failures. The underlying store error is wrapped alongside.
	ErrSaleNotSaved   = errors.New("unable to save sale")
	ErrSaleNotEdited  = errors.New("unable to edit sale")
	ErrSaleNotDeleted = errors.New("could not delete sale")
)

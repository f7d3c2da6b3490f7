package disbursement

import "errors"

var (
	ErrUnknownFrequency = errors.New("unknown disbursement frequency")
	ErrSettlementFailed = errors.New("settlement failed")
)

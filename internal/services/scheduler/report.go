package scheduler

import "time"

// MerchantFailure identifies one merchant whose settlement failed, with
// enough context for an operator to re-trigger that merchant alone.
type MerchantFailure struct {
	MerchantReference string    `json:"merchant_reference"`
	Date              time.Time `json:"date"`
	Reason            string    `json:"reason"`
}

// RunReport summarizes one settlement run. A failed merchant never stops the
// rest of the run; it lands here instead.
type RunReport struct {
	Date     time.Time         `json:"date"`
	Settled  int               `json:"settled"`
	Skipped  int               `json:"skipped"`
	Failures []MerchantFailure `json:"failures,omitempty"`
}

package disbursement

import (
	"fmt"
	"time"

	"disburser/internal/models"
)

// Reference derives the settlement reference for one merchant and date. It
// is fully deterministic: the same inputs always produce the same string, so
// uniqueness comes from attempting at most one settlement per merchant and
// date, not from the generator.
func Reference(merchant models.Merchant, frequency models.Frequency, date time.Time) (string, error) {
	var prefix string
	switch frequency {
	case models.FrequencyDaily:
		prefix = fmt.Sprintf("D%02d", date.Day())
	case models.FrequencyWeekly:
		_, week := date.ISOWeek()
		prefix = fmt.Sprintf("W%02d", week)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, frequency)
	}

	return fmt.Sprintf("%s-%s-%s-%d", prefix, merchant.Reference, date.Format("20060102"), date.Year()), nil
}

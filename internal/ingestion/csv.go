// Package ingestion parses the semicolon-separated merchant and order CSV
// dumps produced by the onboarding and order-intake systems.
package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"disburser/internal/models"
	"disburser/internal/money"

	"github.com/google/uuid"
)

// ParseMerchantsCSV parses the merchant dump.
//
// Expected header:
//
//	id;reference;email;live_on;disbursement_frequency;minimum_monthly_fee
func ParseMerchantsCSV(r io.Reader) ([]models.Merchant, error) {
	reader := newReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 6 {
		return nil, fmt.Errorf("expected 6 columns, got %d", len(header))
	}

	var merchants []models.Merchant
	lineNum := 1
	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		id, err := uuid.Parse(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d id: %w", lineNum, err)
		}
		liveOn, err := time.Parse("2006-01-02", strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("line %d live_on: %w", lineNum, err)
		}
		frequency := models.Frequency(strings.TrimSpace(row[4]))
		if !frequency.Valid() {
			return nil, fmt.Errorf("line %d: unknown disbursement frequency %q", lineNum, row[4])
		}
		minimumFee, err := money.FromString(strings.TrimSpace(row[5]))
		if err != nil {
			return nil, fmt.Errorf("line %d minimum_monthly_fee: %w", lineNum, err)
		}
		if minimumFee.IsNegative() {
			return nil, fmt.Errorf("line %d: minimum_monthly_fee must not be negative", lineNum)
		}

		merchants = append(merchants, models.Merchant{
			ID:                    id,
			Reference:             strings.TrimSpace(row[1]),
			Email:                 strings.TrimSpace(row[2]),
			LiveOn:                liveOn,
			DisbursementFrequency: frequency,
			MinimumMonthlyFee:     minimumFee,
		})
	}
	return merchants, nil
}

// ParseOrdersCSV parses the order dump.
//
// Expected header:
//
//	id;merchant_reference;amount;created_at
func ParseOrdersCSV(r io.Reader) ([]models.Order, error) {
	reader := newReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 4 {
		return nil, fmt.Errorf("expected 4 columns, got %d", len(header))
	}

	var orders []models.Order
	lineNum := 1
	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		amount, err := money.FromString(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d amount: %w", lineNum, err)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("line %d: amount must not be negative", lineNum)
		}
		createdAt, err := parseOrderDate(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("line %d created_at: %w", lineNum, err)
		}

		orders = append(orders, models.Order{
			ID:                strings.TrimSpace(row[0]),
			MerchantReference: strings.TrimSpace(row[1]),
			Amount:            amount,
			CreatedAt:         createdAt,
		})
	}
	return orders, nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true
	return reader
}

func parseOrderDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

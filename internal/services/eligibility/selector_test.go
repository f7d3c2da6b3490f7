package eligibility

import (
	"context"
	"testing"
	"time"

	"disburser/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) InWindowUnsettled(ctx context.Context, merchantReference string, windowStart, windowEnd time.Time) ([]models.Order, error) {
	args := m.Called(ctx, merchantReference, windowStart, windowEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepo) CreateInBatches(ctx context.Context, orders []models.Order, batchSize int) error {
	args := m.Called(ctx, orders, batchSize)
	return args.Error(0)
}

func TestSelectorDaily(t *testing.T) {
	repo := new(MockOrderRepo)
	selector := NewSelector(repo)

	merchant := models.Merchant{
		Reference:             "windler_and_sons",
		DisbursementFrequency: models.FrequencyDaily,
		LiveOn:                date(2023, time.January, 1),
	}
	orders := []models.Order{{ID: "o1", Amount: decimal.RequireFromString("25.00")}}
	repo.On("InWindowUnsettled", mock.Anything, "windler_and_sons",
		date(2023, time.June, 13), date(2023, time.June, 14)).Return(orders, nil)

	got, err := selector.Select(context.Background(), merchant, date(2023, time.June, 14))
	require.NoError(t, err)
	assert.Equal(t, orders, got)
	repo.AssertExpectations(t)
}

func TestSelectorWeeklyOffDayDoesNotQuery(t *testing.T) {
	repo := new(MockOrderRepo)
	selector := NewSelector(repo)

	// live_on is a Tuesday, reference date a Wednesday
	merchant := models.Merchant{
		Reference:             "mraz_and_sons",
		DisbursementFrequency: models.FrequencyWeekly,
		LiveOn:                date(2023, time.June, 6),
	}

	got, err := selector.Select(context.Background(), merchant, date(2023, time.June, 14))
	require.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertNotCalled(t, "InWindowUnsettled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSelectorClampsWindowToLiveOn(t *testing.T) {
	repo := new(MockOrderRepo)
	selector := NewSelector(repo)

	// weekly merchant went live mid-window; the window start moves up
	merchant := models.Merchant{
		Reference:             "late_starter",
		DisbursementFrequency: models.FrequencyWeekly,
		LiveOn:                date(2023, time.June, 10), // Saturday
	}
	repo.On("InWindowUnsettled", mock.Anything, "late_starter",
		date(2023, time.June, 10), date(2023, time.June, 17)).Return([]models.Order{}, nil)

	_, err := selector.Select(context.Background(), merchant, date(2023, time.June, 17))
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSelectorLiveOnAfterWindowYieldsEmpty(t *testing.T) {
	repo := new(MockOrderRepo)
	selector := NewSelector(repo)

	merchant := models.Merchant{
		Reference:             "not_yet_live",
		DisbursementFrequency: models.FrequencyDaily,
		LiveOn:                date(2023, time.July, 1),
	}

	got, err := selector.Select(context.Background(), merchant, date(2023, time.June, 14))
	require.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertNotCalled(t, "InWindowUnsettled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

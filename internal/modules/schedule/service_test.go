package schedule

import (
	"context"
	"testing"

	"tablebook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBusinessHoursStore struct {
	mock.Mock
}

func (m *MockBusinessHoursStore) List(ctx context.Context) ([]domain.BusinessHours, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusinessHours), args.Error(1)
}

func (m *MockBusinessHoursStore) Upsert(ctx context.Context, h *domain.BusinessHours) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func TestUpdate_Valid(t *testing.T) {
	store := new(MockBusinessHoursStore)
	store.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store)
	got, err := svc.Update(context.Background(), UpdateBusinessHoursRequest{
		DayOfWeek: 5,
		OpenTime:  "18:00",
		CloseTime: "04:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, got.DayOfWeek)
	assert.Equal(t, "18:00", got.OpenTime)
	store.AssertExpectations(t)
}

func TestUpdate_ClosedDaySkipsTimeValidation(t *testing.T) {
	store := new(MockBusinessHoursStore)
	store.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store)
	got, err := svc.Update(context.Background(), UpdateBusinessHoursRequest{
		DayOfWeek: 0,
		IsClosed:  true,
	})

	assert.NoError(t, err)
	assert.True(t, got.IsClosed)
}

func TestUpdate_Validation(t *testing.T) {
	svc := NewService(new(MockBusinessHoursStore))

	_, err := svc.Update(context.Background(), UpdateBusinessHoursRequest{DayOfWeek: 7})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(context.Background(), UpdateBusinessHoursRequest{
		DayOfWeek: 1,
		OpenTime:  "6pm",
		CloseTime: "22:00",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

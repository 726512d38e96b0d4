package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"tablebook/internal/capacity"
	"tablebook/internal/domain"
	"tablebook/internal/live"
	"tablebook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MockReservationStore struct {
	mock.Mock

	// existing is what the capacity check sees inside CreateWithCheck, as if
	// these rows were committed for the target date.
	existing []domain.Reservation
}

func (m *MockReservationStore) CreateWithCheck(ctx context.Context, res *domain.Reservation, check func(existing []domain.Reservation) error) error {
	args := m.Called(ctx, res)
	if err := check(m.existing); err != nil {
		return err
	}
	if res.ID == "" {
		res.ID = "11111111-1111-1111-1111-111111111111"
	}
	return args.Error(0)
}

func (m *MockReservationStore) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationStore) ListByPhone(ctx context.Context, phone string, date *time.Time, status domain.ReservationStatus) ([]domain.Reservation, error) {
	args := m.Called(ctx, phone, date, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) ReservationConfirmed(ctx context.Context, res *domain.Reservation, timeLabel string) error {
	args := m.Called(ctx, res, timeLabel)
	return args.Error(0)
}

func (m *MockSender) ReservationCancelled(ctx context.Context, res *domain.Reservation, timeLabel string) error {
	args := m.Called(ctx, res, timeLabel)
	return args.Error(0)
}

type recordingBroadcaster struct {
	events []string
}

func (r *recordingBroadcaster) Broadcast(eventType string, _ any) {
	r.events = append(r.events, eventType)
}

func newTestService(store ReservationStore, sender *MockSender, events EventBroadcaster) *Service {
	return NewService(store, sender, nil, events, domain.DefaultSettings(), zap.NewNop())
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func validRequest() CreateReservationRequest {
	return CreateReservationRequest{
		Date:      tomorrow(),
		TimeSlot:  8,
		PartySize: 2,
		Name:      "Aigerim",
		Phone:     "+7 777 123 4567",
	}
}

func TestCreate_Success(t *testing.T) {
	store := new(MockReservationStore)
	sender := new(MockSender)
	events := &recordingBroadcaster{}

	store.On("CreateWithCheck", mock.Anything, mock.Anything).Return(nil)
	sender.On("ReservationConfirmed", mock.Anything, mock.Anything, "20:00").Return(nil)

	svc := newTestService(store, sender, events)
	got, err := svc.Create(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.NotEmpty(t, got.Reservation.ID)
	assert.Equal(t, domain.ReservationConfirmed, got.Reservation.Status)
	assert.Equal(t, 8, got.Reservation.TimeSlot)
	assert.True(t, got.Notified)
	assert.Equal(t, []string{live.EventReservationCreated}, events.events)
	store.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestCreate_ConflictReportsRemainingSeats(t *testing.T) {
	store := new(MockReservationStore)
	store.existing = []domain.Reservation{
		{TimeSlot: 8, PartySize: 4, Status: domain.ReservationConfirmed},
	}
	sender := new(MockSender)

	store.On("CreateWithCheck", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.PartySize = 3

	svc := newTestService(store, sender, nil)
	_, err := svc.Create(context.Background(), req)

	var conflict *capacity.Conflict
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, 8, conflict.Slot)
	assert.Equal(t, "20:00", conflict.TimeLabel)
	assert.Equal(t, 2, conflict.Available)
	sender.AssertNotCalled(t, "ReservationConfirmed", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_FitsExactlyAtCapacity(t *testing.T) {
	store := new(MockReservationStore)
	store.existing = []domain.Reservation{
		{TimeSlot: 8, PartySize: 4, Status: domain.ReservationConfirmed},
	}
	sender := new(MockSender)

	store.On("CreateWithCheck", mock.Anything, mock.Anything).Return(nil)
	sender.On("ReservationConfirmed", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(store, sender, nil)
	got, err := svc.Create(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.True(t, got.Notified)
}

func TestCreate_OverlappingConflictUsesFirstViolatingSlot(t *testing.T) {
	store := new(MockReservationStore)
	store.existing = []domain.Reservation{
		{TimeSlot: 12, PartySize: 6, Status: domain.ReservationConfirmed},
	}
	sender := new(MockSender)

	store.On("CreateWithCheck", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.PartySize = 1

	svc := newTestService(store, sender, nil)
	_, err := svc.Create(context.Background(), req)

	var conflict *capacity.Conflict
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, 12, conflict.Slot)
	assert.Equal(t, "21:00", conflict.TimeLabel)
	assert.Equal(t, 0, conflict.Available)
}

func TestCreate_ValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateReservationRequest)
	}{
		{"malformed date", func(r *CreateReservationRequest) { r.Date = "01-09-2026" }},
		{"date outside booking window", func(r *CreateReservationRequest) { r.Date = "2020-01-01" }},
		{"negative slot", func(r *CreateReservationRequest) { r.TimeSlot = -1 }},
		{"slot past end of day", func(r *CreateReservationRequest) { r.TimeSlot = 40 }},
		{"party size zero", func(r *CreateReservationRequest) { r.PartySize = 0 }},
		{"party size over capacity", func(r *CreateReservationRequest) { r.PartySize = 7 }},
		{"blank name", func(r *CreateReservationRequest) { r.Name = "   " }},
		{"malformed phone", func(r *CreateReservationRequest) { r.Phone = "call me" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(MockReservationStore)
			svc := newTestService(store, new(MockSender), nil)

			req := validRequest()
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
			store.AssertNotCalled(t, "CreateWithCheck", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_LastSlotIsBookable(t *testing.T) {
	store := new(MockReservationStore)
	sender := new(MockSender)

	store.On("CreateWithCheck", mock.Anything, mock.Anything).Return(nil)
	sender.On("ReservationConfirmed", mock.Anything, mock.Anything, "27:45").Return(nil)

	req := validRequest()
	req.TimeSlot = 39

	svc := newTestService(store, sender, nil)
	_, err := svc.Create(context.Background(), req)

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestCreate_NoPhoneSkipsNotification(t *testing.T) {
	store := new(MockReservationStore)
	sender := new(MockSender)

	store.On("CreateWithCheck", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.Phone = ""

	svc := newTestService(store, sender, nil)
	got, err := svc.Create(context.Background(), req)

	assert.NoError(t, err)
	assert.False(t, got.Notified)
	sender.AssertNotCalled(t, "ReservationConfirmed", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_SenderFailureDoesNotFailBooking(t *testing.T) {
	store := new(MockReservationStore)
	sender := new(MockSender)

	store.On("CreateWithCheck", mock.Anything, mock.Anything).Return(nil)
	sender.On("ReservationConfirmed", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker down"))

	svc := newTestService(store, sender, nil)
	got, err := svc.Create(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.False(t, got.Notified)
}

func TestCreate_LegacyUniqueIndexMapsToConflict(t *testing.T) {
	store := new(MockReservationStore)
	store.On("CreateWithCheck", mock.Anything, mock.Anything).Return(repository.ErrSlotTaken)

	svc := newTestService(store, new(MockSender), nil)
	_, err := svc.Create(context.Background(), validRequest())

	var conflict *capacity.Conflict
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, 8, conflict.Slot)
	assert.Equal(t, 0, conflict.Available)
}

func TestCancel_Success(t *testing.T) {
	res := &domain.Reservation{
		ID:       "22222222-2222-2222-2222-222222222222",
		TimeSlot: 8,
		Phone:    "+77771234567",
		Status:   domain.ReservationConfirmed,
	}

	store := new(MockReservationStore)
	sender := new(MockSender)
	events := &recordingBroadcaster{}

	store.On("GetByID", mock.Anything, res.ID).Return(res, nil)
	store.On("Delete", mock.Anything, res.ID).Return(nil)
	sender.On("ReservationCancelled", mock.Anything, res, "20:00").Return(nil)

	svc := newTestService(store, sender, events)
	err := svc.Cancel(context.Background(), res.ID)

	assert.NoError(t, err)
	assert.Equal(t, []string{live.EventReservationCancelled}, events.events)
	store.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestCancel_NotFound(t *testing.T) {
	store := new(MockReservationStore)
	store.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(store, new(MockSender), nil)
	err := svc.Cancel(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestList_PhoneRequired(t *testing.T) {
	svc := newTestService(new(MockReservationStore), new(MockSender), nil)

	_, err := svc.List(context.Background(), ListReservationsRequest{Phone: "  "})
	assert.ErrorIs(t, err, ErrPhoneRequired)
}

func TestList_RejectsUnknownStatus(t *testing.T) {
	svc := newTestService(new(MockReservationStore), new(MockSender), nil)

	_, err := svc.List(context.Background(), ListReservationsRequest{
		Phone:  "+77771234567",
		Status: "pending",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestList_FiltersPassedToStore(t *testing.T) {
	store := new(MockReservationStore)
	want := []domain.Reservation{{ID: "a"}, {ID: "b"}}
	store.On("ListByPhone", mock.Anything, "+77771234567", mock.Anything, domain.ReservationConfirmed).
		Return(want, nil)

	svc := newTestService(store, new(MockSender), nil)
	got, err := svc.List(context.Background(), ListReservationsRequest{
		Phone:  "+77771234567",
		Date:   tomorrow(),
		Status: "confirmed",
	})

	assert.NoError(t, err)
	assert.Equal(t, want, got)
	store.AssertExpectations(t)
}

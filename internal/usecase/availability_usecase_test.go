package usecase

import (
	"context"
	"testing"

	"cronosflow/config"
	"cronosflow/internal/delivery/dto"
	"cronosflow/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableSlots_PerResourceExcludesBookedStarts(t *testing.T) {
	date := mustDate(t, "2026-01-14")
	appointmentRepo := &fakeAppointmentRepo{
		appointments: []entity.Appointment{
			scheduled(date, "09:00:00", "10:00:00", holdingID),
			scheduled(date, "14:00:00", "15:00:00", holdingID),
		},
	}
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), testBookingConfig(), appointmentRepo, &fakeRefData{})

	resp, err := uc.AvailableSlots(context.Background(), &dto.AvailabilityRequest{Date: "2026-01-14"})
	require.NoError(t, err)

	assert.Equal(t, []string{"08:00", "10:00", "11:00", "15:00"}, resp.Disponiveis)
}

func TestAvailableSlots_PerResourcePartitionsGrid(t *testing.T) {
	date := mustDate(t, "2026-01-14")
	cfg := testBookingConfig()
	appointmentRepo := &fakeAppointmentRepo{
		appointments: []entity.Appointment{
			scheduled(date, "08:00:00", "09:00:00", holdingID),
			scheduled(date, "10:00:00", "11:00:00", holdingID),
			scheduled(date, "11:00:00", "12:00:00", holdingID),
		},
	}
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), cfg, appointmentRepo, &fakeRefData{})

	resp, err := uc.AvailableSlots(context.Background(), &dto.AvailabilityRequest{Date: "2026-01-14"})
	require.NoError(t, err)

	// Every grid slot is either booked or returned, never both.
	assert.Len(t, resp.Disponiveis, len(cfg.Grid)-3)
	for _, booked := range []string{"08:00", "10:00", "11:00"} {
		assert.NotContains(t, resp.Disponiveis, booked)
	}
}

func TestAvailableSlots_PerResourceIgnoresCancelled(t *testing.T) {
	date := mustDate(t, "2026-01-14")
	cancelled := scheduled(date, "09:00:00", "10:00:00", holdingID)
	cancelled.Cancel()
	appointmentRepo := &fakeAppointmentRepo{appointments: []entity.Appointment{cancelled}}
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), testBookingConfig(), appointmentRepo, &fakeRefData{})

	resp, err := uc.AvailableSlots(context.Background(), &dto.AvailabilityRequest{Date: "2026-01-14"})
	require.NoError(t, err)

	assert.Contains(t, resp.Disponiveis, "09:00")
}

func TestAvailableSlots_PerResourceScopedToProfessional(t *testing.T) {
	date := mustDate(t, "2026-01-14")
	appointmentRepo := &fakeAppointmentRepo{
		appointments: []entity.Appointment{
			scheduled(date, "09:00:00", "10:00:00", professionalA),
		},
	}
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), testBookingConfig(), appointmentRepo, &fakeRefData{})

	// Professional B has nothing booked, so their grid is fully open.
	resp, err := uc.AvailableSlots(context.Background(), &dto.AvailabilityRequest{
		Date:           "2026-01-14",
		ProfessionalID: professionalB.String(),
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Disponiveis, "09:00")

	resp, err = uc.AvailableSlots(context.Background(), &dto.AvailabilityRequest{
		Date:           "2026-01-14",
		ProfessionalID: professionalA.String(),
	})
	require.NoError(t, err)
	assert.NotContains(t, resp.Disponiveis, "09:00")
}

func TestAvailableSlots_DateValidation(t *testing.T) {
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), testBookingConfig(), &fakeAppointmentRepo{}, &fakeRefData{})

	_, err := uc.AvailableSlots(context.Background(), &dto.AvailabilityRequest{})
	assert.ErrorIs(t, err, ErrMissingDate)

	_, err = uc.AvailableSlots(context.Background(), &dto.AvailabilityRequest{Date: "14/01/2026"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestAvailableSlots_InvalidProfessionalID(t *testing.T) {
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), testBookingConfig(), &fakeAppointmentRepo{}, &fakeRefData{})

	_, err := uc.AvailableSlots(context.Background(), &dto.AvailabilityRequest{
		Date:           "2026-01-14",
		ProfessionalID: "not-a-uuid",
	})
	assert.ErrorIs(t, err, ErrInvalidProfessionalID)
}

func TestAvailableSlots_NoProfessionalAndNoHoldingQueue(t *testing.T) {
	cfg := testBookingConfig()
	cfg.HoldingProfessionalID = ""
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), cfg, &fakeAppointmentRepo{}, &fakeRefData{})

	_, err := uc.AvailableSlots(context.Background(), &dto.AvailabilityRequest{Date: "2026-01-14"})
	assert.ErrorIs(t, err, ErrNoHoldingProfessional)
}

func pooledFixture(t *testing.T) (*fakeAppointmentRepo, *fakeRefData, config.BookingConfig) {
	t.Helper()
	cfg := testBookingConfig()
	cfg.AvailabilityPolicy = config.PolicyPooled
	refData := &fakeRefData{
		services: map[uuid.UUID]*entity.Service{},
		professionals: []entity.Professional{
			{ID: holdingID, Name: "Fila de Espera", Active: true},
			{ID: professionalA, Name: "Ana", Active: true},
			{ID: professionalB, Name: "Bia", Active: true},
		},
	}
	return &fakeAppointmentRepo{}, refData, cfg
}

func TestAvailableSlots_PooledNeedsAllProfessionalsBusy(t *testing.T) {
	date := mustDate(t, "2026-01-14")
	appointmentRepo, refData, cfg := pooledFixture(t)
	appointmentRepo.appointments = []entity.Appointment{
		// 10:00 fully booked, 09:00 only half booked.
		scheduled(date, "09:00:00", "10:00:00", professionalA),
		scheduled(date, "10:00:00", "11:00:00", professionalA),
		scheduled(date, "10:00:00", "11:00:00", professionalB),
	}
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), cfg, appointmentRepo, refData)

	resp, err := uc.AvailableSlots(context.Background(), &dto.AvailabilityRequest{Date: "2026-01-14"})
	require.NoError(t, err)

	assert.Contains(t, resp.Disponiveis, "09:00")
	assert.NotContains(t, resp.Disponiveis, "10:00")
}

func TestAvailableSlots_PooledHoldingQueueDoesNotCount(t *testing.T) {
	date := mustDate(t, "2026-01-14")
	appointmentRepo, refData, cfg := pooledFixture(t)
	// Only the sentinel is free at 10:00. The slot must still read as full
	// because the holding queue serves nobody.
	appointmentRepo.appointments = []entity.Appointment{
		scheduled(date, "10:00:00", "11:00:00", professionalA),
		scheduled(date, "10:00:00", "11:00:00", professionalB),
	}
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), cfg, appointmentRepo, refData)

	resp, err := uc.AvailableSlots(context.Background(), &dto.AvailabilityRequest{Date: "2026-01-14"})
	require.NoError(t, err)

	assert.NotContains(t, resp.Disponiveis, "10:00")
}

func TestAvailableSlots_PooledOverlapBlocksMidSlot(t *testing.T) {
	date := mustDate(t, "2026-01-14")
	appointmentRepo, refData, cfg := pooledFixture(t)
	// A 09:30-10:30 booking overlaps both the 09:00 and 10:00 hour slots.
	appointmentRepo.appointments = []entity.Appointment{
		scheduled(date, "09:30:00", "10:30:00", professionalA),
		scheduled(date, "09:00:00", "11:00:00", professionalB),
	}
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), cfg, appointmentRepo, refData)

	resp, err := uc.AvailableSlots(context.Background(), &dto.AvailabilityRequest{Date: "2026-01-14"})
	require.NoError(t, err)

	assert.NotContains(t, resp.Disponiveis, "09:00")
	assert.NotContains(t, resp.Disponiveis, "10:00")
	assert.Contains(t, resp.Disponiveis, "11:00")
}

func TestCheckSlot_PooledBreakdown(t *testing.T) {
	date := mustDate(t, "2026-01-14")
	appointmentRepo, refData, cfg := pooledFixture(t)
	refData.services[haircutService] = &entity.Service{ID: haircutService, Name: "Corte", DurationMin: 30}
	appointmentRepo.appointments = []entity.Appointment{
		scheduled(date, "10:00:00", "11:00:00", professionalA),
	}
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), cfg, appointmentRepo, refData)

	resp, err := uc.CheckSlot(context.Background(), &dto.SlotCheckRequest{
		Date:      "2026-01-14",
		StartTime: "10:00",
		ServiceID: haircutService.String(),
	})
	require.NoError(t, err)

	assert.True(t, resp.Disponivel)
	assert.Equal(t, "10:00", resp.HorarioInicio)
	assert.Equal(t, "10:30", resp.HorarioFim)
	assert.Equal(t, 1, resp.ProfissionaisLivres)
	assert.Equal(t, 2, resp.TotalProfissionais)
}

func TestCheckSlot_FullyBooked(t *testing.T) {
	date := mustDate(t, "2026-01-14")
	appointmentRepo, refData, cfg := pooledFixture(t)
	refData.services[haircutService] = &entity.Service{ID: haircutService, Name: "Corte", DurationMin: 60}
	appointmentRepo.appointments = []entity.Appointment{
		scheduled(date, "10:00:00", "11:00:00", professionalA),
		scheduled(date, "10:30:00", "11:30:00", professionalB),
	}
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), cfg, appointmentRepo, refData)

	resp, err := uc.CheckSlot(context.Background(), &dto.SlotCheckRequest{
		Date:      "2026-01-14",
		StartTime: "10:00",
		ServiceID: haircutService.String(),
	})
	require.NoError(t, err)

	assert.False(t, resp.Disponivel)
	assert.Equal(t, 0, resp.ProfissionaisLivres)
}

func TestCheckSlot_Validation(t *testing.T) {
	appointmentRepo, refData, cfg := pooledFixture(t)
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), cfg, appointmentRepo, refData)

	tests := []struct {
		name string
		req  dto.SlotCheckRequest
		want error
	}{
		{"missing date", dto.SlotCheckRequest{StartTime: "10:00", ServiceID: haircutService.String()}, ErrMissingDate},
		{"missing start", dto.SlotCheckRequest{Date: "2026-01-14", ServiceID: haircutService.String()}, ErrMissingStartTime},
		{"bad start", dto.SlotCheckRequest{Date: "2026-01-14", StartTime: "25:99", ServiceID: haircutService.String()}, ErrInvalidStartTime},
		{"missing service", dto.SlotCheckRequest{Date: "2026-01-14", StartTime: "10:00"}, ErrMissingServiceID},
		{"bad service", dto.SlotCheckRequest{Date: "2026-01-14", StartTime: "10:00", ServiceID: "nope"}, ErrInvalidServiceID},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CheckSlot(context.Background(), &tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCheckSlot_UnknownServiceUsesFallbackDuration(t *testing.T) {
	appointmentRepo, refData, cfg := pooledFixture(t)
	uc := NewAvailabilityUsecase(newTestDB(t), testLogger(), cfg, appointmentRepo, refData)

	resp, err := uc.CheckSlot(context.Background(), &dto.SlotCheckRequest{
		Date:      "2026-01-14",
		StartTime: "10:00",
		ServiceID: haircutService.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, "11:00", resp.HorarioFim)
}

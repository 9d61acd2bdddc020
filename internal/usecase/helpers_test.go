package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"cronosflow/config"
	"cronosflow/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	holdingID      = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	professionalA  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	professionalB  = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	haircutService = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

// newTestDB returns a *gorm.DB backed by sqlmock. The fakes below never touch
// it; it only has to survive WithContext.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testBookingConfig() config.BookingConfig {
	return config.BookingConfig{
		Timezone:              "America/Sao_Paulo",
		HoldingProfessionalID: holdingID.String(),
		Grid:                  []string{"08:00", "09:00", "10:00", "11:00", "14:00", "15:00"},
		FallbackDurationMin:   60,
		AvailabilityPolicy:    config.PolicyPerResource,
		RedirectToHolding:     true,
		Origin:                "Nati IA",
	}
}

func mustDate(t *testing.T, iso string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", iso)
	require.NoError(t, err)
	return date
}

func scheduled(date time.Time, start, end string, professionalID uuid.UUID) entity.Appointment {
	profID := professionalID
	return entity.Appointment{
		ID:             uuid.New(),
		Date:           date,
		StartTime:      start,
		EndTime:        end,
		ProfessionalID: &profID,
		Status:         entity.AppointmentStatusScheduled,
	}
}

type fakeAppointmentRepo struct {
	appointments []entity.Appointment
	created      []*entity.Appointment
	findErr      error
}

func (f *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	f.created = append(f.created, appointment)
	f.appointments = append(f.appointments, *appointment)
	return nil
}

func (f *fakeAppointmentRepo) FindForDay(db *gorm.DB, date time.Time, professionalID *uuid.UUID) ([]entity.Appointment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []entity.Appointment
	for _, a := range f.appointments {
		if !a.Date.Equal(date) || a.IsCancelled() {
			continue
		}
		if professionalID != nil && (a.ProfessionalID == nil || *a.ProfessionalID != *professionalID) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindAtSlot(db *gorm.DB, date time.Time, startTime string, professionalID uuid.UUID) (*entity.Appointment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.appointments {
		a := &f.appointments[i]
		if a.Date.Equal(date) && a.StartTime == startTime && !a.IsCancelled() &&
			a.ProfessionalID != nil && *a.ProfessionalID == professionalID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	return f.appointments, nil
}

type fakeCustomerRepo struct {
	customers []entity.Customer
}

func (f *fakeCustomerRepo) Create(db *gorm.DB, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	f.customers = append(f.customers, *customer)
	return nil
}

func (f *fakeCustomerRepo) FindByPhone(db *gorm.DB, phone string) (*entity.Customer, error) {
	for i := range f.customers {
		if f.customers[i].Phone == phone {
			return &f.customers[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) FindAll(db *gorm.DB) ([]entity.Customer, error) {
	return f.customers, nil
}

type fakeRefData struct {
	services      map[uuid.UUID]*entity.Service
	professionals []entity.Professional
	serviceErr    error
	profErr       error
}

func (f *fakeRefData) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.services[id], nil
}

func (f *fakeRefData) ActiveProfessionals(ctx context.Context) ([]entity.Professional, error) {
	if f.profErr != nil {
		return nil, f.profErr
	}
	return f.professionals, nil
}

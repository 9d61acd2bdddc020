package usecase

import (
	"context"
	"errors"

	"cronosflow/config"
	"cronosflow/internal/converter"
	"cronosflow/internal/delivery/dto"
	"cronosflow/internal/domain/entity"
	"cronosflow/internal/domain/repository"
	"cronosflow/internal/scheduling"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMissingCustomerName = errors.New("customer name is required")
	ErrSlotTaken           = errors.New("slot is already booked")
	ErrPastMidnight        = errors.New("appointment would run past midnight")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, req *dto.BookingRequest) (*dto.AppointmentResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	cfg             config.BookingConfig
	appointmentRepo repository.AppointmentRepository
	customerRepo    repository.CustomerRepository
	refData         RefDataProvider
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.BookingConfig,
	appointmentRepo repository.AppointmentRepository,
	customerRepo repository.CustomerRepository,
	refData RefDataProvider,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		cfg:             cfg,
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		refData:         refData,
	}
}

// CreateBooking writes a new appointment.
//
// Flow:
// 1. Validate date, start time and customer name
// 2. Resolve the target professional under the redirect policy
// 3. Optimistic conflict guard: reject if the slot is already booked
// 4. Upsert the customer by phone number
// 5. Resolve service duration/price (fallback duration on lookup failure)
// 6. Derive the end time and persist
//
// The guard in step 3 is best-effort: two near-simultaneous requests can both
// pass it and both insert. True exclusivity needs a uniqueness constraint at
// the storage layer, which is owned by the database side.
func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.BookingRequest) (*dto.AppointmentResponse, error) {
	// Step 1: validate input
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.StartTime == "" {
		return nil, ErrMissingStartTime
	}
	if _, err := scheduling.ParseClock(req.StartTime); err != nil {
		return nil, ErrInvalidStartTime
	}
	if req.CustomerName == "" {
		return nil, ErrMissingCustomerName
	}
	startTime := scheduling.HHMM(req.StartTime)

	// Step 2: resolve professional
	professionalID, err := u.targetProfessional(req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	// Step 3: conflict guard
	existing, err := u.appointmentRepo.FindAtSlot(u.db.WithContext(ctx), date, startTime+":00", professionalID)
	if err != nil {
		u.log.Warnf("Failed conflict check for %s %s: %+v", req.Date, startTime, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	// Step 4: customer upsert
	customer, err := u.upsertCustomer(ctx, req.CustomerName, req.CustomerPhone)
	if err != nil {
		u.log.Warnf("Failed customer upsert for %q: %+v", req.CustomerName, err)
		return nil, err
	}

	// Step 5: resolve service
	duration := u.cfg.FallbackDurationMin
	price := decimal.Zero
	var serviceID *uuid.UUID
	if req.ServiceID != "" {
		if id, err := uuid.Parse(req.ServiceID); err == nil {
			serviceID = &id
			svc, err := u.refData.GetService(ctx, id)
			if err != nil {
				u.log.Warnf("Service lookup failed for %s, using fallback duration: %+v", id, err)
			} else if svc != nil {
				if svc.DurationMin > 0 {
					duration = svc.DurationMin
				}
				price = svc.Price
			}
		}
	}

	// Step 6: derive end time and persist
	crosses, err := scheduling.CrossesMidnight(startTime, duration)
	if err != nil {
		return nil, ErrInvalidStartTime
	}
	if crosses {
		return nil, ErrPastMidnight
	}
	endTime, err := scheduling.EndTime(startTime, duration)
	if err != nil {
		return nil, ErrInvalidStartTime
	}

	appointment := &entity.Appointment{
		CustomerID:     &customer.ID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		Date:           date,
		StartTime:      startTime + ":00",
		EndTime:        endTime,
		ServiceID:      serviceID,
		ProfessionalID: &professionalID,
		ChargedValue:   price,
		Status:         entity.AppointmentStatusScheduled,
		Notes:          "Agendamento via IA (WhatsApp)",
		Origin:         u.cfg.Origin,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Errorf("Failed to insert appointment: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment created: id=%s, date=%s, start=%s, professional=%s",
		appointment.ID, req.Date, startTime, professionalID)
	return converter.AppointmentToResponse(appointment), nil
}

// targetProfessional applies the redirect policy: when enabled, every
// automated booking is parked on the holding queue regardless of the caller's
// choice; a human redistributes it on the dashboard later.
func (u *bookingUsecase) targetProfessional(requested string) (uuid.UUID, error) {
	if u.cfg.RedirectToHolding {
		requested = ""
	}
	if requested != "" {
		id, err := uuid.Parse(requested)
		if err != nil {
			return uuid.Nil, ErrInvalidProfessionalID
		}
		return id, nil
	}
	if u.cfg.HoldingProfessionalID == "" {
		return uuid.Nil, ErrNoHoldingProfessional
	}
	id, err := uuid.Parse(u.cfg.HoldingProfessionalID)
	if err != nil {
		return uuid.Nil, ErrNoHoldingProfessional
	}
	return id, nil
}

// upsertCustomer reuses the customer with a matching phone number, creating
// one otherwise. Without a phone there is no dedup key, so a fresh record is
// always created.
func (u *bookingUsecase) upsertCustomer(ctx context.Context, name, phone string) (*entity.Customer, error) {
	if phone != "" {
		existing, err := u.customerRepo.FindByPhone(u.db.WithContext(ctx), phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	customer := &entity.Customer{Name: name, Phone: phone}
	if err := u.customerRepo.Create(u.db.WithContext(ctx), customer); err != nil {
		return nil, err
	}
	return customer, nil
}

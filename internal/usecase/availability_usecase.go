package usecase

import (
	"context"
	"errors"
	"time"

	"cronosflow/config"
	"cronosflow/internal/delivery/dto"
	"cronosflow/internal/domain/entity"
	"cronosflow/internal/domain/repository"
	"cronosflow/internal/scheduling"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMissingDate           = errors.New("date is required")
	ErrInvalidDate           = errors.New("invalid date format, use YYYY-MM-DD")
	ErrMissingStartTime      = errors.New("start time is required")
	ErrInvalidStartTime      = errors.New("invalid start time, use HH:MM")
	ErrMissingServiceID      = errors.New("service id is required")
	ErrInvalidServiceID      = errors.New("invalid service id")
	ErrInvalidProfessionalID = errors.New("invalid professional id")
	ErrNoHoldingProfessional = errors.New("no professional given and no holding queue configured")
)

// RefDataProvider supplies the reference data availability and booking
// decisions depend on. Satisfied by service.RefDataCache.
type RefDataProvider interface {
	GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	ActiveProfessionals(ctx context.Context) ([]entity.Professional, error)
}

type AvailabilityUsecase interface {
	// AvailableSlots returns the grid slots still open for a date, under the
	// configured availability policy.
	AvailableSlots(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error)
	// CheckSlot returns the pooled-availability breakdown for a single slot.
	CheckSlot(ctx context.Context, req *dto.SlotCheckRequest) (*dto.SlotCheckResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	cfg             config.BookingConfig
	appointmentRepo repository.AppointmentRepository
	refData         RefDataProvider
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.BookingConfig,
	appointmentRepo repository.AppointmentRepository,
	refData RefDataProvider,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		cfg:             cfg,
		appointmentRepo: appointmentRepo,
		refData:         refData,
	}
}

func (u *availabilityUsecase) AvailableSlots(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	var slots []string
	if u.cfg.AvailabilityPolicy == config.PolicyPooled {
		slots, err = u.pooledSlots(ctx, date, req.ServiceID)
	} else {
		slots, err = u.perResourceSlots(ctx, date, req.ProfessionalID)
	}
	if err != nil {
		return nil, err
	}

	return &dto.AvailabilityResponse{Disponiveis: slots}, nil
}

// perResourceSlots: occupied = start times already booked for exactly this
// professional on the date; available = grid minus occupied. The two sets
// partition the grid.
func (u *availabilityUsecase) perResourceSlots(ctx context.Context, date time.Time, professionalID string) ([]string, error) {
	profID, err := u.resolveProfessional(professionalID)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindForDay(u.db.WithContext(ctx), date, &profID)
	if err != nil {
		u.log.Warnf("Failed to load appointments for %s: %+v", date.Format("2006-01-02"), err)
		return nil, err
	}

	occupied := make(map[string]struct{}, len(appointments))
	for _, appointment := range appointments {
		occupied[scheduling.HHMM(appointment.StartTime)] = struct{}{}
	}

	available := make([]string, 0, len(u.cfg.Grid))
	for _, slot := range u.cfg.Grid {
		if _, taken := occupied[slot]; !taken {
			available = append(available, slot)
		}
	}
	return available, nil
}

// pooledSlots: a slot is available iff the count of active professionals with
// an overlapping booking is strictly less than the active-professional count.
func (u *availabilityUsecase) pooledSlots(ctx context.Context, date time.Time, serviceID string) ([]string, error) {
	duration := u.serviceDuration(ctx, serviceID)

	pool, err := u.professionalPool(ctx)
	if err != nil {
		return nil, err
	}
	total := len(pool)

	busyByProfessional, err := u.busyIntervals(ctx, date, pool)
	if err != nil {
		return nil, err
	}

	available := make([]string, 0, len(u.cfg.Grid))
	for _, slot := range u.cfg.Grid {
		candidate, err := scheduling.SlotInterval(slot, duration)
		if err != nil {
			u.log.Warnf("Skipping unparseable grid slot %q: %+v", slot, err)
			continue
		}
		if countBusy(busyByProfessional, candidate) < total {
			available = append(available, slot)
		}
	}
	return available, nil
}

func (u *availabilityUsecase) CheckSlot(ctx context.Context, req *dto.SlotCheckRequest) (*dto.SlotCheckResponse, error) {
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
	if req.ServiceID == "" {
		return nil, ErrMissingServiceID
	}
	if _, err := uuid.Parse(req.ServiceID); err != nil {
		return nil, ErrInvalidServiceID
	}

	duration := u.serviceDuration(ctx, req.ServiceID)

	pool, err := u.professionalPool(ctx)
	if err != nil {
		return nil, err
	}
	total := len(pool)

	busyByProfessional, err := u.busyIntervals(ctx, date, pool)
	if err != nil {
		return nil, err
	}

	candidate, err := scheduling.SlotInterval(req.StartTime, duration)
	if err != nil {
		return nil, ErrInvalidStartTime
	}

	busy := countBusy(busyByProfessional, candidate)
	return &dto.SlotCheckResponse{
		Disponivel:          busy < total,
		HorarioInicio:       scheduling.HHMM(req.StartTime),
		HorarioFim:          scheduling.FormatClock(candidate.End),
		ProfissionaisLivres: total - busy,
		TotalProfissionais:  total,
	}, nil
}

// professionalPool returns the active professionals minus the holding-queue
// sentinel, which parks bookings but serves no one.
func (u *availabilityUsecase) professionalPool(ctx context.Context) ([]entity.Professional, error) {
	professionals, err := u.refData.ActiveProfessionals(ctx)
	if err != nil {
		u.log.Warnf("Failed to load active professionals: %+v", err)
		return nil, err
	}

	pool := make([]entity.Professional, 0, len(professionals))
	for _, p := range professionals {
		if p.ID.String() == u.cfg.HoldingProfessionalID {
			continue
		}
		pool = append(pool, p)
	}
	return pool, nil
}

// busyIntervals maps each pool professional to the intervals of their
// non-cancelled appointments on the date. An appointment with an unreadable
// end time falls back to its service duration, then to the configured
// fallback, rather than failing the whole scan.
func (u *availabilityUsecase) busyIntervals(ctx context.Context, date time.Time, pool []entity.Professional) (map[uuid.UUID][]scheduling.Interval, error) {
	appointments, err := u.appointmentRepo.FindForDay(u.db.WithContext(ctx), date, nil)
	if err != nil {
		u.log.Warnf("Failed to load appointments for %s: %+v", date.Format("2006-01-02"), err)
		return nil, err
	}

	inPool := make(map[uuid.UUID]struct{}, len(pool))
	for _, p := range pool {
		inPool[p.ID] = struct{}{}
	}

	busy := make(map[uuid.UUID][]scheduling.Interval)
	for _, appointment := range appointments {
		if appointment.ProfessionalID == nil {
			continue
		}
		profID := *appointment.ProfessionalID
		if _, ok := inPool[profID]; !ok {
			continue
		}

		start, err := scheduling.ParseClock(appointment.StartTime)
		if err != nil {
			u.log.Warnf("Appointment %s has unparseable start %q, skipping", appointment.ID, appointment.StartTime)
			continue
		}

		end, err := scheduling.ParseClock(appointment.EndTime)
		if err != nil || end <= start {
			end = start + u.appointmentDuration(ctx, &appointment)
		}

		busy[profID] = append(busy[profID], scheduling.Interval{Start: start, End: end})
	}
	return busy, nil
}

func countBusy(busyByProfessional map[uuid.UUID][]scheduling.Interval, candidate scheduling.Interval) int {
	count := 0
	for _, intervals := range busyByProfessional {
		for _, iv := range intervals {
			if candidate.Overlaps(iv) {
				count++
				break
			}
		}
	}
	return count
}

// serviceDuration resolves the duration for a requested service, falling back
// to the configured default when the ID is absent, malformed, or the lookup
// fails. A failed lookup here must not abort the request.
func (u *availabilityUsecase) serviceDuration(ctx context.Context, serviceID string) int {
	if serviceID == "" {
		return u.cfg.FallbackDurationMin
	}
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return u.cfg.FallbackDurationMin
	}
	svc, err := u.refData.GetService(ctx, id)
	if err != nil || svc == nil || svc.DurationMin <= 0 {
		if err != nil {
			u.log.Warnf("Service lookup failed for %s, using fallback duration: %+v", id, err)
		}
		return u.cfg.FallbackDurationMin
	}
	return svc.DurationMin
}

func (u *availabilityUsecase) appointmentDuration(ctx context.Context, appointment *entity.Appointment) int {
	if appointment.ServiceID == nil {
		return u.cfg.FallbackDurationMin
	}
	svc, err := u.refData.GetService(ctx, *appointment.ServiceID)
	if err != nil || svc == nil || svc.DurationMin <= 0 {
		return u.cfg.FallbackDurationMin
	}
	return svc.DurationMin
}

func (u *availabilityUsecase) resolveProfessional(requested string) (uuid.UUID, error) {
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

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, ErrMissingDate
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

package usecase

import (
	"context"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository"
	"mindcare-backend/pkg/apperror"

	"github.com/sirupsen/logrus"
)

const slotsPerDay = 24

type SlotUsecase interface {
	GetAvailableSlots(ctx context.Context, doctorID string, date string) (*dto.AvailableSlotsResponse, error)
}

type slotUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
}

func NewSlotUsecase(log *logrus.Logger, appointmentRepo repository.AppointmentRepository) SlotUsecase {
	return &slotUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
	}
}

// GetAvailableSlots lists the hourly slots of date not taken by a live appointment.
// Each booking occupies exactly one slot whatever its duration.
func (u *slotUsecase) GetAvailableSlots(ctx context.Context, doctorID string, date string) (*dto.AvailableSlotsResponse, error) {
	if doctorID == "" {
		return nil, ErrDoctorIDRequired
	}
	day, ok := entity.NormalizeDate(date)
	if !ok {
		return nil, apperror.Validation("date must be YYYY-MM-DD").WithDetail("field", "date")
	}

	appointments, err := u.appointmentRepo.FindAll(ctx, entity.AppointmentFilter{
		DoctorID: doctorID,
		Date:     day,
		Statuses: entity.LiveAppointmentStatuses,
	})
	if err != nil {
		u.log.Warnf("Failed to load appointments for doctor %s on %s: %+v", doctorID, day, err)
		return nil, err
	}

	booked := make([]string, 0, len(appointments))
	for _, a := range appointments {
		booked = append(booked, a.Time)
	}

	available := availableSlots(booked)
	return &dto.AvailableSlotsResponse{
		DoctorID:       doctorID,
		Date:           day,
		AvailableSlots: available,
		BookedSlots:    booked,
		TotalSlots:     slotsPerDay,
		AvailableCount: len(available),
	}, nil
}

// availableSlots drops every slot whose 24-hour value or 12-hour label equals a booked time
func availableSlots(booked []string) []dto.SlotResponse {
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	slots := make([]dto.SlotResponse, 0, slotsPerDay)
	for hour := 0; hour < slotsPerDay; hour++ {
		value, label := entity.SlotValue(hour), entity.SlotLabel(hour)
		if _, ok := taken[value]; ok {
			continue
		}
		if _, ok := taken[label]; ok {
			continue
		}
		slots = append(slots, dto.SlotResponse{Value: value, Label: label, Hour: hour})
	}
	return slots
}

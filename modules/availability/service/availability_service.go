package service

import (
	"context"
	"strings"
	"time"

	"sparkle-booking/core/constants"
	"sparkle-booking/core/errors"
	"sparkle-booking/core/logger"
	"sparkle-booking/modules/availability/dto"
	"sparkle-booking/modules/availability/entity"
	calendarEntity "sparkle-booking/modules/calendar/entity"
)

// BusyLister is the part of the calendar gateway availability needs.
type BusyLister interface {
	ListBusyIntervals(ctx context.Context, start, end time.Time) ([]calendarEntity.BusyInterval, error)
}

// Appointment is a requested window resolved to absolute instants.
type Appointment struct {
	Date   string
	Window entity.Window
	Start  time.Time
	End    time.Time
}

type AvailabilityService struct {
	calendar BusyLister
	template entity.Template
	location *time.Location
	now      func() time.Time
}

func NewAvailabilityService(calendar BusyLister, tmpl entity.Template, loc *time.Location) *AvailabilityService {
	return &AvailabilityService{
		calendar: calendar,
		template: tmpl,
		location: loc,
		now:      time.Now,
	}
}

func (s *AvailabilityService) Template() entity.Template { return s.template }

func (s *AvailabilityService) Location() *time.Location { return s.location }

// ParseDate reads "YYYY-MM-DD" as midnight in the business timezone.
func (s *AvailabilityService) ParseDate(date string) (time.Time, *errors.AppError) {
	day, err := time.ParseInLocation(constants.DateLayout, strings.TrimSpace(date), s.location)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "date must be formatted YYYY-MM-DD", err)
	}
	return day, nil
}

func (s *AvailabilityService) isPast(day time.Time) bool {
	today := s.now().In(s.location)
	y, m, d := today.Date()
	return day.Before(time.Date(y, m, d, 0, 0, 0, 0, s.location))
}

// GetAvailableTimes lists the windows still open on the given date.
func (s *AvailabilityService) GetAvailableTimes(ctx context.Context, date string) (*dto.AvailableTimesResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	logger.Info("AvailabilityService:GetAvailableTimes:Start", "date", date)

	day, appErr := s.ParseDate(date)
	if appErr != nil {
		return nil, appErr
	}

	resp := &dto.AvailableTimesResponse{Date: day.Format(constants.DateLayout), Slots: []dto.SlotResponse{}}
	if s.isPast(day) {
		logger.Info("AvailabilityService:GetAvailableTimes:PastDate", "date", date)
		return resp, nil
	}

	busy, err := s.calendar.ListBusyIntervals(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		logger.Error("AvailabilityService:GetAvailableTimes:ListBusyIntervals:Error", "date", date, "error", err)
		return nil, asAppError(err, errors.ErrUpstreamUnavailable, "failed to fetch calendar availability")
	}

	for _, slot := range CalculateOpenSlots(day, s.template, busy) {
		resp.Slots = append(resp.Slots, dto.SlotResponse{
			Time:  slot.StartClock(),
			Start: slot.StartClock(),
			End:   slot.EndClock(),
			Label: slot.Label(),
		})
	}

	logger.Info("AvailabilityService:GetAvailableTimes:Success", "date", date, "open", len(resp.Slots), "total", len(s.template))
	return resp, nil
}

// ResolveAppointment checks that date is bookable and timeOfDay starts a window.
func (s *AvailabilityService) ResolveAppointment(date, timeOfDay string) (*Appointment, *errors.AppError) {
	appt, appErr := s.AppointmentBounds(date, timeOfDay)
	if appErr != nil {
		return nil, appErr
	}
	day, _ := s.ParseDate(appt.Date)
	if s.isPast(day) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "appointment date is in the past", nil)
	}
	return appt, nil
}

// AppointmentBounds resolves a stored date and window start without the past-date check.
func (s *AvailabilityService) AppointmentBounds(date, timeOfDay string) (*Appointment, *errors.AppError) {
	day, appErr := s.ParseDate(date)
	if appErr != nil {
		return nil, appErr
	}
	w, ok := s.template.Find(strings.TrimSpace(timeOfDay))
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "appointment time must be the start of a service window", nil)
	}
	start, end := w.Bounds(day)
	return &Appointment{
		Date:   day.Format(constants.DateLayout),
		Window: w,
		Start:  start,
		End:    end,
	}, nil
}

func asAppError(err error, fallback errors.ErrorCode, msg string) *errors.AppError {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.NewAppError(fallback, msg, err)
}

package service

import (
	"context"

	"luwakpos/internal/entity"
	"luwakpos/internal/repository"
)

type ShiftService struct {
	shifts repository.ShiftRepository
	clock  Clock
}

func NewShiftService(shifts repository.ShiftRepository, clock Clock) *ShiftService {
	return &ShiftService{shifts: shifts, clock: clock}
}

// Open starts a shift for the user. At most one shift per user may be open.
func (s *ShiftService) Open(ctx context.Context, userID int64) (*entity.Shift, error) {
	open, err := s.shifts.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrShiftActive
	}

	shift := &entity.Shift{
		UserID: userID,
		Inicio: s.clock.Now(),
	}
	if err := s.shifts.Create(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

func (s *ShiftService) Close(ctx context.Context, id int64) (*entity.Shift, error) {
	shift, err := s.shifts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}

	now := s.clock.Now()
	if err := s.shifts.Close(ctx, id, now); err != nil {
		return nil, err
	}
	shift.Fin = &now
	return shift, nil
}

func (s *ShiftService) ListByUser(ctx context.Context, userID int64, limit int) ([]entity.Shift, error) {
	return s.shifts.ListByUser(ctx, userID, limit)
}

package service

import (
	"context"
	"testing"
	"time"

	"luwakpos/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShiftRepo struct {
	shifts []*entity.Shift
	nextID int64
}

func (r *fakeShiftRepo) Create(_ context.Context, shift *entity.Shift) error {
	r.nextID++
	shift.ID = r.nextID
	r.shifts = append(r.shifts, shift)
	return nil
}

func (r *fakeShiftRepo) FindByID(_ context.Context, id int64) (*entity.Shift, error) {
	for _, s := range r.shifts {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) FindOpenByUser(_ context.Context, userID int64) (*entity.Shift, error) {
	for _, s := range r.shifts {
		if s.UserID == userID && s.Fin == nil {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) ListByUser(_ context.Context, userID int64, limit int) ([]entity.Shift, error) {
	var out []entity.Shift
	for _, s := range r.shifts {
		if s.UserID == userID && len(out) < limit {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) Close(_ context.Context, id int64, at time.Time) error {
	for _, s := range r.shifts {
		if s.ID == id {
			end := at
			s.Fin = &end
		}
	}
	return nil
}

func TestShiftLifecycle(t *testing.T) {
	clock := &testClock{now: time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)}
	svc := NewShiftService(&fakeShiftRepo{}, clock)

	shift, err := svc.Open(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, clock.now, shift.Inicio)
	assert.Nil(t, shift.Fin)

	// a second open shift for the same user is rejected
	_, err = svc.Open(context.Background(), 1)
	assert.ErrorIs(t, err, ErrShiftActive)

	// another user is unaffected
	_, err = svc.Open(context.Background(), 2)
	require.NoError(t, err)

	clock.Advance(8 * time.Hour)
	closed, err := svc.Close(context.Background(), shift.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.Fin)
	assert.Equal(t, clock.now, *closed.Fin)

	// once closed, a new one can start
	_, err = svc.Open(context.Background(), 1)
	require.NoError(t, err)
}

func TestShiftCloseUnknown(t *testing.T) {
	svc := NewShiftService(&fakeShiftRepo{}, &testClock{now: time.Now()})
	_, err := svc.Close(context.Background(), 42)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestShiftListByUser(t *testing.T) {
	repo := &fakeShiftRepo{}
	clock := &testClock{now: time.Now()}
	svc := NewShiftService(repo, clock)

	for i := 0; i < 3; i++ {
		shift, err := svc.Open(context.Background(), 1)
		require.NoError(t, err)
		_, err = svc.Close(context.Background(), shift.ID)
		require.NoError(t, err)
	}

	shifts, err := svc.ListByUser(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, shifts, 2)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/vietanh2810/eventdesk/internal/bridge"
	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/reconcile"
	"github.com/vietanh2810/eventdesk/internal/repository"
)

type StaffRepository interface {
	List() ([]domain.Staff, error)
	FindByID(id int) (domain.Staff, error)
	ListByEvent(eventID int) ([]domain.Staff, error)
	IDs() ([]int32, error)
}

// StaffService changes staff.dat only through the console process and
// confirms every change against the store.
type StaffService struct {
	events *EventService
	staff  StaffRepository
	bridge Bridge
	settle *reconcile.Reconciler
}

func NewStaffService(events *EventService, staff StaffRepository, b Bridge, settle *reconcile.Reconciler) *StaffService {
	return &StaffService{
		events: events,
		staff:  staff,
		bridge: b,
		settle: settle,
	}
}

// StaffInput is the editable part of a staff member.
type StaffInput struct {
	Name     string
	Email    string
	Team     string
	Position string
}

// stored is the input as staff.dat reads it back.
func (in StaffInput) stored() StaffInput {
	return StaffInput{
		Name:     repository.StoredText(in.Name, repository.LongText),
		Email:    repository.StoredText(in.Email, repository.LongText),
		Team:     repository.StoredText(in.Team, repository.ShortText),
		Position: repository.StoredText(in.Position, repository.ShortText),
	}
}

func (in StaffInput) matches(s domain.Staff) bool {
	want := in.stored()
	return s.Name == want.Name && s.Email == want.Email && s.Team == want.Team && s.Position == want.Position
}

func (s *StaffService) Add(ctx context.Context, session domain.Session, eventID int, input StaffInput) (domain.Staff, error) {
	if _, err := s.events.Owned(session, eventID); err != nil {
		return domain.Staff{}, err
	}

	staff := domain.Staff{EventID: eventID, Name: input.Name, Email: input.Email, Team: input.Team, Position: input.Position}
	if err := validateStaff(&staff); err != nil {
		return domain.Staff{}, err
	}

	before, err := s.staff.IDs()
	if err != nil {
		return domain.Staff{}, fmt.Errorf("s.staff.IDs -> %w", err)
	}

	resp, err := mutate(ctx, s.bridge, bridge.AddStaff{
		EventID: eventID, Name: input.Name, Email: input.Email, Team: input.Team, Position: input.Position,
	}, nil)
	if err != nil {
		return domain.Staff{}, err
	}

	match := func(st domain.Staff) bool { return st.EventID == eventID && input.matches(st) }
	if resp.HasID() {
		return reconcile.Await(ctx, s.settle, "staff "+strconv.Itoa(resp.ID), func() (domain.Staff, bool, error) {
			return s.lookup(resp.ID, match)
		})
	}

	return reconcile.AwaitNew(ctx, s.settle, "new staff", before, s.staff.List,
		func(st domain.Staff) int32 { return int32(st.ID) }, match)
}

func (s *StaffService) ListByEvent(eventID int) ([]domain.Staff, error) {
	staff, err := s.staff.ListByEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("s.staff.ListByEvent -> %w", err)
	}

	return staff, nil
}

// owned returns the staff member if the session's organiser owns its event.
func (s *StaffService) owned(session domain.Session, id int) (domain.Staff, error) {
	staff, err := s.staff.FindByID(id)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("s.staff.FindByID -> %w", notFound(err, ErrStaffNotFound))
	}

	if _, err := s.events.Owned(session, staff.EventID); err != nil {
		return domain.Staff{}, err
	}

	return staff, nil
}

func (s *StaffService) Update(ctx context.Context, session domain.Session, id int, input StaffInput) (domain.Staff, error) {
	current, err := s.owned(session, id)
	if err != nil {
		return domain.Staff{}, err
	}

	updated := current
	updated.Name, updated.Email, updated.Team, updated.Position = input.Name, input.Email, input.Team, input.Position
	if err := validateStaff(&updated); err != nil {
		return domain.Staff{}, err
	}

	_, err = mutate(ctx, s.bridge, bridge.UpdateStaff{
		StaffID: id, Name: input.Name, Email: input.Email, Team: input.Team, Position: input.Position,
	}, ErrStaffNotFound)
	if err != nil {
		return domain.Staff{}, err
	}

	return reconcile.Await(ctx, s.settle, "staff "+strconv.Itoa(id)+" update", func() (domain.Staff, bool, error) {
		return s.lookup(id, input.matches)
	})
}

func (s *StaffService) Delete(ctx context.Context, session domain.Session, id int) error {
	if _, err := s.owned(session, id); err != nil {
		return err
	}

	if _, err := mutate(ctx, s.bridge, bridge.DeleteStaff{StaffID: id}, ErrStaffNotFound); err != nil {
		return err
	}

	_, err := reconcile.Await(ctx, s.settle, "staff "+strconv.Itoa(id)+" removal", func() (struct{}, bool, error) {
		_, err := s.staff.FindByID(id)
		if errors.Is(err, ErrNotFound) {
			return struct{}{}, true, nil
		}
		return struct{}{}, false, err
	})

	return err
}

func (s *StaffService) lookup(id int, match func(domain.Staff) bool) (domain.Staff, bool, error) {
	st, err := s.staff.FindByID(id)
	if errors.Is(err, ErrNotFound) {
		return st, false, nil
	}
	if err != nil {
		return st, false, err
	}
	return st, match(st), nil
}

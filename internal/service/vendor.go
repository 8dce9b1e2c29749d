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

type VendorRepository interface {
	List() ([]domain.Vendor, error)
	FindByID(id int) (domain.Vendor, error)
	ListByEvent(eventID int) ([]domain.Vendor, error)
	IDs() ([]int32, error)
}

type VendorService struct {
	events  *EventService
	vendors VendorRepository
	bridge  Bridge
	settle  *reconcile.Reconciler
}

func NewVendorService(events *EventService, vendors VendorRepository, b Bridge, settle *reconcile.Reconciler) *VendorService {
	return &VendorService{
		events:  events,
		vendors: vendors,
		bridge:  b,
		settle:  settle,
	}
}

type VendorInput struct {
	Name           string
	Email          string
	ProductService string
	ChargesDue     float32
}

// stored is the input as vendors.dat reads it back.
func (in VendorInput) stored() VendorInput {
	return VendorInput{
		Name:           repository.StoredText(in.Name, repository.LongText),
		Email:          repository.StoredText(in.Email, repository.LongText),
		ProductService: repository.StoredText(in.ProductService, repository.LongText),
		ChargesDue:     in.ChargesDue,
	}
}

func (in VendorInput) matches(v domain.Vendor) bool {
	want := in.stored()
	return v.Name == want.Name && v.Email == want.Email && v.ProductService == want.ProductService &&
		v.ChargesDue == want.ChargesDue
}

func (s *VendorService) Add(ctx context.Context, session domain.Session, eventID int, input VendorInput) (domain.Vendor, error) {
	if _, err := s.events.Owned(session, eventID); err != nil {
		return domain.Vendor{}, err
	}

	vendor := domain.Vendor{
		EventID: eventID, Name: input.Name, Email: input.Email, ProductService: input.ProductService, ChargesDue: input.ChargesDue,
	}
	if err := validateVendor(&vendor); err != nil {
		return domain.Vendor{}, err
	}

	before, err := s.vendors.IDs()
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("s.vendors.IDs -> %w", err)
	}

	resp, err := mutate(ctx, s.bridge, bridge.AddVendor{
		EventID: eventID, Name: input.Name, Email: input.Email, ProductService: input.ProductService, ChargesDue: input.ChargesDue,
	}, nil)
	if err != nil {
		return domain.Vendor{}, err
	}

	match := func(v domain.Vendor) bool { return v.EventID == eventID && input.matches(v) }
	if resp.HasID() {
		return reconcile.Await(ctx, s.settle, "vendor "+strconv.Itoa(resp.ID), func() (domain.Vendor, bool, error) {
			return s.lookup(resp.ID, match)
		})
	}

	return reconcile.AwaitNew(ctx, s.settle, "new vendor", before, s.vendors.List,
		func(v domain.Vendor) int32 { return int32(v.ID) }, match)
}

func (s *VendorService) ListByEvent(eventID int) ([]domain.Vendor, error) {
	vendors, err := s.vendors.ListByEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("s.vendors.ListByEvent -> %w", err)
	}

	return vendors, nil
}

func (s *VendorService) owned(session domain.Session, id int) (domain.Vendor, error) {
	vendor, err := s.vendors.FindByID(id)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("s.vendors.FindByID -> %w", notFound(err, ErrVendorNotFound))
	}

	if _, err := s.events.Owned(session, vendor.EventID); err != nil {
		return domain.Vendor{}, err
	}

	return vendor, nil
}

func (s *VendorService) Update(ctx context.Context, session domain.Session, id int, input VendorInput) (domain.Vendor, error) {
	current, err := s.owned(session, id)
	if err != nil {
		return domain.Vendor{}, err
	}

	updated := current
	updated.Name, updated.Email, updated.ProductService, updated.ChargesDue = input.Name, input.Email, input.ProductService, input.ChargesDue
	if err := validateVendor(&updated); err != nil {
		return domain.Vendor{}, err
	}

	_, err = mutate(ctx, s.bridge, bridge.UpdateVendor{
		VendorID: id, Name: input.Name, Email: input.Email, ProductService: input.ProductService, ChargesDue: input.ChargesDue,
	}, ErrVendorNotFound)
	if err != nil {
		return domain.Vendor{}, err
	}

	return reconcile.Await(ctx, s.settle, "vendor "+strconv.Itoa(id)+" update", func() (domain.Vendor, bool, error) {
		return s.lookup(id, input.matches)
	})
}

func (s *VendorService) Delete(ctx context.Context, session domain.Session, id int) error {
	if _, err := s.owned(session, id); err != nil {
		return err
	}

	if _, err := mutate(ctx, s.bridge, bridge.DeleteVendor{VendorID: id}, ErrVendorNotFound); err != nil {
		return err
	}

	_, err := reconcile.Await(ctx, s.settle, "vendor "+strconv.Itoa(id)+" removal", func() (struct{}, bool, error) {
		_, err := s.vendors.FindByID(id)
		if errors.Is(err, ErrNotFound) {
			return struct{}{}, true, nil
		}
		return struct{}{}, false, err
	})

	return err
}

func (s *VendorService) lookup(id int, match func(domain.Vendor) bool) (domain.Vendor, bool, error) {
	v, err := s.vendors.FindByID(id)
	if errors.Is(err, ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	return v, match(v), nil
}

package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/metrics"
	"github.com/vietanh2810/eventdesk/internal/repository"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
	"github.com/vietanh2810/eventdesk/internal/tracing"
)

const (
	EventsFile        = "events.json"
	StaffFile         = "staff.json"
	VendorsFile       = "vendors.json"
	RegistrationsFile = "registrations.json"
)

type EventDoc struct {
	ID                int    `json:"ID"`
	OrganiserID       int    `json:"orgId"`
	Name              string `json:"name"`
	OrganiserName     string `json:"orgName"`
	Venue             string `json:"venue"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	TotalSeats        int    `json:"totalSeats"`
	SoldTickets       int    `json:"soldTickets"`
	Type              int    `json:"type"`
	TypeName          string `json:"typeName"`
	StaffCount        int    `json:"staffCount"`
	VendorCount       int    `json:"vendorCount"`
	RegistrationCount int    `json:"registrationCount"`
	CreatedAt         string `json:"createdAt"`
}

type StaffDoc struct {
	ID        int    `json:"ID"`
	EventID   int    `json:"eventId"`
	EventName string `json:"eventName"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Team      string `json:"team"`
	Position  string `json:"position"`
	CreatedAt string `json:"createdAt"`
}

type VendorDoc struct {
	ID             int     `json:"ID"`
	EventID        int     `json:"eventId"`
	EventName      string  `json:"eventName"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	ProductService string  `json:"productService"`
	ChargesDue     float32 `json:"chargesDue"`
	CreatedAt      string  `json:"createdAt"`
}

// RegistrationDoc is keyed by ticket number.
type RegistrationDoc struct {
	ID            int    `json:"ID"`
	CustomerID    int    `json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	EventID       int    `json:"eventId"`
	EventName     string `json:"eventName"`
	FeeStatus     string `json:"feeStatus"`
	CreatedAt     string `json:"createdAt"`
}

// Projector derives the JSON documents from the binary store. The documents
// are a read cache: every rebuild rewrites them whole and nothing reads them
// back except to carry createdAt over.
type Projector struct {
	dir           string
	customers     *repository.UserRepository
	events        *repository.EventRepository
	staff         *repository.StaffRepository
	vendors       *repository.VendorRepository
	registrations *repository.RegistrationRepository
	now           func() time.Time
}

func NewProjector(store *dao.Store) *Projector {
	return &Projector{
		dir:           store.Dir,
		customers:     repository.NewUserRepository(domain.RoleCustomer, store.Customers),
		events:        repository.NewEventRepository(store.Events),
		staff:         repository.NewStaffRepository(store.Staff),
		vendors:       repository.NewVendorRepository(store.Vendors),
		registrations: repository.NewRegistrationRepository(store.Registrations),
		now:           time.Now,
	}
}

// Rebuild reads every table, joins them and rewrites all four documents.
func (p *Projector) Rebuild(ctx context.Context, trigger string) (err error) {
	_, span := tracing.Tracer().Start(ctx, "projection.rebuild")
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.ProjectionRebuilds.WithLabelValues(trigger, outcome).Inc()
		span.End()
	}()

	events, err := p.events.List()
	if err != nil {
		return fmt.Errorf("p.events.List -> %w", err)
	}
	staff, err := p.staff.List()
	if err != nil {
		return fmt.Errorf("p.staff.List -> %w", err)
	}
	vendors, err := p.vendors.List()
	if err != nil {
		return fmt.Errorf("p.vendors.List -> %w", err)
	}
	regs, err := p.registrations.List()
	if err != nil {
		return fmt.Errorf("p.registrations.List -> %w", err)
	}
	customers, err := p.customers.List()
	if err != nil {
		return fmt.Errorf("p.customers.List -> %w", err)
	}

	stamp := p.now().UTC().Format(time.RFC3339)
	eventName := make(map[int]string, len(events))
	for _, e := range events {
		if _, dup := eventName[e.ID]; !dup {
			eventName[e.ID] = e.Name
		}
	}
	customerByID := make(map[int]domain.User, len(customers))
	for _, c := range customers {
		if _, dup := customerByID[c.ID]; !dup {
			customerByID[c.ID] = c
		}
	}
	staffCount := countBy(staff, func(s domain.Staff) int { return s.EventID })
	vendorCount := countBy(vendors, func(v domain.Vendor) int { return v.EventID })
	regCount := countBy(regs, func(r domain.Registration) int { return r.EventID })

	created, err := p.createdAt(EventsFile)
	if err != nil {
		return err
	}
	eventDocs := make([]EventDoc, 0, len(events))
	for _, e := range events {
		eventDocs = append(eventDocs, EventDoc{
			ID:                e.ID,
			OrganiserID:       e.OrganiserID,
			Name:              e.Name,
			OrganiserName:     e.OrganiserName,
			Venue:             e.Venue,
			StartDate:         e.StartDate,
			EndDate:           e.EndDate,
			TotalSeats:        e.TotalSeats,
			SoldTickets:       e.SoldTickets,
			Type:              int(e.Type),
			TypeName:          e.Type.String(),
			StaffCount:        staffCount[e.ID],
			VendorCount:       vendorCount[e.ID],
			RegistrationCount: regCount[e.ID],
			CreatedAt:         carry(created, e.ID, stamp),
		})
	}

	if created, err = p.createdAt(StaffFile); err != nil {
		return err
	}
	staffDocs := make([]StaffDoc, 0, len(staff))
	for _, s := range staff {
		staffDocs = append(staffDocs, StaffDoc{
			ID:        s.ID,
			EventID:   s.EventID,
			EventName: eventName[s.EventID],
			Name:      s.Name,
			Email:     s.Email,
			Team:      s.Team,
			Position:  s.Position,
			CreatedAt: carry(created, s.ID, stamp),
		})
	}

	if created, err = p.createdAt(VendorsFile); err != nil {
		return err
	}
	vendorDocs := make([]VendorDoc, 0, len(vendors))
	for _, v := range vendors {
		vendorDocs = append(vendorDocs, VendorDoc{
			ID:             v.ID,
			EventID:        v.EventID,
			EventName:      eventName[v.EventID],
			Name:           v.Name,
			Email:          v.Email,
			ProductService: v.ProductService,
			ChargesDue:     v.ChargesDue,
			CreatedAt:      carry(created, v.ID, stamp),
		})
	}

	if created, err = p.createdAt(RegistrationsFile); err != nil {
		return err
	}
	regDocs := make([]RegistrationDoc, 0, len(regs))
	for _, r := range regs {
		c := customerByID[r.CustomerID]
		regDocs = append(regDocs, RegistrationDoc{
			ID:            r.TicketNumber,
			CustomerID:    r.CustomerID,
			CustomerName:  c.Name,
			CustomerEmail: c.Email,
			EventID:       r.EventID,
			EventName:     eventName[r.EventID],
			FeeStatus:     string(r.FeeStatus),
			CreatedAt:     carry(created, r.TicketNumber, stamp),
		})
	}

	for name, doc := range map[string]any{
		EventsFile:        eventDocs,
		StaffFile:         staffDocs,
		VendorsFile:       vendorDocs,
		RegistrationsFile: regDocs,
	} {
		if err := p.write(name, doc); err != nil {
			return err
		}
	}

	zap.L().Debug("projection rebuilt",
		zap.String("trigger", trigger),
		zap.Int("events", len(eventDocs)),
		zap.Int("staff", len(staffDocs)),
		zap.Int("vendors", len(vendorDocs)),
		zap.Int("registrations", len(regDocs)),
	)

	return nil
}

func (p *Projector) write(name string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent(%s) -> %w", name, err)
	}
	if err := dao.WriteFileAtomic(filepath.Join(p.dir, name), data); err != nil {
		return fmt.Errorf("projection %s -> %w", name, err)
	}
	return nil
}

// createdAt reads the previous document's timestamps by ID. A missing or
// unreadable document only loses timestamps, never fails the rebuild.
func (p *Projector) createdAt(name string) (map[int]string, error) {
	out := map[int]string{}
	data, err := os.ReadFile(filepath.Join(p.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) -> %w", name, err)
	}

	var docs []struct {
		ID        int    `json:"ID"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &docs); err != nil {
		zap.L().Warn("discarding unreadable projection", zap.String("file", name), zap.Error(err))
		return out, nil
	}
	for _, d := range docs {
		if d.CreatedAt != "" {
			out[d.ID] = d.CreatedAt
		}
	}
	return out, nil
}

func carry(created map[int]string, id int, fallback string) string {
	if ts, ok := created[id]; ok {
		return ts
	}
	return fallback
}

func countBy[T any](items []T, key func(T) int) map[int]int {
	out := make(map[int]int)
	for _, it := range items {
		out[key(it)]++
	}
	return out
}

// ReadEvents loads the events document, mainly for the CLI and tests.
func ReadEvents(dir string) ([]EventDoc, error) {
	var docs []EventDoc
	data, err := os.ReadFile(filepath.Join(dir, EventsFile))
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile -> %w", err)
	}
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("json.Unmarshal -> %w", err)
	}
	return docs, nil
}

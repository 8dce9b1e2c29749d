package facade

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/metrics"
	"github.com/vietanh2810/eventdesk/internal/reconcile"
	"github.com/vietanh2810/eventdesk/internal/service"
	"github.com/vietanh2810/eventdesk/internal/tracing"
)

// Projector rewrites the JSON projection from the binary store.
type Projector interface {
	Rebuild(ctx context.Context, trigger string) error
}

type Services struct {
	Auth          *service.AuthService
	Events        *service.EventService
	Staff         *service.StaffService
	Vendors       *service.VendorService
	Registrations *service.RegistrationService
}

// Facade exposes one method per business action. Every action runs on the
// write queue and comes back as a Result; no error or panic escapes it.
type Facade struct {
	queue     *reconcile.Queue
	projector Projector
	svc       Services
}

func New(queue *reconcile.Queue, projector Projector, svc Services) *Facade {
	return &Facade{
		queue:     queue,
		projector: projector,
		svc:       svc,
	}
}

type actionKind int

const (
	read actionKind = iota
	write
)

func (f *Facade) run(ctx context.Context, action string, kind actionKind, fn func(ctx context.Context) (any, error)) Result {
	ctx, span := tracing.Tracer().Start(ctx, "facade."+action)
	defer span.End()

	var payload any
	err := f.queue.Do(ctx, func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s -> %w: %v", action, errPanic, r)
			}
		}()

		payload, err = fn(ctx)
		if err != nil || kind == read {
			return err
		}

		// The binary store already holds the change; a failed rebuild is
		// repaired by the next one.
		if rerr := f.projector.Rebuild(ctx, action); rerr != nil {
			zap.L().Error("projection rebuild failed", zap.String("action", action), zap.Error(rerr))
		}
		return nil
	})

	code := Classify(err)
	metrics.FacadeResults.WithLabelValues(action, string(code)).Inc()
	span.SetAttributes(attribute.String("facade.code", string(code)))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(code))
		log := zap.L().Info
		if code == CodeInternal || code == CodeIO || code == CodeParseMiss || code == CodeTimeout {
			log = zap.L().Error
		}
		log("action failed", zap.String("action", action), zap.String("code", string(code)), zap.Error(err))

		return Result{Code: code, Message: message(code, err)}
	}

	return success(payload)
}

// SignupPayload is returned by both signup actions.
type SignupPayload struct {
	ID   int         `json:"id"`
	User domain.User `json:"user"`
}

// LoginPayload carries the user and the session the caller keeps.
type LoginPayload struct {
	User    domain.User    `json:"user"`
	Session domain.Session `json:"session"`
}

func (f *Facade) signup(ctx context.Context, action string, role domain.Role, profile domain.Profile) Result {
	return f.run(ctx, action, write, func(ctx context.Context) (any, error) {
		user, err := f.svc.Auth.Signup(ctx, role, profile)
		if err != nil {
			return nil, fmt.Errorf("f.svc.Auth.Signup -> %w", err)
		}
		return SignupPayload{ID: user.ID, User: user}, nil
	})
}

func (f *Facade) login(ctx context.Context, action string, role domain.Role, username, password string) Result {
	return f.run(ctx, action, read, func(ctx context.Context) (any, error) {
		user, err := f.svc.Auth.Login(ctx, role, username, password)
		if err != nil {
			return nil, fmt.Errorf("f.svc.Auth.Login -> %w", err)
		}
		return LoginPayload{
			User: user,
			Session: domain.Session{
				UserID:   user.ID,
				Role:     role,
				Username: user.Username,
				Name:     user.Name,
			},
		}, nil
	})
}

func (f *Facade) OrganiserSignup(ctx context.Context, profile domain.Profile) Result {
	return f.signup(ctx, "organiser_signup", domain.RoleOrganiser, profile)
}

func (f *Facade) CustomerSignup(ctx context.Context, profile domain.Profile) Result {
	return f.signup(ctx, "customer_signup", domain.RoleCustomer, profile)
}

func (f *Facade) OrganiserLogin(ctx context.Context, username, password string) Result {
	return f.login(ctx, "organiser_login", domain.RoleOrganiser, username, password)
}

func (f *Facade) CustomerLogin(ctx context.Context, username, password string) Result {
	return f.login(ctx, "customer_login", domain.RoleCustomer, username, password)
}

func (f *Facade) AddEvent(ctx context.Context, session domain.Session, input service.EventInput) Result {
	return f.run(ctx, "add_event", write, func(context.Context) (any, error) {
		return f.svc.Events.Create(session, input)
	})
}

func (f *Facade) ListEvents(ctx context.Context) Result {
	return f.run(ctx, "list_events", read, func(context.Context) (any, error) {
		return f.svc.Events.List()
	})
}

func (f *Facade) GetEvent(ctx context.Context, id int) Result {
	return f.run(ctx, "get_event", read, func(context.Context) (any, error) {
		return f.svc.Events.Get(id)
	})
}

func (f *Facade) ListEventsByOrganiser(ctx context.Context, orgID int) Result {
	return f.run(ctx, "list_events_by_organiser", read, func(context.Context) (any, error) {
		return f.svc.Events.ListByOrganiser(orgID)
	})
}

func (f *Facade) ModifyEvent(ctx context.Context, session domain.Session, id int, patch domain.EventPatch) Result {
	return f.run(ctx, "modify_event", write, func(context.Context) (any, error) {
		return f.svc.Events.Modify(session, id, patch)
	})
}

func (f *Facade) DeleteEvent(ctx context.Context, session domain.Session, id int) Result {
	return f.run(ctx, "delete_event", write, func(context.Context) (any, error) {
		return nil, f.svc.Events.Delete(session, id)
	})
}

func (f *Facade) EventSummary(ctx context.Context, eventID int) Result {
	return f.run(ctx, "event_summary", read, func(context.Context) (any, error) {
		return f.svc.Events.Summary(eventID)
	})
}

func (f *Facade) AddStaff(ctx context.Context, session domain.Session, eventID int, input service.StaffInput) Result {
	return f.run(ctx, "add_staff", write, func(ctx context.Context) (any, error) {
		return f.svc.Staff.Add(ctx, session, eventID, input)
	})
}

func (f *Facade) GetStaffByEvent(ctx context.Context, eventID int) Result {
	return f.run(ctx, "get_staff_by_event", read, func(context.Context) (any, error) {
		return f.svc.Staff.ListByEvent(eventID)
	})
}

func (f *Facade) UpdateStaff(ctx context.Context, session domain.Session, id int, input service.StaffInput) Result {
	return f.run(ctx, "update_staff", write, func(ctx context.Context) (any, error) {
		return f.svc.Staff.Update(ctx, session, id, input)
	})
}

func (f *Facade) DeleteStaff(ctx context.Context, session domain.Session, id int) Result {
	return f.run(ctx, "delete_staff", write, func(ctx context.Context) (any, error) {
		return nil, f.svc.Staff.Delete(ctx, session, id)
	})
}

func (f *Facade) AddVendor(ctx context.Context, session domain.Session, eventID int, input service.VendorInput) Result {
	return f.run(ctx, "add_vendor", write, func(ctx context.Context) (any, error) {
		return f.svc.Vendors.Add(ctx, session, eventID, input)
	})
}

func (f *Facade) GetVendorsByEvent(ctx context.Context, eventID int) Result {
	return f.run(ctx, "get_vendors_by_event", read, func(context.Context) (any, error) {
		return f.svc.Vendors.ListByEvent(eventID)
	})
}

func (f *Facade) UpdateVendor(ctx context.Context, session domain.Session, id int, input service.VendorInput) Result {
	return f.run(ctx, "update_vendor", write, func(ctx context.Context) (any, error) {
		return f.svc.Vendors.Update(ctx, session, id, input)
	})
}

func (f *Facade) DeleteVendor(ctx context.Context, session domain.Session, id int) Result {
	return f.run(ctx, "delete_vendor", write, func(ctx context.Context) (any, error) {
		return nil, f.svc.Vendors.Delete(ctx, session, id)
	})
}

func (f *Facade) RegisterForEvent(ctx context.Context, customerID, eventID int) Result {
	return f.run(ctx, "register_for_event", write, func(ctx context.Context) (any, error) {
		return f.svc.Registrations.Register(ctx, customerID, eventID)
	})
}

func (f *Facade) GetRegistrationsByEvent(ctx context.Context, eventID int) Result {
	return f.run(ctx, "get_registrations_by_event", read, func(context.Context) (any, error) {
		return f.svc.Registrations.ListByEvent(eventID)
	})
}

func (f *Facade) GetCustomerRegistrations(ctx context.Context, customerID int) Result {
	return f.run(ctx, "get_customer_registrations", read, func(context.Context) (any, error) {
		return f.svc.Registrations.ListByCustomer(customerID)
	})
}

func (f *Facade) UpdateFeeStatus(ctx context.Context, session domain.Session, customerID, eventID int,
	status domain.FeeStatus) Result {
	return f.run(ctx, "update_fee_status", write, func(ctx context.Context) (any, error) {
		return f.svc.Registrations.UpdateFeeStatus(ctx, session, customerID, eventID, status)
	})
}

// Rebuild rewrites the projection on demand.
func (f *Facade) Rebuild(ctx context.Context, trigger string) Result {
	return f.run(ctx, "rebuild", read, func(ctx context.Context) (any, error) {
		return nil, f.projector.Rebuild(ctx, trigger)
	})
}

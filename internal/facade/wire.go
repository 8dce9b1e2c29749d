package facade

import (
	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/reconcile"
	"github.com/vietanh2810/eventdesk/internal/repository"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
	"github.com/vietanh2810/eventdesk/internal/service"
)

// NewServices builds the services over one data directory.
func NewServices(store *dao.Store, b service.Bridge, settle *reconcile.Reconciler) Services {
	organisers := repository.NewUserRepository(domain.RoleOrganiser, store.Organisers)
	customers := repository.NewUserRepository(domain.RoleCustomer, store.Customers)
	events := repository.NewEventRepository(store.Events)
	staff := repository.NewStaffRepository(store.Staff)
	vendors := repository.NewVendorRepository(store.Vendors)
	registrations := repository.NewRegistrationRepository(store.Registrations)

	eventSvc := service.NewEventService(events, organisers, staff, vendors, registrations)

	return Services{
		Auth:          service.NewAuthService(organisers, customers, b, settle),
		Events:        eventSvc,
		Staff:         service.NewStaffService(eventSvc, staff, b, settle),
		Vendors:       service.NewVendorService(eventSvc, vendors, b, settle),
		Registrations: service.NewRegistrationService(customers, eventSvc, registrations, b, settle),
	}
}

package bridge

import (
	"strconv"
)

// ProtocolV2 is the opcode protocol: the first stdin line is a numeric
// operation code and the operation's fields follow one per line, in the order
// the console reads them. The field order below is the whole contract.
const ProtocolV2 = "opcode/v2"

type Opcode int

const (
	OpOrganiserSignup      Opcode = 1
	OpOrganiserLogin       Opcode = 2
	OpCustomerSignup       Opcode = 3
	OpCustomerLogin        Opcode = 4
	OpRegistrationsByEvent Opcode = 10
	OpUpdateFeeStatus      Opcode = 11
	OpAddRegistration      Opcode = 12
	OpAddStaff             Opcode = 13
	OpStaffByEvent         Opcode = 14
	OpDeleteStaff          Opcode = 15
	OpAddVendor            Opcode = 16
	OpVendorsByEvent       Opcode = 17
	OpDeleteVendor         Opcode = 18
	OpUpdateStaff          Opcode = 19
	OpUpdateVendor         Opcode = 20
	OpStaffCount           Opcode = 21
	OpVendorCount          Opcode = 22
)

var opcodeNames = map[Opcode]string{
	OpOrganiserSignup:      "organiser_signup",
	OpOrganiserLogin:       "organiser_login",
	OpCustomerSignup:       "customer_signup",
	OpCustomerLogin:        "customer_login",
	OpRegistrationsByEvent: "registrations_by_event",
	OpUpdateFeeStatus:      "update_fee_status",
	OpAddRegistration:      "add_registration",
	OpAddStaff:             "add_staff",
	OpStaffByEvent:         "staff_by_event",
	OpDeleteStaff:          "delete_staff",
	OpAddVendor:            "add_vendor",
	OpVendorsByEvent:       "vendors_by_event",
	OpDeleteVendor:         "delete_vendor",
	OpUpdateStaff:          "update_staff",
	OpUpdateVendor:         "update_vendor",
	OpStaffCount:           "staff_count",
	OpVendorCount:          "vendor_count",
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return "op_" + strconv.Itoa(int(o))
}

func (o Opcode) Known() bool {
	_, ok := opcodeNames[o]
	return ok
}

// Command is one typed console request.
type Command interface {
	Opcode() Opcode
	Args() []string
}

// Script renders a command as the stdin lines the console expects.
func Script(cmd Command) []string {
	return append([]string{strconv.Itoa(int(cmd.Opcode()))}, cmd.Args()...)
}

func itoa(n int) string { return strconv.Itoa(n) }

func formatFloat(f float32) string { return strconv.FormatFloat(float64(f), 'f', -1, 32) }

type OrganiserSignup struct {
	Name, Email, Username, Password string
}

func (OrganiserSignup) Opcode() Opcode { return OpOrganiserSignup }
func (c OrganiserSignup) Args() []string {
	return []string{c.Name, c.Email, c.Username, c.Password}
}

type CustomerSignup struct {
	Name, Email, Username, Password string
}

func (CustomerSignup) Opcode() Opcode { return OpCustomerSignup }
func (c CustomerSignup) Args() []string {
	return []string{c.Name, c.Email, c.Username, c.Password}
}

type OrganiserLogin struct {
	Username, Password string
}

func (OrganiserLogin) Opcode() Opcode   { return OpOrganiserLogin }
func (c OrganiserLogin) Args() []string { return []string{c.Username, c.Password} }

type CustomerLogin struct {
	Username, Password string
}

func (CustomerLogin) Opcode() Opcode   { return OpCustomerLogin }
func (c CustomerLogin) Args() []string { return []string{c.Username, c.Password} }

type RegistrationsByEvent struct {
	EventID int
}

func (RegistrationsByEvent) Opcode() Opcode   { return OpRegistrationsByEvent }
func (c RegistrationsByEvent) Args() []string { return []string{itoa(c.EventID)} }

type UpdateFeeStatus struct {
	CustomerID int
	EventID    int
	FeeStatus  string
}

func (UpdateFeeStatus) Opcode() Opcode { return OpUpdateFeeStatus }
func (c UpdateFeeStatus) Args() []string {
	return []string{itoa(c.CustomerID), itoa(c.EventID), c.FeeStatus}
}

type AddRegistration struct {
	CustomerID   int
	EventID      int
	TicketNumber int
	FeeStatus    string
}

func (AddRegistration) Opcode() Opcode { return OpAddRegistration }
func (c AddRegistration) Args() []string {
	return []string{itoa(c.CustomerID), itoa(c.EventID), itoa(c.TicketNumber), c.FeeStatus}
}

type AddStaff struct {
	EventID                     int
	Name, Email, Team, Position string
}

func (AddStaff) Opcode() Opcode { return OpAddStaff }
func (c AddStaff) Args() []string {
	return []string{itoa(c.EventID), c.Name, c.Email, c.Team, c.Position}
}

type StaffByEvent struct {
	EventID int
}

func (StaffByEvent) Opcode() Opcode   { return OpStaffByEvent }
func (c StaffByEvent) Args() []string { return []string{itoa(c.EventID)} }

type DeleteStaff struct {
	StaffID int
}

func (DeleteStaff) Opcode() Opcode   { return OpDeleteStaff }
func (c DeleteStaff) Args() []string { return []string{itoa(c.StaffID)} }

type UpdateStaff struct {
	StaffID                     int
	Name, Email, Team, Position string
}

func (UpdateStaff) Opcode() Opcode { return OpUpdateStaff }
func (c UpdateStaff) Args() []string {
	return []string{itoa(c.StaffID), c.Name, c.Email, c.Team, c.Position}
}

type AddVendor struct {
	EventID                     int
	Name, Email, ProductService string
	ChargesDue                  float32
}

func (AddVendor) Opcode() Opcode { return OpAddVendor }
func (c AddVendor) Args() []string {
	return []string{itoa(c.EventID), c.Name, c.Email, c.ProductService, formatFloat(c.ChargesDue)}
}

type VendorsByEvent struct {
	EventID int
}

func (VendorsByEvent) Opcode() Opcode   { return OpVendorsByEvent }
func (c VendorsByEvent) Args() []string { return []string{itoa(c.EventID)} }

type DeleteVendor struct {
	VendorID int
}

func (DeleteVendor) Opcode() Opcode   { return OpDeleteVendor }
func (c DeleteVendor) Args() []string { return []string{itoa(c.VendorID)} }

type UpdateVendor struct {
	VendorID                    int
	Name, Email, ProductService string
	ChargesDue                  float32
}

func (UpdateVendor) Opcode() Opcode { return OpUpdateVendor }
func (c UpdateVendor) Args() []string {
	return []string{itoa(c.VendorID), c.Name, c.Email, c.ProductService, formatFloat(c.ChargesDue)}
}

type StaffCount struct {
	EventID int
}

func (StaffCount) Opcode() Opcode   { return OpStaffCount }
func (c StaffCount) Args() []string { return []string{itoa(c.EventID)} }

type VendorCount struct {
	EventID int
}

func (VendorCount) Opcode() Opcode   { return OpVendorCount }
func (c VendorCount) Args() []string { return []string{itoa(c.EventID)} }

// FormatCharges prints a charge the way the console's stream output does:
// shortest form, at most six significant digits.
func FormatCharges(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', 6, 32)
}

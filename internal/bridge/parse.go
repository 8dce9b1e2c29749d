package bridge

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

var ErrUnrecognizedOutput = errors.New("console output matched no known marker")

type Status int

const (
	StatusUnrecognized Status = iota
	StatusOK
	StatusNotFound
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusRejected:
		return "rejected"
	}
	return "unrecognized"
}

// Row is one listing line split into its labelled fields.
type Row map[string]string

// Response is the parsed console output of one invocation.
type Response struct {
	Status Status
	// ID is the id echoed by signup, add staff and add vendor, or the user id
	// of a successful login. Zero when the output carried none.
	ID     int
	Rows   []Row
	Count  int
	Output string
}

func (r Response) HasID() bool { return r.ID > 0 }

func mustRule(pattern string) *regexp2.Regexp {
	return regexp2.MustCompile(pattern, regexp2.Multiline)
}

var (
	reSignupOK     = mustRule(`^(?:ORGANISER|CUSTOMER) registered successfully!\r?$`)
	reYourID       = mustRule(`^Your ID: (?<id>\d+)\r?$`)
	reLoginOK      = mustRule(`^(?:ORGANISER|CUSTOMER) LOGIN SUCCESS\r?$`)
	reLoginRow     = mustRule(`^ID: (?<id>\d+) Name: (?<name>.*?) Email: (?<email>.*?)\r?$`)
	reInvalidCreds = mustRule(`^Invalid credentials\r?$`)

	reRegistrationAdded = mustRule(`^Registration added successfully!\r?$`)
	reFeeUpdated        = mustRule(`^Fee Status Updated successfully!\r?$`)
	reRegNotFound       = mustRule(`^Registration not found\r?$`)
	reRegRow            = mustRule(`^CustID: (?<customerId>\d+) Name: (?<name>.*?) Email: (?<email>.*?) Ticket: (?<ticketNumber>\d+) Status: (?<feeStatus>.*?)\r?$`)
	reNoRegs            = mustRule(`^No registrations found(?: for this event)?\r?$`)

	reStaffAdded    = mustRule(`^Staff member added successfully!\r?$`)
	reStaffID       = mustRule(`^Staff ID: (?<id>\d+)\r?$`)
	reStaffDeleted  = mustRule(`^Staff Deleted successfully!\r?$`)
	reStaffUpdated  = mustRule(`^Staff Updated successfully!\r?$`)
	reStaffNotFound = mustRule(`^Staff not found\r?$`)
	reStaffRow      = mustRule(`^ID: (?<id>\d+) Name: (?<name>.*?) Email: (?<email>.*?) Team: (?<team>.*?) Position: (?<position>.*?)\r?$`)
	reNoStaff       = mustRule(`^No staff found(?: for this event)?\r?$`)
	reStaffCount    = mustRule(`^Staff Count: (?<count>\d+)\r?$`)

	reVendorAdded    = mustRule(`^Vendor added successfully!\r?$`)
	reVendorID       = mustRule(`^Vendor ID: (?<id>\d+)\r?$`)
	reVendorDeleted  = mustRule(`^Vendor Deleted successfully!\r?$`)
	reVendorUpdated  = mustRule(`^Vendor Updated successfully!\r?$`)
	reVendorNotFound = mustRule(`^Vendor not found\r?$`)
	// Product names may contain " Charges: "; the charge is the last token.
	reVendorRow   = mustRule(`^ID: (?<id>\d+) Name: (?<name>.*?) Email: (?<email>.*?) Product/Service: (?<productService>.*) Charges: (?<chargesDue>[^ ]+?)\r?$`)
	reNoVendors   = mustRule(`^No vendors found(?: for this event)?\r?$`)
	reVendorCount = mustRule(`^Vendor Count: (?<count>\d+)\r?$`)
)

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// group returns a named group of the first match, or "".
func group(re *regexp2.Regexp, s, name string) string {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return ""
	}
	if g := m.GroupByName(name); g != nil {
		return g.String()
	}
	return ""
}

func groupInt(re *regexp2.Regexp, s, name string) int {
	n, err := strconv.Atoi(group(re, s, name))
	if err != nil {
		return 0
	}
	return n
}

// rows collects every match of re, keyed by group name.
func rows(re *regexp2.Regexp, s string) []Row {
	out := make([]Row, 0)
	m, err := re.FindStringMatch(s)
	for err == nil && m != nil {
		row := Row{}
		for _, g := range m.Groups() {
			if _, numeric := strconv.Atoi(g.Name); numeric == nil {
				continue
			}
			row[g.Name] = g.String()
		}
		out = append(out, row)
		m, err = re.FindNextMatch(m)
	}
	return out
}

// Parse classifies console output for the opcode that produced it. Every
// marker the bridge understands is listed above; anything else is
// StatusUnrecognized.
func Parse(op Opcode, output string) Response {
	resp := Response{Status: StatusUnrecognized, Output: output}
	out := strings.TrimRight(output, "\r\n")

	switch op {
	case OpOrganiserSignup, OpCustomerSignup:
		if matches(reSignupOK, out) {
			resp.Status = StatusOK
			resp.ID = groupInt(reYourID, out, "id")
		}

	case OpOrganiserLogin, OpCustomerLogin:
		switch {
		case matches(reLoginOK, out):
			resp.Status = StatusOK
			resp.ID = groupInt(reLoginRow, out, "id")
			resp.Rows = rows(reLoginRow, out)
		case matches(reInvalidCreds, out):
			resp.Status = StatusRejected
		}

	case OpRegistrationsByEvent:
		resp.Rows = rows(reRegRow, out)
		if len(resp.Rows) > 0 || matches(reNoRegs, out) {
			resp.Status = StatusOK
		}

	case OpUpdateFeeStatus:
		switch {
		case matches(reFeeUpdated, out):
			resp.Status = StatusOK
		case matches(reRegNotFound, out):
			resp.Status = StatusNotFound
		}

	case OpAddRegistration:
		if matches(reRegistrationAdded, out) {
			resp.Status = StatusOK
		}

	case OpAddStaff:
		if matches(reStaffAdded, out) {
			resp.Status = StatusOK
			resp.ID = groupInt(reStaffID, out, "id")
		}

	case OpStaffByEvent:
		resp.Rows = rows(reStaffRow, out)
		if len(resp.Rows) > 0 || matches(reNoStaff, out) {
			resp.Status = StatusOK
		}

	case OpDeleteStaff, OpUpdateStaff:
		switch {
		case matches(reStaffDeleted, out), matches(reStaffUpdated, out):
			resp.Status = StatusOK
		case matches(reStaffNotFound, out):
			resp.Status = StatusNotFound
		}

	case OpAddVendor:
		if matches(reVendorAdded, out) {
			resp.Status = StatusOK
			resp.ID = groupInt(reVendorID, out, "id")
		}

	case OpVendorsByEvent:
		resp.Rows = rows(reVendorRow, out)
		if len(resp.Rows) > 0 || matches(reNoVendors, out) {
			resp.Status = StatusOK
		}

	case OpDeleteVendor, OpUpdateVendor:
		switch {
		case matches(reVendorDeleted, out), matches(reVendorUpdated, out):
			resp.Status = StatusOK
		case matches(reVendorNotFound, out):
			resp.Status = StatusNotFound
		}

	case OpStaffCount:
		if matches(reStaffCount, out) {
			resp.Status = StatusOK
			resp.Count = groupInt(reStaffCount, out, "count")
		}

	case OpVendorCount:
		if matches(reVendorCount, out) {
			resp.Status = StatusOK
			resp.Count = groupInt(reVendorCount, out, "count")
		}
	}

	return resp
}

package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Literal output captured from the console program.
func TestParseCharacterization(t *testing.T) {
	tests := []struct {
		name   string
		op     Opcode
		output string
		status Status
		id     int
		count  int
		rows   []Row
	}{
		{
			name:   "organiser signup",
			op:     OpOrganiserSignup,
			output: "ORGANISER registered successfully!\nYour ID: 583\n",
			status: StatusOK,
			id:     583,
		},
		{
			name:   "customer signup without id line",
			op:     OpCustomerSignup,
			output: "CUSTOMER registered successfully!\n",
			status: StatusOK,
		},
		{
			name:   "customer login",
			op:     OpCustomerLogin,
			output: "CUSTOMER LOGIN SUCCESS\nID: 412 Name: Alice Smith Email: alice@example.com\n",
			status: StatusOK,
			id:     412,
			rows:   []Row{{"id": "412", "name": "Alice Smith", "email": "alice@example.com"}},
		},
		{
			name:   "login rejected",
			op:     OpOrganiserLogin,
			output: "Invalid credentials\n",
			status: StatusRejected,
		},
		{
			name:   "add registration",
			op:     OpAddRegistration,
			output: "Registration added successfully!\n",
			status: StatusOK,
		},
		{
			name:   "fee status updated",
			op:     OpUpdateFeeStatus,
			output: "Fee Status Updated successfully!\n",
			status: StatusOK,
		},
		{
			name:   "fee status registration missing",
			op:     OpUpdateFeeStatus,
			output: "Registration not found\n",
			status: StatusNotFound,
		},
		{
			name:   "registrations by event",
			op:     OpRegistrationsByEvent,
			output: "CustID: 42 Name: Alice Email: alice@example.com Ticket: 10532 Status: Unpaid\nCustID: 7 Name: Unknown Email: unknown@email.com Ticket: 10533 Status: Paid\n",
			status: StatusOK,
			rows: []Row{
				{"customerId": "42", "name": "Alice", "email": "alice@example.com", "ticketNumber": "10532", "feeStatus": "Unpaid"},
				{"customerId": "7", "name": "Unknown", "email": "unknown@email.com", "ticketNumber": "10533", "feeStatus": "Paid"},
			},
		},
		{
			name:   "no registrations for event",
			op:     OpRegistrationsByEvent,
			output: "No registrations found for this event\n",
			status: StatusOK,
			rows:   []Row{},
		},
		{
			name:   "add staff",
			op:     OpAddStaff,
			output: "Staff member added successfully!\nStaff ID: 731\n",
			status: StatusOK,
			id:     731,
		},
		{
			name:   "add staff legacy output",
			op:     OpAddStaff,
			output: "Staff member added successfully!\n",
			status: StatusOK,
		},
		{
			name:   "staff by event",
			op:     OpStaffByEvent,
			output: "ID: 731 Name: Dana Email: dana@example.com Team: Ops Position: Lead\n",
			status: StatusOK,
			rows:   []Row{{"id": "731", "name": "Dana", "email": "dana@example.com", "team": "Ops", "position": "Lead"}},
		},
		{
			name:   "staff deleted",
			op:     OpDeleteStaff,
			output: "Staff Deleted successfully!\n",
			status: StatusOK,
		},
		{
			name:   "staff update missing",
			op:     OpUpdateStaff,
			output: "Staff not found\n",
			status: StatusNotFound,
		},
		{
			name:   "add vendor",
			op:     OpAddVendor,
			output: "Vendor added successfully!\nVendor ID: 204\n",
			status: StatusOK,
			id:     204,
		},
		{
			name:   "vendors by event",
			op:     OpVendorsByEvent,
			output: "ID: 204 Name: Food Co Email: food@example.com Product/Service: Catering Charges: 1250.5\r\n",
			status: StatusOK,
			rows:   []Row{{"id": "204", "name": "Food Co", "email": "food@example.com", "productService": "Catering", "chargesDue": "1250.5"}},
		},
		{
			name:   "vendor updated",
			op:     OpUpdateVendor,
			output: "Vendor Updated successfully!\n",
			status: StatusOK,
		},
		{
			name:   "vendor delete missing",
			op:     OpDeleteVendor,
			output: "Vendor not found\n",
			status: StatusNotFound,
		},
		{
			name:   "staff count",
			op:     OpStaffCount,
			output: "Staff Count: 3\n",
			status: StatusOK,
			count:  3,
		},
		{
			name:   "vendor count",
			op:     OpVendorCount,
			output: "Vendor Count: 0\n",
			status: StatusOK,
		},
		{
			name:   "empty output",
			op:     OpAddStaff,
			output: "",
			status: StatusUnrecognized,
		},
		{
			name:   "marker of another opcode",
			op:     OpAddVendor,
			output: "Staff member added successfully!\nStaff ID: 731\n",
			status: StatusUnrecognized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Parse(tt.op, tt.output)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.id, resp.ID)
			assert.Equal(t, tt.count, resp.Count)
			assert.Equal(t, tt.output, resp.Output)
			if tt.rows != nil {
				require.Len(t, resp.Rows, len(tt.rows))
				for i := range tt.rows {
					assert.Equal(t, tt.rows[i], resp.Rows[i])
				}
			}
		})
	}
}

func TestScript(t *testing.T) {
	assert.Equal(t,
		[]string{"13", "1", "Dana", "dana@example.com", "Ops", "Lead"},
		Script(AddStaff{EventID: 1, Name: "Dana", Email: "dana@example.com", Team: "Ops", Position: "Lead"}))
	assert.Equal(t,
		[]string{"20", "204", "Food Co", "food@example.com", "Catering", "1250.5"},
		Script(UpdateVendor{VendorID: 204, Name: "Food Co", Email: "food@example.com", ProductService: "Catering", ChargesDue: 1250.5}))
	assert.Equal(t,
		[]string{"11", "42", "1", "Paid"},
		Script(UpdateFeeStatus{CustomerID: 42, EventID: 1, FeeStatus: "Paid"}))
	assert.Equal(t, "staff_count", OpStaffCount.String())
	assert.Equal(t, "op_99", Opcode(99).String())
}

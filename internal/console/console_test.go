package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

func run(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Run(dir, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, &errOut)
	require.NoError(t, err)
	return out.String()
}

func TestSignupAndLogin(t *testing.T) {
	dir := t.TempDir()

	out := run(t, dir, "3", "Alice", "alice@example.com", "alice", "secret1")
	assert.Regexp(t, `^CUSTOMER registered successfully!\nYour ID: \d{3}\n$`, out)

	out = run(t, dir, "4", "alice", "secret1")
	assert.Regexp(t, `^CUSTOMER LOGIN SUCCESS\nID: \d{3} Name: Alice Email: alice@example\.com\n$`, out)

	out = run(t, dir, "4", "alice", "wrong")
	assert.Equal(t, "Invalid credentials\n", out)

	out = run(t, dir, "2", "alice", "secret1")
	assert.Equal(t, "Invalid credentials\n", out)
}

func TestLoginNonASCIIAndLongPassword(t *testing.T) {
	dir := t.TempDir()

	run(t, dir, "1", "Zoë", "zoe@example.com", "zoe", "mötleycrüe2024")
	out := run(t, dir, "2", "zoe", "mötleycrüe2024")
	assert.Contains(t, out, "ORGANISER LOGIN SUCCESS")

	// Only the first 19 bytes of a password are kept.
	run(t, dir, "1", "Yan", "yan@example.com", "yan", "abcdefghijklmnopqr99extra")
	out = run(t, dir, "2", "yan", "abcdefghijklmnopqr99extra")
	assert.Contains(t, out, "ORGANISER LOGIN SUCCESS")
}

func TestStaffLifecycle(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, "No staff found\n", run(t, dir, "14", "1"))

	out := run(t, dir, "13", "1", "Dana", "dana@example.com", "Ops", "Lead")
	require.Regexp(t, `^Staff member added successfully!\nStaff ID: \d{3}\n$`, out)
	id := strings.TrimPrefix(strings.Split(out, "\n")[1], "Staff ID: ")

	out = run(t, dir, "14", "1")
	assert.Equal(t, "ID: "+id+" Name: Dana Email: dana@example.com Team: Ops Position: Lead\n", out)
	assert.Equal(t, "No staff found for this event\n", run(t, dir, "14", "2"))
	assert.Equal(t, "Staff Count: 1\n", run(t, dir, "21", "1"))

	assert.Equal(t, "Staff Updated successfully!\n", run(t, dir, "19", id, "Dana R", "dana@example.com", "Ops", "Head"))
	assert.Contains(t, run(t, dir, "14", "1"), "Name: Dana R")

	assert.Equal(t, "Staff Deleted successfully!\n", run(t, dir, "15", id))
	assert.Equal(t, "Staff not found\n", run(t, dir, "15", id))
	assert.Equal(t, "Staff Count: 0\n", run(t, dir, "21", "1"))
}

func TestVendorCharges(t *testing.T) {
	dir := t.TempDir()

	out := run(t, dir, "16", "1", "Food Co", "food@example.com", "Catering", "1250.5")
	require.Regexp(t, `^Vendor added successfully!\nVendor ID: \d{3}\n$`, out)

	out = run(t, dir, "17", "1")
	assert.Regexp(t, `^ID: \d{3} Name: Food Co Email: food@example\.com Product/Service: Catering Charges: 1250\.5\n$`, out)
	assert.Equal(t, "Vendor Count: 1\n", run(t, dir, "22", "1"))
}

func TestRegistrations(t *testing.T) {
	dir := t.TempDir()
	store, err := dao.Open(dir, dao.LayoutV2)
	require.NoError(t, err)
	require.NoError(t, store.Customers.Append(dao.User{ID: 42, Name: "Alice", Email: "alice@example.com", Username: "alice"}))

	assert.Equal(t, "No registrations found\n", run(t, dir, "10", "1"))
	assert.Equal(t, "Registration added successfully!\n", run(t, dir, "12", "42", "1", "10532", "Unpaid"))
	assert.Equal(t, "Registration added successfully!\n", run(t, dir, "12", "7", "1", "10533", "Unpaid"))

	out := run(t, dir, "10", "1")
	assert.Equal(t,
		"CustID: 42 Name: Alice Email: alice@example.com Ticket: 10532 Status: Unpaid\n"+
			"CustID: 7 Name: Unknown Email: unknown@email.com Ticket: 10533 Status: Unpaid\n",
		out)

	assert.Equal(t, "Fee Status Updated successfully!\n", run(t, dir, "11", "42", "1", "Paid"))
	assert.Equal(t, "Registration not found\n", run(t, dir, "11", "42", "2", "Paid"))

	reg, err := store.Registrations.FindByID(10532)
	require.NoError(t, err)
	assert.Equal(t, "Paid", reg.FeeStatus)
}

func TestUnknownOpcodePrintsNothing(t *testing.T) {
	assert.Empty(t, run(t, t.TempDir(), "99"))
}

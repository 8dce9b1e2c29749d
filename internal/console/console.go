// Package console is a reference implementation of the opcode protocol the
// bridge speaks. It reads and writes the same .dat files as the legacy console
// program and prints the same labels, so the rest of the system can run and be
// tested without that binary.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/vietanh2810/eventdesk/internal/bridge"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

type Console struct {
	store  *dao.Store
	in     *bufio.Scanner
	out    io.Writer
	errOut io.Writer
	rnd    *rand.Rand
}

func New(store *dao.Store, in io.Reader, out, errOut io.Writer) *Console {
	return &Console{
		store:  store,
		in:     bufio.NewScanner(in),
		out:    out,
		errOut: errOut,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run serves exactly one operation from in, the way the legacy program does
// per process start.
func Run(dataDir string, in io.Reader, out, errOut io.Writer) error {
	store, err := dao.Open(dataDir, dao.LayoutV2)
	if err != nil {
		return err
	}
	return New(store, in, out, errOut).Serve()
}

func (c *Console) Serve() error {
	op, err := c.readInt()
	if err != nil {
		return fmt.Errorf("read opcode -> %w", err)
	}

	switch bridge.Opcode(op) {
	case bridge.OpOrganiserSignup:
		return c.signup(c.store.Organisers, "ORGANISER")
	case bridge.OpOrganiserLogin:
		return c.login(c.store.Organisers, "ORGANISER")
	case bridge.OpCustomerSignup:
		return c.signup(c.store.Customers, "CUSTOMER")
	case bridge.OpCustomerLogin:
		return c.login(c.store.Customers, "CUSTOMER")
	case bridge.OpRegistrationsByEvent:
		return c.registrationsByEvent()
	case bridge.OpUpdateFeeStatus:
		return c.updateFeeStatus()
	case bridge.OpAddRegistration:
		return c.addRegistration()
	case bridge.OpAddStaff:
		return c.addStaff()
	case bridge.OpStaffByEvent:
		return c.staffByEvent()
	case bridge.OpDeleteStaff:
		return c.deleteStaff()
	case bridge.OpUpdateStaff:
		return c.updateStaff()
	case bridge.OpAddVendor:
		return c.addVendor()
	case bridge.OpVendorsByEvent:
		return c.vendorsByEvent()
	case bridge.OpDeleteVendor:
		return c.deleteVendor()
	case bridge.OpUpdateVendor:
		return c.updateVendor()
	case bridge.OpStaffCount:
		return c.staffCount()
	case bridge.OpVendorCount:
		return c.vendorCount()
	}
	// Unknown opcodes print nothing, like the legacy program.
	return nil
}

func (c *Console) readLine() string {
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimRight(c.in.Text(), "\r")
}

func (c *Console) readInt() (int, error) {
	s := strings.TrimSpace(c.readLine())
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("strconv.Atoi(%q) -> %w", s, err)
	}
	return n, nil
}

func (c *Console) readFloat() (float32, error) {
	s := strings.TrimSpace(c.readLine())
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("strconv.ParseFloat(%q) -> %w", s, err)
	}
	return float32(f), nil
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) debugf(format string, a ...any) {
	fmt.Fprintf(c.errOut, "DEBUG: "+format+"\n", a...)
}

func (c *Console) newID(keys func() ([]int32, error)) (int32, error) {
	taken, err := keys()
	if err != nil {
		return 0, err
	}
	return dao.NextKey(taken, dao.IDMin, dao.IDMax, c.rnd)
}

func (c *Console) signup(table *dao.Table[dao.User], label string) error {
	id, err := c.newID(table.Keys)
	if err != nil {
		return err
	}
	u := dao.User{
		ID:       id,
		Name:     c.readLine(),
		Email:    c.readLine(),
		Username: c.readLine(),
		Password: c.readLine(),
	}
	if err := table.Append(u); err != nil {
		return err
	}
	c.printf("%s registered successfully!\n", label)
	c.printf("Your ID: %d\n", id)
	return nil
}

// login compares credentials in the form the 20-byte fields hold them.
func (c *Console) login(table *dao.Table[dao.User], label string) error {
	username := dao.StoredText(c.readLine(), dao.ShortText)
	password := dao.StoredText(c.readLine(), dao.ShortText)
	all, err := table.ReadAll()
	if err != nil {
		return err
	}
	for _, u := range all {
		if u.Username == username && u.Password == password {
			c.printf("%s LOGIN SUCCESS\n", label)
			c.printf("ID: %d Name: %s Email: %s\n", u.ID, u.Name, u.Email)
			return nil
		}
	}
	c.println("Invalid credentials")
	return nil
}

func (c *Console) registrationsByEvent() error {
	eventID, err := c.readInt()
	if err != nil {
		return err
	}
	regs, err := c.store.Registrations.ReadAll()
	if err != nil {
		return err
	}
	if len(regs) == 0 {
		c.println("No registrations found")
		return nil
	}
	found := false
	for _, r := range regs {
		if r.EventID != int32(eventID) {
			continue
		}
		name, email := "Unknown", "unknown@email.com"
		cust, err := c.store.Customers.FindByID(r.CustomerID)
		switch {
		case err == nil:
			name, email = cust.Name, cust.Email
		case !errors.Is(err, dao.ErrRecordNotFound):
			return err
		}
		c.debugf("Lookup for custID %d, found: %t", r.CustomerID, err == nil)
		c.printf("CustID: %d Name: %s Email: %s Ticket: %d Status: %s\n",
			r.CustomerID, name, email, r.TicketNumber, r.FeeStatus)
		found = true
	}
	if !found {
		c.println("No registrations found for this event")
	}
	return nil
}

func (c *Console) updateFeeStatus() error {
	custID, err := c.readInt()
	if err != nil {
		return err
	}
	eventID, err := c.readInt()
	if err != nil {
		return err
	}
	status := c.readLine()

	regs, err := c.store.Registrations.ReadAll()
	if err != nil {
		return err
	}
	found := false
	for i := range regs {
		if regs[i].CustomerID == int32(custID) && regs[i].EventID == int32(eventID) {
			regs[i].FeeStatus = status
			found = true
		}
	}
	if !found {
		c.println("Registration not found")
		return nil
	}
	if err := c.store.Registrations.Rewrite(regs); err != nil {
		return err
	}
	c.println("Fee Status Updated successfully!")
	return nil
}

func (c *Console) addRegistration() error {
	custID, err := c.readInt()
	if err != nil {
		return err
	}
	eventID, err := c.readInt()
	if err != nil {
		return err
	}
	ticket, err := c.readInt()
	if err != nil {
		return err
	}
	reg := dao.Registration{
		CustomerID:   int32(custID),
		EventID:      int32(eventID),
		TicketNumber: int32(ticket),
		FeeStatus:    c.readLine(),
	}
	if err := c.store.Registrations.Append(reg); err != nil {
		return err
	}
	c.println("Registration added successfully!")
	return nil
}

func (c *Console) addStaff() error {
	id, err := c.newID(c.store.Staff.Keys)
	if err != nil {
		return err
	}
	eventID, err := c.readInt()
	if err != nil {
		return err
	}
	s := dao.Staff{
		ID:       id,
		EventID:  int32(eventID),
		Name:     c.readLine(),
		Email:    c.readLine(),
		Team:     c.readLine(),
		Position: c.readLine(),
	}
	if err := c.store.Staff.Append(s); err != nil {
		return err
	}
	c.println("Staff member added successfully!")
	c.printf("Staff ID: %d\n", id)
	return nil
}

func (c *Console) staffByEvent() error {
	eventID, err := c.readInt()
	if err != nil {
		return err
	}
	all, err := c.store.Staff.ReadAll()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		c.println("No staff found")
		return nil
	}
	found := false
	for _, s := range all {
		if s.EventID == int32(eventID) {
			c.printf("ID: %d Name: %s Email: %s Team: %s Position: %s\n", s.ID, s.Name, s.Email, s.Team, s.Position)
			found = true
		}
	}
	if !found {
		c.println("No staff found for this event")
	}
	return nil
}

func (c *Console) deleteStaff() error {
	id, err := c.readInt()
	if err != nil {
		return err
	}
	all, err := c.store.Staff.ReadAll()
	if err != nil {
		return err
	}
	kept := make([]dao.Staff, 0, len(all))
	for _, s := range all {
		if s.ID != int32(id) {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(all) {
		c.println("Staff not found")
		return nil
	}
	if err := c.store.Staff.Rewrite(kept); err != nil {
		return err
	}
	c.println("Staff Deleted successfully!")
	return nil
}

func (c *Console) updateStaff() error {
	id, err := c.readInt()
	if err != nil {
		return err
	}
	all, err := c.store.Staff.ReadAll()
	if err != nil {
		return err
	}
	name, email, team, position := c.readLine(), c.readLine(), c.readLine(), c.readLine()
	found := false
	for i := range all {
		if all[i].ID == int32(id) {
			all[i].Name, all[i].Email, all[i].Team, all[i].Position = name, email, team, position
			found = true
		}
	}
	if !found {
		c.println("Staff not found")
		return nil
	}
	if err := c.store.Staff.Rewrite(all); err != nil {
		return err
	}
	c.println("Staff Updated successfully!")
	return nil
}

func (c *Console) addVendor() error {
	id, err := c.newID(c.store.Vendors.Keys)
	if err != nil {
		return err
	}
	eventID, err := c.readInt()
	if err != nil {
		return err
	}
	v := dao.Vendor{
		ID:             id,
		EventID:        int32(eventID),
		Name:           c.readLine(),
		Email:          c.readLine(),
		ProductService: c.readLine(),
	}
	if v.ChargesDue, err = c.readFloat(); err != nil {
		return err
	}
	if err := c.store.Vendors.Append(v); err != nil {
		return err
	}
	c.println("Vendor added successfully!")
	c.printf("Vendor ID: %d\n", id)
	return nil
}

func (c *Console) vendorsByEvent() error {
	eventID, err := c.readInt()
	if err != nil {
		return err
	}
	all, err := c.store.Vendors.ReadAll()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		c.println("No vendors found")
		return nil
	}
	found := false
	for _, v := range all {
		if v.EventID == int32(eventID) {
			c.printf("ID: %d Name: %s Email: %s Product/Service: %s Charges: %s\n",
				v.ID, v.Name, v.Email, v.ProductService, bridge.FormatCharges(v.ChargesDue))
			found = true
		}
	}
	if !found {
		c.println("No vendors found for this event")
	}
	return nil
}

func (c *Console) deleteVendor() error {
	id, err := c.readInt()
	if err != nil {
		return err
	}
	all, err := c.store.Vendors.ReadAll()
	if err != nil {
		return err
	}
	kept := make([]dao.Vendor, 0, len(all))
	for _, v := range all {
		if v.ID != int32(id) {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(all) {
		c.println("Vendor not found")
		return nil
	}
	if err := c.store.Vendors.Rewrite(kept); err != nil {
		return err
	}
	c.println("Vendor Deleted successfully!")
	return nil
}

func (c *Console) updateVendor() error {
	id, err := c.readInt()
	if err != nil {
		return err
	}
	all, err := c.store.Vendors.ReadAll()
	if err != nil {
		return err
	}
	name, email, product := c.readLine(), c.readLine(), c.readLine()
	charges, err := c.readFloat()
	if err != nil {
		return err
	}
	found := false
	for i := range all {
		if all[i].ID == int32(id) {
			all[i].Name, all[i].Email, all[i].ProductService, all[i].ChargesDue = name, email, product, charges
			found = true
		}
	}
	if !found {
		c.println("Vendor not found")
		return nil
	}
	if err := c.store.Vendors.Rewrite(all); err != nil {
		return err
	}
	c.println("Vendor Updated successfully!")
	return nil
}

func (c *Console) staffCount() error {
	eventID, err := c.readInt()
	if err != nil {
		return err
	}
	found, err := c.store.Staff.Filter(func(s dao.Staff) bool { return s.EventID == int32(eventID) })
	if err != nil {
		return err
	}
	c.printf("Staff Count: %d\n", len(found))
	return nil
}

func (c *Console) vendorCount() error {
	eventID, err := c.readInt()
	if err != nil {
		return err
	}
	found, err := c.store.Vendors.Filter(func(v dao.Vendor) bool { return v.EventID == int32(eventID) })
	if err != nil {
		return err
	}
	c.printf("Vendor Count: %d\n", len(found))
	return nil
}

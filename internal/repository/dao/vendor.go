package dao

import "strconv"

type Vendor struct {
	ID             int32
	EventID        int32
	Name           string
	Email          string
	ProductService string
	ChargesDue     float32
}

func (v Vendor) Key() int32 { return v.ID }

func (v Vendor) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(int(v.ID)), true
	case "eventId":
		return strconv.Itoa(int(v.EventID)), true
	case "name":
		return v.Name, true
	case "email":
		return v.Email, true
	case "productService":
		return v.ProductService, true
	case "chargesDue":
		return strconv.FormatFloat(float64(v.ChargesDue), 'g', -1, 32), true
	}
	return "", false
}

type vendorRaw struct {
	ID             int32
	EventID        int32
	Name           [50]byte
	Email          [50]byte
	ProductService [50]byte
	_              [2]byte
	ChargesDue     float32
}

var vendorCodec = newRawCodec(
	func(v Vendor) vendorRaw {
		return vendorRaw{
			ID:             v.ID,
			EventID:        v.EventID,
			Name:           fixed50(v.Name),
			Email:          fixed50(v.Email),
			ProductService: fixed50(v.ProductService),
			ChargesDue:     v.ChargesDue,
		}
	},
	func(r *vendorRaw) Vendor {
		return Vendor{
			ID:             r.ID,
			EventID:        r.EventID,
			Name:           getString(r.Name[:]),
			Email:          getString(r.Email[:]),
			ProductService: getString(r.ProductService[:]),
			ChargesDue:     r.ChargesDue,
		}
	},
)

func VendorCodec() Codec[Vendor] { return vendorCodec }

package domain

type Vendor struct {
	ID             int     `json:"id"`
	EventID        int     `json:"eventId"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	ProductService string  `json:"productService"`
	ChargesDue     float32 `json:"chargesDue"`
}

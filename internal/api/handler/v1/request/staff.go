package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/eventdesk/internal/service"
)

type StaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Team     string `json:"team"`
	Position string `json:"position"`
}

func (req *StaffRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Team, validation.Required),
		validation.Field(&req.Position, validation.Required),
	)
}

func (req *StaffRequest) Input() service.StaffInput {
	return service.StaffInput{Name: req.Name, Email: req.Email, Team: req.Team, Position: req.Position}
}

type VendorRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	ProductService string  `json:"productService"`
	ChargesDue     float32 `json:"chargesDue"`
}

func (req *VendorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.ProductService, validation.Required),
		validation.Field(&req.ChargesDue, validation.Min(float32(0))),
	)
}

func (req *VendorRequest) Input() service.VendorInput {
	return service.VendorInput{
		Name:           req.Name,
		Email:          req.Email,
		ProductService: req.ProductService,
		ChargesDue:     req.ChargesDue,
	}
}

type FeeStatusRequest struct {
	FeeStatus string `json:"feeStatus" enums:"Paid,Unpaid"`
}

func (req *FeeStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FeeStatus, validation.Required, validation.In("Paid", "Unpaid")),
	)
}

package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/volleyhub/registration-api/internal/domain"
)

type CreateRegistrationRequest struct {
	TeamID string `json:"teamId"`
}

func (req *CreateRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeamID, validation.Required, is.UUID),
	)
}

type UpdateRegistrationRequest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

func (req *UpdateRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.In(
			string(domain.RegistrationPending),
			string(domain.RegistrationApproved),
			string(domain.RegistrationRejected),
			string(domain.RegistrationWaitlisted),
		)),
		validation.Field(&req.PaymentStatus, validation.In(string(domain.PaymentUnpaid), string(domain.PaymentPaid))),
	)
}

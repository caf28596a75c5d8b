package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/volleyhub/registration-api/internal/domain"
)

var (
	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Login, validation.Required, validation.Length(3, 255)),
		validation.Field(&req.Password, validation.Required),
	)
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (req *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Username, validation.Required, validation.Length(3, 50), is.Alphanumeric),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.By(checkPassword)),
		validation.Field(&req.Role, validation.In(string(domain.RoleUser), string(domain.RoleAdministrator))),
	)
}

func (req *CreateUserRequest) ToDomain() domain.User {
	return domain.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	}
}

func checkPassword(value interface{}) error {
	password, _ := value.(string)
	if !domain.PasswordAcceptable(password) {
		return errInvalidPassword
	}
	return nil
}

package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/volleyhub/registration-api/internal/domain"
)

var errLabelRequired = errors.New("is required when documentType is Lainnya")

type PlayerRequest struct {
	Name        string `form:"name" json:"name"`
	JerseyName  string `form:"jerseyName" json:"jerseyName"`
	NoJersey    *int   `form:"noJersey" json:"noJersey"`
	BirthPlace  string `form:"birthPlace" json:"birthPlace"`
	BirthDate   string `form:"birthDate" json:"birthDate"`
	HeightCm    int    `form:"heightCm" json:"heightCm"`
	WeightKg    int    `form:"weightKg" json:"weightKg"`
	Position    string `form:"position" json:"position"`
	NIK         string `form:"nik" json:"nik"`
	NISN        string `form:"nisn" json:"nisn"`
	SchoolName  string `form:"schoolName" json:"schoolName"`
	SchoolClass string `form:"schoolClass" json:"schoolClass"`
}

func (req *PlayerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.JerseyName, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.NoJersey, validation.NotNil, validation.Min(0), validation.Max(99)),
		validation.Field(&req.BirthPlace, validation.Length(0, 100)),
		validation.Field(&req.BirthDate, validation.Required, validation.Date(dateLayout)),
		validation.Field(&req.HeightCm, validation.Min(0), validation.Max(260)),
		validation.Field(&req.WeightKg, validation.Min(0), validation.Max(250)),
		validation.Field(&req.Position, validation.Required, validation.In(in(domain.Positions)...)),
		validation.Field(&req.NIK, validation.Match(nikPattern)),
		validation.Field(&req.NISN, validation.Match(nisnPattern)),
		validation.Field(&req.SchoolName, validation.Length(0, 150)),
		validation.Field(&req.SchoolClass, validation.Length(0, 20)),
	)
}

func (req *PlayerRequest) ToDomain() domain.Player {
	player := domain.Player{
		Name:        req.Name,
		JerseyName:  req.JerseyName,
		BirthPlace:  req.BirthPlace,
		BirthDate:   mustDate(req.BirthDate),
		HeightCm:    req.HeightCm,
		WeightKg:    req.WeightKg,
		Position:    domain.Position(req.Position),
		NIK:         optional(req.NIK),
		NISN:        optional(req.NISN),
		SchoolName:  req.SchoolName,
		SchoolClass: req.SchoolClass,
	}
	if req.NoJersey != nil {
		player.NoJersey = *req.NoJersey
	}

	return player
}

type OfficialRequest struct {
	Name   string `form:"name" json:"name"`
	Posisi string `form:"posisi" json:"posisi"`
	Phone  string `form:"phone" json:"phone"`
}

func (req *OfficialRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Posisi, validation.Required, validation.In(in(domain.OfficialPositions)...)),
		validation.Field(&req.Phone, validation.Match(phonePattern)),
	)
}

func (req *OfficialRequest) ToDomain() domain.Official {
	return domain.Official{
		Name:   req.Name,
		Posisi: domain.OfficialPosition(req.Posisi),
		Phone:  req.Phone,
	}
}

type JerseyRequest struct {
	PrimaryColor   *string `json:"primaryColor"`
	SecondaryColor *string `json:"secondaryColor"`
	TertiaryColor  *string `json:"tertiaryColor"`
}

func (req *JerseyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PrimaryColor, validation.Match(colorPattern)),
		validation.Field(&req.SecondaryColor, validation.Match(colorPattern)),
		validation.Field(&req.TertiaryColor, validation.Match(colorPattern)),
	)
}

func (req *JerseyRequest) ToDomain() domain.TeamJersey {
	return domain.TeamJersey{
		Primary:   req.PrimaryColor,
		Secondary: req.SecondaryColor,
		Tertiary:  req.TertiaryColor,
	}
}

type DocumentRequest struct {
	DocumentType  string `form:"documentType" json:"documentType"`
	DocumentLabel string `form:"documentLabel" json:"documentLabel"`
}

func (req *DocumentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DocumentType, validation.Required, validation.In(in(domain.DocumentTypes)...)),
		validation.Field(&req.DocumentLabel, validation.Length(0, 100), validation.By(func(value interface{}) error {
			label, _ := value.(string)
			if domain.DocumentType(req.DocumentType) == domain.DocumentOther && label == "" {
				return errLabelRequired
			}
			return nil
		})),
	)
}

func (req *DocumentRequest) ToDomain() domain.Document {
	return domain.Document{
		DocumentType:  domain.DocumentType(req.DocumentType),
		DocumentLabel: req.DocumentLabel,
	}
}

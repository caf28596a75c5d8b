package request

import (
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volleyhub/registration-api/internal/domain"
)

func intPtr(n int) *int {
	return &n
}

func strPtr(s string) *string {
	return &s
}

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()

	require.Error(t, err)
	errs, ok := err.(validation.Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	return errs
}

func validPlayer() PlayerRequest {
	return PlayerRequest{
		Name:       "Dimas Pratama",
		JerseyName: "DIMAS",
		NoJersey:   intPtr(12),
		BirthDate:  "2007-11-02",
		Position:   string(domain.PositionLibero),
	}
}

func TestPlayerRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlayerRequest)
		field  string
	}{
		{"missing jersey number", func(r *PlayerRequest) { r.NoJersey = nil }, "noJersey"},
		{"jersey number above 99", func(r *PlayerRequest) { r.NoJersey = intPtr(100) }, "noJersey"},
		{"negative jersey number", func(r *PlayerRequest) { r.NoJersey = intPtr(-1) }, "noJersey"},
		{"short nik", func(r *PlayerRequest) { r.NIK = "320123456789012" }, "nik"},
		{"letters in nisn", func(r *PlayerRequest) { r.NISN = "00123abc45" }, "nisn"},
		{"unknown position", func(r *PlayerRequest) { r.Position = "Striker" }, "position"},
		{"bad birth date", func(r *PlayerRequest) { r.BirthDate = "02/11/2007" }, "birthDate"},
		{"negative height", func(r *PlayerRequest) { r.HeightCm = -3 }, "heightCm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPlayer()
			tt.mutate(&req)

			assert.Contains(t, fieldErrors(t, req.Validate()), tt.field)
		})
	}

	t.Run("valid with jersey zero", func(t *testing.T) {
		req := validPlayer()
		req.NoJersey = intPtr(0)
		req.NIK = "3201234567890123"
		require.NoError(t, req.Validate())

		player := req.ToDomain()
		assert.Equal(t, 0, player.NoJersey)
		assert.Equal(t, "3201234567890123", *player.NIK)
		assert.Nil(t, player.NISN)
		assert.Equal(t, time.Date(2007, 11, 2, 0, 0, 0, 0, time.UTC), player.BirthDate)
	})
}

func TestOfficialRequest(t *testing.T) {
	req := OfficialRequest{Name: "Budi", Posisi: string(domain.OfficialCoach), Phone: "+6281234567890"}
	require.NoError(t, req.Validate())

	req.Phone = "call me"
	assert.Contains(t, fieldErrors(t, req.Validate()), "phone")

	req = OfficialRequest{Name: "Budi", Posisi: "Kapten"}
	assert.Contains(t, fieldErrors(t, req.Validate()), "posisi")
}

func TestJerseyRequest(t *testing.T) {
	req := JerseyRequest{PrimaryColor: strPtr("#1A2b3C")}
	require.NoError(t, req.Validate())

	req.SecondaryColor = strPtr("red")
	assert.Contains(t, fieldErrors(t, req.Validate()), "secondaryColor")

	require.NoError(t, (&JerseyRequest{}).Validate())
}

func TestDocumentRequest(t *testing.T) {
	req := DocumentRequest{DocumentType: string(domain.DocumentOther)}
	assert.Contains(t, fieldErrors(t, req.Validate()), "documentLabel")

	req.DocumentLabel = "Surat rekomendasi"
	require.NoError(t, req.Validate())

	req = DocumentRequest{DocumentType: string(domain.DocumentIDCard)}
	require.NoError(t, req.Validate())

	req = DocumentRequest{DocumentType: "Paspor"}
	assert.Contains(t, fieldErrors(t, req.Validate()), "documentType")
}

func TestCreateUserRequestPassword(t *testing.T) {
	req := CreateUserRequest{Name: "Sekretaris", Username: "sekretaris", Email: "sek@volley.test", Password: "password"}
	assert.Contains(t, fieldErrors(t, req.Validate()), "password")

	req.Password = "password1"
	errs, _ := req.Validate().(validation.Errors)
	assert.NotContains(t, errs, "password")

	req.Role = "superuser"
	assert.Contains(t, fieldErrors(t, req.Validate()), "role")
}

func TestTournamentRequest(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	req := TournamentRequest{
		Name:                 "Piala Walikota",
		Category:             string(domain.CategoryMixed),
		Location:             "GOR Bandung",
		StartDate:            start,
		EndDate:              start.AddDate(0, 0, 7),
		RegistrationDeadline: start.AddDate(0, 0, -14),
		MaxPlayersPerTeam:    14,
	}
	require.NoError(t, req.Validate())

	req.MaxPlayersPerTeam = 0
	req.EntryFee = -1
	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "maxPlayersPerTeam")
	assert.Contains(t, errs, "entryFee")
}

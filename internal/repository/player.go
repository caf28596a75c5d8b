package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository/dao"
)

type PlayerDAO interface {
	Insert(ctx context.Context, player dao.Player) (dao.Player, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Player, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]dao.Player, error)
	CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
	Update(ctx context.Context, player dao.Player) (dao.Player, error)
	JerseyNumberTaken(ctx context.Context, teamID uuid.UUID, number int, excludeID uuid.UUID) (bool, error)
	NIKTaken(ctx context.Context, nik string, excludeID uuid.UUID) (bool, error)
	NISNTaken(ctx context.Context, nisn string, excludeID uuid.UUID) (bool, error)
	InsertDocument(ctx context.Context, document dao.Document) (dao.Document, error)
	ListDocuments(ctx context.Context, playerID uuid.UUID) ([]dao.Document, error)
}

type PlayerRepository struct {
	dao PlayerDAO
}

func NewPlayerRepository(dao PlayerDAO) *PlayerRepository {
	return &PlayerRepository{
		dao: dao,
	}
}

func (r *PlayerRepository) Create(ctx context.Context, player domain.Player) (domain.Player, error) {
	created, err := r.dao.Insert(ctx, playerDomainToDao(player))
	if err != nil {
		return domain.Player{}, fmt.Errorf("r.dao.Insert -> %w", asConflict(err, "player", playerFieldValue(player)))
	}

	return playerDaoToDomain(created), nil
}

func (r *PlayerRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Player, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Player{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return playerDaoToDomain(found), nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Player, error) {
	found, err := r.dao.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByTeam -> %w", err)
	}

	players := make([]domain.Player, 0, len(found))
	for _, p := range found {
		players = append(players, playerDaoToDomain(p))
	}

	return players, nil
}

func (r *PlayerRepository) CountByTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	n, err := r.dao.CountByTeam(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByTeam -> %w", err)
	}

	return int(n), nil
}

func (r *PlayerRepository) Update(ctx context.Context, player domain.Player) (domain.Player, error) {
	updated, err := r.dao.Update(ctx, playerDomainToDao(player))
	if err != nil {
		return domain.Player{}, fmt.Errorf("r.dao.Update -> %w", asConflict(err, "player", playerFieldValue(player)))
	}

	return playerDaoToDomain(updated), nil
}

func (r *PlayerRepository) JerseyNumberTaken(ctx context.Context, teamID uuid.UUID, number int, excludeID uuid.UUID) (bool, error) {
	taken, err := r.dao.JerseyNumberTaken(ctx, teamID, number, excludeID)
	if err != nil {
		return false, fmt.Errorf("r.dao.JerseyNumberTaken -> %w", err)
	}

	return taken, nil
}

func (r *PlayerRepository) NIKTaken(ctx context.Context, nik string, excludeID uuid.UUID) (bool, error) {
	taken, err := r.dao.NIKTaken(ctx, nik, excludeID)
	if err != nil {
		return false, fmt.Errorf("r.dao.NIKTaken -> %w", err)
	}

	return taken, nil
}

func (r *PlayerRepository) NISNTaken(ctx context.Context, nisn string, excludeID uuid.UUID) (bool, error) {
	taken, err := r.dao.NISNTaken(ctx, nisn, excludeID)
	if err != nil {
		return false, fmt.Errorf("r.dao.NISNTaken -> %w", err)
	}

	return taken, nil
}

func (r *PlayerRepository) CreateDocument(ctx context.Context, document domain.Document) (domain.Document, error) {
	created, err := r.dao.InsertDocument(ctx, dao.Document{
		PlayerID:      document.PlayerID,
		DocumentType:  string(document.DocumentType),
		DocumentLabel: document.DocumentLabel,
		FileName:      document.FileName,
		FileURL:       document.FileURL,
		FileSize:      document.FileSize,
		MimeType:      document.MimeType,
	})
	if err != nil {
		return domain.Document{}, fmt.Errorf("r.dao.InsertDocument -> %w", err)
	}

	return documentDaoToDomain(created), nil
}

func (r *PlayerRepository) ListDocuments(ctx context.Context, playerID uuid.UUID) ([]domain.Document, error) {
	found, err := r.dao.ListDocuments(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListDocuments -> %w", err)
	}

	documents := make([]domain.Document, 0, len(found))
	for _, d := range found {
		documents = append(documents, documentDaoToDomain(d))
	}

	return documents, nil
}

func playerFieldValue(p domain.Player) func(string) string {
	return func(field string) string {
		switch field {
		case "noJersey":
			return strconv.Itoa(p.NoJersey)
		case "nik":
			return deref(p.NIK)
		case "nisn":
			return deref(p.NISN)
		}
		return ""
	}
}

func playerDomainToDao(p domain.Player) dao.Player {
	return dao.Player{
		ID:          p.ID,
		TeamID:      p.TeamID,
		Name:        p.Name,
		JerseyName:  p.JerseyName,
		NoJersey:    p.NoJersey,
		BirthPlace:  p.BirthPlace,
		BirthDate:   p.BirthDate,
		HeightCm:    p.HeightCm,
		WeightKg:    p.WeightKg,
		Position:    string(p.Position),
		NIK:         p.NIK,
		NISN:        p.NISN,
		SchoolName:  p.SchoolName,
		SchoolClass: p.SchoolClass,
		PhotoURL:    p.PhotoURL,
	}
}

func playerDaoToDomain(p dao.Player) domain.Player {
	return domain.Player{
		ID:          p.ID,
		TeamID:      p.TeamID,
		Name:        p.Name,
		JerseyName:  p.JerseyName,
		NoJersey:    p.NoJersey,
		BirthPlace:  p.BirthPlace,
		BirthDate:   p.BirthDate,
		HeightCm:    p.HeightCm,
		WeightKg:    p.WeightKg,
		Position:    domain.Position(p.Position),
		NIK:         p.NIK,
		NISN:        p.NISN,
		SchoolName:  p.SchoolName,
		SchoolClass: p.SchoolClass,
		PhotoURL:    p.PhotoURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func documentDaoToDomain(d dao.Document) domain.Document {
	return domain.Document{
		ID:            d.ID,
		PlayerID:      d.PlayerID,
		DocumentType:  domain.DocumentType(d.DocumentType),
		DocumentLabel: d.DocumentLabel,
		FileName:      d.FileName,
		FileURL:       d.FileURL,
		FileSize:      d.FileSize,
		MimeType:      d.MimeType,
		CreatedAt:     d.CreatedAt,
	}
}

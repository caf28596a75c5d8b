package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/cascade"
	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository"
)

var (
	ErrPlayerNotFound   = repository.ErrPlayerNotFound
	ErrOfficialNotFound = repository.ErrOfficialNotFound
	ErrJerseyNotFound   = repository.ErrJerseyNotFound

	ErrRosterFull            = errors.New("team roster is full")
	ErrUnsupportedFileType   = errors.New("file type is not allowed")
	ErrFileTooLarge          = errors.New("file is too large")
	ErrDocumentLabelRequired = errors.New("documentLabel is required for this document type")
)

type RosterTeamRepository interface {
	FindByToken(ctx context.Context, token string) (domain.Team, error)
	FindRoster(ctx context.Context, id uuid.UUID) (domain.TeamRoster, error)
}

type PlayerRepository interface {
	Create(ctx context.Context, player domain.Player) (domain.Player, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Player, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Player, error)
	CountByTeam(ctx context.Context, teamID uuid.UUID) (int, error)
	Update(ctx context.Context, player domain.Player) (domain.Player, error)
	JerseyNumberTaken(ctx context.Context, teamID uuid.UUID, number int, excludeID uuid.UUID) (bool, error)
	NIKTaken(ctx context.Context, nik string, excludeID uuid.UUID) (bool, error)
	NISNTaken(ctx context.Context, nisn string, excludeID uuid.UUID) (bool, error)
	CreateDocument(ctx context.Context, document domain.Document) (domain.Document, error)
	ListDocuments(ctx context.Context, playerID uuid.UUID) ([]domain.Document, error)
}

type OfficialRepository interface {
	Create(ctx context.Context, official domain.Official) (domain.Official, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Official, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Official, error)
	Update(ctx context.Context, official domain.Official) (domain.Official, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PositionTaken(ctx context.Context, teamID uuid.UUID, posisi domain.OfficialPosition, excludeID uuid.UUID) (bool, error)
}

type JerseyRepository interface {
	Save(ctx context.Context, jersey domain.TeamJersey) (domain.TeamJersey, error)
	FindByTeam(ctx context.Context, teamID uuid.UUID) (domain.TeamJersey, error)
	DeleteByTeam(ctx context.Context, teamID uuid.UUID) error
}

// RosterService serves the token-gated team manager surface. Every operation
// starts by resolving the token to exactly one team; nested rows belonging to
// another team are reported as not found.
type RosterService struct {
	teams       RosterTeamRepository
	tournaments TeamTournamentRepository
	players     PlayerRepository
	officials   OfficialRepository
	jerseys     JerseyRepository
	cascader    Cascader
	assets      AssetLister
	storage     ObjectStorage
}

func NewRosterService(
	teams RosterTeamRepository,
	tournaments TeamTournamentRepository,
	players PlayerRepository,
	officials OfficialRepository,
	jerseys JerseyRepository,
	cascader Cascader,
	assets AssetLister,
	storage ObjectStorage,
) *RosterService {
	return &RosterService{
		teams:       teams,
		tournaments: tournaments,
		players:     players,
		officials:   officials,
		jerseys:     jerseys,
		cascader:    cascader,
		assets:      assets,
		storage:     storage,
	}
}

func (s *RosterService) resolveTeam(ctx context.Context, token string) (domain.Team, error) {
	if !ValidTokenShape(token) {
		return domain.Team{}, ErrTeamNotFound
	}

	team, err := s.teams.FindByToken(ctx, token)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.teams.FindByToken -> %w", err)
	}

	return team, nil
}

func (s *RosterService) GetRoster(ctx context.Context, token string) (domain.TeamRoster, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return domain.TeamRoster{}, err
	}

	roster, err := s.teams.FindRoster(ctx, team.ID)
	if err != nil {
		return domain.TeamRoster{}, fmt.Errorf("s.teams.FindRoster -> %w", err)
	}

	roster.Tournament, err = s.tournaments.FindByID(ctx, team.TournamentID)
	if err != nil {
		return domain.TeamRoster{}, fmt.Errorf("s.tournaments.FindByID -> %w", err)
	}

	return roster, nil
}

func (s *RosterService) ListPlayers(ctx context.Context, token string) ([]domain.Player, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return nil, err
	}

	players, err := s.players.ListByTeam(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("s.players.ListByTeam -> %w", err)
	}

	return players, nil
}

func (s *RosterService) GetPlayer(ctx context.Context, token string, id uuid.UUID) (domain.Player, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return domain.Player{}, err
	}

	return s.ownedPlayer(ctx, team, id)
}

func (s *RosterService) ownedPlayer(ctx context.Context, team domain.Team, id uuid.UUID) (domain.Player, error) {
	player, err := s.players.FindByID(ctx, id)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.players.FindByID -> %w", err)
	}
	if player.TeamID != team.ID {
		return domain.Player{}, ErrPlayerNotFound
	}

	return player, nil
}

func (s *RosterService) CreatePlayer(ctx context.Context, token string, player domain.Player, photo *domain.Upload) (domain.Player, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return domain.Player{}, err
	}

	tournament, err := s.tournaments.FindByID(ctx, team.TournamentID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.tournaments.FindByID -> %w", err)
	}

	count, err := s.players.CountByTeam(ctx, team.ID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("s.players.CountByTeam -> %w", err)
	}
	if tournament.MaxPlayersPerTeam > 0 && count >= tournament.MaxPlayersPerTeam {
		return domain.Player{}, ErrRosterFull
	}

	player.TeamID = team.ID
	if err := s.checkPlayer(ctx, player, uuid.Nil); err != nil {
		return domain.Player{}, err
	}

	url, err := upload(ctx, s.storage, folderPlayers, photo)
	if err != nil {
		return domain.Player{}, err
	}
	player.PhotoURL = url

	created, err := s.players.Create(ctx, player)
	if err != nil {
		discard(ctx, s.storage, url)
		return domain.Player{}, fmt.Errorf("s.players.Create -> %w", err)
	}

	return created, nil
}

// UpdatePlayer replaces the player's details. The photo is kept unless a new
// one is supplied.
func (s *RosterService) UpdatePlayer(ctx context.Context, token string, id uuid.UUID, player domain.Player, photo *domain.Upload) (domain.Player, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return domain.Player{}, err
	}

	current, err := s.ownedPlayer(ctx, team, id)
	if err != nil {
		return domain.Player{}, err
	}

	player.ID = id
	player.TeamID = team.ID
	if err := s.checkPlayer(ctx, player, id); err != nil {
		return domain.Player{}, err
	}

	url, err := upload(ctx, s.storage, folderPlayers, photo)
	if err != nil {
		return domain.Player{}, err
	}
	player.PhotoURL = current.PhotoURL
	if url != "" {
		player.PhotoURL = url
	}

	updated, err := s.players.Update(ctx, player)
	if err != nil {
		discard(ctx, s.storage, url)
		return domain.Player{}, fmt.Errorf("s.players.Update -> %w", err)
	}

	if url != "" {
		discard(ctx, s.storage, current.PhotoURL)
	}

	return updated, nil
}

// checkPlayer looks for another player (not excludeID) holding the jersey
// number in the team or the NIK/NISN anywhere.
func (s *RosterService) checkPlayer(ctx context.Context, player domain.Player, excludeID uuid.UUID) error {
	taken, err := s.players.JerseyNumberTaken(ctx, player.TeamID, player.NoJersey, excludeID)
	if err != nil {
		return fmt.Errorf("s.players.JerseyNumberTaken -> %w", err)
	}
	if taken {
		return domain.NewConflict("player", "noJersey", strconv.Itoa(player.NoJersey))
	}

	if player.NIK != nil {
		taken, err := s.players.NIKTaken(ctx, *player.NIK, excludeID)
		if err != nil {
			return fmt.Errorf("s.players.NIKTaken -> %w", err)
		}
		if taken {
			return domain.NewConflict("player", "nik", *player.NIK)
		}
	}

	if player.NISN != nil {
		taken, err := s.players.NISNTaken(ctx, *player.NISN, excludeID)
		if err != nil {
			return fmt.Errorf("s.players.NISNTaken -> %w", err)
		}
		if taken {
			return domain.NewConflict("player", "nisn", *player.NISN)
		}
	}

	return nil
}

// DeletePlayer removes the player and its documents in one transaction.
func (s *RosterService) DeletePlayer(ctx context.Context, token string, id uuid.UUID) error {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return err
	}

	if _, err := s.ownedPlayer(ctx, team, id); err != nil {
		return err
	}

	urls := assetsOf(ctx, s.assets, cascade.Players, id)

	if _, err := s.cascader.DeletePlayer(ctx, id); err != nil {
		if errors.Is(err, cascade.ErrNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("s.cascader.DeletePlayer -> %w", err)
	}

	discard(ctx, s.storage, urls...)

	return nil
}

func (s *RosterService) ListOfficials(ctx context.Context, token string) ([]domain.Official, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return nil, err
	}

	officials, err := s.officials.ListByTeam(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("s.officials.ListByTeam -> %w", err)
	}

	return officials, nil
}

func (s *RosterService) GetOfficial(ctx context.Context, token string, id uuid.UUID) (domain.Official, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return domain.Official{}, err
	}

	return s.ownedOfficial(ctx, team, id)
}

func (s *RosterService) ownedOfficial(ctx context.Context, team domain.Team, id uuid.UUID) (domain.Official, error) {
	official, err := s.officials.FindByID(ctx, id)
	if err != nil {
		return domain.Official{}, fmt.Errorf("s.officials.FindByID -> %w", err)
	}
	if official.TeamID != team.ID {
		return domain.Official{}, ErrOfficialNotFound
	}

	return official, nil
}

func (s *RosterService) CreateOfficial(ctx context.Context, token string, official domain.Official, photo *domain.Upload) (domain.Official, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return domain.Official{}, err
	}

	official.TeamID = team.ID
	if err := s.checkOfficial(ctx, official, uuid.Nil); err != nil {
		return domain.Official{}, err
	}

	url, err := upload(ctx, s.storage, folderOfficials, photo)
	if err != nil {
		return domain.Official{}, err
	}
	official.PhotoURL = url

	created, err := s.officials.Create(ctx, official)
	if err != nil {
		discard(ctx, s.storage, url)
		return domain.Official{}, fmt.Errorf("s.officials.Create -> %w", err)
	}

	return created, nil
}

func (s *RosterService) UpdateOfficial(ctx context.Context, token string, id uuid.UUID, official domain.Official, photo *domain.Upload) (domain.Official, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return domain.Official{}, err
	}

	current, err := s.ownedOfficial(ctx, team, id)
	if err != nil {
		return domain.Official{}, err
	}

	official.ID = id
	official.TeamID = team.ID
	if err := s.checkOfficial(ctx, official, id); err != nil {
		return domain.Official{}, err
	}

	url, err := upload(ctx, s.storage, folderOfficials, photo)
	if err != nil {
		return domain.Official{}, err
	}
	official.PhotoURL = current.PhotoURL
	if url != "" {
		official.PhotoURL = url
	}

	updated, err := s.officials.Update(ctx, official)
	if err != nil {
		discard(ctx, s.storage, url)
		return domain.Official{}, fmt.Errorf("s.officials.Update -> %w", err)
	}

	if url != "" {
		discard(ctx, s.storage, current.PhotoURL)
	}

	return updated, nil
}

func (s *RosterService) checkOfficial(ctx context.Context, official domain.Official, excludeID uuid.UUID) error {
	taken, err := s.officials.PositionTaken(ctx, official.TeamID, official.Posisi, excludeID)
	if err != nil {
		return fmt.Errorf("s.officials.PositionTaken -> %w", err)
	}
	if taken {
		return domain.NewConflict("official", "posisi", string(official.Posisi))
	}

	return nil
}

func (s *RosterService) DeleteOfficial(ctx context.Context, token string, id uuid.UUID) error {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return err
	}

	official, err := s.ownedOfficial(ctx, team, id)
	if err != nil {
		return err
	}

	if err := s.officials.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.officials.Delete -> %w", err)
	}

	discard(ctx, s.storage, official.PhotoURL)

	return nil
}

func (s *RosterService) GetJersey(ctx context.Context, token string) (domain.TeamJersey, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return domain.TeamJersey{}, err
	}

	jersey, err := s.jerseys.FindByTeam(ctx, team.ID)
	if err != nil {
		return domain.TeamJersey{}, fmt.Errorf("s.jerseys.FindByTeam -> %w", err)
	}

	return jersey, nil
}

// SaveJersey creates the team's jersey or replaces its colours.
func (s *RosterService) SaveJersey(ctx context.Context, token string, jersey domain.TeamJersey) (domain.TeamJersey, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return domain.TeamJersey{}, err
	}

	jersey.TeamID = team.ID
	saved, err := s.jerseys.Save(ctx, jersey)
	if err != nil {
		return domain.TeamJersey{}, fmt.Errorf("s.jerseys.Save -> %w", err)
	}

	return saved, nil
}

func (s *RosterService) DeleteJersey(ctx context.Context, token string) error {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return err
	}

	if err := s.jerseys.DeleteByTeam(ctx, team.ID); err != nil {
		return fmt.Errorf("s.jerseys.DeleteByTeam -> %w", err)
	}

	return nil
}

func (s *RosterService) ListDocuments(ctx context.Context, token string, playerID uuid.UUID) ([]domain.Document, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedPlayer(ctx, team, playerID); err != nil {
		return nil, err
	}

	documents, err := s.players.ListDocuments(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("s.players.ListDocuments -> %w", err)
	}

	return documents, nil
}

// CreateDocument uploads file and records it against the player. file.ContentType
// must already hold the sniffed MIME type.
func (s *RosterService) CreateDocument(ctx context.Context, token string, playerID uuid.UUID, document domain.Document, file domain.Upload) (domain.Document, error) {
	team, err := s.resolveTeam(ctx, token)
	if err != nil {
		return domain.Document{}, err
	}

	if _, err := s.ownedPlayer(ctx, team, playerID); err != nil {
		return domain.Document{}, err
	}

	if err := checkDocument(document, file); err != nil {
		return domain.Document{}, err
	}

	url, err := upload(ctx, s.storage, folderDocuments, &file)
	if err != nil {
		return domain.Document{}, err
	}

	document.PlayerID = playerID
	document.FileName = file.Name
	document.FileURL = url
	document.FileSize = file.Size
	document.MimeType = file.ContentType

	created, err := s.players.CreateDocument(ctx, document)
	if err != nil {
		discard(ctx, s.storage, url)
		return domain.Document{}, fmt.Errorf("s.players.CreateDocument -> %w", err)
	}

	return created, nil
}

func checkDocument(document domain.Document, file domain.Upload) error {
	if document.DocumentType == domain.DocumentOther && document.DocumentLabel == "" {
		return ErrDocumentLabelRequired
	}
	if !slices.Contains(domain.DocumentMIMETypes, file.ContentType) {
		return ErrUnsupportedFileType
	}
	if file.Size > domain.MaxDocumentSize {
		return ErrFileTooLarge
	}

	return nil
}

package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/api/handler/v1/request"
	"github.com/volleyhub/registration-api/internal/api/handler/v1/response"
	"github.com/volleyhub/registration-api/internal/domain"
)

const (
	tokenParam    = "token"
	photoField    = "photo"
	documentField = "file"
)

var errFileRequired = errors.New("file is required")

type RosterService interface {
	GetRoster(ctx context.Context, token string) (domain.TeamRoster, error)

	ListPlayers(ctx context.Context, token string) ([]domain.Player, error)
	GetPlayer(ctx context.Context, token string, id uuid.UUID) (domain.Player, error)
	CreatePlayer(ctx context.Context, token string, player domain.Player, photo *domain.Upload) (domain.Player, error)
	UpdatePlayer(ctx context.Context, token string, id uuid.UUID, player domain.Player, photo *domain.Upload) (domain.Player, error)
	DeletePlayer(ctx context.Context, token string, id uuid.UUID) error

	ListOfficials(ctx context.Context, token string) ([]domain.Official, error)
	GetOfficial(ctx context.Context, token string, id uuid.UUID) (domain.Official, error)
	CreateOfficial(ctx context.Context, token string, official domain.Official, photo *domain.Upload) (domain.Official, error)
	UpdateOfficial(ctx context.Context, token string, id uuid.UUID, official domain.Official, photo *domain.Upload) (domain.Official, error)
	DeleteOfficial(ctx context.Context, token string, id uuid.UUID) error

	GetJersey(ctx context.Context, token string) (domain.TeamJersey, error)
	SaveJersey(ctx context.Context, token string, jersey domain.TeamJersey) (domain.TeamJersey, error)
	DeleteJersey(ctx context.Context, token string) error

	ListDocuments(ctx context.Context, token string, playerID uuid.UUID) ([]domain.Document, error)
	CreateDocument(ctx context.Context, token string, playerID uuid.UUID, document domain.Document, file domain.Upload) (domain.Document, error)
}

// RosterHandler serves the token-scoped routes used by team managers. The
// token in the path is the only credential; every lookup is confined to the
// team it names.
type RosterHandler struct {
	svc RosterService
}

func NewRosterHandler(svc RosterService) *RosterHandler {
	return &RosterHandler{
		svc: svc,
	}
}

// HandleGetRoster godoc
// @Summary      Get a team by its access token
// @Description  Returns the team, a summary of its tournament, players, officials and jersey.
// @Tags         roster
// @Produce      json
// @Param        token     path      string  true  "team access token"
// @Success      200      {object}   domain.TeamRoster
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{token} [get]
func (h *RosterHandler) HandleGetRoster(ctx *gin.Context) {
	roster, err := h.svc.GetRoster(ctx.Request.Context(), ctx.Param(tokenParam))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetRoster -> h.svc.GetRoster", err)
		return
	}

	ctx.JSON(http.StatusOK, roster)
}

// HandleListPlayers godoc
// @Summary      List players
// @Tags         roster
// @Produce      json
// @Param        token     path      string  true  "team access token"
// @Success      200      {array}    domain.Player
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{token}/players [get]
func (h *RosterHandler) HandleListPlayers(ctx *gin.Context) {
	players, err := h.svc.ListPlayers(ctx.Request.Context(), ctx.Param(tokenParam))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListPlayers -> h.svc.ListPlayers", err)
		return
	}

	ctx.JSON(http.StatusOK, players)
}

// HandleGetPlayer godoc
// @Summary      Get a player
// @Tags         roster
// @Produce      json
// @Param        token     path      string  true  "team access token"
// @Param        playerID  path      string  true  "player ID"
// @Success      200      {object}   domain.Player
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{token}/players/{playerID} [get]
func (h *RosterHandler) HandleGetPlayer(ctx *gin.Context) {
	id, ok := pathID(ctx, "playerID", "player")
	if !ok {
		return
	}

	player, err := h.svc.GetPlayer(ctx.Request.Context(), ctx.Param(tokenParam), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetPlayer -> h.svc.GetPlayer", err)
		return
	}

	ctx.JSON(http.StatusOK, player)
}

// HandleCreatePlayer godoc
// @Summary      Add a player
// @Tags         roster
// @Accept       multipart/form-data
// @Produce      json
// @Param        token        path      string  true   "team access token"
// @Param        name         formData  string  true   "full name"
// @Param        jerseyName   formData  string  true   "name printed on the jersey"
// @Param        noJersey     formData  int     true   "jersey number, 0 to 99"
// @Param        birthPlace   formData  string  false  "birth place"
// @Param        birthDate    formData  string  true   "YYYY-MM-DD"
// @Param        heightCm     formData  int     false  "height in cm"
// @Param        weightKg     formData  int     false  "weight in kg"
// @Param        position     formData  string  true   "playing position"
// @Param        nik          formData  string  false  "16 digit national ID"
// @Param        nisn         formData  string  false  "10 digit student ID"
// @Param        schoolName   formData  string  false  "school"
// @Param        schoolClass  formData  string  false  "class"
// @Param        photo        formData  file    false  "JPEG or PNG photo"
// @Success      201      {object}   domain.Player
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /teams/{token}/players [post]
func (h *RosterHandler) HandleCreatePlayer(ctx *gin.Context) {
	var req request.PlayerRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	photo, err := openImage(ctx, photoField)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer photo.Close()

	player, err := h.svc.CreatePlayer(ctx.Request.Context(), ctx.Param(tokenParam), req.ToDomain(), photo.upload())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreatePlayer -> h.svc.CreatePlayer", err)
		return
	}

	ctx.JSON(http.StatusCreated, player)
}

// HandleUpdatePlayer godoc
// @Summary      Update a player
// @Description  Takes the same fields as player creation. A new photo replaces the stored one.
// @Tags         roster
// @Accept       multipart/form-data
// @Produce      json
// @Param        token     path      string  true  "team access token"
// @Param        playerID  path      string  true  "player ID"
// @Param        photo     formData  file    false "JPEG or PNG photo"
// @Success      200      {object}   domain.Player
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /teams/{token}/players/{playerID} [put]
func (h *RosterHandler) HandleUpdatePlayer(ctx *gin.Context) {
	id, ok := pathID(ctx, "playerID", "player")
	if !ok {
		return
	}

	var req request.PlayerRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	photo, err := openImage(ctx, photoField)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer photo.Close()

	player, err := h.svc.UpdatePlayer(ctx.Request.Context(), ctx.Param(tokenParam), id, req.ToDomain(), photo.upload())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdatePlayer -> h.svc.UpdatePlayer", err)
		return
	}

	ctx.JSON(http.StatusOK, player)
}

// HandleDeletePlayer godoc
// @Summary      Remove a player and their documents
// @Tags         roster
// @Param        token     path      string  true  "team access token"
// @Param        playerID  path      string  true  "player ID"
// @Success      204
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{token}/players/{playerID} [delete]
func (h *RosterHandler) HandleDeletePlayer(ctx *gin.Context) {
	id, ok := pathID(ctx, "playerID", "player")
	if !ok {
		return
	}

	if err := h.svc.DeletePlayer(ctx.Request.Context(), ctx.Param(tokenParam), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeletePlayer -> h.svc.DeletePlayer", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListOfficials godoc
// @Summary      List officials
// @Tags         roster
// @Produce      json
// @Param        token     path      string  true  "team access token"
// @Success      200      {array}    domain.Official
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{token}/officials [get]
func (h *RosterHandler) HandleListOfficials(ctx *gin.Context) {
	officials, err := h.svc.ListOfficials(ctx.Request.Context(), ctx.Param(tokenParam))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListOfficials -> h.svc.ListOfficials", err)
		return
	}

	ctx.JSON(http.StatusOK, officials)
}

// HandleGetOfficial godoc
// @Summary      Get an official
// @Tags         roster
// @Produce      json
// @Param        token       path      string  true  "team access token"
// @Param        officialID  path      string  true  "official ID"
// @Success      200      {object}   domain.Official
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{token}/officials/{officialID} [get]
func (h *RosterHandler) HandleGetOfficial(ctx *gin.Context) {
	id, ok := pathID(ctx, "officialID", "official")
	if !ok {
		return
	}

	official, err := h.svc.GetOfficial(ctx.Request.Context(), ctx.Param(tokenParam), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetOfficial -> h.svc.GetOfficial", err)
		return
	}

	ctx.JSON(http.StatusOK, official)
}

// HandleCreateOfficial godoc
// @Summary      Add an official
// @Description  Each official position can be held once per team.
// @Tags         roster
// @Accept       multipart/form-data
// @Produce      json
// @Param        token     path      string  true   "team access token"
// @Param        name      formData  string  true   "full name"
// @Param        posisi    formData  string  true   "Manajer, Pelatih, Asisten Pelatih or Medis"
// @Param        phone     formData  string  false  "phone number"
// @Param        photo     formData  file    false  "JPEG or PNG photo"
// @Success      201      {object}   domain.Official
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /teams/{token}/officials [post]
func (h *RosterHandler) HandleCreateOfficial(ctx *gin.Context) {
	var req request.OfficialRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	photo, err := openImage(ctx, photoField)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer photo.Close()

	official, err := h.svc.CreateOfficial(ctx.Request.Context(), ctx.Param(tokenParam), req.ToDomain(), photo.upload())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateOfficial -> h.svc.CreateOfficial", err)
		return
	}

	ctx.JSON(http.StatusCreated, official)
}

// HandleUpdateOfficial godoc
// @Summary      Update an official
// @Tags         roster
// @Accept       multipart/form-data
// @Produce      json
// @Param        token       path      string  true   "team access token"
// @Param        officialID  path      string  true   "official ID"
// @Param        name        formData  string  true   "full name"
// @Param        posisi      formData  string  true   "official position"
// @Param        phone       formData  string  false  "phone number"
// @Param        photo       formData  file    false  "JPEG or PNG photo"
// @Success      200      {object}   domain.Official
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /teams/{token}/officials/{officialID} [put]
func (h *RosterHandler) HandleUpdateOfficial(ctx *gin.Context) {
	id, ok := pathID(ctx, "officialID", "official")
	if !ok {
		return
	}

	var req request.OfficialRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	photo, err := openImage(ctx, photoField)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer photo.Close()

	official, err := h.svc.UpdateOfficial(ctx.Request.Context(), ctx.Param(tokenParam), id, req.ToDomain(), photo.upload())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateOfficial -> h.svc.UpdateOfficial", err)
		return
	}

	ctx.JSON(http.StatusOK, official)
}

// HandleDeleteOfficial godoc
// @Summary      Remove an official
// @Tags         roster
// @Param        token       path      string  true  "team access token"
// @Param        officialID  path      string  true  "official ID"
// @Success      204
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{token}/officials/{officialID} [delete]
func (h *RosterHandler) HandleDeleteOfficial(ctx *gin.Context) {
	id, ok := pathID(ctx, "officialID", "official")
	if !ok {
		return
	}

	if err := h.svc.DeleteOfficial(ctx.Request.Context(), ctx.Param(tokenParam), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteOfficial -> h.svc.DeleteOfficial", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetJersey godoc
// @Summary      Get the team jersey colours
// @Tags         roster
// @Produce      json
// @Param        token     path      string  true  "team access token"
// @Success      200      {object}   domain.TeamJersey
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{token}/jersey [get]
func (h *RosterHandler) HandleGetJersey(ctx *gin.Context) {
	jersey, err := h.svc.GetJersey(ctx.Request.Context(), ctx.Param(tokenParam))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetJersey -> h.svc.GetJersey", err)
		return
	}

	ctx.JSON(http.StatusOK, jersey)
}

// HandleSaveJersey godoc
// @Summary      Set the team jersey colours
// @Description  Creates the jersey on first call and overwrites it afterwards.
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        token     path      string  true  "team access token"
// @Param        request   body      request.JerseyRequest true "request body"
// @Success      200      {object}   domain.TeamJersey
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{token}/jersey [put]
func (h *RosterHandler) HandleSaveJersey(ctx *gin.Context) {
	var req request.JerseyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	jersey, err := h.svc.SaveJersey(ctx.Request.Context(), ctx.Param(tokenParam), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSaveJersey -> h.svc.SaveJersey", err)
		return
	}

	ctx.JSON(http.StatusOK, jersey)
}

// HandleDeleteJersey godoc
// @Summary      Remove the team jersey colours
// @Tags         roster
// @Param        token     path      string  true  "team access token"
// @Success      204
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{token}/jersey [delete]
func (h *RosterHandler) HandleDeleteJersey(ctx *gin.Context) {
	if err := h.svc.DeleteJersey(ctx.Request.Context(), ctx.Param(tokenParam)); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteJersey -> h.svc.DeleteJersey", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListDocuments godoc
// @Summary      List a player's documents
// @Tags         roster
// @Produce      json
// @Param        token     path      string  true  "team access token"
// @Param        playerID  path      string  true  "player ID"
// @Success      200      {array}    domain.Document
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{token}/players/{playerID}/documents [get]
func (h *RosterHandler) HandleListDocuments(ctx *gin.Context) {
	playerID, ok := pathID(ctx, "playerID", "player")
	if !ok {
		return
	}

	documents, err := h.svc.ListDocuments(ctx.Request.Context(), ctx.Param(tokenParam), playerID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListDocuments -> h.svc.ListDocuments", err)
		return
	}

	ctx.JSON(http.StatusOK, documents)
}

// HandleCreateDocument godoc
// @Summary      Upload a player document
// @Description  Accepts JPEG, PNG or PDF files up to 10MB.
// @Tags         roster
// @Accept       multipart/form-data
// @Produce      json
// @Param        token          path      string  true   "team access token"
// @Param        playerID       path      string  true   "player ID"
// @Param        documentType   formData  string  true   "document type"
// @Param        documentLabel  formData  string  false  "required when documentType is Lainnya"
// @Param        file           formData  file    true   "document"
// @Success      201      {object}   domain.Document
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /teams/{token}/players/{playerID}/documents [post]
func (h *RosterHandler) HandleCreateDocument(ctx *gin.Context) {
	playerID, ok := pathID(ctx, "playerID", "player")
	if !ok {
		return
	}

	var req request.DocumentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	file, err := openFormFile(ctx, documentField)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if file == nil {
		response.RenderErr(ctx, response.ErrBadRequest(errFileRequired))
		return
	}
	defer file.Close()

	document, err := h.svc.CreateDocument(ctx.Request.Context(), ctx.Param(tokenParam), playerID, req.ToDomain(), file.Upload)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateDocument -> h.svc.CreateDocument", err)
		return
	}

	ctx.JSON(http.StatusCreated, document)
}

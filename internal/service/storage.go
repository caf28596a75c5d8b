package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/volleyhub/registration-api/internal/cascade"
	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/storage"
)

var (
	ErrUpload        = storage.ErrUpload
	ErrCascadeFailed = cascade.ErrCascadeFailed
)

const (
	folderLogos     = "logos"
	folderPlayers   = "players"
	folderOfficials = "officials"
	folderDocuments = "documents"
)

type ObjectStorage interface {
	Upload(ctx context.Context, folder string, file domain.Upload) (string, error)
	Delete(ctx context.Context, url string) error
}

// Cascader deletes an aggregate and everything beneath it in one transaction.
type Cascader interface {
	DeleteTournament(ctx context.Context, id uuid.UUID) (cascade.Result, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) (cascade.Result, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) (cascade.Result, error)
}

type AssetLister interface {
	AssetURLs(ctx context.Context, target cascade.Entity, id uuid.UUID) ([]string, error)
}

// upload stores file when present. Every failure carries ErrUpload.
func upload(ctx context.Context, store ObjectStorage, folder string, file *domain.Upload) (string, error) {
	if file == nil {
		return "", nil
	}

	url, err := store.Upload(ctx, folder, *file)
	if err != nil {
		return "", fmt.Errorf("%w: store.Upload -> %w", ErrUpload, err)
	}

	return url, nil
}

// discard removes objects that are no longer referenced. Failures only leave
// orphans behind, so they are logged and swallowed.
func discard(ctx context.Context, store ObjectStorage, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := store.Delete(context.WithoutCancel(ctx), url); err != nil {
			zap.L().Warn("failed to delete stored object", zap.String("url", url), zap.Error(err))
		}
	}
}

// assetsOf collects stored files for best-effort cleanup after a cascade.
func assetsOf(ctx context.Context, assets AssetLister, target cascade.Entity, id uuid.UUID) []string {
	urls, err := assets.AssetURLs(ctx, target, id)
	if err != nil {
		zap.L().Warn("failed to list stored objects",
			zap.String("entity", string(target)), zap.Stringer("id", id), zap.Error(err))
		return nil
	}

	return urls
}

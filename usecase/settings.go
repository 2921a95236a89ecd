package usecase

import (
	"context"
	"errors"

	"campus-chat/entity"
	"campus-chat/repository"
)

// currentSettings returns the stored settings, or the defaults before the
// first save.
func currentSettings(ctx context.Context, repo repository.SettingsRepository) (*entity.Settings, error) {
	settings, err := repo.GetSettings(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		defaults := entity.DefaultSettings()
		return &defaults, nil
	}
	return settings, err
}

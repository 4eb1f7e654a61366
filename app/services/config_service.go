package services

import (
	"encoding/json"
	"errors"

	"netsketch/app/apperr"
	"netsketch/app/models"
	"netsketch/app/repo"
)

// DefaultEditorConfig is served until the user saves their own preferences.
const DefaultEditorConfig = `{"types":["Router","Switch","PC"]}`

// ConfigService stores per-user editor preferences as an opaque JSON blob.
type ConfigService struct{ configs *repo.ConfigRepository }

func NewConfigService(configs *repo.ConfigRepository) *ConfigService {
	return &ConfigService{configs: configs}
}

func (s *ConfigService) Get(userID string) (string, error) {
	c, err := s.configs.FindByUser(userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return DefaultEditorConfig, nil
		}
		return "", err
	}
	return c.Config, nil
}

func (s *ConfigService) Set(userID, blob string) error {
	if !json.Valid([]byte(blob)) {
		return apperr.Validationf("config must be valid JSON")
	}
	return s.configs.Upsert(&models.EditorConfig{UserID: userID, Config: blob})
}

package repo

import (
	"gorm.io/gorm"

	"netsketch/app/apperr"
	"netsketch/app/models"
)

type ConfigRepository struct{ db *gorm.DB }

func NewConfigRepository(db *gorm.DB) *ConfigRepository { return &ConfigRepository{db: db} }

func (r *ConfigRepository) FindByUser(userID string) (*models.EditorConfig, error) {
	var c models.EditorConfig
	if err := r.db.Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	return &c, nil
}

func (r *ConfigRepository) Upsert(c *models.EditorConfig) error {
	// simplistic upsert: try save; create if not found
	var existing models.EditorConfig
	if err := r.db.Where("user_id = ?", c.UserID).First(&existing).Error; err == nil {
		c.ID = existing.ID
		return apperr.FromDB(r.db.Save(c).Error)
	}
	return apperr.FromDB(r.db.Create(c).Error)
}

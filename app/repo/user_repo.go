package repo

import (
	"time"

	"gorm.io/gorm"

	"netsketch/app/apperr"
	"netsketch/app/models"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) CountByUsername(username string) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count, apperr.FromDB(err)
}

func (r *UserRepository) Create(u *models.User) error { return apperr.FromDB(r.db.Create(u).Error) }

func (r *UserRepository) FindByID(id string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	return &u, nil
}

func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("username").Find(&users).Error
	return users, apperr.FromDB(err)
}

func (r *UserRepository) Update(u *models.User) error { return apperr.FromDB(r.db.Save(u).Error) }

func (r *UserRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return apperr.FromDB(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(id string, at time.Time) error {
	err := r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
	return apperr.FromDB(err)
}

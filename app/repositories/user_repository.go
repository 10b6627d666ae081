package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByLogin looks up a user by login.
func (r *UserRepository) FindByLogin(login string) (models.User, error) {
	var user models.User
	err := r.db.Where(map[string]any{"login": login}).First(&user).Error
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return user, err
}

// Exists reports whether login is taken.
func (r *UserRepository) Exists(login string) (bool, error) {
	var n int64
	err := r.db.Model(&models.User{}).Where(map[string]any{"login": login}).Count(&n).Error
	return n > 0, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes the user with id and reports how many rows went.
func (r *UserRepository) Delete(id uint) (int64, error) {
	res := r.db.Delete(&models.User{}, id)
	return res.RowsAffected, res.Error
}

// CountRole counts the users holding role.
func (r *UserRepository) CountRole(role string) (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Where(map[string]any{"role": role}).Count(&n).Error
	return n, err
}

// All returns every user ordered by login.
func (r *UserRepository) All() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("login").Find(&users).Error
	return users, err
}

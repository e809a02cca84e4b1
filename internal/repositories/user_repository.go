package repositories

import (
	"github.com/AbdelrhmanAhmed11/coffee-grinder/internal/models"
)

// UserRepository stores the shop's back-office accounts, both the
// provisioned admin and self-registered counter staff.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}

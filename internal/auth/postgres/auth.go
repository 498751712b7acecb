package postgres

import (
	"database/sql"
	"fmt"

	"github.com/jortega/finanzas/internal/auth"
	"gorm.io/gorm"
)

// Repository implements auth.CredentialStore on the users table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(email string) (int64, string, error) {
	var userID int64
	var passwordHash string
	query := `SELECT id, password_hash FROM users WHERE email = ? AND is_active = true`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return 0, "", fmt.Errorf("user not found")
		}
		return 0, "", err
	}
	return userID, passwordHash, nil
}

func (r *Repository) GetActiveUser(userID int64) (*auth.User, error) {
	var user auth.User
	query := `SELECT id, email FROM users WHERE id = ? AND is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}

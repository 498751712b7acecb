package postgres

import (
	"time"

	"github.com/jortega/finanzas/internal"
	"github.com/jortega/finanzas/internal/category"
	"gorm.io/gorm"
)

// CategoryRepository implements the category.Repository interface using GORM
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(cat *category.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) GetByID(id int64) (*category.Category, error) {
	var cat category.Category
	err := r.db.Where("id = ?", id).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrCategoryNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetByUserID(userID int64) ([]*category.Category, error) {
	var categories []*category.Category
	err := r.db.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByName(userID int64, name string) (*category.Category, error) {
	var cat category.Category
	err := r.db.Where("user_id = ? AND name = ?", userID, name).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrCategoryNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Update(cat *category.Category) error {
	cat.UpdatedAt = time.Now()
	return r.db.Save(cat).Error
}

func (r *CategoryRepository) Delete(id int64) error {
	return r.db.Delete(&category.Category{}, id).Error
}

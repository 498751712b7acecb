package category

import (
	"time"
)

// Category is a user-owned label for grouping expenses. Names are unique
// per user; expenses reference categories by name, not by id, so deleting
// a category leaves its expenses untouched.
type Category struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_category_name"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_user_category_name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BelongsTo(userID int64) bool {
	return c.UserID == userID
}

func New(userID int64, dto CreateCategoryDTO) *Category {
	now := time.Now()
	return &Category{
		UserID:    userID,
		Name:      dto.Name,
		Color:     dto.Color,
		Icon:      dto.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

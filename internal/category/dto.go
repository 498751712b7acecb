package category

import (
	"strings"
	"time"

	"github.com/jortega/finanzas/internal"
)

type CreateCategoryDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func (dto CreateCategoryDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateCategoryDTO struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

func (dto UpdateCategoryDTO) Validate() error {
	if dto.Name != nil && strings.TrimSpace(*dto.Name) == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (dto UpdateCategoryDTO) Apply(c *Category) {
	if dto.Name != nil {
		c.Name = *dto.Name
	}
	if dto.Color != nil {
		c.Color = *dto.Color
	}
	if dto.Icon != nil {
		c.Icon = *dto.Icon
	}
	c.UpdatedAt = time.Now()
}

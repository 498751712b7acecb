package category

import (
	"log/slog"

	"github.com/jortega/finanzas/internal"
)

// Repository defines the data access methods for categories.
type Repository interface {
	Create(category *Category) error
	GetByID(id int64) (*Category, error)
	GetByUserID(userID int64) ([]*Category, error)
	GetByName(userID int64, name string) (*Category, error)
	Update(category *Category) error
	Delete(id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateCategory(userID int64, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(userID, dto.Name); err == nil && existing != nil {
		return nil, internal.ErrDuplicateCategory
	}

	category := New(userID, dto)
	if err := s.repo.Create(category); err != nil {
		s.logger.Error("failed to create category", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("could not save category", err)
	}

	s.logger.Info("category created", "category_id", category.ID, "user_id", userID, "name", category.Name)
	return category, nil
}

func (s *Service) GetCategory(id, userID int64) (*Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrCategoryNotFound
	}

	if !category.BelongsTo(userID) {
		s.logger.Warn("cross-user category access denied", "category_id", id, "user_id", userID)
		return nil, internal.ErrUnauthorizedAccess
	}

	return category, nil
}

func (s *Service) ListCategories(userID int64) ([]*Category, error) {
	categories, err := s.repo.GetByUserID(userID)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("could not load categories", err)
	}

	return categories, nil
}

func (s *Service) UpdateCategory(id, userID int64, dto UpdateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	category, err := s.GetCategory(id, userID)
	if err != nil {
		return nil, err
	}

	// renaming onto another category of the same user is a conflict
	if dto.Name != nil && *dto.Name != category.Name {
		if existing, err := s.repo.GetByName(userID, *dto.Name); err == nil && existing != nil {
			return nil, internal.ErrDuplicateCategory
		}
	}

	dto.Apply(category)

	if err := s.repo.Update(category); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, internal.NewStorageError("could not update category", err)
	}

	s.logger.Info("category updated", "category_id", id, "user_id", userID)
	return category, nil
}

// DeleteCategory removes the category only. Expenses keep their stored
// category name and fall back to the uncategorized label in summaries
// when no matching category exists.
func (s *Service) DeleteCategory(id, userID int64) error {
	if _, err := s.GetCategory(id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return internal.NewStorageError("could not delete category", err)
	}

	s.logger.Info("category deleted", "category_id", id, "user_id", userID)
	return nil
}

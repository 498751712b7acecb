package category_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/jortega/finanzas/internal"
	"github.com/jortega/finanzas/internal/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

// MockRepository implements category.Repository for testing
type MockRepository struct {
	categories map[int64]*category.Category
	nextID     int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		categories: make(map[int64]*category.Category),
		nextID:     1,
	}
}

func (m *MockRepository) Create(c *category.Category) error {
	c.ID = m.nextID
	m.nextID++
	m.categories[c.ID] = c
	return nil
}

func (m *MockRepository) GetByID(id int64) (*category.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, internal.ErrCategoryNotFound
	}
	return c, nil
}

func (m *MockRepository) GetByUserID(userID int64) ([]*category.Category, error) {
	var result []*category.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByName(userID int64, name string) (*category.Category, error) {
	for _, c := range m.categories {
		if c.UserID == userID && c.Name == name {
			return c, nil
		}
	}
	return nil, internal.ErrCategoryNotFound
}

func (m *MockRepository) Update(c *category.Category) error {
	m.categories[c.ID] = c
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	delete(m.categories, id)
	return nil
}

var _ = Describe("Category Service", func() {
	var (
		mockRepo *MockRepository
		service  *category.Service
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(mockRepo, logger)
	})

	Describe("CreateCategory", func() {
		It("creates a category", func() {
			c, err := service.CreateCategory(1, category.CreateCategoryDTO{Name: "hogar", Color: "#ff9900"})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.ID).To(BeNumerically(">", 0))
			Expect(c.Name).To(Equal("hogar"))
		})

		It("rejects an empty name", func() {
			_, err := service.CreateCategory(1, category.CreateCategoryDTO{Name: "  "})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a duplicate name for the same user", func() {
			_, err := service.CreateCategory(1, category.CreateCategoryDTO{Name: "hogar"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateCategory(1, category.CreateCategoryDTO{Name: "hogar"})
			Expect(err).To(MatchError(internal.ErrDuplicateCategory))
		})

		It("allows the same name for different users", func() {
			_, err := service.CreateCategory(1, category.CreateCategoryDTO{Name: "hogar"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateCategory(2, category.CreateCategoryDTO{Name: "hogar"})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("GetCategory", func() {
		It("denies access to another user's category", func() {
			c, err := service.CreateCategory(1, category.CreateCategoryDTO{Name: "ocio"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.GetCategory(c.ID, 2)
			Expect(err).To(MatchError(internal.ErrUnauthorizedAccess))
		})

		It("returns not found for a missing id", func() {
			_, err := service.GetCategory(42, 1)
			Expect(err).To(MatchError(internal.ErrCategoryNotFound))
		})
	})

	Describe("UpdateCategory", func() {
		It("renames a category", func() {
			c, err := service.CreateCategory(1, category.CreateCategoryDTO{Name: "ocio"})
			Expect(err).NotTo(HaveOccurred())

			newName := "entretenimiento"
			updated, err := service.UpdateCategory(c.ID, 1, category.UpdateCategoryDTO{Name: &newName})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("entretenimiento"))
		})

		It("rejects renaming onto an existing category", func() {
			_, err := service.CreateCategory(1, category.CreateCategoryDTO{Name: "hogar"})
			Expect(err).NotTo(HaveOccurred())
			c, err := service.CreateCategory(1, category.CreateCategoryDTO{Name: "ocio"})
			Expect(err).NotTo(HaveOccurred())

			newName := "hogar"
			_, err = service.UpdateCategory(c.ID, 1, category.UpdateCategoryDTO{Name: &newName})
			Expect(err).To(MatchError(internal.ErrDuplicateCategory))
		})

		It("keeps unset fields unchanged", func() {
			c, err := service.CreateCategory(1, category.CreateCategoryDTO{Name: "salud", Color: "#00cc66"})
			Expect(err).NotTo(HaveOccurred())

			newIcon := "heart"
			updated, err := service.UpdateCategory(c.ID, 1, category.UpdateCategoryDTO{Icon: &newIcon})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("salud"))
			Expect(updated.Color).To(Equal("#00cc66"))
			Expect(updated.Icon).To(Equal("heart"))
		})
	})

	Describe("DeleteCategory", func() {
		It("deletes the owner's category", func() {
			c, err := service.CreateCategory(1, category.CreateCategoryDTO{Name: "otros"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteCategory(c.ID, 1)).To(Succeed())

			_, err = service.GetCategory(c.ID, 1)
			Expect(err).To(MatchError(internal.ErrCategoryNotFound))
		})

		It("denies deletes from another user", func() {
			c, err := service.CreateCategory(1, category.CreateCategoryDTO{Name: "otros"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteCategory(c.ID, 2)).To(MatchError(internal.ErrUnauthorizedAccess))
		})
	})
})

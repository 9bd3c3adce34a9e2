package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "mywallet/internal/errors"
	"mywallet/internal/models"
	"mywallet/internal/normalize"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db    *gorm.DB
	store LedgerStore
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, store LedgerStore) CategoryServicer {
	return &categoryService{db: db, store: store}
}

// CreateCategory creates a new category. Revenue categories never carry
// subgroups; expense categories default to the standard color.
func (s *categoryService) CreateCategory(
	name string,
	categoryType models.EntryType,
	subgroups []string,
	isFixed bool,
	color string,
) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Invalid("name", "is required")
	}
	if !categoryType.Valid() {
		return nil, apperrors.Invalid("type", "must be expense or revenue")
	}

	if err := s.ensureUniqueName(name, categoryType, 0); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:    name,
		Type:    categoryType,
		IsFixed: isFixed,
	}
	if categoryType == models.EntryTypeExpense {
		category.Subgroups = models.SubgroupList(normalize.Subgroups(subgroups))
		if color == "" {
			color = models.DefaultExpenseColor
		}
	}
	if color != "" {
		category.Color = &color
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategories lists categories ordered by name, optionally of one type.
func (s *categoryService) GetCategories(categoryType *models.EntryType) ([]models.Category, error) {
	q := s.db.Model(&models.Category{})
	if categoryType != nil {
		q = q.Where("type = ?", *categoryType)
	}

	var categories []models.Category
	if err := q.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory edits a category in place
func (s *categoryService) UpdateCategory(categoryID uint, update CategoryUpdate) (*models.Category, error) {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperrors.Invalid("name", "must not be empty")
		}
		if name != category.Name {
			if err := s.ensureUniqueName(name, category.Type, categoryID); err != nil {
				return nil, err
			}
		}
		fields["name"] = name
	}
	if update.Subgroups != nil && category.Type == models.EntryTypeExpense {
		fields["subgroups"] = models.SubgroupList(normalize.Subgroups(*update.Subgroups))
	}
	if update.IsFixed != nil {
		fields["is_fixed"] = *update.IsFixed
	}
	if update.Color != nil {
		fields["color"] = *update.Color
	}

	if len(fields) > 0 {
		if err := s.db.Model(&models.Category{}).Where("id = ?", categoryID).Updates(fields).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetCategoryByID(categoryID)
}

// DeleteCategory deletes a category no ledger row references, together
// with its checklist entries.
func (s *categoryService) DeleteCategory(categoryID uint) error {
	if _, err := s.GetCategoryByID(categoryID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		count, err := s.store.WithTx(tx).CountByCategory(categoryID)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.InUse(apperrors.ErrCategoryInUse, count)
		}

		if err := tx.Where("category_id = ?", categoryID).Delete(&models.ChecklistItem{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&models.Category{}, categoryID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func (s *categoryService) ensureUniqueName(name string, categoryType models.EntryType, exceptID uint) error {
	var count int64
	q := s.db.Model(&models.Category{}).Where("name = ? AND type = ?", name, categoryType)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.WithMessage(apperrors.ErrDuplicateName, "a category with this name and type already exists")
	}
	return nil
}

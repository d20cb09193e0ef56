package services

import (
	"errors"
	"fmt"

	"github.com/Everilll/CateringKita/apperr"
	"github.com/Everilll/CateringKita/models"
	"github.com/Everilll/CateringKita/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type UpdateVendorInput struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type CreateMenuInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Calories    int     `json:"calories" binding:"omitempty,gte=0"`
	CategoryID  *uint   `json:"categoryId"`
	Available   *bool   `json:"available"`
}

type UpdateMenuInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Calories    *int     `json:"calories" binding:"omitempty,gte=0"`
	CategoryID  *uint    `json:"categoryId"`
	Available   *bool    `json:"available"`
}

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CatalogService covers the vendor/menu/category surfaces around the order
// core: public browsing, vendor self-service, and admin category management.
type CatalogService interface {
	ListVendors(city string) ([]models.Vendor, error)
	AdminListVendors() ([]models.Vendor, error)
	GetVendor(id uint) (*models.Vendor, error)
	VendorMenus(vendorID uint) (*models.Vendor, []models.Menu, error)
	UpdateVendor(userID uint, in UpdateVendorInput) (*models.Vendor, error)

	ListMenus(filter repository.MenuFilter) ([]models.Menu, error)
	GetMenu(id uint) (*models.Menu, error)
	CreateMenu(userID uint, in CreateMenuInput) (*models.Menu, error)
	UpdateMenu(id, userID uint, in UpdateMenuInput) (*models.Menu, error)
	DeleteMenu(id, userID uint) error
	ToggleMenuAvailable(id, userID uint) (*models.Menu, error)

	ListCategories() ([]models.Category, error)
	CreateCategory(in CategoryInput) (*models.Category, error)
	UpdateCategory(id uint, in CategoryInput) (*models.Category, error)
	DeleteCategory(id uint) error
}

type catalogService struct {
	catalog  repository.CatalogRepository
	identity repository.IdentityRepository
	log      zerolog.Logger
}

func NewCatalogService(
	catalog repository.CatalogRepository,
	identity repository.IdentityRepository,
	log zerolog.Logger,
) CatalogService {
	return &catalogService{catalog: catalog, identity: identity, log: log}
}

func (s *catalogService) ListVendors(city string) ([]models.Vendor, error) {
	return s.catalog.ListVendors(city, true)
}

func (s *catalogService) AdminListVendors() ([]models.Vendor, error) {
	return s.catalog.ListVendors("", false)
}

func (s *catalogService) GetVendor(id uint) (*models.Vendor, error) {
	vendor, err := s.catalog.GetVendorWithMenus(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Vendor dengan ID %d tidak ditemukan", id))
		}
		return nil, err
	}
	return vendor, nil
}

func (s *catalogService) VendorMenus(vendorID uint) (*models.Vendor, []models.Menu, error) {
	vendor, err := s.catalog.GetVendor(vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound(fmt.Sprintf("Vendor dengan ID %d tidak ditemukan", vendorID))
		}
		return nil, nil, err
	}
	menus, err := s.catalog.ListMenusByVendor(vendor.ID)
	if err != nil {
		return nil, nil, err
	}
	return vendor, menus, nil
}

func (s *catalogService) UpdateVendor(userID uint, in UpdateVendorInput) (*models.Vendor, error) {
	vendor, err := s.vendorProfile(userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		vendor.Name = *in.Name
	}
	if in.Address != nil {
		vendor.Address = *in.Address
	}
	if in.City != nil {
		vendor.City = *in.City
	}
	if in.Phone != nil {
		vendor.Phone = *in.Phone
	}
	if in.Description != nil {
		vendor.Description = *in.Description
	}
	if in.IsActive != nil {
		vendor.IsActive = *in.IsActive
	}
	if err := s.catalog.SaveVendor(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *catalogService) ListMenus(filter repository.MenuFilter) ([]models.Menu, error) {
	return s.catalog.ListMenus(filter)
}

func (s *catalogService) GetMenu(id uint) (*models.Menu, error) {
	menu, err := s.catalog.GetMenu(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Menu dengan ID %d tidak ditemukan", id))
		}
		return nil, err
	}
	return menu, nil
}

func (s *catalogService) CreateMenu(userID uint, in CreateMenuInput) (*models.Menu, error) {
	vendor, err := s.vendorProfile(userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(in.CategoryID); err != nil {
		return nil, err
	}

	menu := &models.Menu{
		VendorID:    vendor.ID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Calories:    in.Calories,
		Available:   true,
	}
	if in.Available != nil {
		menu.Available = *in.Available
	}
	if err := s.catalog.CreateMenu(menu); err != nil {
		return nil, err
	}
	return s.catalog.GetMenu(menu.ID)
}

func (s *catalogService) UpdateMenu(id, userID uint, in UpdateMenuInput) (*models.Menu, error) {
	menu, err := s.ownedMenu(id, userID, "Anda tidak memiliki akses untuk mengupdate menu ini")
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(in.CategoryID); err != nil {
			return nil, err
		}
		menu.CategoryID = in.CategoryID
	}
	if in.Name != nil {
		menu.Name = *in.Name
	}
	if in.Description != nil {
		menu.Description = *in.Description
	}
	if in.Price != nil {
		menu.Price = *in.Price
	}
	if in.Calories != nil {
		menu.Calories = *in.Calories
	}
	if in.Available != nil {
		menu.Available = *in.Available
	}
	if err := s.catalog.SaveMenu(menu); err != nil {
		return nil, err
	}
	return s.catalog.GetMenu(menu.ID)
}

func (s *catalogService) DeleteMenu(id, userID uint) error {
	if _, err := s.ownedMenu(id, userID, "Anda tidak memiliki akses untuk menghapus menu ini"); err != nil {
		return err
	}
	return s.catalog.DeleteMenu(id)
}

func (s *catalogService) ToggleMenuAvailable(id, userID uint) (*models.Menu, error) {
	menu, err := s.ownedMenu(id, userID, "Anda tidak memiliki akses untuk mengubah status menu ini")
	if err != nil {
		return nil, err
	}
	menu.Available = !menu.Available
	if err := s.catalog.SaveMenu(menu); err != nil {
		return nil, err
	}
	return s.catalog.GetMenu(menu.ID)
}

func (s *catalogService) ListCategories() ([]models.Category, error) {
	return s.catalog.ListCategories()
}

func (s *catalogService) CreateCategory(in CategoryInput) (*models.Category, error) {
	if _, err := s.catalog.GetCategoryByName(in.Name); err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Kategori '%s' sudah ada", in.Name))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	category := &models.Category{Name: in.Name, Description: in.Description}
	if err := s.catalog.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.catalog.GetCategory(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Kategori dengan ID %d tidak ditemukan", id))
		}
		return nil, err
	}
	if existing, err := s.catalog.GetCategoryByName(in.Name); err == nil && existing.ID != id {
		return nil, apperr.Conflict(fmt.Sprintf("Kategori '%s' sudah ada", in.Name))
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	category.Name = in.Name
	category.Description = in.Description
	if err := s.catalog.SaveCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(id uint) error {
	if _, err := s.catalog.GetCategory(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(fmt.Sprintf("Kategori dengan ID %d tidak ditemukan", id))
		}
		return err
	}
	count, err := s.catalog.CountMenusInCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict(
			fmt.Sprintf("Kategori tidak bisa dihapus karena masih memiliki %d menu", count))
	}
	return s.catalog.DeleteCategory(id)
}

func (s *catalogService) vendorProfile(userID uint) (*models.Vendor, error) {
	vendor, err := s.identity.GetVendorByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Vendor profile tidak ditemukan")
		}
		return nil, err
	}
	return vendor, nil
}

func (s *catalogService) ownedMenu(id, userID uint, forbiddenMsg string) (*models.Menu, error) {
	menu, err := s.catalog.GetMenu(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Menu dengan ID %d tidak ditemukan", id))
		}
		return nil, err
	}
	if menu.Vendor.UserID != userID {
		return nil, apperr.Forbidden(forbiddenMsg)
	}
	return menu, nil
}

func (s *catalogService) checkCategory(id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.catalog.GetCategory(*id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(fmt.Sprintf("Kategori dengan ID %d tidak ditemukan", *id))
		}
		return err
	}
	return nil
}

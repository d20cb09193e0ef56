package repository

import (
	"github.com/Everilll/CateringKita/models"

	"gorm.io/gorm"
)

// MenuFilter narrows the public menu listing.
type MenuFilter struct {
	VendorID   uint
	CategoryID uint
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	Available  *bool
}

// CatalogRepository covers read access to vendors and menus for the order
// core, plus the catalog CRUD used by the vendor and admin surfaces.
type CatalogRepository interface {
	GetVendor(id uint) (*models.Vendor, error)
	GetVendorWithMenus(id uint) (*models.Vendor, error)
	ListVendors(city string, activeOnly bool) ([]models.Vendor, error)
	SaveVendor(vendor *models.Vendor) error

	GetMenusByIDs(ids []uint, vendorID uint) ([]models.Menu, error)
	GetMenu(id uint) (*models.Menu, error)
	ListMenus(filter MenuFilter) ([]models.Menu, error)
	ListMenusByVendor(vendorID uint) ([]models.Menu, error)
	CreateMenu(menu *models.Menu) error
	SaveMenu(menu *models.Menu) error
	DeleteMenu(id uint) error

	GetCategory(id uint) (*models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	CreateCategory(category *models.Category) error
	SaveCategory(category *models.Category) error
	DeleteCategory(id uint) error
	CountMenusInCategory(id uint) (int64, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetVendor(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *catalogRepository) GetVendorWithMenus(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.
		Preload("User").
		Preload("Menus", "available = ?", true).
		Preload("Menus.Category").
		First(&vendor, id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *catalogRepository) ListVendors(city string, activeOnly bool) ([]models.Vendor, error) {
	var vendors []models.Vendor
	q := r.db.Preload("User").Order("created_at desc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if city != "" {
		q = q.Where("city = ?", city)
	}
	err := q.Find(&vendors).Error
	return vendors, err
}

func (r *catalogRepository) SaveVendor(vendor *models.Vendor) error {
	return r.db.Save(vendor).Error
}

func (r *catalogRepository) GetMenusByIDs(ids []uint, vendorID uint) ([]models.Menu, error) {
	var menus []models.Menu
	err := r.db.Where("id IN ? AND vendor_id = ?", ids, vendorID).Find(&menus).Error
	return menus, err
}

func (r *catalogRepository) GetMenu(id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := r.db.Preload("Vendor").Preload("Category").First(&menu, id).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *catalogRepository) ListMenus(filter MenuFilter) ([]models.Menu, error) {
	var menus []models.Menu
	q := r.db.Preload("Vendor").Preload("Category").Order("created_at desc")
	if filter.VendorID != 0 {
		q = q.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Search != "" {
		q = q.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Available != nil {
		q = q.Where("available = ?", *filter.Available)
	}
	err := q.Find(&menus).Error
	return menus, err
}

func (r *catalogRepository) ListMenusByVendor(vendorID uint) ([]models.Menu, error) {
	var menus []models.Menu
	err := r.db.Preload("Category").Where("vendor_id = ?", vendorID).Order("name asc").Find(&menus).Error
	return menus, err
}

func (r *catalogRepository) CreateMenu(menu *models.Menu) error {
	return r.db.Create(menu).Error
}

func (r *catalogRepository) SaveMenu(menu *models.Menu) error {
	return r.db.Save(menu).Error
}

func (r *catalogRepository) DeleteMenu(id uint) error {
	return r.db.Delete(&models.Menu{}, id).Error
}

func (r *catalogRepository) GetCategory(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *catalogRepository) GetCategoryByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *catalogRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name asc").Find(&categories).Error
	return categories, err
}

func (r *catalogRepository) CreateCategory(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *catalogRepository) SaveCategory(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *catalogRepository) DeleteCategory(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

func (r *catalogRepository) CountMenusInCategory(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Menu{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

package repository

import (
	"github.com/Everilll/CateringKita/models"

	"gorm.io/gorm"
)

// IdentityRepository resolves authenticated principals to their domain
// profiles and handles account persistence.
type IdentityRepository interface {
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetCustomerByUserID(userID uint) (*models.Customer, error)
	GetCustomerByPhone(phone string) (*models.Customer, error)
	GetVendorByUserID(userID uint) (*models.Vendor, error)

	// CreateCustomerAccount persists the user and its customer profile in
	// one transaction; either both rows exist or neither does.
	CreateCustomerAccount(user *models.User, customer *models.Customer) error
	CreateVendorAccount(user *models.User, vendor *models.Vendor) error
	UpdatePassword(userID uint, passwordHash string) error

	ListUsers(role models.UserRole) ([]models.User, error)
	ListCustomers() ([]models.Customer, error)
}

type identityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *identityRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *identityRepository) GetCustomerByUserID(userID uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *identityRepository) GetCustomerByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("phone = ?", phone).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *identityRepository) GetVendorByUserID(userID uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.Where("user_id = ?", userID).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *identityRepository) CreateCustomerAccount(user *models.User, customer *models.Customer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		customer.UserID = user.ID
		return tx.Create(customer).Error
	})
}

func (r *identityRepository) CreateVendorAccount(user *models.User, vendor *models.Vendor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		vendor.UserID = user.ID
		return tx.Create(vendor).Error
	})
}

func (r *identityRepository) UpdatePassword(userID uint, passwordHash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}

func (r *identityRepository) ListUsers(role models.UserRole) ([]models.User, error) {
	var users []models.User
	q := r.db.Order("created_at desc")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Find(&users).Error
	return users, err
}

func (r *identityRepository) ListCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Preload("User").Order("created_at desc").Find(&customers).Error
	return customers, err
}

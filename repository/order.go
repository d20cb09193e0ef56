package repository

import (
	"github.com/Everilll/CateringKita/models"

	"gorm.io/gorm"
)

// OrderScope is the role-discriminated predicate applied to order queries.
// Building it up front keeps the access rules auditable in one place instead
// of scattering where-clauses across handlers.
type OrderScope struct {
	Role       models.UserRole
	CustomerID uint
	VendorID   uint
	Status     models.OrderStatus
}

func (s OrderScope) apply(q *gorm.DB) *gorm.DB {
	switch s.Role {
	case models.RoleCustomer:
		q = q.Where("customer_id = ?", s.CustomerID)
	case models.RoleVendor:
		q = q.Where("vendor_id = ?", s.VendorID)
	case models.RoleAdmin:
		// Unrestricted; non-zero ids act as optional filters.
		if s.CustomerID != 0 {
			q = q.Where("customer_id = ?", s.CustomerID)
		}
		if s.VendorID != 0 {
			q = q.Where("vendor_id = ?", s.VendorID)
		}
	}
	if s.Status != "" {
		q = q.Where("status = ?", s.Status)
	}
	return q
}

type OrderRepository interface {
	// CreateWithItems persists the order row and its item rows in one
	// transaction; no partial order is ever observable.
	CreateWithItems(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	List(scope OrderScope) ([]models.Order, error)
	// UpdateStatusIf sets the status only when the stored value still equals
	// expected. Returns false when a concurrent transition got there first.
	UpdateStatusIf(id uint, expected, next models.OrderStatus) (bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateWithItems(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items
		return nil
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Customer.User").
		Preload("Vendor").
		Preload("Items.Menu").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(scope OrderScope) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.
		Preload("Customer.User").
		Preload("Vendor").
		Preload("Items.Menu").
		Order("created_at desc")
	err := scope.apply(q).Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatusIf(id uint, expected, next models.OrderStatus) (bool, error) {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

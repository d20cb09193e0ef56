package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Everilll/CateringKita/apperr"
	"github.com/Everilll/CateringKita/models"
	"github.com/Everilll/CateringKita/repository"
	"github.com/Everilll/CateringKita/statemachine"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	MenuID   uint `json:"menuId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	VendorID    uint             `json:"vendorId" binding:"required"`
	Items       []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	Notes       string           `json:"notes"`
	DeliveryFee float64          `json:"delivery_fee" binding:"omitempty,gte=0"`
}

// OrderListFilter narrows a scoped listing. Customer/vendor ids only apply to
// admin callers; everyone else is pinned to their own orders.
type OrderListFilter struct {
	Status     models.OrderStatus
	CustomerID uint
	VendorID   uint
}

// OrderService is the order lifecycle engine: transactional creation with
// price computation, the status flow, and role-scoped access.
type OrderService interface {
	Create(userID uint, in CreateOrderInput) (*models.Order, error)
	List(userID uint, role models.UserRole, filter OrderListFilter) ([]models.Order, error)
	Get(id, userID uint, role models.UserRole) (*models.Order, error)
	UpdateStatus(id, userID uint, requested models.OrderStatus) (*models.Order, error)
	Cancel(id, userID uint, role models.UserRole) (*models.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	catalog  repository.CatalogRepository
	identity repository.IdentityRepository
	log      zerolog.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	catalog repository.CatalogRepository,
	identity repository.IdentityRepository,
	log zerolog.Logger,
) OrderService {
	return &orderService{orders: orders, catalog: catalog, identity: identity, log: log}
}

func (s *orderService) Create(userID uint, in CreateOrderInput) (*models.Order, error) {
	customer, err := s.identity.GetCustomerByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Customer profile tidak ditemukan")
		}
		return nil, err
	}

	vendor, err := s.catalog.GetVendor(in.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Vendor tidak ditemukan")
		}
		return nil, err
	}
	if !vendor.IsActive {
		return nil, apperr.PreconditionFailed("Vendor sedang tidak aktif")
	}

	if len(in.Items) == 0 {
		return nil, apperr.Validation("Order harus memiliki minimal 1 item")
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, apperr.Validation("Jumlah item minimal 1")
		}
	}

	// Duplicate menu ids are allowed as separate line items; the existence
	// check compares deduplicated sets.
	menuIDs := uniqueIDs(in.Items)
	menus, err := s.catalog.GetMenusByIDs(menuIDs, vendor.ID)
	if err != nil {
		return nil, err
	}
	if len(menus) != len(menuIDs) {
		missing := missingIDs(menuIDs, menus)
		return nil, apperr.Validation(
			"Beberapa menu tidak ditemukan atau bukan milik vendor ini: " + joinIDs(missing))
	}

	// Availability is checked only after existence/ownership.
	var unavailable []string
	for _, m := range menus {
		if !m.Available {
			unavailable = append(unavailable, m.Name)
		}
	}
	if len(unavailable) > 0 {
		return nil, apperr.Validation("Menu tidak tersedia: " + strings.Join(unavailable, ", "))
	}

	menuByID := make(map[uint]models.Menu, len(menus))
	for _, m := range menus {
		menuByID[m.ID] = m
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	var total float64
	for _, item := range in.Items {
		menu := menuByID[item.MenuID]
		subtotal := menu.Price * float64(item.Quantity)
		total += subtotal
		items = append(items, models.OrderItem{
			MenuID:   menu.ID,
			Quantity: item.Quantity,
			Price:    menu.Price,
			Subtotal: subtotal,
		})
	}

	order := &models.Order{
		CustomerID:  customer.ID,
		VendorID:    vendor.ID,
		Status:      models.StatusPending,
		Total:       total + in.DeliveryFee,
		DeliveryFee: in.DeliveryFee,
		Notes:       in.Notes,
		Items:       items,
	}
	if err := s.orders.CreateWithItems(order); err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("order_id", order.ID).
		Uint("customer_id", customer.ID).
		Uint("vendor_id", vendor.ID).
		Float64("total", order.Total).
		Msg("order created")

	return s.orders.GetByID(order.ID)
}

func (s *orderService) List(userID uint, role models.UserRole, filter OrderListFilter) ([]models.Order, error) {
	scope := repository.OrderScope{Role: role, Status: filter.Status}

	switch role {
	case models.RoleCustomer:
		customer, err := s.identity.GetCustomerByUserID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("Customer profile tidak ditemukan")
			}
			return nil, err
		}
		scope.CustomerID = customer.ID
	case models.RoleVendor:
		vendor, err := s.identity.GetVendorByUserID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("Vendor profile tidak ditemukan")
			}
			return nil, err
		}
		scope.VendorID = vendor.ID
	case models.RoleAdmin:
		scope.CustomerID = filter.CustomerID
		scope.VendorID = filter.VendorID
	default:
		return nil, apperr.Forbidden("Role tidak memiliki akses ke daftar order")
	}

	return s.orders.List(scope)
}

func (s *orderService) Get(id, userID uint, role models.UserRole) (*models.Order, error) {
	order, err := s.getOrder(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(order, userID, role, "Anda tidak memiliki akses ke order ini"); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateStatus(id, userID uint, requested models.OrderStatus) (*models.Order, error) {
	if !statemachine.KnownStatus(requested) {
		return nil, apperr.Validation(fmt.Sprintf("Status '%s' tidak dikenal", requested))
	}

	order, err := s.getOrder(id)
	if err != nil {
		return nil, err
	}
	if order.Vendor.UserID != userID {
		return nil, apperr.Forbidden("Anda tidak memiliki akses untuk mengubah status order ini")
	}
	if err := statemachine.ValidateAdvance(order.Status, requested); err != nil {
		return nil, err
	}

	ok, err := s.orders.UpdateStatusIf(order.ID, order.Status, requested)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent transition won the race; re-read and report against
		// the committed status.
		return nil, s.staleTransitionError(id, requested)
	}

	s.log.Info().
		Uint("order_id", order.ID).
		Str("from", string(order.Status)).
		Str("to", string(requested)).
		Msg("order status updated")

	return s.orders.GetByID(order.ID)
}

func (s *orderService) Cancel(id, userID uint, role models.UserRole) (*models.Order, error) {
	order, err := s.getOrder(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(order, userID, role, "Anda tidak memiliki akses untuk membatalkan order ini"); err != nil {
		return nil, err
	}
	if role != models.RoleCustomer && role != models.RoleVendor {
		return nil, apperr.Forbidden("Anda tidak memiliki akses untuk membatalkan order ini")
	}
	if err := statemachine.ValidateCancel(role, order.Status); err != nil {
		return nil, err
	}

	ok, err := s.orders.UpdateStatusIf(order.ID, order.Status, models.StatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		fresh, err := s.getOrder(id)
		if err != nil {
			return nil, err
		}
		if err := statemachine.ValidateCancel(role, fresh.Status); err != nil {
			return nil, err
		}
		return nil, apperr.IllegalTransition(
			fmt.Sprintf("Order dengan status '%s' tidak bisa dibatalkan", fresh.Status))
	}

	s.log.Info().
		Uint("order_id", order.ID).
		Str("from", string(order.Status)).
		Str("role", string(role)).
		Msg("order cancelled")

	return s.orders.GetByID(order.ID)
}

func (s *orderService) getOrder(id uint) (*models.Order, error) {
	order, err := s.orders.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Order dengan ID %d tidak ditemukan", id))
		}
		return nil, err
	}
	return order, nil
}

// authorizeOwner distinguishes "exists but not yours" (403) from absent (404,
// handled by getOrder). Admins pass for reads.
func (s *orderService) authorizeOwner(order *models.Order, userID uint, role models.UserRole, msg string) error {
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RoleCustomer:
		if order.Customer.UserID != userID {
			return apperr.Forbidden(msg)
		}
	case models.RoleVendor:
		if order.Vendor.UserID != userID {
			return apperr.Forbidden(msg)
		}
	default:
		return apperr.Forbidden(msg)
	}
	return nil
}

func (s *orderService) staleTransitionError(id uint, requested models.OrderStatus) error {
	fresh, err := s.getOrder(id)
	if err != nil {
		return err
	}
	if err := statemachine.ValidateAdvance(fresh.Status, requested); err != nil {
		return err
	}
	return apperr.IllegalTransition(
		fmt.Sprintf("Status order sudah berubah ke '%s'", fresh.Status))
}

func uniqueIDs(items []OrderItemInput) []uint {
	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if !seen[item.MenuID] {
			seen[item.MenuID] = true
			ids = append(ids, item.MenuID)
		}
	}
	return ids
}

func missingIDs(requested []uint, menus []models.Menu) []uint {
	found := make(map[uint]bool, len(menus))
	for _, m := range menus {
		found[m.ID] = true
	}
	var missing []uint
	for _, id := range requested {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ", ")
}

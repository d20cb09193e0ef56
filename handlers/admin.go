package handlers

import (
	"net/http"
	"strconv"

	"github.com/Everilll/CateringKita/middleware"
	"github.com/Everilll/CateringKita/models"
	"github.com/Everilll/CateringKita/repository"
	"github.com/Everilll/CateringKita/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	orders   services.OrderService
	catalog  services.CatalogService
	identity repository.IdentityRepository
}

func NewAdminHandler(
	orders services.OrderService,
	catalog services.CatalogService,
	identity repository.IdentityRepository,
) *AdminHandler {
	return &AdminHandler{orders: orders, catalog: catalog, identity: identity}
}

// Orders returns all orders with optional filters plus a status summary
func (h *AdminHandler) Orders(c *gin.Context) {
	filter := services.OrderListFilter{Status: models.OrderStatus(c.Query("status"))}
	if v := c.Query("customer_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.CustomerID = uint(id)
		}
	}
	if v := c.Query("vendor_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.VendorID = uint(id)
		}
	}

	orders, err := h.orders.List(middleware.GetUserID(c), models.RoleAdmin, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	summary := map[string]int{}
	var revenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			revenue += o.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": revenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// Users lists all accounts, optionally filtered by role
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.identity.ListUsers(models.UserRole(c.Query("role")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// Customers lists all customer profiles
func (h *AdminHandler) Customers(c *gin.Context) {
	customers, err := h.identity.ListCustomers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(customers), "customers": customers})
}

// Vendors lists all vendors, active or not
func (h *AdminHandler) Vendors(c *gin.Context) {
	vendors, err := h.catalog.AdminListVendors()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(vendors), "vendors": vendors})
}

package handlers

import (
	"net/http"

	"github.com/Everilll/CateringKita/middleware"
	"github.com/Everilll/CateringKita/models"
	"github.com/Everilll/CateringKita/services"

	"github.com/gin-gonic/gin"
)

type VendorHandler struct {
	catalog services.CatalogService
	orders  services.OrderService
}

func NewVendorHandler(catalog services.CatalogService, orders services.OrderService) *VendorHandler {
	return &VendorHandler{catalog: catalog, orders: orders}
}

// List returns active vendors, optionally filtered by city
func (h *VendorHandler) List(c *gin.Context) {
	vendors, err := h.catalog.ListVendors(c.Query("city"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(vendors), "vendors": vendors})
}

// Get returns one vendor with its available menus
func (h *VendorHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	vendor, err := h.catalog.GetVendor(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// Menus returns every menu of a vendor, available or not
func (h *VendorHandler) Menus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	vendor, menus, err := h.catalog.VendorMenus(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"vendor": gin.H{"id": vendor.ID, "name": vendor.Name},
		"count":  len(menus),
		"menus":  menus,
	})
}

// UpdateMe updates the caller's vendor profile
func (h *VendorHandler) UpdateMe(c *gin.Context) {
	var req services.UpdateVendorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vendor, err := h.catalog.UpdateVendor(middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vendor berhasil diupdate", "vendor": vendor})
}

// MyOrders is the vendor dashboard: orders plus per-status counts and
// delivered revenue
func (h *VendorHandler) MyOrders(c *gin.Context) {
	filter := services.OrderListFilter{Status: models.OrderStatus(c.Query("status"))}
	orders, err := h.orders.List(middleware.GetUserID(c), models.RoleVendor, filter)
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

package handlers

import (
	"net/http"
	"strconv"

	"github.com/Everilll/CateringKita/middleware"
	"github.com/Everilll/CateringKita/repository"
	"github.com/Everilll/CateringKita/services"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	catalog services.CatalogService
}

func NewMenuHandler(catalog services.CatalogService) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

// List returns menus with optional vendor/category/price/search filters
func (h *MenuHandler) List(c *gin.Context) {
	var filter repository.MenuFilter
	if v := c.Query("vendor_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.VendorID = uint(id)
		}
	}
	if v := c.Query("category_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if v := c.Query("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := c.Query("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &p
		}
	}
	if v := c.Query("available"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Available = &b
		}
	}
	filter.Search = c.Query("search")

	menus, err := h.catalog.ListMenus(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(menus), "menus": menus})
}

// Get returns a single menu with its vendor and category
func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	menu, err := h.catalog.GetMenu(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

// Create adds a menu to the caller's vendor
func (h *MenuHandler) Create(c *gin.Context) {
	var req services.CreateMenuInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	menu, err := h.catalog.CreateMenu(middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu berhasil dibuat", "menu": menu})
}

// Update edits an owned menu
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.UpdateMenuInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	menu, err := h.catalog.UpdateMenu(id, middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu berhasil diupdate", "menu": menu})
}

// Delete removes an owned menu
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteMenu(id, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu berhasil dihapus"})
}

// ToggleAvailable flips the availability flag of an owned menu
func (h *MenuHandler) ToggleAvailable(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	menu, err := h.catalog.ToggleMenuAvailable(id, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	msg := "Menu berhasil dinonaktifkan"
	if menu.Available {
		msg = "Menu berhasil diaktifkan"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "menu": menu})
}

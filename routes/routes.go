package routes

import (
	"github.com/Everilll/CateringKita/handlers"
	"github.com/Everilll/CateringKita/middleware"
	"github.com/Everilll/CateringKita/models"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Orders   *handlers.OrderHandler
	Vendors  *handlers.VendorHandler
	Menus    *handlers.MenuHandler
	Category *handlers.CategoryHandler
	Admin    *handlers.AdminHandler
}

func Setup(r *gin.Engine, auth *middleware.AuthMiddleware, h Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)

		public.GET("/vendors", h.Vendors.List)
		public.GET("/vendors/:id", h.Vendors.Get)
		public.GET("/vendors/:id/menus", h.Vendors.Menus)

		public.GET("/menus", h.Menus.List)
		public.GET("/menus/:id", h.Menus.Get)

		public.GET("/categories", h.Category.List)
	}

	// ── Authenticated routes ───────────────────────────────────────
	authed := r.Group("/api")
	authed.Use(auth.AuthRequired())
	{
		authed.GET("/auth/profile", h.Auth.Profile)
		authed.PUT("/auth/change-password", h.Auth.ChangePassword)

		// Order lifecycle; handlers scope by role
		authed.POST("/orders", middleware.RoleRequired(models.RoleCustomer), h.Orders.Create)
		authed.GET("/orders", middleware.RoleRequired(models.RoleCustomer, models.RoleVendor, models.RoleAdmin), h.Orders.List)
		authed.GET("/orders/:id", middleware.RoleRequired(models.RoleCustomer, models.RoleVendor, models.RoleAdmin), h.Orders.Get)
		authed.PATCH("/orders/:id/status", middleware.RoleRequired(models.RoleVendor), h.Orders.UpdateStatus)
		authed.DELETE("/orders/:id", middleware.RoleRequired(models.RoleCustomer, models.RoleVendor), h.Orders.Cancel)
	}

	// ── Vendor self-service ────────────────────────────────────────
	vendor := r.Group("/api")
	vendor.Use(auth.AuthRequired(), middleware.RoleRequired(models.RoleVendor))
	{
		vendor.PUT("/vendors/me", h.Vendors.UpdateMe)
		vendor.GET("/vendors/me/orders", h.Vendors.MyOrders)

		vendor.POST("/menus", h.Menus.Create)
		vendor.PUT("/menus/:id", h.Menus.Update)
		vendor.DELETE("/menus/:id", h.Menus.Delete)
		vendor.PATCH("/menus/:id/available", h.Menus.ToggleAvailable)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(auth.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/categories", h.Category.Create)
		admin.PUT("/categories/:id", h.Category.Update)
		admin.DELETE("/categories/:id", h.Category.Delete)

		admin.GET("/admin/orders", h.Admin.Orders)
		admin.GET("/admin/users", h.Admin.Users)
		admin.GET("/admin/customers", h.Admin.Customers)
		admin.GET("/admin/vendors", h.Admin.Vendors)
	}
}

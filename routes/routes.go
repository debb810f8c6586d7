package routes

import (
	"net/http"

	"braseiro/auth"
	"braseiro/board"
	"braseiro/cart"
	"braseiro/menu"
	"braseiro/middleware"
	"braseiro/orders"
	"braseiro/products"
	"braseiro/ratelim"
	"braseiro/receipts"
	"braseiro/settings"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
	router.GET("/api/auth/session", middleware.Authenticate(auth.Session))
}

// AddMenuRoutes wires the public storefront: menu, categories, settings.
func AddMenuRoutes(router *httprouter.Router) {
	router.GET("/api/menu", ratelim.RateLimit(menu.GetMenu))
	router.GET("/api/categories", menu.GetCategories)
	router.POST("/api/categories", middleware.RequireRole(menu.CreateCategory, "admin"))
	router.DELETE("/api/categories/:id", middleware.RequireRole(menu.DeleteCategory, "admin"))

	router.GET("/api/settings", settings.GetSettings)
	router.PUT("/api/settings", middleware.RequireRole(settings.UpdateSettings, "admin"))
}

func AddCartRoutes(router *httprouter.Router) {
	router.POST("/api/cart", ratelim.RateLimit(cart.NewSession))
	router.GET("/api/cart/:session", cart.GetCart)
	router.POST("/api/cart/:session/items", ratelim.RateLimit(cart.AddItem))
	router.DELETE("/api/cart/:session/items/:productId", cart.RemoveItem)
	router.DELETE("/api/cart/:session", cart.ClearCart)
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/orders", ratelim.RateLimit(orders.CreateOrder))
	router.GET("/api/orders", middleware.Authenticate(orders.ListOrders))
	router.GET("/api/orders/groups", middleware.Authenticate(orders.ListGroups))
	router.GET("/api/orders/board", orders.Board)
	router.GET("/api/orders/tables", middleware.Authenticate(orders.Tables))
	router.GET("/api/orders/stats", middleware.RequireRole(orders.Stats, "admin"))

	// Single-order and batch routes live on distinct prefixes because the
	// router rejects a wildcard next to a static segment.
	router.PATCH("/api/order/:id/status", middleware.Authenticate(orders.UpdateStatus))
	router.PATCH("/api/orders/group/status", middleware.Authenticate(orders.UpdateGroupStatus))
	router.POST("/api/tables/:number/close", middleware.Authenticate(orders.CloseTableHandler))
	router.DELETE("/api/order/:id/items/:productId", middleware.Authenticate(orders.RemoveItemHandler))

	router.GET("/api/order/:id/ticket", middleware.Authenticate(receipts.OrderTicket))
	router.GET("/api/tables/:number/qr", receipts.TableQR)
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", products.GetProducts)
	router.GET("/api/products/:id", products.GetProduct)
	router.POST("/api/products", middleware.RequireRole(products.CreateProduct, "admin"))
	router.PUT("/api/products/:id", middleware.RequireRole(products.UpdateProduct, "admin"))
	router.DELETE("/api/products/:id", middleware.RequireRole(products.DeleteProduct, "admin"))
	router.POST("/api/products/:id/image", middleware.RequireRole(products.UploadImage, "admin"))
}

func AddBoardRoutes(router *httprouter.Router, hub *board.Hub) {
	router.GET("/ws/board/:room", hub.ServeWS)
}

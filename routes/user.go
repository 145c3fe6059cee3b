package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/199post/shop/controllers/cart"
	favoriteControllers "github.com/199post/shop/controllers/favorite"
	orderControllers "github.com/199post/shop/controllers/order"
	"github.com/199post/shop/middleware"
	"github.com/199post/shop/services"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	cartSvc := services.NewCartService(db)
	checkoutSvc := services.NewCheckoutService(db)
	orderSvc := services.NewOrderService(db)
	favoriteSvc := services.NewFavoriteService(db)

	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/cart", cartControllers.GetCart(cartSvc)) // GET /user/cart

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.POST("/items", cartControllers.AddItem(cartSvc))         // POST /user/cart/items
			cartGroup.PUT("/items/:id", cartControllers.UpdateItem(cartSvc))   // PUT /user/cart/items/:id
			cartGroup.DELETE("/items/:id", cartControllers.RemoveItem(cartSvc)) // DELETE /user/cart/items/:id
		}

		userGroup.POST("/checkout", orderControllers.Checkout(checkoutSvc)) // POST /user/checkout
		userGroup.GET("/orders", orderControllers.ListOrders(orderSvc))     // GET /user/orders
		userGroup.GET("/orders/:id", orderControllers.GetOrder(orderSvc))   // GET /user/orders/:id

		userGroup.POST("/favorites/:product_id/toggle", favoriteControllers.Toggle(favoriteSvc)) // POST /user/favorites/:product_id/toggle
		userGroup.GET("/favorites", favoriteControllers.List(favoriteSvc))                       // GET /user/favorites
	}
}

package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_placed_total",
		Help: "Orders successfully created at checkout.",
	})

	CheckoutConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_checkout_conflicts_total",
		Help: "Checkout attempts rejected because stock ran out.",
	})

	FavoritesToggled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_favorites_toggled_total",
		Help: "Favorite toggle operations performed.",
	})
)

// Handler exposes the default prometheus registry for the /metrics route.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

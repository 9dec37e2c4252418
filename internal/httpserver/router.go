package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cartsvc "scoopshop/internal/service/cart"
	catalogsvc "scoopshop/internal/service/catalog"
	checkoutsvc "scoopshop/internal/service/checkout"
	customersvc "scoopshop/internal/service/customer"
	promotionsvc "scoopshop/internal/service/promotion"
	reportsvc "scoopshop/internal/service/report"
	"scoopshop/internal/validation"
)

// Deps groups the services the router exposes.
type Deps struct {
	Catalog    *catalogsvc.Service
	Cart       *cartsvc.Service
	Checkout   *checkoutsvc.Service
	Promotions *promotionsvc.Service
	Customers  *customersvc.Service
	Reports    *reportsvc.Service
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, sessionTokenHeader, customerIDHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	v := validation.New()

	h := handlers{deps: deps, validate: v}

	router.GET("/catalog", h.storefront)
	router.GET("/catalog/expiring", h.expiringSoon)

	router.GET("/products", h.listProducts)
	router.POST("/products", h.createProduct)
	router.GET("/products/:id", h.getProduct)
	router.PUT("/products/:id", h.updateProduct)
	router.DELETE("/products/:id", h.deleteProduct)

	router.GET("/categories", h.listCategories)
	router.POST("/categories", h.createCategory)
	router.PUT("/categories/:id", h.updateCategory)
	router.DELETE("/categories/:id", h.deleteCategory)

	router.GET("/promotions", h.listPromotions)
	router.POST("/promotions", h.createPromotion)
	router.GET("/promotions/:id", h.getPromotion)
	router.PUT("/promotions/:id", h.updatePromotion)
	router.DELETE("/promotions/:id", h.deletePromotion)
	router.POST("/promotions/:id/customers/:customerID", h.assignPromotionCustomer)

	router.POST("/customers", h.signup)
	router.POST("/customers/login", h.login)
	router.GET("/customers", h.listCustomers)
	router.GET("/customers/:id", h.getCustomer)
	router.DELETE("/customers/:id", h.deleteCustomer)

	router.GET("/cart", h.getCart)
	router.POST("/cart/items", h.addCartItem)
	router.DELETE("/cart/items/:productID", h.removeCartItem)
	router.DELETE("/cart", h.clearCart)

	router.POST("/checkout", h.checkout)
	router.GET("/orders", h.orderHistory)
	router.GET("/orders/:id", h.getOrder)
	router.PUT("/orders/lines/:lineID", h.updateOrderLine)

	router.GET("/reports/sales", h.salesReport)

	return router
}

package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/services"
)

// Dependencies are the services the local API is built on.
type Dependencies struct {
	Store     *services.BillStore
	Editor    *services.BillEditor
	Catalog   *services.CatalogService
	Refresher *services.CatalogRefresher
	Checkout  *services.CheckoutService
	Monitor   *services.CheckoutMonitor
	Tables    *services.TableService

	RestaurantName string
	CORSOrigin     string
	RateLimiter    *middlewares.RateLimiter
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.RateLimit())
	}

	// Inisialisasi controller
	billCtrl := controllers.NewBillController(deps.Editor, deps.Checkout, deps.Tables)
	catalogCtrl := controllers.NewCatalogController(deps.Catalog, deps.Refresher)
	tableCtrl := controllers.NewTableController(deps.Tables)
	receiptCtrl := controllers.NewReceiptController(deps.Store, deps.RestaurantName)
	checkoutCtrl := controllers.NewCheckoutController(deps.Monitor)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// WebSocket untuk grid meja dan panel order
	r.GET("/ws", controllers.KDSHandler)

	// CATALOG
	r.GET("/catalog", catalogCtrl.GetCatalog)
	r.POST("/catalog/refresh", catalogCtrl.RefreshCatalog)
	r.GET("/catalog/static", catalogCtrl.GetStaticItems)
	r.PUT("/catalog/static", catalogCtrl.UpdateStaticItems)
	r.GET("/catalog/:item_id/portions", catalogCtrl.GetPortions)
	r.PUT("/catalog/liquor/:liquor_id/portions", catalogCtrl.UpdatePortionPrices)

	// TABLES
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id", tableCtrl.GetTable)

	// BILLS
	bill := r.Group("/tables/:table_id/bill")
	{
		bill.POST("", billCtrl.CreateBill)
		bill.GET("", billCtrl.GetBill)
		bill.POST("/items", billCtrl.AddItem)
		bill.PATCH("/items/:line_id", billCtrl.UpdateQuantity)
		bill.DELETE("/items/:line_id", billCtrl.RemoveItem)
		bill.POST("/service-charge", billCtrl.ToggleServiceCharge)
		bill.POST("/commands", billCtrl.ApplyCommands)
	}

	// Checkout dengan logger dan limiter tersendiri
	closeGroup := r.Group("/tables/:table_id/bill")
	closeGroup.Use(middlewares.CheckoutRateLimiter(), middlewares.CheckoutLoggerMiddleware())
	{
		closeGroup.POST("/close", billCtrl.CloseBill)
	}

	// HISTORY
	r.GET("/bills/history", receiptCtrl.GetHistory)
	r.GET("/bills/history/:bill_id/receipt", receiptCtrl.DownloadReceipt)
	r.GET("/checkout/metrics", checkoutCtrl.GetMetrics)

	return r
}

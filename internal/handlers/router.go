package handlers

import "github.com/gin-gonic/gin"

// NewRouter assembles the HTTP surface of the inventory service
func NewRouter(books *BookHandler, sales *SaleHandler, reorders *ReorderHandler) *gin.Engine {
	router := gin.Default()

	router.GET("/health", books.HealthCheck)

	router.GET("/books", books.ListBooks)
	router.GET("/books/low-stock", books.LowStock)
	router.GET("/books/:id", books.GetBook)
	router.POST("/books", books.CreateBook)
	router.PUT("/books/:id/stock", books.UpdateStock)
	router.DELETE("/books/:id", books.DeleteBook)

	router.POST("/sales", sales.ProcessSale)
	router.GET("/invoices", sales.ListInvoices)
	router.GET("/invoices/:id", sales.GetInvoice)

	router.POST("/reorders", reorders.CreateReorder)
	router.POST("/reorders/scan", reorders.Scan)
	router.GET("/reorders", reorders.ListReorders)
	router.POST("/reorders/:id/approve", reorders.Approve)
	router.POST("/reorders/:id/reject", reorders.Reject)

	return router
}

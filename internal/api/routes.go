package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"goshopper-backend-go/internal/config"
	"goshopper-backend-go/internal/core"
	"goshopper-backend-go/internal/db"
	"goshopper-backend-go/internal/middleware"
)

// SetupRoutes configures all the application routes with their handlers and
// middleware. Global middleware (Logging, Recovery, CORS) are applied to the
// router before this function is called, in main.go.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	userService core.UserService,
	subscriptionService core.SubscriptionService,
	receiptService core.ReceiptService,
	priceCompareService core.PriceCompareService,
	shoppingListService core.ShoppingListService,
	paymentService core.PaymentService,
) {
	// The Firebase Auth client must be available after db.InitFirestore().
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("Firebase Auth client is not initialized; routes cannot be secured")
		panic("Firebase Auth client is nil during route setup. Ensure db.InitFirestore() was called and succeeded.")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient)

	authHandler := NewAuthHandler(userService)
	userHandler := NewUserHandler(userService)
	subscriptionHandler := NewSubscriptionHandler(subscriptionService)
	receiptHandler := NewReceiptHandler(receiptService, priceCompareService)
	listHandler := NewShoppingListHandler(shoppingListService)
	paymentHandler := NewPaymentHandler(paymentService)

	apiV1 := router.Group("/api/v1")
	{
		usersGroup := apiV1.Group("/users")
		{
			// Called after client-side Firebase login/signup to ensure the
			// backend profile and trial subscription exist.
			usersGroup.POST("/initialize", authMW.VerifyToken(), authHandler.InitializeUserProfile)
			usersGroup.GET("/me", authMW.VerifyToken(), userHandler.GetCurrentUserProfile)
		}

		subscriptionsGroup := apiV1.Group("/subscriptions", authMW.VerifyToken())
		{
			subscriptionsGroup.GET("/me", subscriptionHandler.GetCurrentSubscription)
			subscriptionsGroup.POST("/record-scan", subscriptionHandler.RecordScan)
		}

		receiptsGroup := apiV1.Group("/receipts", authMW.VerifyToken())
		{
			receiptsGroup.POST("", receiptHandler.CreateReceipt)
			receiptsGroup.GET("", receiptHandler.ListReceipts)
			// Registered before the :receiptId routes so "stats" is not
			// captured as a receipt ID.
			receiptsGroup.GET("/stats", receiptHandler.GetSpendingStats)
			receiptsGroup.GET("/:receiptId", receiptHandler.GetReceipt)
			receiptsGroup.DELETE("/:receiptId", receiptHandler.DeleteReceipt)
			receiptsGroup.PATCH("/:receiptId/city", receiptHandler.UpdateReceiptCity)
			receiptsGroup.GET("/:receiptId/comparison", receiptHandler.GetComparison)
		}

		listsGroup := apiV1.Group("/shopping-lists", authMW.VerifyToken())
		{
			listsGroup.POST("", listHandler.CreateList)
			listsGroup.GET("", listHandler.ListLists)
			listsGroup.GET("/:listId", listHandler.GetList)
			listsGroup.PUT("/:listId", listHandler.UpdateList)
			listsGroup.DELETE("/:listId", listHandler.DeleteList)
		}

		paymentsGroup := apiV1.Group("/payments")
		{
			paymentsGroup.POST("/initiate", authMW.VerifyToken(), paymentHandler.InitiatePayment)

			// Public webhook endpoint; the gateway authenticates via the
			// signature header, checked by the service.
			paymentsGroup.POST("/webhook", paymentHandler.HandleWebhook)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "GoShopper backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}

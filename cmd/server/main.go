package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"goshopper-backend-go/internal/api"
	"goshopper-backend-go/internal/cache"
	"goshopper-backend-go/internal/config"
	"goshopper-backend-go/internal/core"
	"goshopper-backend-go/internal/db"
	"goshopper-backend-go/internal/middleware"
	"goshopper-backend-go/internal/pricing"
)

func main() {
	// --- 1. Initialize Logger (Zap) ---
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 3. Initialize Firebase Admin SDK (Firestore and Auth clients) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore and Firebase Admin SDK", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized successfully.")

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firestoreClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firestore client is nil after initialization. Application cannot start.")
	}
	if firebaseAuthClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firebase Auth client is nil after initialization. Application cannot start.")
	}

	// --- 4. Optional Redis cache for price-comparison responses ---
	var comparisonCache cache.Cache
	if appConfig.RedisAddr != "" {
		comparisonCache, err = cache.NewRedisCache(initCtx, cache.Options{
			Addr:     appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			// The cache is an optimization; the service works without it.
			zapLogger.Warn("Redis unavailable; price-comparison caching disabled", zap.Error(err))
			comparisonCache = nil
		} else {
			zapLogger.Info("Redis cache connected", zap.String("addr", appConfig.RedisAddr))
		}
	}

	// --- 5. Initialize Repositories ---
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	subscriptionRepo := db.NewFirestoreSubscriptionRepository(firestoreClient)
	receiptRepo := db.NewFirestoreReceiptRepository(firestoreClient)
	pricePointRepo := db.NewFirestorePricePointRepository(firestoreClient)
	shoppingListRepo := db.NewFirestoreShoppingListRepository(firestoreClient)
	paymentRepo := db.NewFirestorePaymentRepository(firestoreClient)
	auditRepo := db.NewFirestoreAuditRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 6. Initialize Services ---
	auditService := core.NewAuditService(auditRepo)
	encryptionService := core.NewEncryptionService()
	subscriptionService := core.NewSubscriptionService(subscriptionRepo, auditService, zapLogger)
	userService := core.NewUserService(userRepo, subscriptionService)

	normalizer := pricing.NewNormalizer()
	receiptService := core.NewReceiptService(receiptRepo, pricePointRepo, subscriptionService, auditService, normalizer, zapLogger)
	priceCompareService := core.NewPriceCompareService(receiptService, pricePointRepo, subscriptionService, comparisonCache, zapLogger)
	shoppingListService := core.NewShoppingListService(shoppingListRepo, subscriptionService, auditService, zapLogger)

	paymentService, err := core.NewPaymentService(paymentRepo, subscriptionService, auditService, encryptionService, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize PaymentService", zap.Error(err))
	}
	zapLogger.Info("Core services initialized successfully.")

	// --- 7. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 8. Apply Global Middleware (order matters) ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware(appConfig))

	// --- 9. Setup API Routes ---
	api.SetupRoutes(
		router,
		appConfig,
		zapLogger,
		userService,
		subscriptionService,
		receiptService,
		priceCompareService,
		shoppingListService,
		paymentService,
	)

	// --- 10. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 11. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}

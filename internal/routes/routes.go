package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/handlers"
	"github.com/example/mlmadmin/internal/middleware"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, st store.Store, cfg *config.Config) {
	backend := services.NewBackend(cfg.BackendBaseURL, cfg.BackendTimeout, cfg.DebugMode)
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)

	authHandler := handlers.NewAuthHandler(backend, st, cfg)
	dashboardHandler := handlers.NewDashboardHandler(backend, cfg)
	memberHandler := handlers.NewMemberHandler(backend, st, cfg)
	referralHandler := handlers.NewReferralHandler(backend, cfg)
	orderHandler := handlers.NewOrderHandler(backend, st, cfg)
	paymentHandler := handlers.NewPaymentHandler(backend, st, cfg)
	payoutHandler := handlers.NewPayoutHandler(backend, st, telegramService, cfg)
	giftHandler := handlers.NewGiftHandler(backend, st, telegramService, cfg)
	rewardHandler := handlers.NewRewardHandler(backend, st, cfg)
	milestoneHandler := handlers.NewMilestoneHandler(backend, st, cfg)
	incomeHandler := handlers.NewIncomeHandler(backend, cfg)
	kycHandler := handlers.NewKYCHandler(backend, st, cfg)
	productHandler := handlers.NewProductHandler(backend, st, cfg)
	settingsHandler := handlers.NewSettingsHandler(backend, st, cfg)
	notificationHandler := handlers.NewNotificationHandler(st, backend)
	preferenceHandler := handlers.NewPreferenceHandler(st)

	// Public routes
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get(middleware.LoginPath, authHandler.LoginPage)
	app.Post("/api/auth/login", authHandler.Login)

	app.Use(middleware.AuthMiddleware(cfg.SessionSecret, st))

	app.Get("/", handlers.Index)

	api := app.Group("/api")

	// Session
	auth := api.Group("/auth")
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authHandler.Me)

	api.Get("/navigation", handlers.Navigation)
	api.Get("/dashboard", dashboardHandler.Stats)

	// Members
	members := api.Group("/members")
	members.Get("/", memberHandler.List)
	members.Get("/export", memberHandler.Export)
	members.Get("/:id", memberHandler.Detail)
	members.Put("/:id/status", memberHandler.UpdateStatus)
	members.Post("/:id/reset-password", memberHandler.ResetPassword)
	members.Delete("/:id", memberHandler.Delete)

	// Referral tree
	tree := api.Group("/referral-tree")
	tree.Get("/search", referralHandler.Search)
	tree.Get("/export/:userId", referralHandler.Export)
	tree.Get("/code/:code", referralHandler.ByCode)
	tree.Get("/:userId", referralHandler.Tree)

	// Orders
	orders := api.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Get("/stats", orderHandler.Stats)
	orders.Get("/export", orderHandler.Export)
	orders.Put("/:id/status", orderHandler.UpdateStatus)
	orders.Put("/:id/tracking", orderHandler.UpdateTracking)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Post("/:id/refund", orderHandler.Refund)

	// Payments
	payments := api.Group("/payments")
	payments.Get("/", paymentHandler.List)
	payments.Get("/stats", paymentHandler.Stats)
	payments.Get("/export", paymentHandler.Export)
	payments.Post("/:id/refund", paymentHandler.Refund)

	// Payouts and redeem requests
	payouts := api.Group("/payouts")
	payouts.Get("/", payoutHandler.Payouts)
	payouts.Get("/stats", payoutHandler.PayoutStats)
	payouts.Get("/redeem-requests", payoutHandler.RedeemRequests)
	payouts.Get("/redeem-requests/export", payoutHandler.ExportRedeemRequests)
	payouts.Put("/redeem-requests/:userId/status", payoutHandler.UpdateRedeemStatus)
	payouts.Put("/redeem-requests/:userId/amount", payoutHandler.UpdateRedeemAmount)
	payouts.Get("/redeem-requests/:userId/history", payoutHandler.RedeemHistory)
	payouts.Get("/bank-details/:userId", payoutHandler.BankDetails)
	payouts.Post("/disbursal-orders", payoutHandler.CreateDisbursalOrder)
	payouts.Post("/:id/approve", payoutHandler.Approve)
	payouts.Post("/:id/decline", payoutHandler.Decline)

	wallets := api.Group("/wallets")
	wallets.Get("/", payoutHandler.Wallets)
	wallets.Get("/export", payoutHandler.ExportWallets)

	// Gifts
	gifts := api.Group("/gifts")
	gifts.Get("/", giftHandler.List)
	gifts.Post("/", giftHandler.Create)
	gifts.Get("/export", giftHandler.Export)
	gifts.Post("/:id/approve", giftHandler.Approve)
	gifts.Post("/:id/reject", giftHandler.Reject)
	gifts.Post("/:id/deliver", giftHandler.Deliver)
	gifts.Get("/:id/logs", giftHandler.Logs)
	gifts.Delete("/:id", giftHandler.Delete)

	// Rewards
	rewards := api.Group("/rewards")
	rewards.Get("/", rewardHandler.List)
	rewards.Post("/", rewardHandler.Create)
	rewards.Get("/stats", rewardHandler.Stats)
	rewards.Get("/export", rewardHandler.Export)
	rewards.Put("/:id", rewardHandler.Update)
	rewards.Delete("/:id", rewardHandler.Delete)
	rewards.Post("/:id/revoke", rewardHandler.Revoke)

	// Milestones and reward targets
	milestones := api.Group("/milestones")
	milestones.Get("/", milestoneHandler.List)
	milestones.Post("/", milestoneHandler.Create)
	milestones.Put("/:id", milestoneHandler.Update)
	milestones.Patch("/:id/active", milestoneHandler.SetActive)
	milestones.Delete("/:id", milestoneHandler.Delete)

	targets := api.Group("/reward-targets")
	targets.Get("/", milestoneHandler.Targets)
	targets.Post("/", milestoneHandler.CreateTarget)
	targets.Put("/:id", milestoneHandler.UpdateTarget)
	targets.Delete("/:id", milestoneHandler.DeleteTarget)

	// Income reports
	income := api.Group("/income-reports")
	income.Get("/", incomeHandler.Report)
	income.Get("/top-earners", incomeHandler.TopEarners)
	income.Get("/daily", incomeHandler.Daily)
	income.Get("/export", incomeHandler.Export)

	// KYC
	kyc := api.Group("/kyc")
	kyc.Get("/", kycHandler.List)
	kyc.Get("/export", kycHandler.Export)
	kyc.Post("/bulk/approve", kycHandler.BulkApprove)
	kyc.Post("/bulk/reject", kycHandler.BulkReject)
	kyc.Post("/:id/approve", kycHandler.Approve)
	kyc.Post("/:id/reject", kycHandler.Reject)

	// Products
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/export", productHandler.Export)
	products.Get("/:id/image", productHandler.Image)
	products.Delete("/:id", productHandler.Delete)

	// Settings
	settings := api.Group("/settings")
	settings.Get("/content", settingsHandler.Content)
	settings.Put("/privacy", settingsHandler.SavePrivacy)
	settings.Put("/terms", settingsHandler.SaveTerms)
	settings.Post("/faqs", settingsHandler.CreateFAQ)
	settings.Get("/platform", settingsHandler.Platform)
	settings.Put("/platform", settingsHandler.UpdatePlatform)
	settings.Get("/admin-users", settingsHandler.AdminUsers)
	settings.Post("/admin-users", settingsHandler.CreateAdminUser)
	settings.Delete("/admin-users/:id", settingsHandler.DeleteAdminUser)

	// Local state
	notifications := api.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/badges", notificationHandler.Badges)
	notifications.Post("/read-all", notificationHandler.ReadAll)
	notifications.Delete("/", notificationHandler.Clear)
	notifications.Delete("/:id", notificationHandler.Delete)

	preferences := api.Group("/preferences")
	preferences.Get("/", preferenceHandler.Get)
	preferences.Put("/theme", preferenceHandler.SetTheme)
	preferences.Post("/theme/toggle", preferenceHandler.Toggle)
}

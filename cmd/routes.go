package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Subscription
	mux.Get("/subscription", authMiddleware.ThenFunc(app.subscriptionHandler.GetCurrent))
	mux.Post("/subscription/change_plan", authMiddleware.ThenFunc(app.subscriptionHandler.ChangePlan))
	mux.Get("/subscription/usage", authMiddleware.ThenFunc(app.subscriptionHandler.GetUsage))

	// Plans
	mux.Get("/plans/public", standardMiddleware.ThenFunc(app.planHandler.GetPublicPlans))
	mux.Get("/plans", authMiddleware.ThenFunc(app.planHandler.GetPlans))
	mux.Get("/plans/:id", authMiddleware.ThenFunc(app.planHandler.GetPlanByID))
	mux.Get("/plans/:id/features", authMiddleware.ThenFunc(app.planHandler.GetPlanFeatures))
	mux.Post("/plans", adminAuthMiddleware.ThenFunc(app.planHandler.CreatePlan))
	mux.Put("/plans/:id", adminAuthMiddleware.ThenFunc(app.planHandler.UpdatePlan))
	mux.Del("/plans/:id", adminAuthMiddleware.ThenFunc(app.planHandler.DeletePlan))

	// Orders
	mux.Get("/orders/pending", authMiddleware.ThenFunc(app.orderHandler.GetPending))
	mux.Get("/orders/activation_notices", authMiddleware.ThenFunc(app.orderHandler.GetActivationNotices))
	mux.Post("/orders", authMiddleware.ThenFunc(app.orderHandler.InitiateOrder))
	mux.Post("/orders/:id/cancel", authMiddleware.ThenFunc(app.orderHandler.CancelOrder))
	mux.Post("/orders/:id/retry", authMiddleware.ThenFunc(app.orderHandler.RetryPayment))
	mux.Post("/orders/:id/checkout", authMiddleware.ThenFunc(app.orderHandler.CreateCheckout))

	// Credit packages
	mux.Get("/credit_packages", authMiddleware.ThenFunc(app.creditPackageHandler.GetPackages))
	mux.Post("/credit_packages/order", authMiddleware.ThenFunc(app.creditPackageHandler.InitiateOrder))
	mux.Post("/credit_packages", adminAuthMiddleware.ThenFunc(app.creditPackageHandler.CreatePackage))
	mux.Put("/credit_packages/:id", adminAuthMiddleware.ThenFunc(app.creditPackageHandler.UpdatePackage))
	mux.Del("/credit_packages/:id", adminAuthMiddleware.ThenFunc(app.creditPackageHandler.DeletePackage))

	// Brand messages
	mux.Get("/brand_messages", authMiddleware.ThenFunc(app.brandMessageHandler.GetByProject))
	mux.Post("/brand_messages/generate", authMiddleware.ThenFunc(app.brandMessageHandler.Generate))

	// Projects
	mux.Post("/projects/draft", authMiddleware.ThenFunc(app.projectHandler.SaveDraft))
	mux.Get("/projects/draft", authMiddleware.ThenFunc(app.projectHandler.GetDraft))
	mux.Del("/projects/draft", authMiddleware.ThenFunc(app.projectHandler.DeleteDraft))
	mux.Post("/projects", authMiddleware.ThenFunc(app.projectHandler.CreateProject))

	// Scraper dashboard
	mux.Post("/scraper/manifests", adminAuthMiddleware.ThenFunc(app.scraperHandler.CreateManifest))
	mux.Get("/scraper/manifests", authMiddleware.ThenFunc(app.scraperHandler.GetManifests))
	mux.Get("/scraper/manifests/:id", authMiddleware.ThenFunc(app.scraperHandler.GetManifestByID))
	mux.Put("/scraper/manifests/:id", adminAuthMiddleware.ThenFunc(app.scraperHandler.UpdateManifest))
	mux.Del("/scraper/manifests/:id", adminAuthMiddleware.ThenFunc(app.scraperHandler.DeleteManifest))
	mux.Post("/scraper/manifests/:id/trigger", authMiddleware.ThenFunc(app.scraperHandler.TriggerJob))
	mux.Get("/scraper/jobs", authMiddleware.ThenFunc(app.scraperHandler.GetJobs))
	// Agent callback, authenticated by X-API-Key inside the handler.
	mux.Post("/scraper/jobs/:id/result", standardMiddleware.ThenFunc(app.scraperHandler.ReportJobResult))
	mux.Post("/scraper/api_keys", adminAuthMiddleware.ThenFunc(app.scraperHandler.CreateAPIKey))
	mux.Get("/scraper/api_keys", adminAuthMiddleware.ThenFunc(app.scraperHandler.GetAPIKeys))
	mux.Del("/scraper/api_keys/:id", adminAuthMiddleware.ThenFunc(app.scraperHandler.RevokeAPIKey))

	// Job stream
	mux.Get("/scraper/ws", authMiddleware.ThenFunc(app.JobStreamHandler))

	// Notifications
	mux.Post("/notifications/device_token", authMiddleware.ThenFunc(app.notificationHandler.RegisterToken))

	// State
	mux.Post("/state/reset", authMiddleware.ThenFunc(app.stateHandler.ResetState))
	mux.Post("/state/reset_all", adminAuthMiddleware.ThenFunc(app.stateHandler.ResetAll))

	return standardMiddleware.Then(mux)
}

package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/auth"
	"reviewapi/internal/http/middleware"
	"reviewapi/internal/service"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app. Login
// and health endpoints are public; everything else requires a Bearer token.
func RegisterRoutes(app *fiber.App, db *sql.DB, creds service.CredentialService, papers service.PaperService, signer *auth.Signer) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/admin/login", AdminLogin(creds))
	app.Post("/moderators/login", ModeratorLogin(creds))

	authed := middleware.Auth(signer)

	app.Post("/moderators", authed, RegisterModerator(creds))
	app.Get("/moderators", authed, ListModerators(creds))
	app.Delete("/moderators/:id", authed, DeleteModerator(creds))

	app.Post("/papers", authed, CreatePaper(papers))
	app.Put("/papers/:id", authed, UpdatePaper(papers))
	app.Delete("/papers/:id", authed, DeletePaper(papers))
	app.Delete("/papers/:paperId/files/:fileId", authed, DeleteAttachment(papers))
	app.Get("/papers/moderator/:moderatorId", authed, ListPapersByModerator(papers))
}

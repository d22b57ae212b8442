package handler

import (
	"database/sql"
	_ "embed"

	"github.com/gofiber/fiber/v2"

	"knowledgehub/internal/auth"
	"knowledgehub/internal/http/middleware"
	"knowledgehub/internal/service"
)

// openapiSpec is compiled into the binary so /openapi.yaml works no matter
// what the process working directory is.
//
//go:embed openapi.yaml
var openapiSpec []byte

// Services bundles everything RegisterRoutes wires into the route tree.
type Services struct {
	Auth       service.AuthService
	Documents  service.DocumentService
	Attachment service.AttachmentService
	FAQ        service.FAQService
	Users      service.UserService
	Categories service.CategoryService
	Analytics  service.AnalyticsService
	Assistant  service.AssistantService
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app. Handlers
// stay thin; authorization beyond the route-level guards lives in the services.
// The rate limiter guards the credential endpoints (keyed by IP, since no
// token exists yet) and the assistant (keyed by subject, mounted after Auth).
func RegisterRoutes(app *fiber.App, db *sql.DB, tm *auth.TokenManager, limiter *middleware.RateLimiter, svcs Services) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.Send(openapiSpec)
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	authn := middleware.Auth(tm)
	admin := middleware.RequireAdmin()

	// Auth
	authGroup := app.Group("/auth", limiter.Handler())
	authGroup.Post("/register", Register(svcs.Auth))
	authGroup.Post("/login", Login(svcs.Auth))
	authGroup.Post("/logout", authn, Logout(svcs.Auth))
	authGroup.Get("/session", authn, GetSession(svcs.Auth))
	authGroup.Put("/session/theme", authn, SetTheme(svcs.Auth))
	authGroup.Put("/password", authn, ChangePassword(svcs.Auth))
	authGroup.Post("/reset/request", RequestPasswordReset(svcs.Auth))
	authGroup.Post("/reset/confirm", ConfirmPasswordReset(svcs.Auth))

	// Profile
	app.Get("/profile", authn, GetMyProfile(svcs.Users))
	app.Put("/profile", authn, UpdateMyProfile(svcs.Users))

	// Documents
	docs := app.Group("/documents")
	docs.Get("/", ListDocuments(svcs.Documents))
	docs.Get("/mine", authn, ListMyDocuments(svcs.Documents))
	docs.Post("/", authn, SubmitDocument(svcs.Documents))
	docs.Get("/:id", GetDocument(svcs.Documents))
	docs.Put("/:id", authn, UpdateDocument(svcs.Documents))
	docs.Delete("/:id", authn, DeleteDocument(svcs.Documents))
	docs.Post("/:id/view", RecordDocumentView(svcs.Documents))
	docs.Post("/:id/download", RecordDocumentDownload(svcs.Documents))
	docs.Get("/:id/attachments", ListAttachments(svcs.Attachment))
	docs.Post("/:id/attachments", authn, UploadAttachment(svcs.Attachment))

	// Attachments
	app.Delete("/attachments/:id", authn, DeleteAttachment(svcs.Attachment))

	// Categories
	app.Get("/categories", ListCategories(svcs.Categories))
	app.Post("/categories", authn, admin, CreateCategory(svcs.Categories))

	// FAQs
	faqs := app.Group("/faqs")
	faqs.Get("/", ListFAQs(svcs.FAQ))
	faqs.Post("/:id/vote", VoteFAQ(svcs.FAQ))

	// FAQ submissions
	subs := app.Group("/faq-submissions", authn)
	subs.Post("/", SubmitFAQQuestion(svcs.FAQ))
	subs.Get("/mine", ListMyFAQSubmissions(svcs.FAQ))

	// Assistant
	app.Post("/assistant/ask", authn, limiter.Handler(), AskAssistant(svcs.Assistant))

	// Admin console
	adm := app.Group("/admin", authn, admin)
	adm.Get("/documents/pending", ListPendingDocuments(svcs.Documents))
	adm.Post("/documents/:id/approve", ApproveDocument(svcs.Documents))
	adm.Post("/documents/:id/reject", RejectDocument(svcs.Documents))
	adm.Get("/faq-submissions/pending", ListPendingFAQSubmissions(svcs.FAQ))
	adm.Post("/faq-submissions/:id/approve", ApproveFAQSubmission(svcs.FAQ))
	adm.Post("/faq-submissions/:id/reject", RejectFAQSubmission(svcs.FAQ))
	adm.Put("/faqs/:id", UpdateFAQ(svcs.FAQ))
	adm.Delete("/faqs/:id", DeleteFAQ(svcs.FAQ))
	adm.Get("/users", ListUsers(svcs.Users))
	adm.Put("/users/:id/role", ChangeUserRole(svcs.Users))
	adm.Put("/users/:id/active", SetUserActive(svcs.Users))
	adm.Get("/analytics/dashboard", GetDashboard(svcs.Analytics))
	adm.Get("/activity", ListActivity(svcs.Analytics))
}

package router

import (
	"cinema_factory/handler"
	"cinema_factory/middleware"
	"cinema_factory/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

type Handlers struct {
	Payment      *handler.PaymentHandler
	Transactions *handler.TransactionHandler
	Assets       *handler.AssetHandler
	Faqs         *handler.FaqHandler
	Auth         *handler.AuthHandler
	// Socket is nil when Redis is not configured.
	Socket    *handler.PaymentSocket
	JWTSecret string
}

func SetupRoutes(app *fiber.App, h Handlers) {
	admin := middleware.Protected(h.JWTSecret)
	app.Use(logger.New())

	// gateway-facing paths stay at the root where the gateway is configured to call them
	app.Post("/payment-initiate", validate.InitiatePayment(), h.Payment.Initiate)
	app.Get("/payment-callback", h.Payment.Callback)
	app.Post("/payment-callback", h.Payment.Callback)

	payphi := app.Group("/api/payphi")
	payphi.Post("/initiate", validate.InitiatePayment(), h.Payment.Initiate)
	payphi.Get("/callback", h.Payment.Callback)
	payphi.Post("/callback", h.Payment.Callback)

	payment := app.Group("/payment")
	payment.Get("/", admin, validate.TransactionFilter(), h.Transactions.GetPayments)
	payment.Post("/", validate.CreateTransaction(), h.Transactions.CreatePayment)
	payment.Get("/export", admin, validate.TransactionFilter(), h.Transactions.ExportPayments)
	payment.Get("/summary", admin, validate.TransactionFilter(), h.Transactions.Summary)
	payment.Get("/:id/receipt", admin, validate.GetById("id"), h.Transactions.Receipt)
	payment.Put("/:id", admin, validate.GetById("id"), validate.UpdateTransaction(), h.Transactions.UpdatePayment)
	payment.Delete("/:id", admin, validate.GetById("id"), h.Transactions.DeletePayment)

	faqs := app.Group("/faqs")
	faqs.Get("/", h.Faqs.GetFaqs)
	faqs.Post("/", admin, validate.FaqInput(), h.Faqs.CreateFaq)
	faqs.Put("/:id", admin, validate.GetById("id"), validate.FaqInput(), h.Faqs.UpdateFaq)
	faqs.Delete("/:id", admin, validate.GetById("id"), h.Faqs.DeleteFaq)

	auth := app.Group("/auth")
	auth.Post("/login", validate.Login(), h.Auth.Login)

	v1 := app.Group("/api/v1")
	v1.Post("/auth/login", validate.Login(), h.Auth.Login)

	// diploma routes first: /diploma/pdf would otherwise match /:kind/:id
	sections := v1.Group("/sections/:section")
	sections.Get("/diploma", validate.DiplomaSection(), h.Assets.GetDiploma)
	sections.Post("/diploma/pdf", admin, validate.DiplomaSection(), h.Assets.UploadDiplomaPdf)
	sections.Get("/diploma/pdf/view", validate.DiplomaSection(), h.Assets.ViewDiplomaPdf)
	sections.Delete("/diploma/pdf", admin, validate.DiplomaSection(), h.Assets.DeleteDiplomaPdf)

	sections.Get("/:kind", validate.SectionKind(), h.Assets.ListItems)
	sections.Post("/:kind/upload", admin, validate.SectionKind(), validate.AssetFields(), h.Assets.Upload)
	sections.Delete("/:kind/:id", admin, validate.SectionKind(), h.Assets.DeleteItem)

	if h.Socket != nil {
		ws := app.Group("/ws", handler.UpgradeRequired)
		ws.Get("/payments/:txn", websocket.New(h.Socket.Connection))
	}
}

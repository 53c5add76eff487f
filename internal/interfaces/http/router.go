package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/plate-rental-api/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CalculateBill *billing.CalculateBillUseCase
	GenerateBill  *billing.GenerateBillUseCase
	ClientUC      *billing.ClientUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	billHandler := NewBillHandler(deps.CalculateBill, deps.GenerateBill)

	// Facturas
	bills := api.Group("/bills")
	bills.Post("/calculate", billHandler.Calculate)
	bills.Post("/preview", billHandler.Preview)
	bills.Get("/:id", billHandler.GetByID)

	// Clientes y facturación con sus challans almacenados
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Post("/:id/bills", billHandler.Generate)
}

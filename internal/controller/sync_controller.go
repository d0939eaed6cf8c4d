package controller

import (
	"shop-agent-be/internal/dto"
	"shop-agent-be/internal/pkg/serverutils"
	"shop-agent-be/internal/service"
	"shop-agent-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type ISyncController interface {
	RegisterRoutes(r fiber.Router)
	TriggerSync(ctx *fiber.Ctx) error
	GetCategories(ctx *fiber.Ctx) error
}

type syncController struct {
	service       service.ISyncService
	categoryStore *store.CategoryStore
	shopDomain    string
}

func NewSyncController(service service.ISyncService, categoryStore *store.CategoryStore, shopDomain string) ISyncController {
	return &syncController{
		service:       service,
		categoryStore: categoryStore,
		shopDomain:    shopDomain,
	}
}

func (c *syncController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sync/v1")
	h.Post("", c.TriggerSync)
	h.Get("/categories", c.GetCategories)
}

// TriggerSync enqueues a sync and returns immediately. Progress is visible
// only in logs and the event stream. The body is optional: without one the
// configured shop is synced.
func (c *syncController) TriggerSync(ctx *fiber.Ctx) error {
	var req dto.TriggerSyncRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}
	}

	res, err := c.service.TriggerSync(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Catalog sync queued", res))
}

func (c *syncController) GetCategories(ctx *fiber.Ctx) error {
	shopDomain := ctx.Query("shop_domain", c.shopDomain)

	set, err := c.categoryStore.Get(ctx.Context(), shopDomain)
	if err != nil {
		return err
	}

	res := dto.CategoriesResponse{Categories: set.Categories}
	if !set.UpdatedAt.IsZero() {
		t := set.UpdatedAt
		res.UpdatedAt = &t
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get categories", res))
}

package handlers

import (
	"errors"

	applog "pinjamdesa/internal/log"
	"pinjamdesa/internal/media"
	"pinjamdesa/internal/services"
	"pinjamdesa/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	Items  *services.ItemService
	Photos *media.Store
}

// GET /admin/items
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.Items.List()
	if err != nil {
		applog.Error(c, "admin.items.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load items"})
	}
	return render(c, "admin_items", fiber.Map{"Items": items})
}

// GET /admin/items/new
func (h *ItemHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "item_form", fiber.Map{"Item": nil})
}

// POST /admin/items
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	name, okName := validate.Name(c.FormValue("name"))
	category, okCat := validate.Category(c.FormValue("category"))
	stock, okStock := validate.Stock(c.FormValue("total_stock"))
	if !okName || !okCat || !okStock {
		return c.Status(400).SendString("invalid input")
	}

	photo := ""
	if fh, err := c.FormFile("photo"); err == nil && fh != nil {
		photo, err = h.Photos.Save(fh)
		if err != nil {
			applog.Error(c, "admin.items.photo.save.fail", err, map[string]any{"name": name})
			return c.Status(400).SendString("could not store photo")
		}
	}

	it, err := h.Items.Create(name, category, stock, photo)
	if err != nil {
		// The photo was already written; don't leave it orphaned.
		if derr := h.Photos.Delete(photo); derr != nil {
			applog.Error(c, "admin.items.photo.cleanup.fail", derr, map[string]any{"photo": photo})
		}
		if errors.Is(err, services.ErrNameTaken) {
			return c.Status(409).SendString("an item with that name already exists")
		}
		applog.Error(c, "admin.items.create.fail", err, map[string]any{"name": name})
		return c.Status(400).SendString("could not create item")
	}

	applog.Audit(c, "admin.items.create", map[string]any{"item_id": it.ID, "name": name, "stock": stock})
	return c.Redirect("/admin/items")
}

// GET /admin/items/:id/edit
func (h *ItemHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}
	it, err := h.Items.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
	}
	return render(c, "item_form", fiber.Map{"Item": it})
}

// POST /admin/items/:id
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	name, okName := validate.Name(c.FormValue("name"))
	category, okCat := validate.Category(c.FormValue("category"))
	stock, okStock := validate.Stock(c.FormValue("total_stock"))
	if !okID || !okName || !okCat || !okStock {
		return c.Status(400).SendString("invalid input")
	}

	newPhoto := ""
	if fh, err := c.FormFile("photo"); err == nil && fh != nil {
		newPhoto, err = h.Photos.Save(fh)
		if err != nil {
			applog.Error(c, "admin.items.photo.save.fail", err, map[string]any{"item_id": id})
			return c.Status(400).SendString("could not store photo")
		}
	}

	oldPhoto, err := h.Items.Update(id, name, category, stock, newPhoto)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
		}
		applog.Error(c, "admin.items.update.fail", err, map[string]any{"item_id": id})
		return c.Status(400).SendString("could not update item")
	}

	// Best effort: a stale photo must never block the record mutation.
	if oldPhoto != "" {
		if derr := h.Photos.Delete(oldPhoto); derr != nil {
			applog.Error(c, "admin.items.photo.delete.fail", derr, map[string]any{"item_id": id, "photo": oldPhoto})
		}
	}

	applog.Audit(c, "admin.items.update", map[string]any{"item_id": id, "stock": stock})
	return c.Redirect("/admin/items")
}

// POST /admin/items/:id/delete
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	photo, err := h.Items.Delete(id)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Item not found"})
		}
		applog.Error(c, "admin.items.delete.fail", err, map[string]any{"item_id": id})
		return c.Status(400).SendString("could not delete item")
	}

	if photo != "" {
		if derr := h.Photos.Delete(photo); derr != nil {
			applog.Error(c, "admin.items.photo.delete.fail", derr, map[string]any{"item_id": id, "photo": photo})
		}
	}

	applog.Audit(c, "admin.items.delete", map[string]any{"item_id": id})
	return c.Redirect("/admin/items")
}

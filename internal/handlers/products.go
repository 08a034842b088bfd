package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/export"
	"github.com/example/mlmadmin/internal/filters"
	"github.com/example/mlmadmin/internal/models"
	"github.com/example/mlmadmin/internal/services"
	"github.com/example/mlmadmin/internal/store"
	"github.com/example/mlmadmin/internal/utils"
)

// ProductHandler serves the product catalog.
type ProductHandler struct {
	base
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(backend *services.Backend, notes store.Notifications, cfg *config.Config) *ProductHandler {
	return &ProductHandler{base: newBase(backend, notes, cfg)}
}

func (h *ProductHandler) fetchProducts(ctx context.Context, tok string) ([]models.Product, error) {
	list, _, err := services.FetchList[models.Product](ctx, h.backend, tok, services.PathProducts, nil, "products")
	return list, err
}

// List returns the filtered catalog.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var f filters.Products
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	products, err := h.fetchProducts(c.UserContext(), token(c))
	if err != nil {
		return err
	}
	rows, meta := utils.Paginate(filters.Apply(products, f.Match), h.pagination(c))
	return listResponse(c, rows, meta, fiber.Map{"filters": f})
}

// productFields are the form fields forwarded with a new product.
var productFields = []string{"name", "description", "cost", "price", "type", "inventory", "status"}

// Create forwards a multipart product form with its photos.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart form expected")
	}

	fields := make(map[string]string, len(productFields))
	for _, name := range productFields {
		if vals := form.Value[name]; len(vals) > 0 {
			fields[name] = strings.TrimSpace(vals[0])
		}
	}
	if fields["name"] == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	headers := form.File["images"]
	if err := h.validateImages(headers); err != nil {
		return err
	}

	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("open upload %s: %w", fh.Filename, err)
		}
		defer f.Close()
		files = append(files, services.UploadFile{
			Field:       "images",
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     f,
		})
	}

	resp, err := h.backend.Upload(c.UserContext(), token(c), services.PathProductAdd, fields, files)
	if err != nil {
		return err
	}
	h.notify(c, "product", "Product "+fields["name"]+" created")
	c.Status(fiber.StatusCreated)
	return relay(c, resp, "product created")
}

func (h *ProductHandler) validateImages(headers []*multipart.FileHeader) error {
	if len(headers) > h.cfg.UploadMaxFiles {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("at most %d images are allowed", h.cfg.UploadMaxFiles))
	}
	for _, fh := range headers {
		if fh.Size > h.cfg.UploadMaxFileSize {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("%s exceeds the %d MB limit", fh.Filename, h.cfg.UploadMaxFileSize>>20))
		}
		ct := strings.ToLower(fh.Header.Get("Content-Type"))
		if !slices.Contains(h.cfg.UploadAllowed, ct) {
			return fiber.NewError(fiber.StatusUnsupportedMediaType, fh.Filename+" must be a JPEG, PNG, GIF or WebP image")
		}
	}
	return nil
}

// Delete removes a product.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.send(c, http.MethodDelete, services.ProductDeletePath(id), nil); err != nil {
		return err
	}
	h.notify(c, "product", "Product "+id+" deleted")
	return c.JSON(fiber.Map{"success": true, "message": "product deleted"})
}

// Image proxies a product image from the backend with the session token.
func (h *ProductHandler) Image(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.backend.Stream(c.UserContext(), token(c), services.ProductImagePath(id))
	if err != nil {
		return err
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	for _, k := range []string{fiber.HeaderCacheControl, fiber.HeaderETag, fiber.HeaderLastModified} {
		if v := resp.Header.Get(k); v != "" {
			c.Set(k, v)
		}
	}
	return c.Status(resp.Status).Send(resp.Body)
}

// Export downloads the filtered catalog.
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	var f filters.Products
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filters")
	}
	products, err := h.fetchProducts(c.UserContext(), token(c))
	if err != nil {
		return err
	}

	t := export.Table{
		Title:   "Products",
		Sheet:   "Products",
		Headers: []string{"ID", "Name", "Cost", "Price", "Type", "Inventory", "Status", "Images"},
	}
	for _, p := range filters.Apply(products, f.Match) {
		t.Rows = append(t.Rows, []any{p.ID.String(), p.Name, p.Cost, p.Price, p.Type, p.Inventory, p.Status, len(p.Images)})
	}
	return sendExport(c, export.StemProducts, t)
}

package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"kassa/internal/hal"
	"kassa/internal/repositories"
	"kassa/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// Routes returns the product routes. Creation is reserved to admins, lookup
// to any authenticated user.
func (h *ProductHandler) Routes(guards Guards) []Route {
	return []Route{
		{Method: fiber.MethodPost, Path: "/products", Handlers: chain(h.HandleCreateProduct, guards.Authenticated, guards.Admin)},
		{Method: fiber.MethodGet, Path: "/products/:barcode", Handlers: chain(h.HandleGetProduct, guards.Authenticated)},
	}
}

// ProductLocation is the URI of the product with this barcode.
func ProductLocation(barcode int64) string {
	return "/products/" + strconv.FormatInt(barcode, 10)
}

// HandleCreateProduct validates and persists a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input services.ProductInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		h.logger.Debug("invalid product payload", zap.Error(err))
		return hal.WriteProblem(c, hal.NewProblem(fiber.StatusBadRequest, "Invalid data sent"))
	}

	product, err := h.service.CreateProduct(input)
	if err != nil {
		var violations services.ValidationErrors
		switch {
		case errors.As(err, &violations):
			return hal.WriteProblem(c, hal.NewProblem(fiber.StatusBadRequest, "Invalid data sent").WithErrors(violations))
		case errors.Is(err, repositories.ErrDuplicateBarcode):
			return hal.WriteProblem(c, hal.NewProblem(fiber.StatusConflict, err.Error()))
		}
		h.logger.Error("failed to create product", zap.Error(err))
		return hal.WriteProblem(c, hal.NewProblem(fiber.StatusInternalServerError, "Could not create product"))
	}

	h.logger.Info("product created", zap.Int64("barcode", product.Barcode))
	c.Set(fiber.HeaderLocation, ProductLocation(product.Barcode))
	return hal.Write(c, fiber.StatusCreated, SerializeProduct(product))
}

// HandleGetProduct looks a product up by barcode. An unknown barcode yields
// the empty representation rather than an error.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	barcode, err := strconv.ParseInt(c.Params("barcode"), 10, 64)
	if err != nil {
		return hal.Write(c, fiber.StatusOK, SerializeProduct(nil))
	}

	product, err := h.service.GetProductByBarcode(barcode)
	if err != nil {
		h.logger.Error("failed to get product", zap.Int64("barcode", barcode), zap.Error(err))
		return hal.WriteProblem(c, hal.NewProblem(fiber.StatusInternalServerError, "Could not retrieve product"))
	}
	return hal.Write(c, fiber.StatusOK, SerializeProduct(product))
}

package handlers

import (
	"strconv"

	"phantoms-store/helper"
	"phantoms-store/models"
	"phantoms-store/services"

	"github.com/gin-gonic/gin"
)

const maxImportFileSize = 5 << 20

type ProductHandler struct {
	productService services.ProductService
	importService  services.ImportService
	Helper         *helper.HTTPHelper
}

func NewProductHandler(productService services.ProductService, importService services.ImportService, h *helper.HTTPHelper) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		importService:  importService,
		Helper:         h,
	}
}

func (h *ProductHandler) list(c *gin.Context, viewer *models.Principal) {
	var params models.ListParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}
	params.Normalize()

	var (
		products []models.Product
		total    int64
		err      error
	)
	ctx := c.Request.Context()
	switch {
	case params.Search != "":
		products, total, err = h.productService.Search(ctx, viewer, params.Search, params)
	case params.Category != "":
		products, total, err = h.productService.ListByCategory(ctx, viewer, params.Category, params)
	default:
		products, total, err = h.productService.List(ctx, viewer, params)
	}
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendList(c, products, params.Limit, params.Page, total)
}

func (h *ProductHandler) GetPublicProducts(c *gin.Context) {
	h.list(c, nil)
}

func (h *ProductHandler) GetAdminProducts(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}
	h.list(c, &p)
}

// GetPublicProduct accepts either the numeric id or the product code (MCG-001).
func (h *ProductHandler) GetPublicProduct(c *gin.Context) {
	var (
		product *models.Product
		err     error
	)
	if id, parseErr := strconv.ParseUint(c.Param("id"), 10, 32); parseErr == nil {
		product, err = h.productService.Get(c.Request.Context(), nil, uint(id))
	} else {
		product, err = h.productService.GetByProductID(c.Request.Context(), c.Param("id"))
	}
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Product loaded", product)
}

func (h *ProductHandler) GetAdminProduct(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}
	id, ok := parseID(c, h.Helper)
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), &p, id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Product loaded", product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}

	var req models.CreateProductRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Product created", product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}
	id, ok := parseID(c, h.Helper)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Product updated", product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}
	id, ok := parseID(c, h.Helper)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), p, id); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Product deleted", h.Helper.EmptyJsonMap())
}

func (h *ProductHandler) ImportProducts(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.Helper.SendBadRequest(c, "File is required", h.Helper.EmptyJsonMap())
		return
	}
	if file.Size > maxImportFileSize {
		h.Helper.SendBadRequest(c, "File is too large", h.Helper.EmptyJsonMap())
		return
	}

	f, err := file.Open()
	if err != nil {
		h.Helper.SendError(c, models.ErrorInternalServer{Message: "failed to open upload", Err: err})
		return
	}
	defer f.Close()

	result, err := h.importService.ImportProducts(c.Request.Context(), p, f)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Import finished", result)
}


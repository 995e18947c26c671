package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/neoenginex/gemsutopia/internal/domain/catalog/model"
	"github.com/neoenginex/gemsutopia/internal/domain/catalog/service"
	"github.com/neoenginex/gemsutopia/pkg/response"
	"github.com/neoenginex/gemsutopia/pkg/utils"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(service service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// List is the public storefront listing (active products only).
func (h *CatalogHandler) List(c *gin.Context) {
	page, pageSize := utils.Pagination(c)
	products, total, err := h.service.ListProducts(true, (page-1)*pageSize, pageSize)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"items": products, "total": total, "page": page, "pageSize": pageSize})
}

// ListAdmin includes inactive products.
func (h *CatalogHandler) ListAdmin(c *gin.Context) {
	page, pageSize := utils.Pagination(c)
	products, total, err := h.service.ListProducts(false, (page-1)*pageSize, pageSize)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"items": products, "total": total, "page": page, "pageSize": pageSize})
}

func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.service.GetProduct(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrProductNotFound, "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, product)
}

type productInput struct {
	Name          string  `json:"name" binding:"required"`
	SKU           string  `json:"sku" binding:"required"`
	Description   string  `json:"description"`
	PriceCAD      float64 `json:"price_cad" binding:"required,gt=0"`
	PriceUSD      float64 `json:"price_usd" binding:"required,gt=0"`
	Carat         float64 `json:"carat" binding:"min=0"`
	Origin        string  `json:"origin"`
	Stock         int     `json:"stock" binding:"min=0"`
	IsActive      *bool   `json:"is_active"`
	FeaturedImage string  `json:"featured_image"`
}

func (in productInput) toModel() *model.Product {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return &model.Product{
		Name:          in.Name,
		SKU:           in.SKU,
		Description:   in.Description,
		PriceCAD:      decimal.NewFromFloat(in.PriceCAD),
		PriceUSD:      decimal.NewFromFloat(in.PriceUSD),
		Carat:         decimal.NewFromFloat(in.Carat),
		Origin:        in.Origin,
		Stock:         in.Stock,
		IsActive:      active,
		FeaturedImage: in.FeaturedImage,
	}
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	product := input.toModel()
	if err := h.service.CreateProduct(product); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, product)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	product := input.toModel()
	product.ID = c.Param("id")
	if err := h.service.UpdateProduct(product); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, product)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteProduct(c.Param("id")); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "Product deleted")
}

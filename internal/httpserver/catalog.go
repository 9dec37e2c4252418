package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scoopshop/internal/domain"
	"scoopshop/internal/validation"
)

func (h handlers) storefront(c *gin.Context) {
	views, err := h.deps.Catalog.Storefront(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": views})
}

func (h handlers) expiringSoon(c *gin.Context) {
	products, err := h.deps.Catalog.ExpiringSoon(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h handlers) listProducts(c *gin.Context) {
	products, err := h.deps.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h handlers) getProduct(c *gin.Context) {
	product, err := h.deps.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h handlers) createProduct(c *gin.Context) {
	var req validation.ProductRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	product, err := h.deps.Catalog.CreateProduct(c.Request.Context(), productFromRequest(req, ""))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h handlers) updateProduct(c *gin.Context) {
	var req validation.ProductRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	product, err := h.deps.Catalog.UpdateProduct(c.Request.Context(), productFromRequest(req, c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h handlers) deleteProduct(c *gin.Context) {
	if err := h.deps.Catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h handlers) createCategory(c *gin.Context) {
	var req validation.CategoryRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	category, err := h.deps.Catalog.CreateCategory(c.Request.Context(), domain.Category{Name: req.Name, Description: req.Description})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h handlers) updateCategory(c *gin.Context) {
	var req validation.CategoryRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	category, err := h.deps.Catalog.UpdateCategory(c.Request.Context(), domain.Category{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h handlers) deleteCategory(c *gin.Context) {
	if err := h.deps.Catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func productFromRequest(req validation.ProductRequest, id string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ExpiresOn:   req.ExpiresOn,
		CategoryID:  req.CategoryID,
	}
}

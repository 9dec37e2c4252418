package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"scoopshop/internal/validation"
)

func (h handlers) checkout(c *gin.Context) {
	ord, err := h.deps.Checkout.Checkout(c.Request.Context(), sessionToken(c), customerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ord)
}

func (h handlers) orderHistory(c *gin.Context) {
	cust := customerID(c)
	if cust == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_required"})
		return
	}
	orders, err := h.deps.Checkout.History(c.Request.Context(), *cust)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h handlers) getOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_order_id"})
		return
	}
	ord, err := h.deps.Checkout.Order(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

func (h handlers) updateOrderLine(c *gin.Context) {
	lineID, err := strconv.ParseInt(c.Param("lineID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_line_id"})
		return
	}
	var req validation.UpdateOrderLineRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	ord, err := h.deps.Checkout.UpdateLineQuantity(c.Request.Context(), lineID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scoopshop/internal/validation"
)

// sessionToken returns the request's session token, minting a fresh one and
// echoing it back in the response header when the client has none yet.
func sessionToken(c *gin.Context) string {
	token := c.GetHeader(sessionTokenHeader)
	if token == "" {
		token = uuid.NewString()
	}
	c.Header(sessionTokenHeader, token)
	return token
}

func (h handlers) getCart(c *gin.Context) {
	cart, err := h.deps.Cart.Fetch(c.Request.Context(), sessionToken(c), customerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h handlers) addCartItem(c *gin.Context) {
	var req validation.AddCartItemRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	cart, err := h.deps.Cart.AddItem(c.Request.Context(), sessionToken(c), customerID(c), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h handlers) removeCartItem(c *gin.Context) {
	cart, err := h.deps.Cart.RemoveItem(c.Request.Context(), sessionToken(c), c.Param("productID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h handlers) clearCart(c *gin.Context) {
	if err := h.deps.Cart.Clear(c.Request.Context(), sessionToken(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

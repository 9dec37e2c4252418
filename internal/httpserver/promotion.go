package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"scoopshop/internal/domain"
	"scoopshop/internal/validation"
)

func (h handlers) listPromotions(c *gin.Context) {
	promos, err := h.deps.Promotions.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"promotions": promos})
}

func (h handlers) getPromotion(c *gin.Context) {
	id, ok := promotionID(c)
	if !ok {
		return
	}
	promo, err := h.deps.Promotions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, promo)
}

func (h handlers) createPromotion(c *gin.Context) {
	var req validation.PromotionRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	promo, err := h.deps.Promotions.Create(c.Request.Context(), promotionFromRequest(req, 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, promo)
}

func (h handlers) updatePromotion(c *gin.Context) {
	id, ok := promotionID(c)
	if !ok {
		return
	}
	var req validation.PromotionRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	promo, err := h.deps.Promotions.Update(c.Request.Context(), promotionFromRequest(req, id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, promo)
}

func (h handlers) deletePromotion(c *gin.Context) {
	id, ok := promotionID(c)
	if !ok {
		return
	}
	if err := h.deps.Promotions.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h handlers) assignPromotionCustomer(c *gin.Context) {
	id, ok := promotionID(c)
	if !ok {
		return
	}
	if err := h.deps.Promotions.AssignCustomer(c.Request.Context(), id, c.Param("customerID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func promotionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_promotion_id"})
		return 0, false
	}
	return id, true
}

func promotionFromRequest(req validation.PromotionRequest, id int64) domain.Promotion {
	return domain.Promotion{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Kind:        req.Kind,
		Discount:    req.Discount,
		StartsOn:    req.StartsOn,
		EndsOn:      req.EndsOn,
		Active:      req.Active,
		General:     req.General,
		ProductIDs:  req.ProductIDs,
		CustomerIDs: req.CustomerIDs,
	}
}

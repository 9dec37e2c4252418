package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customersvc "scoopshop/internal/service/customer"
	"scoopshop/internal/validation"
)

func (h handlers) signup(c *gin.Context) {
	var req validation.SignupRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	cust, err := h.deps.Customers.Signup(c.Request.Context(), customersvc.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		RUT:       req.RUT,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

func (h handlers) login(c *gin.Context) {
	var req validation.LoginRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	cust, err := h.deps.Customers.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h handlers) listCustomers(c *gin.Context) {
	customers, err := h.deps.Customers.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h handlers) getCustomer(c *gin.Context) {
	cust, err := h.deps.Customers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h handlers) deleteCustomer(c *gin.Context) {
	if err := h.deps.Customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

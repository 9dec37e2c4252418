package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h handlers) salesReport(c *gin.Context) {
	report, err := h.deps.Reports.Sales(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

package api

import (
	"etfoverlap/internal/domain"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CompareRequest struct {
	Isin1 string `json:"isin1"`
	Isin2 string `json:"isin2"`
}

type CompareResponse struct {
	Data domain.ComparisonReport `json:"data"`
}

func (m ApiHandler) compare(c *gin.Context) {
	var requestBody CompareRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}

	result, err := m.OverlapAnalysisApp.Compare(c.Request.Context(), requestBody.Isin1, requestBody.Isin2)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	report, err := domain.NewComparisonReport(*result)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to build comparison report: %w", err), c)
		return
	}

	c.JSON(200, CompareResponse{
		Data: *report,
	})
}

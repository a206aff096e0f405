package api

import (
	"etfoverlap/internal/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AnalyzeRequest struct {
	Isins []string `json:"isins"`
}

type AnalyzeResponse struct {
	Data domain.AnalysisReport `json:"data"`
}

func (m ApiHandler) analyze(c *gin.Context) {
	var requestBody AnalyzeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}

	if len(requestBody.Isins) < 2 {
		returnErrorJsonCode(&domain.InsufficientInputError{Resolved: len(requestBody.Isins)}, c, http.StatusBadRequest)
		return
	}

	result, err := m.OverlapAnalysisApp.Analyze(c.Request.Context(), requestBody.Isins)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, AnalyzeResponse{
		Data: domain.NewAnalysisReport(*result),
	})
}

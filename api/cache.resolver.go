package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ExpireCacheRequest struct {
	Isins []string `json:"isins"`
	All   bool     `json:"all"`
}

func (m ApiHandler) expireCache(c *gin.Context) {
	var requestBody ExpireCacheRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}
	if !requestBody.All && len(requestBody.Isins) == 0 {
		returnErrorJsonCode(fmt.Errorf("either isins or all must be set"), c, http.StatusBadRequest)
		return
	}

	err := m.OverlapAnalysisApp.ExpireCache(c.Request.Context(), requestBody.Isins, requestBody.All)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to expire cache: %w", err), c)
		return
	}

	c.JSON(200, map[string]string{
		"success": "true",
	})
}

type InspectCacheResponse struct {
	Isin              string    `json:"isin"`
	Name              string    `json:"name"`
	TotalHoldings     int       `json:"total_holdings"`
	HoldingsAvailable bool      `json:"holdings_available"`
	FetchedAt         time.Time `json:"fetched_at"`
	StoredAt          time.Time `json:"stored_at"`
	Stale             bool      `json:"stale"`
}

func (m ApiHandler) inspectCache(c *gin.Context) {
	isin := c.Param("isin")

	inspection, err := m.OverlapAnalysisApp.InspectCache(c.Request.Context(), isin)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	if inspection == nil {
		returnErrorJsonCode(fmt.Errorf("no cache record for %s", isin), c, http.StatusNotFound)
		return
	}

	record := inspection.Record
	c.JSON(200, InspectCacheResponse{
		Isin:              record.Key,
		Name:              record.Snapshot.FundName,
		TotalHoldings:     len(record.Snapshot.Holdings),
		HoldingsAvailable: record.Snapshot.HoldingsAvailable,
		FetchedAt:         record.Snapshot.FetchedAt,
		StoredAt:          record.StoredAt,
		Stale:             inspection.Stale,
	})
}


package api

import (
	"context"
	"errors"
	"etfoverlap/internal/app"
	"etfoverlap/internal/domain"
	"etfoverlap/internal/logger"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiHandler struct {
	OverlapAnalysisApp app.OverlapAnalysisApp

	// Close releases whatever backs the cache; set by cmd
	Close func() error
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to etf overlap"})
	})
	router.POST("/analyze", m.analyze)
	router.POST("/compare", m.compare)
	router.POST("/expireCache", m.expireCache)
	router.GET("/cache/:isin", m.inspectCache)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

// statusForError maps the domain error taxonomy onto http codes
func statusForError(err error) int {
	switch domain.ErrorType(err) {
	case domain.ErrorTypeInvalidIdentifier:
		return http.StatusBadRequest
	case domain.ErrorTypeInsufficientInput:
		return http.StatusUnprocessableEntity
	case domain.ErrorTypeNotFound, domain.ErrorTypeNoData:
		return http.StatusNotFound
	case domain.ErrorTypeTransient:
		return http.StatusServiceUnavailable
	case domain.ErrorTypeInvalidSnapshot:
		return http.StatusBadGateway
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, statusForError(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	lg := logger.FromContext(c.Request.Context())
	if code >= 500 {
		lg.Errorf("request failed: %v", err)
	} else {
		lg.Warnf("request rejected: %v", err)
	}
	c.AbortWithStatusJSON(code, domain.NewErrorReport(err))
}

// logRequestMiddleware tags every request with an id, carries a logger and
// latency profile in the request context and logs the outcome
func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := uuid.New()
	c.Header("X-Request-ID", requestID.String())

	lg := logger.FromContext(c.Request.Context()).With(
		"requestID", requestID.String(),
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
	)
	profile, endProfile := domain.NewProfile()

	ctx := logger.WithLogger(c.Request.Context(), lg)
	ctx = context.WithValue(ctx, domain.ContextProfileKey, profile)
	c.Request = c.Request.WithContext(ctx)

	start := time.Now().UTC()
	c.Next()
	endProfile()

	responseBytes := c.Writer.Size()
	if responseBytes < 0 {
		responseBytes = 0
	}

	spans, err := profile.ToJsonBytes()
	if err != nil {
		lg.Warnf("failed to serialize profile: %v", err)
	}

	lg.Infow("request complete",
		"status", c.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"responseBytes", responseBytes,
		"spans", string(spans),
	)
}

package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Premkumar5225/global-invest-simulator/internal"
)

type ApiHandler struct {
	Logger         *zap.SugaredLogger
	AllowedOrigins []string
}

func (m ApiHandler) StartApi(port int) error {
	router := gin.Default()
	router.Use(m.corsMiddleware())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to global-invest-simulator"})
	})
	router.POST("/allocate", m.allocate)
	router.POST("/allocate/csv", m.allocateCsv)

	return router.Run(fmt.Sprintf(":%d", port))
}

func (m ApiHandler) corsMiddleware() gin.HandlerFunc {
	if len(m.AllowedOrigins) == 0 {
		return cors.Default()
	}
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = m.AllowedOrigins
	return cors.New(cfg)
}

func returnErrorJson(err error, c *gin.Context) {
	code := 500
	switch {
	case errors.Is(err, internal.ErrInvalidInput):
		code = 400
	case errors.Is(err, internal.ErrDegenerateWeights):
		code = 422
	}
	returnErrorJsonCode(err, c, code)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	zap.S().Error(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.New()
	ctx.Set("requestID", requestID.String())

	start := time.Now().UTC()
	ctx.Next()

	logger := m.Logger
	if logger == nil {
		logger = zap.S()
	}
	logger.Infow("handled request",
		"requestID", requestID.String(),
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"ip", ctx.ClientIP(),
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}

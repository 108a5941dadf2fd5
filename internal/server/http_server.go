package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Run serves the router on the given port and blocks until the listener
// stops.
func Run(router *gin.Engine, port string, logger *zap.Logger) {
	addr := ":" + port
	logger.Info("listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// APIPrefix: общий префикс маршрутов.
const APIPrefix = "/api/v1"

// NewRouter собирает gin.Engine: recovery, access log и маршруты handler под /api/v1.
func NewRouter(handler *Handler, logger *log.Entry) *gin.Engine {
	if logger == nil {
		logger = log.New().WithField("component", "http")
	}
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(AccessLog(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithField("panic", recovered).Error("http handler panicked")
		abort(c, http.StatusInternalServerError, errPanicRecovered)
	}))

	handler.Register(router.Group(APIPrefix))
	return router
}

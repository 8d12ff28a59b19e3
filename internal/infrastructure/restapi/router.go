package restapi

import (
	"net/http"

	"wallet_config/internal/app/port"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the HTTP-level settings of the router.
type RouterConfig struct {
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer
	Logger         port.Logger
}

// SetupRouter builds the gin engine exposing the configuration API.
func SetupRouter(handler *ConfigHandler, rc RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if rc.Logger != nil {
		router.Use(RequestLogger(rc.Logger))
	}

	corsConfig := cors.DefaultConfig()
	if len(rc.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = rc.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	if rc.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(rc.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/wallet-config", handler.GetWalletConfigHandler)
		v1.GET("/chains", handler.ListChainsHandler)
		v1.GET("/chains/:chainId", handler.GetChainHandler)
		v1.GET("/mock-chains", handler.GetMockChainsHandler)
		v1.GET("/health/endpoints", handler.GetEndpointHealthHandler)
	}

	return router
}

package router

import (
	"net/http"

	commongin "github.com/equinor/radix-common/pkg/gin"
	"github.com/equinor/radix-training-console/api/controllers"
	"github.com/equinor/radix-training-console/internal/config"
	"github.com/gin-gonic/gin"
)

const (
	apiVersionRoute = "/api/v1"
	swaggerUIPath   = "/swaggerui"
	swaggerSpecFile = "./swaggerui/swagger.json"
)

// NewServer creates a new training console REST service
func NewServer(cfg *config.Config, controllers ...controllers.Controller) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.RemoveExtraSlash = true
	engine.Use(RequestLogger(), commongin.ZerologRequestLogger(), gin.Recovery())

	if cfg.UseSwagger {
		initializeSwaggerUI(engine)
	}

	v1Router := engine.Group(apiVersionRoute)
	{
		initializeAPIServer(v1Router, controllers)
	}

	return engine
}

func initializeSwaggerUI(engine *gin.Engine) {
	engine.StaticFile(swaggerUIPath+"/swagger.json", swaggerSpecFile)
}

func initializeAPIServer(router gin.IRoutes, controllers []controllers.Controller) {
	for _, controller := range controllers {
		for _, route := range controller.GetRoutes() {
			addHandlerRoute(router, route)
		}
	}
}

func addHandlerRoute(router gin.IRoutes, route controllers.Route) {
	router.Handle(route.Method, route.Path, route.Handler)
}

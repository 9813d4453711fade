package health

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the health module
func RegisterRoutes(g *gin.RouterGroup, mode string, assets AssetChecker) {
	ctl := &controller{mode: mode, assets: assets}
	g.GET("/health", ctl.getStatus)
}

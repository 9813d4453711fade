package static

import "github.com/gin-gonic/gin"

// RegisterRoutes installs the SPA fallback as the engine's catch-all
func RegisterRoutes(engine *gin.Engine, h *Handler) {
	engine.NoRoute(h.Serve)
}

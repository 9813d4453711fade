package token

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the token proxy; it must be added before the SPA fallback
func RegisterRoutes(r gin.IRoutes, issuer Issuer) {
	ctl := NewController(issuer)
	r.GET("/token", ctl.GetToken)
}

package token

import (
	"log"
	"net/http"

	"github.com/ethanbaker/visionsync/internal/api/middleware"
	"github.com/ethanbaker/visionsync/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// Controller serves the token proxy endpoint
type Controller struct {
	issuer Issuer
}

func NewController(issuer Issuer) *Controller {
	return &Controller{issuer: issuer}
}

// GetToken handles GET requests for a new realtime session token
func (ctl *Controller) GetToken(c *gin.Context) {
	token, err := ctl.issuer.NewSession(c.Request.Context())
	if err != nil {
		log.Printf("[TOKEN]: Token generation error (request %s): %v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, sdk.NewTokenError())
		return
	}

	// Upstream bytes go out untouched
	c.Data(http.StatusOK, "application/json; charset=utf-8", token)
}

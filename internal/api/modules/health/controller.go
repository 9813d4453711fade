package health

import (
	"github.com/ethanbaker/visionsync/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// AssetChecker reports whether the SPA entry document can be served
type AssetChecker interface {
	HasIndex() bool
}

type controller struct {
	mode   string
	assets AssetChecker
}

// Return status of the API
func (ctl *controller) getStatus(c *gin.Context) {
	res := sdk.NewSuccessResponse("OK", sdk.HealthStatus{
		Mode:   ctl.mode,
		Assets: ctl.assets.HasIndex(),
	})
	c.JSON(res.AsGinResponse())
}

package static

import (
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"

	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/ethanbaker/visionsync/pkg/sdk"
	"github.com/gin-gonic/gin"
)

const IndexFile = "index.html"

// Handler serves files from a single root and falls back to the SPA entry document
type Handler struct {
	root  string
	index string
}

func NewHandler(root string) *Handler {
	return &Handler{
		root:  root,
		index: filepath.Join(root, IndexFile),
	}
}

// Root returns the directory assets are served from
func (h *Handler) Root() string {
	return h.root
}

// HasIndex reports whether the SPA entry document exists
func (h *Handler) HasIndex() bool {
	info, err := os.Stat(h.index)
	return err == nil && info.Mode().IsRegular()
}

// Serve answers every request no other route matched
func (h *Handler) Serve(c *gin.Context) {
	method := c.Request.Method
	if method != http.MethodGet && method != http.MethodHead {
		api_utils.NoRouteHandler(c)
		return
	}

	if h.serveFile(c, h.resolve(c.Request.URL.Path)) {
		return
	}

	if !h.serveFile(c, h.index) {
		log.Printf("[STATIC]: SPA entry document missing at %s", h.index)
		c.JSON(sdk.NewMissingIndexError().AsGinResponse())
	}
}

// resolve maps a URL path onto the root; cleaning against "/" keeps ".." inside it
func (h *Handler) resolve(urlPath string) string {
	clean := path.Clean("/" + urlPath)
	return filepath.Join(h.root, filepath.FromSlash(clean))
}

// serveFile writes a regular file and reports whether it did
func (h *Handler) serveFile(c *gin.Context, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	// ServeContent rather than ServeFile, which would redirect /index.html to /
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	return true
}

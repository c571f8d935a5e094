package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler answers the probe with a plain "OK".
func Handler(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte("OK"))
}

func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/store/health/", Handler)
}

package route

import (
	"github.com/gin-gonic/gin"
)

type ApplicationHandler interface {
	Apply(c *gin.Context)
}

func RegisterApplication(g *gin.RouterGroup, h ApplicationHandler) {
	g.POST("/apply", h.Apply)
}

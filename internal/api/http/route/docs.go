package route

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Finure/app-gateway/internal/docs"
)

func RegisterDocs(g *gin.RouterGroup) {
	g.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gridSheet/contracts"
)

const ApiVersion = "v1"

const subscribePath = "subscribe"

func SetupRouter(controller contracts.ApiController) *gin.Engine {
	router := gin.New()

	apiRouterGroup := router.Group("/api/" + ApiVersion)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+subscribePath, controller.SubscribeAction)

	apiRouterGroup.POST("/:sheet_id/:cell_id", controller.SetCellAction)
	apiRouterGroup.GET("/:sheet_id/:cell_id", controller.GetCellAction)
	apiRouterGroup.DELETE("/:sheet_id/:cell_id", controller.ClearCellAction)
	apiRouterGroup.GET("/:sheet_id", controller.GetSheetAction)
	apiRouterGroup.GET("/:sheet_id/print/values", controller.PrintValuesAction)
	apiRouterGroup.GET("/:sheet_id/print/texts", controller.PrintTextsAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}

package main

import (
	"github.com/gin-gonic/gin"

	"gridSheet/contracts"
)

type ServiceContainer struct {
	SheetRepository   contracts.SheetRepository
	WebhookDispatcher contracts.WebhookDispatcher
	ApiController     contracts.ApiController
	Router            *gin.Engine
}

func BuildServiceContainer() (container ServiceContainer) {
	container.WebhookDispatcher = NewWebhookDispatcher()
	container.SheetRepository = NewSheetRepository(container.WebhookDispatcher)
	container.ApiController = NewApiController(container.SheetRepository, container.WebhookDispatcher)

	container.Router = SetupRouter(container.ApiController)

	return
}

package internal

import (
	"net/http"
	"skinwatch/internal/controllers"
	"skinwatch/internal/providers"
)

func InitRoutes(monitorController *controllers.MonitorController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/status", http.HandlerFunc(monitorController.Status))
	routers.Post("/run", http.HandlerFunc(monitorController.Run))
	routers.Post("/reset", http.HandlerFunc(monitorController.ResetMarker))
	return routers
}

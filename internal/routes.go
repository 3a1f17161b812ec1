package internal

import (
	"net/http"
	"odh/internal/controllers"
	"odh/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, healthController *controllers.HealthController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/{$}", http.HandlerFunc(healthController.Info))
	routers.Get("/users/{username}", http.HandlerFunc(apiController.GetUserCourses))
	routers.Get("/users/{username}/active-staff", http.HandlerFunc(apiController.GetActiveStaff))
	routers.Get("/users/{username}/status", http.HandlerFunc(apiController.GetUserStatus))
	routers.Get("/courses/{school}/{slug}", http.HandlerFunc(apiController.GetCourseDetails))
	routers.Get("/courses/{school}/{slug}/users", http.HandlerFunc(apiController.GetCourseUsers))
	return routers
}

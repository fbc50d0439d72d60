package internal

import (
	"garage/internal/controllers"
	"garage/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController, limiter *providers.RateLimiter) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/auth/login", providers.RateLimitMiddleware(limiter, http.HandlerFunc(apiController.Login)))
	routers.Post("/auth/register", providers.RateLimitMiddleware(limiter, http.HandlerFunc(apiController.Register)))
	routers.Post("/auth/logout", http.HandlerFunc(apiController.Logout))
	routers.Get("/auth/session", http.HandlerFunc(apiController.Session))

	routers.Get("/services", http.HandlerFunc(apiController.GetServices))
	routers.Get("/testimonials", http.HandlerFunc(apiController.GetTestimonials))
	routers.Get("/time-slots", http.HandlerFunc(apiController.GetTimeSlots))

	routers.Get("/vehicles", http.HandlerFunc(apiController.GetVehicles))
	routers.Get("/vehicles/{id}", http.HandlerFunc(apiController.GetVehicle))
	routers.Post("/vehicles", http.HandlerFunc(apiController.CreateVehicle))
	routers.Put("/vehicles/{id}", http.HandlerFunc(apiController.UpdateVehicle))
	routers.Delete("/vehicles/{id}", http.HandlerFunc(apiController.DeleteVehicle))

	routers.Get("/appointments", http.HandlerFunc(apiController.GetAppointments))
	routers.Post("/appointments", http.HandlerFunc(apiController.CreateAppointment))
	routers.Put("/appointments/{id}", http.HandlerFunc(apiController.UpdateAppointment))
	routers.Put("/appointments/{id}/status", http.HandlerFunc(apiController.UpdateAppointmentStatus))
	routers.Delete("/appointments/{id}", http.HandlerFunc(apiController.DeleteAppointment))

	routers.Get("/users", http.HandlerFunc(apiController.GetUsers))
	routers.Get("/users/{id}", http.HandlerFunc(apiController.GetUser))

	routers.Post("/reset", http.HandlerFunc(apiController.Reset))
	return routers
}

package routes

import (
	"github.com/gorilla/mux"

	"github.com/truongduyng/futkui-sub001/controllers"
	"github.com/truongduyng/futkui-sub001/services"
)

// RegisterModerationRoutes registers report and block routes
func RegisterModerationRoutes(r *mux.Router, moderationService *services.ModerationService) {
	controller := controllers.NewModerationController(moderationService)

	moderationRouter := r.PathPrefix("/api/moderation").Subrouter()
	moderationRouter.HandleFunc("/report", controller.HandleReport).Methods("POST")
	moderationRouter.HandleFunc("/block", controller.HandleBlock).Methods("POST")
	moderationRouter.HandleFunc("/unblock", controller.HandleUnblock).Methods("POST")
}

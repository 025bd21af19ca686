package routes

import (
	"github.com/gorilla/mux"

	"github.com/truongduyng/futkui-sub001/controllers"
	"github.com/truongduyng/futkui-sub001/services"
)

// RegisterFeedRoutes registers timeline and pagination routes
func RegisterFeedRoutes(r *mux.Router, sync *services.SyncService, windows *services.WindowService, moderation *services.ModerationService) {
	controller := controllers.NewFeedController(sync, windows, moderation)

	feedRouter := r.PathPrefix("/api/feed").Subrouter()
	feedRouter.HandleFunc("/groups/{groupId}", controller.HandleGetFeed).Methods("GET")
	feedRouter.HandleFunc("/select-group", controller.HandleSelectGroup).Methods("POST")
	feedRouter.HandleFunc("/load-older", controller.HandleLoadOlder).Methods("POST")
}

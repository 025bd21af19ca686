package routes

import (
	"github.com/gorilla/mux"

	"github.com/truongduyng/futkui-sub001/controllers"
	"github.com/truongduyng/futkui-sub001/services"
)

// RegisterUnreadRoutes registers unread badge and read-cursor routes
func RegisterUnreadRoutes(r *mux.Router, unreadService *services.UnreadService) {
	controller := controllers.NewUnreadController(unreadService)

	unreadRouter := r.PathPrefix("/api/unread").Subrouter()
	unreadRouter.HandleFunc("/badge", controller.HandleGetBadge).Methods("GET")
	unreadRouter.HandleFunc("/mark-read", controller.HandleMarkRead).Methods("POST")
}

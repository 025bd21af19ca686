package routes

import (
	"github.com/gorilla/mux"

	"github.com/truongduyng/futkui-sub001/controllers"
	"github.com/truongduyng/futkui-sub001/services"
)

// RegisterGroupRoutes registers group lifecycle and membership routes
func RegisterGroupRoutes(r *mux.Router, groupService *services.GroupService) {
	controller := controllers.NewGroupController(groupService)

	groupRouter := r.PathPrefix("/api/groups").Subrouter()
	groupRouter.HandleFunc("/create", controller.HandleCreateGroup).Methods("POST")
	groupRouter.HandleFunc("/join", controller.HandleJoinGroup).Methods("POST")
	groupRouter.HandleFunc("/leave", controller.HandleLeaveGroup).Methods("POST")
	groupRouter.HandleFunc("/{groupId}/members", controller.HandleListMembers).Methods("GET")
}

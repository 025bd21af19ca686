package routes

import (
	"github.com/gorilla/mux"

	"github.com/truongduyng/futkui-sub001/controllers"
	"github.com/truongduyng/futkui-sub001/services"
)

// RegisterMatchRoutes registers match intent routes
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("/create", controller.HandleCreateMatch).Methods("POST")
	matchRouter.HandleFunc("/rsvp", controller.HandleRsvp).Methods("POST")
	matchRouter.HandleFunc("/check-in", controller.HandleCheckIn).Methods("POST")
	matchRouter.HandleFunc("/close", controller.HandleCloseMatch).Methods("POST")
}

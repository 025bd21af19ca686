package routes

import (
	"github.com/gorilla/mux"

	"github.com/truongduyng/futkui-sub001/controllers"
	"github.com/truongduyng/futkui-sub001/services"
)

// RegisterPollRoutes registers poll intent routes
func RegisterPollRoutes(r *mux.Router, pollService *services.PollService) {
	controller := controllers.NewPollController(pollService)

	pollRouter := r.PathPrefix("/api/polls").Subrouter()
	pollRouter.HandleFunc("/create", controller.HandleCreatePoll).Methods("POST")
	pollRouter.HandleFunc("/vote", controller.HandleCastVote).Methods("POST")
	pollRouter.HandleFunc("/close", controller.HandleClosePoll).Methods("POST")
	pollRouter.HandleFunc("/add-option", controller.HandleAddOption).Methods("POST")
}

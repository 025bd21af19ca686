package routes

import (
	"github.com/gorilla/mux"

	"github.com/truongduyng/futkui-sub001/controllers"
	"github.com/truongduyng/futkui-sub001/services"
)

// RegisterChatRoutes registers message and reaction routes
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()
	chatRouter.HandleFunc("/message", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/react", controller.HandleReact).Methods("POST")
}

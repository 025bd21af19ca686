package routes

import (
	"github.com/gorilla/mux"

	"github.com/truongduyng/futkui-sub001/controllers"
)

// RegisterMediaRoutes sets up routes for attachment presigning
func RegisterMediaRoutes(r *mux.Router) {
	r.HandleFunc("/generate-attachment-url", controllers.GenerateAttachmentURL).Methods("POST")
	r.HandleFunc("/get-attachment-read-url", controllers.GetAttachmentReadURL).Methods("POST")
}

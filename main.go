package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/truongduyng/futkui-sub001/routes"
	"github.com/truongduyng/futkui-sub001/services"
	"github.com/truongduyng/futkui-sub001/socket"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	groupService := &services.GroupService{Dynamo: dynamoService}
	chatService := &services.ChatService{Dynamo: dynamoService}
	matchService := &services.MatchService{Dynamo: dynamoService}
	pollService := &services.PollService{Dynamo: dynamoService}
	unreadService := &services.UnreadService{Dynamo: dynamoService}
	syncService := services.NewSyncService(dynamoService, matchService)

	windowService := services.NewWindowService(windowDefault())

	statePath := os.Getenv("MODERATION_STATE_FILE")
	if statePath == "" {
		statePath = "moderation_state.json"
	}
	moderationService, err := services.NewModerationService(dynamoService, statePath)
	if err != nil {
		log.Fatalf("Failed to load moderation state: %v", err)
	}

	// Snapshot push server; mutating services notify it after every write
	socketServer := socket.NewServer(syncService, windowService)
	chatService.Notify = socketServer
	pollService.Notify = socketServer
	matchService.Notify = socketServer

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to FutKui")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterGroupRoutes(r, groupService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterPollRoutes(r, pollService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterUnreadRoutes(r, unreadService)
	routes.RegisterModerationRoutes(r, moderationService)
	routes.RegisterFeedRoutes(r, syncService, windowService, moderationService)
	routes.RegisterMediaRoutes(r)

	// Mount the snapshot subscription endpoint
	go func() {
		if err := socketServer.IO.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer socketServer.IO.Close()
	r.Handle("/socket.io/", socketServer.IO)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}

func windowDefault() int {
	if v := os.Getenv("FEED_WINDOW_DEFAULT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return services.DefaultWindowSize
}

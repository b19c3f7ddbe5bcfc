package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"cityagent/agent"
	"cityagent/config"
	"cityagent/db"
	"cityagent/handlers"
	"cityagent/middleware"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Initialize MongoDB connection
	err = db.InitMongoDB()
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer db.Close()
	db.CreateProjectIndexes()

	store := db.NewProjectStore()

	// The Gemini collaborator is optional: without an API key the
	// pipeline runs on the local rule-based planner only.
	var ai agent.AIService
	if gemini := agent.NewGeminiPlanner(); gemini != nil {
		ai = gemini
		log.Printf("External AI collaborator enabled (model %s)", gemini.Model())
	} else {
		log.Println("GEMINI_API_KEY not set, running rule-based planner only")
	}

	orchestrator := agent.New(store, ai)

	// Set up HTTP handlers
	http.HandleFunc("/api/agent/process", middleware.EnableCORS(handlers.ProcessHandler(orchestrator)))
	http.HandleFunc("/api/projects", middleware.EnableCORS(handlers.ProjectsHandler(store)))
	http.HandleFunc("/health", middleware.EnableCORS(handlers.HealthHandler))

	addr := ":" + config.GetPort()
	fmt.Printf("Server running on http://localhost%s\n", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}

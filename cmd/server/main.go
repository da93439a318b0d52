package main

import (
	"log"
	"net/http"
	"time"

	"delivery-dashboard-service/internal/adapters/repositories"
	"delivery-dashboard-service/internal/api"
	"delivery-dashboard-service/internal/config"
	"delivery-dashboard-service/internal/platform/db"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires the in-memory SQLite state store behind the DayRepository port
// and starts the dashboard HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	// Dashboard state is deliberately process-local: a restart clears it
	// and the operator re-uploads the weekday reports.
	stateDB, err := db.Open()
	if err != nil {
		log.Fatal(err)
	}
	defer stateDB.Close()

	if err := repositories.InitSchema(stateDB); err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteDayRepository(stateDB)
	router, err := api.NewRouter(repo)
	if err != nil {
		log.Fatal(err)
	}

	// Write timeout leaves room for workbook generation on full days.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

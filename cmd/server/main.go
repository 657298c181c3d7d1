package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sohelr/goblog/internal/db"
	"github.com/sohelr/goblog/internal/handlers"
	"github.com/sohelr/goblog/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	port := getenv("PORT", "4000")
	databaseURL := getenv("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	secret := getenv("SESSION_SECRET", "")
	if secret == "" {
		log.Fatal("SESSION_SECRET is required")
	}
	sessionTTL, err := strconv.Atoi(getenv("SESSION_TTL", "86400")) // seconds
	if err != nil {
		log.Fatalf("invalid SESSION_TTL: %v", err)
	}

	dbConn, err := db.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	if err := db.Migrate(dbConn); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	sessions := session.NewManager([]byte(secret), sessionTTL)
	h := handlers.New(dbConn, sessions)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: h.Routes(),
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/aleksk/socialnet/internal/handlers"
	"github.com/aleksk/socialnet/internal/middleware"
	"github.com/aleksk/socialnet/internal/store/jsonstore"
	"github.com/aleksk/socialnet/internal/ws"
)

var (
	addr    = flag.String("addr", ":8081", "http service address")
	dataDir = flag.String("data", "data", "directory holding the JSON collections")
)

func main() {
	godotenv.Load()
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	store, err := jsonstore.New(*dataDir)
	if err != nil {
		log.Fatal(err)
	}

	chatChannel := ws.NewChatChannel(store)
	notificationChannel := ws.NewNotificationChannel(store)

	authHandler := &handlers.AuthHandler{Store: store}

	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	// Session endpoints
	r.HandleFunc("/api/reg", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/signin", authHandler.SignIn).Methods("POST")
	r.HandleFunc("/api/signout", authHandler.SignOut).Methods("POST")
	r.Handle("/api/session", middleware.Authenticated(http.HandlerFunc(authHandler.Session))).Methods("GET")

	// Realtime channels
	r.Handle("/api/chat", chatChannel)
	r.Handle("/api/notification", notificationChannel)

	log.Println("Starting server on", *addr)
	log.Fatal(http.ListenAndServe(*addr, r))
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

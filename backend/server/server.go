package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/mhasan/lifeos/backend/queue"
	contextKey "github.com/mhasan/lifeos/backend/server/context_key"
	storage "github.com/mhasan/lifeos/backend/storage/persistent"
)

// jwtMiddleware reads the JWT from the Authorization header of the HTTP
// request. If a valid token is present, the user's id from its claims is
// injected into the request context under contextKey.UserIDKey. An expired
// token still yields the user id, so the refresh endpoint can identify who
// is asking; any other parse error is injected under contextKey.JwtErrorKey.
//
// The middleware never rejects a request itself. Handlers that require
// authentication check the context and respond accordingly.
func jwtMiddleware(signingKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			splitToken := strings.Split(authHeader, "Bearer ")
			if len(splitToken) == 2 {
				token, err := jwt.Parse(splitToken[1], func(token *jwt.Token) (interface{}, error) {
					if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
					}
					return []byte(signingKey), nil
				})
				if err != nil {
					if err, ok := err.(*jwt.ValidationError); ok && err.Errors == jwt.ValidationErrorExpired {
						if claims, ok := token.Claims.(jwt.MapClaims); ok {
							ctx := context.WithValue(r.Context(), contextKey.UserIDKey, claims["id"])
							r = r.WithContext(ctx)
						}
					} else {
						log.Println("JWT token validation error:", err)
						ctx := context.WithValue(r.Context(), contextKey.JwtErrorKey, err)
						r = r.WithContext(ctx)
					}
				} else if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
					ctx := context.WithValue(r.Context(), contextKey.UserIDKey, claims["id"])
					r = r.WithContext(ctx)
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// recoveryMiddleware recovers from panics in handlers and returns a generic
// error message to the client.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic recovered: %s\n", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Start initializes and starts the HTTP API server at serverURL. It blocks
// until the server exits.
func Start(serverURL, signingKey string, stor storage.StorageInterface, alerts *queue.Queue) {
	a := &api{sessions: newSessionManager(stor, alerts)}

	r := mux.NewRouter()

	r.HandleFunc("/auth/signup", a.handleSignUp).Methods("POST")
	r.HandleFunc("/auth/signin", a.handleSignIn).Methods("POST")
	r.HandleFunc("/auth/refresh", a.handleRefresh).Methods("POST")
	r.HandleFunc("/auth/account", a.handleUpdateAccount).Methods("PUT")
	r.HandleFunc("/auth/account", a.handleDeleteAccount).Methods("DELETE")

	r.HandleFunc("/data", a.handleGetData).Methods("GET")
	r.HandleFunc("/data/export", a.handleExport).Methods("GET")
	r.HandleFunc("/data/import", a.handleImport).Methods("POST")

	r.HandleFunc("/commands/{command}", a.handleCommand).Methods("POST")

	r.HandleFunc("/reminders/active", a.handleActiveReminder).Methods("GET")
	r.HandleFunc("/reminders/acknowledge", a.handleAcknowledgeReminder).Methods("POST")
	r.HandleFunc("/reminders/snooze", a.handleSnoozeReminder).Methods("POST")

	handler := recoveryMiddleware(jwtMiddleware(signingKey, r))

	corsOrigins := handlers.AllowedOrigins([]string{"*"})
	corsMethods := handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"})
	corsHeaders := handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"})
	corsRouter := handlers.CORS(corsOrigins, corsMethods, corsHeaders)(handler)

	loggingRouter := handlers.LoggingHandler(os.Stdout, corsRouter)

	u, err := url.Parse(serverURL)
	if err != nil {
		panic(err)
	}

	server := &http.Server{
		Handler:      loggingRouter,
		Addr:         u.Host,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	defer a.sessions.closeAll()
	log.Fatal(server.ListenAndServe())
}

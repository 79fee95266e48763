package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitlog/config"
	"fitlog/handlers"
	"fitlog/internal/database"
	"fitlog/internal/logging"
	"fitlog/services/users"
	"fitlog/utils"
)

func main() {
	settings := config.Load()
	log := logging.New(settings.LogFile)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := database.NewDB(ctx, database.Config{
		URI:      settings.MongoURI,
		Database: settings.MongoDB,
	})
	cancel()
	if err != nil {
		log.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	log.Info("database online", "db", settings.MongoDB)

	usersService := users.NewService(db, log)
	usersHandler := handlers.NewUsersHandler(usersService, log)

	router := utils.NewRouter(log)
	usersHandler.Register(router)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, settings.IndexFile)
	}).Methods(http.MethodGet)
	router.PathPrefix("/public/").Handler(
		http.StripPrefix("/public/", http.FileServer(http.Dir(settings.StaticDir))))

	server := &http.Server{
		Addr:    ":" + settings.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", "port", settings.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Error("database close", "error", err)
	}
	log.Info("stopped")
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"blogful/auth"
	"blogful/common"
	"blogful/config"
	"blogful/database"
	"blogful/posts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	db, err := common.ConnectDb(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "adduser" {
		if err := addUser(db, os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := cfg.RequireSessionSecret(); err != nil {
		log.Fatal(err)
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newRouter(cfg, db),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s...", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Failed to shut down server: ", err)
	}
	log.Println("Server stopped")
}

func newRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.Default()

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	router.Use(sessions.Sessions("blogful-session", store))

	authModule := auth.NewAuthModule(db)
	router.Use(authModule.LoadActor)

	common.LoadTemplates(router, "*/views/*.html")

	router.Static("/public", "./public")

	authModule.RegisterRoutes(router)

	policy := posts.DefaultOwnershipPolicy
	if cfg.Blog.StrictOwnership {
		policy.AllowOrphanEdits = false
	}
	postsModule := posts.NewPostsModule(db, cfg.Blog.PageSize, policy)
	postsModule.RegisterRoutes(router)

	return router
}

// addUser implements `blogful adduser -name N -email E -password P`.
func addUser(db *gorm.DB, args []string) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "login email")
	password := fs.String("password", "", "login password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := auth.CreateUser(context.Background(), db, *name, *email, *password)
	if err != nil {
		return fmt.Errorf("adduser: %w", err)
	}
	log.Printf("Created user %d <%s>", user.ID, user.Email)
	return nil
}

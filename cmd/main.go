package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
	"github.com/gediyoneyasu/WCU-CS-management/config"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/handlers"
	"github.com/gediyoneyasu/WCU-CS-management/routes"
)

func main() {
	cfg := config.Load()

	// fail fast when the database is unreachable
	database.Connect(cfg)

	handlers.SetUploadDir(cfg.UploadDir)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.NewHTTPErrorHandler(e.Logger)
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	// hard ceiling; per-upload limits are enforced in the handlers
	e.Use(middleware.BodyLimit("52M"))

	e.Static("/uploads", cfg.UploadDir)

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

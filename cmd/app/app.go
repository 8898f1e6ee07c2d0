package main

import (
	"os"

	"github.com/catalogcraft/catalog-api/internal/app"
	config "github.com/catalogcraft/catalog-api/internal/cfg"
	"github.com/catalogcraft/catalog-api/pkg/logger"
	"github.com/joho/godotenv"
)

//	@title			Catalog API
//	@version		1.0
//	@description	Каталог товаров: продукты, категории, изображения и события.

//	@host		localhost:8080
//	@BasePath	/

func main() {
	log := logger.NewSlogLogger()

	// .env нужен для локального запуска; в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil {
		log.Debugf(".env not loaded: %v", err)
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}

// file: main.go
package main

import (
	"log"

	"github.com/xFraylin/Hackong-ctf/config"
	"github.com/xFraylin/Hackong-ctf/database"
	"github.com/xFraylin/Hackong-ctf/routes"
	"github.com/xFraylin/Hackong-ctf/services"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	rdb, err := database.InitRedis(cfg)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}

	storage, err := services.NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	r := routes.SetupRouter(cfg, db, rdb, storage)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

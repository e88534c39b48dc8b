package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/priyathamsetti1/aditya-foods/configs"
	"github.com/priyathamsetti1/aditya-foods/middlewares"
	"github.com/priyathamsetti1/aditya-foods/routes"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("🚀 Server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/cache"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/config"
	dbpkg "github.com/Tech-Care-Rwanda/tech-care-sub001/internal/db"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/middleware"
	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	rdb := cache.NewRedis(cfg)
	defer rdb.Close()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	api_middleware "github.com/lcastrov/ArcadeHub/api/middleware"
	v1 "github.com/lcastrov/ArcadeHub/api/v1"
	"github.com/lcastrov/ArcadeHub/internal/progress"
	"github.com/lcastrov/ArcadeHub/internal/user"
	"github.com/lcastrov/ArcadeHub/pkg/db"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️File .env not found, using system values")
	}

	db.Init()
	db.DB.AutoMigrate(
		&user.User{},
		&progress.Game{},
		&progress.UserProgress{},
		&progress.Achievement{},
		&progress.UserAchievement{},
	)

	if err := progress.SeedDefaults(); err != nil {
		log.Fatalf("error seeding default data: %v", err)
	}

	v1.UserService = user.NewUserService(&user.DBUserRepository{})
	v1.ProgressService = progress.NewProgressService(
		&progress.DBProgressRepository{},
		&progress.RedisLeaderboardRepository{},
	)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api/v1")
	v1.RegisterUserRoutes(api.Group("/users"))

	g := api.Group("/progress")
	g.Use(api_middleware.SetupJWTMiddleware())
	v1.RegisterProgressRoutes(g)

	e.Logger.Fatal(e.Start(":8080"))
}

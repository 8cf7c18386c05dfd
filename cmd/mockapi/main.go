package main

import (
	"os"

	"bookstore/internal/config"
	"bookstore/internal/mockapi"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetOutput(os.Stdout)

	cfg, err := config.LoadMockAPI()
	if err != nil {
		log.Fatal(err)
	}

	srv := mockapi.NewServer(mockapi.NewStore(), cfg.JWTSecret, log)
	e := srv.Echo()

	log.Infof("mock bookstore api listening on :%s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

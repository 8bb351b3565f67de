package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/roster-scheduler-go/pkg/auth"
	"github.com/arnavshah/roster-scheduler-go/pkg/config"
)

func main() {
	config.LoadDotEnv(config.DefaultEnvPaths...)

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <userID>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	if cfg.MasterSecret == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in .env")
		os.Exit(1)
	}

	userID := os.Args[1]
	key := auth.NewService(cfg.JWTSecret, cfg.MasterSecret, 0).GenerateHMACKey(userID)
	fmt.Printf("Generated Key for %s:\n%s\n", userID, key)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fitsync/fitsync/internal/dbtest"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a disposable MariaDB container for local fitsync development.

Usage:

devdb [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  devdb -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	}

	ctx := context.Background()

	db, err := dbtest.StartMariaDB(ctx)
	if err != nil {
		log.Fatalf("Failed to start MariaDB container: %v\n", err)
	}

	cfg := db.Config()
	fmt.Println("MariaDB ready. Export for the server:")
	fmt.Printf("  DB_TYPE=%s\n", cfg.DBType)
	fmt.Printf("  DATABASE_URL=%s\n", cfg.DatabaseURL)
	fmt.Printf("  DB_HOST=%s\n", cfg.DBHost)
	fmt.Printf("  DB_PORT=%s\n", cfg.DBPort)
	fmt.Printf("  DB_USER=%s\n", cfg.DBUser)
	fmt.Printf("  DB_PASSWORD=%s\n", cfg.DBPassword)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating container...\n", sig)
	if err := db.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate container: %v\n", err)
	}
}

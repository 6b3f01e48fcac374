package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/web/server"
)

// getEnv returns the environment variable or fallback when it is unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	workers, err := strconv.Atoi(getEnv("RT_WORKERS", "0"))
	if err != nil {
		log.Printf("Invalid RT_WORKERS: %v", err)
		os.Exit(1)
	}

	// Parse command line flags
	addr := flag.String("addr", getEnv("RT_SERVER_ADDRESS", ":8080"), "Address to serve on")
	scenesDir := flag.String("scenes", getEnv("RT_SCENES_DIR", "scenes"), "Directory of scene documents")
	numWorkers := flag.Int("workers", workers, "Render workers per request (0 = use CPU count)")
	flag.Parse()

	logger := renderer.NewDefaultLogger()
	config := server.Config{
		Address:    *addr,
		ScenesDir:  *scenesDir,
		NumWorkers: *numWorkers,
		Logger:     logger,
	}

	if s3Config := output.S3ConfigFromEnv(); s3Config.Enabled() {
		publisher, err := output.NewS3Publisher(s3Config, logger)
		if err != nil {
			log.Printf("Error configuring S3: %v", err)
			os.Exit(1)
		}
		config.Publisher = publisher
	}

	webServer := server.NewServer(config)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("POST a scene document to http://localhost%s/render", *addr)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}

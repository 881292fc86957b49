package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Parse command line flags
	addr := flag.String("addr", cfg.ServerAddress, "Address to serve on")
	scenesDir := flag.String("scenes", cfg.ScenesDir, "Directory of .json scene files")
	flag.Parse()

	var publisher *renderer.S3Publisher
	if cfg.UploadEnabled() {
		publisher, err = renderer.NewS3Publisher(renderer.S3Options{
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			CDNURL:    cfg.CDNURL,
		}, renderer.NewDefaultLogger())
		if err != nil {
			log.Printf("Error configuring S3 uploads: %v", err)
			os.Exit(1)
		}
		log.Printf("Publishing renders to bucket %s", cfg.S3Bucket)
	}

	// Create and start web server
	webServer := server.NewServer(*addr, *scenesDir, publisher)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Listening on %s", *addr)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds settings read from the environment and an optional .env file
type Config struct {
	RootDir       string // Directory holding .env, from RAYTRACER_ROOT_DIR
	ServerAddress string // Listen address for the web server
	OutputDir     string // Where rendered images are written
	ScenesDir     string // Where scene files are discovered

	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	CDNURL      string
}

// getEnv returns the value of key, or fallback when it is unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Load reads RAYTRACER_ROOT_DIR/.env, without overriding variables already
// set, and then builds the config from the environment. A missing .env file
// is not an error.
func Load() (*Config, error) {
	rootDir := getEnv("RAYTRACER_ROOT_DIR", ".")
	if err := godotenv.Load(filepath.Join(rootDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		RootDir:       rootDir,
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		OutputDir:     getEnv("OUTPUT_DIR", "output"),
		ScenesDir:     getEnv("SCENES_DIR", "scenes"),
		S3AccessKey:   os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:   os.Getenv("S3_SECRET_KEY"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		CDNURL:        os.Getenv("CDN_URL"),
	}, nil
}

// UploadEnabled reports whether enough S3 settings are present to publish
func (c *Config) UploadEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

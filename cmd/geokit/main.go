// Command geokit indexes GeoJSON and shapefile features and answers spatial
// queries about them.
package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	logrus.SetOutput(os.Stderr)
}

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load(".env")

	if err := Root.Execute(); err != nil {
		logrus.WithError(err).Error("geokit: command failed")
		os.Exit(1)
	}
}

// Command stride-seed loads an exercise catalog from a YAML file into the
// database. Existing exercises (matched by name) are left untouched, so the
// seed can be re-run safely.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stridefit/stride/internal/config"
	"github.com/stridefit/stride/internal/models"
	"github.com/stridefit/stride/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

type seedFile struct {
	Exercises []seedExercise `yaml:"exercises"`
}

type seedExercise struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Difficulty  string `yaml:"difficulty"`
	ImageURL    string `yaml:"image_url"`
	VideoURL    string `yaml:"video_url"`
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	seedPath := flag.String("file", "exercises.yaml", "path to exercise seed file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("stride-seed", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		log.Error("failed to read seed file", "path", *seedPath, "error", err)
		os.Exit(1)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Error("failed to parse seed file", "error", err)
		os.Exit(1)
	}
	if len(seed.Exercises) == 0 {
		log.Error("seed file contains no exercises")
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var inserted, skipped, invalid int
	for _, e := range seed.Exercises {
		ex := models.Exercise{
			Name:        e.Name,
			Description: e.Description,
			Difficulty:  e.Difficulty,
			ImageURL:    e.ImageURL,
			VideoURL:    e.VideoURL,
			IsActive:    true,
		}
		if ex.Name == "" || !validDifficulty(ex.Difficulty) {
			log.Warn("skipping invalid entry", "name", e.Name, "difficulty", e.Difficulty)
			invalid++
			continue
		}
		ok, err := db.CreateExercise(ctx, ex)
		if err != nil {
			log.Error("insert failed", "name", ex.Name, "error", err)
			os.Exit(1)
		}
		if ok {
			inserted++
		} else {
			skipped++
		}
	}

	log.Info("seed complete", "inserted", inserted, "skipped", skipped, "invalid", invalid)
}

func validDifficulty(d string) bool {
	switch d {
	case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
		return true
	}
	return false
}

package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/elo-ladder/internal/database"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
	"github.com/mauv0809/elo-ladder/internal/rating"
	"github.com/mauv0809/elo-ladder/internal/snapshot"
)

type seederConfig struct {
	Label       string
	KFactor     float64
	Players     int
	Matches     int
	Seed        int64
	DBName      string
	DatabaseURL string
	TursoURL    string
	TursoToken  string
}

// Simplified config loading for the script
func loadConfig() seederConfig {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}
	mustInt := func(key, fallback string) int {
		v, err := strconv.Atoi(getEnv(key, fallback))
		if err != nil || v < 0 {
			log.Fatalf("Error: %s must be a non-negative integer", key)
		}
		return v
	}

	kFactor, err := strconv.ParseFloat(getEnv("K_FACTOR", "32"), 64)
	if err != nil {
		log.Fatalf("Error: invalid K_FACTOR: %s", err)
	}

	cfg := seederConfig{
		Label:       getEnv("LEADERBOARD_LABEL", "Main"),
		KFactor:     kFactor,
		Players:     mustInt("SEED_PLAYERS", "8"),
		Matches:     mustInt("SEED_MATCHES", "500"),
		Seed:        int64(mustInt("SEED", strconv.FormatInt(time.Now().UnixNano()%1_000_000, 10))),
		DBName:      getEnv("DB_NAME", "ladder.db"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		TursoURL:    getEnv("TURSO_PRIMARY_URL", ""),
		TursoToken:  getEnv("TURSO_AUTH_TOKEN", ""),
	}
	return cfg
}

// simulate plays matches between random pairs. Each player has a hidden
// strength on the rating scale; the stronger side wins with the probability
// the Elo model predicts for those strengths.
func simulate(lb *leaderboard.Leaderboard, strengths map[string]float64, matches int, rng *rand.Rand) error {
	names := make([]string, 0, len(strengths))
	for _, p := range lb.Standings() {
		if _, ok := strengths[p.Name]; ok {
			names = append(names, p.Name)
		}
	}
	if len(names) < 2 {
		return fmt.Errorf("need at least two players to simulate, got %d", len(names))
	}

	for i := 0; i < matches; i++ {
		a := names[rng.Intn(len(names))]
		b := names[rng.Intn(len(names)-1)]
		if b == a {
			b = names[len(names)-1]
		}

		winner, loser := a, b
		if rng.Float64() >= rating.ExpectedScore(strengths[a], strengths[b]) {
			winner, loser = b, a
		}
		if _, err := lb.RecordMatch(winner, loser); err != nil {
			return fmt.Errorf("match %d: %w", i, err)
		}
	}
	return nil
}

func seedPlayers(lb *leaderboard.Leaderboard, count int, rng *rand.Rand) (map[string]float64, error) {
	strengths := make(map[string]float64, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Seeder Player %c", 'A'+rune(i%26))
		if i >= 26 {
			name = fmt.Sprintf("%s%d", name, i/26)
		}
		if _, err := lb.AddPlayer(leaderboard.NewPlayer{Name: name}); err != nil {
			return nil, err
		}
		strengths[name] = rating.DefaultRating + rng.NormFloat64()*200
	}
	return strengths, nil
}

func main() {
	log.Info("Starting ladder seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.TursoURL, cfg.TursoToken, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	log.Info("Successfully connected to the database.", "dialect", db.Dialect)

	lb, err := leaderboard.New(cfg.Label, cfg.KFactor)
	if err != nil {
		log.Fatalf("Failed to create leaderboard: %s", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	strengths, err := seedPlayers(lb, cfg.Players, rng)
	if err != nil {
		log.Fatalf("Failed to add players: %s", err)
	}

	log.Info("Simulating matches...", "players", cfg.Players, "matches", cfg.Matches, "seed", cfg.Seed)
	startTime := time.Now()
	if err := simulate(lb, strengths, cfg.Matches, rng); err != nil {
		log.Fatalf("Simulation failed: %s", err)
	}

	if err := snapshot.New(db).Save(context.Background(), lb.ToPortable()); err != nil {
		log.Fatalf("Failed to checkpoint leaderboard: %s", err)
	}

	for i, p := range lb.TopN(5) {
		log.Info("Seeded standings", "rank", i+1, "name", p.Name, "rating", p.Rating, "strength", strengths[p.Name], "wins", p.Wins, "losses", p.Losses)
	}
	log.Info("Successfully seeded the ladder.", "label", cfg.Label, "duration", time.Since(startTime))
}

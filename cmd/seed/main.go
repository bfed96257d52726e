package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Seeds a demo set of holdings into both portfolios. Existing rows for the
// same symbol are overwritten with the seed share counts.
func main() {
	godotenv.Load()
	dbURL := os.Getenv("POSTGRES_URL")
	if dbURL == "" {
		log.Fatal("POSTGRES_URL is required")
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	seeds := map[string]map[string]string{
		"uk": {
			"VOD":  "100",
			"BARC": "50",
			"TSCO": "200",
		},
		"us": {
			"AAPL": "10",
			"MSFT": "5",
			"NVDA": "8",
		},
	}

	for portfolio, holdings := range seeds {
		for sym, shares := range holdings {
			_, err := db.ExecContext(ctx, `
				INSERT INTO holdings (portfolio, symbol, shares, updated_at)
				VALUES ($1, $2, $3::numeric, now())
				ON CONFLICT (portfolio, symbol) DO UPDATE SET shares = $3::numeric, updated_at = now()`,
				portfolio, sym, shares)
			if err != nil {
				fmt.Printf("Warning: could not seed %s/%s: %v\n", portfolio, sym, err)
				continue
			}
			fmt.Printf("Seeded %s/%s with %s shares\n", portfolio, sym, shares)
		}
	}

	fmt.Println("Done. Hit GET /api/uk and GET /api/us to see the valued portfolios.")
}

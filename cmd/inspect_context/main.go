package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"brainmode-be/internal/config"
	"brainmode-be/internal/repository/redisstore"
	"brainmode-be/pkg/brain"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
)

// Prints a stored view context field by field and runs its guards.
// Usage: inspect_context <context-id>
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: inspect_context <context-id>")
		os.Exit(2)
	}
	id := os.Args[1]

	cfg := config.Load()
	if cfg.App.RedisURL == "" {
		color.Red("REDIS_URL not set: in-memory contexts live inside the service process")
		os.Exit(1)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		color.Red("Invalid REDIS_URL: %v", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	repo := redisstore.NewContextRepository(rdb, cfg.Session.TTL)
	c, err := repo.FindByID(context.Background(), id)
	if err != nil {
		color.Red("Failed to load context %s: %v", id, err)
		os.Exit(1)
	}

	color.Cyan("=== Context %s ===\n", id)
	for _, f := range brain.Fields {
		v, _ := c.Get(f)
		if f == brain.FieldAtomsByID {
			v = fmt.Sprintf("%d atoms", c.AtomsByID.Len())
		}
		if raw, ok := v.(json.RawMessage); ok {
			v = fmt.Sprintf("%d bytes", len(raw))
		}
		fmt.Printf("%-26s %v\n", color.YellowString(string(f)), v)
	}

	color.Cyan("\n=== Guards ===")
	for _, g := range []string{brain.GuardReadwrite, brain.GuardView, brain.GuardSetProperties} {
		if err := c.CheckGuard(g); err != nil {
			color.Red("%-14s %v", g, err)
			continue
		}
		color.Green("%-14s ok", g)
	}
	if err := brain.AssertHeightInBounds(c.Height); err != nil {
		color.Red("%-14s %v", "height", err)
	} else {
		color.Green("%-14s ok", "height")
	}
}

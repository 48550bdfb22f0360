package main

import (
	"os"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/database"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/draft"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/league"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "arena.db",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := league.New(db)

	if err := store.UpsertLeague(league.League{ID: "inter-knot-open", Name: "Inter-Knot Open"}); err != nil {
		log.Fatalf("Failed to seed league: %s", err)
	}
	if err := store.UpsertSeason(league.Season{
		ID:       "ik-open-s1",
		LeagueID: "inter-knot-open",
		Name:     "Season 1",
		Active:   true,
	}); err != nil {
		log.Fatalf("Failed to seed season: %s", err)
	}
	log.Info("Ensured league and active season exist.")

	agents := []league.Agent{
		{ID: "anby", Name: "Anby Demara", Role: "stun"},
		{ID: "billy", Name: "Billy Kid", Role: "attack"},
		{ID: "nicole", Name: "Nicole Demara", Role: "support"},
		{ID: "nekomata", Name: "Nekomiya Mana", Role: "attack"},
		{ID: "miyabi", Name: "Hoshimi Miyabi", Role: "anomaly"},
		{ID: "lycaon", Name: "Von Lycaon", Role: "stun"},
		{ID: "grace", Name: "Grace Howard", Role: "anomaly"},
		{ID: "rina", Name: "Alexandrina Sebastiane", Role: "support"},
		{ID: "soldier11", Name: "Soldier 11", Role: "attack"},
		{ID: "koleda", Name: "Koleda Belobog", Role: "stun"},
	}
	if err := store.UpsertAgents(agents); err != nil {
		log.Fatalf("Failed to seed agents: %s", err)
	}
	log.Info("Ensured agent catalog exists.", "count", len(agents))

	rulesets := []league.Ruleset{
		{
			ID:         "standard",
			Name:       "Standard ban/pick",
			TemplateID: "standard-2ban-2pick",
			Policy:     draft.AgentPolicy{Mode: draft.PolicyBlacklist},
		},
		{
			ID:         "open-mirror",
			Name:       "Open mirror",
			TemplateID: "open-mirror",
			Policy:     draft.AgentPolicy{Mode: draft.PolicyBlacklist},
		},
	}
	for _, r := range rulesets {
		if err := store.UpsertRuleset(r); err != nil {
			log.Fatalf("Failed to seed ruleset %s: %s", r.ID, err)
		}
	}

	queues := []league.Queue{
		{ID: "ranked-standard", LeagueID: "inter-knot-open", RulesetID: "standard", ChallengeID: "shiyu-defense-7", Name: "Ranked (standard)"},
		{ID: "casual-mirror", LeagueID: "inter-knot-open", RulesetID: "open-mirror", ChallengeID: "shiyu-defense-7", Name: "Casual (mirror)"},
	}
	for _, q := range queues {
		if err := store.UpsertQueue(q); err != nil {
			log.Fatalf("Failed to seed queue %s: %s", q.ID, err)
		}
	}
	log.Info("Seeding complete.", "rulesets", len(rulesets), "queues", len(queues))
}

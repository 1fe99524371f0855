// Manual lesson unlock script.
//
// Lock acquisition already treats expired locks as free, so this is only
// needed when an editor's session died and another user cannot wait out the
// timeout window.
//
// Usage: go run scripts/force_unlock.go -lesson <id>
//        go run scripts/force_unlock.go -expired   (clear every expired lock)

package main

import (
	"flag"
	"log"
	"time"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/config"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/database"
)

func main() {
	lessonID := flag.String("lesson", "", "lesson id to unlock")
	expiredOnly := flag.Bool("expired", false, "clear every lock older than the configured timeout")
	configPath := flag.String("config", "./configs", "directory containing config.yaml")
	flag.Parse()

	if *lessonID == "" && !*expiredOnly {
		log.Fatal("pass -lesson <id> or -expired")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	query := db.Model(&model.Lesson{}).Where("locked_by IS NOT NULL")
	if *lessonID != "" {
		query = query.Where("id = ?", *lessonID)
	} else {
		cutoff := time.Now().Add(-time.Duration(cfg.Content.LockTimeoutMinutes) * time.Minute)
		query = query.Where("locked_at < ?", cutoff)
	}

	result := query.Updates(map[string]interface{}{"locked_by": nil, "locked_at": nil})
	if result.Error != nil {
		log.Fatalf("unlock failed: %v", result.Error)
	}
	log.Printf("cleared %d lock(s)", result.RowsAffected)
}

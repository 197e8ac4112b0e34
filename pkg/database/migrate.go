package database

import (
	"fmt"

	"leaguelake/pkg/database/models"

	"gorm.io/gorm"
)

// Migrate creates the warehouse tables and their indexes.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.PlayerStanding{},
		&models.MatchParticipant{},
	)
	if err != nil {
		return fmt.Errorf("couldn't migrate the warehouse tables: %w", err)
	}

	return createCustomIndexes(db)
}

// createCustomIndexes creates the time-partitioning and clustering
// equivalents: BRIN on the append timestamps, a composite btree on the
// analysis columns (lane, champion).
func createCustomIndexes(db *gorm.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_standing_retrieve_brin
		   ON player_standings USING BRIN (retrieve_time);`,
		`CREATE INDEX IF NOT EXISTS idx_participant_start_brin
		   ON match_participants USING BRIN (game_start_time);`,
		`CREATE INDEX IF NOT EXISTS idx_participant_lane_champion
		   ON match_participants (lane, champion);`,
	}

	for _, statement := range statements {
		if err := db.Exec(statement).Error; err != nil {
			return fmt.Errorf("couldn't create custom index: %w", err)
		}
	}

	return nil
}

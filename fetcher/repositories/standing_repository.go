package repositories

import (
	"leaguelake/pkg/database/models"

	"gorm.io/gorm"
)

const appendBatchSize = 500

// StandingRepository is the append-only sink of the standings table.
type StandingRepository interface {
	Append(standings []*models.PlayerStanding) error
}

type standingRepository struct {
	db *gorm.DB
}

// NewStandingRepository creates a standing repository.
func NewStandingRepository(db *gorm.DB) StandingRepository {
	return &standingRepository{db: db}
}

// Append inserts the rows in batches. Rows are never updated or
// deleted; each run adds its own snapshot.
func (sr *standingRepository) Append(standings []*models.PlayerStanding) error {
	if len(standings) == 0 {
		return nil
	}

	return sr.db.CreateInBatches(&standings, appendBatchSize).Error
}

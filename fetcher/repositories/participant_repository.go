package repositories

import (
	"leaguelake/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ParticipantRepository is the append-only sink of the participant
// rows table.
type ParticipantRepository interface {
	Append(rows []*models.MatchParticipant) error
}

type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a participant repository.
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

// Append inserts the rows in batches, ignoring conflicts on the
// (match_id, summoner_puuid) unique index so overlapping runs keep
// exactly one row per participant per match.
func (pr *participantRepository) Append(rows []*models.MatchParticipant) error {
	if len(rows) == 0 {
		return nil
	}

	return pr.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}, {Name: "summoner_puuid"}},
		DoNothing: true,
	}).CreateInBatches(&rows, appendBatchSize).Error
}

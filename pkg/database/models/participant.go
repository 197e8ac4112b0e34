package models

import "time"

// MatchParticipant is one flattened row per (match, participant).
// A standard match produces 10 of them, all sharing the match id.
type MatchParticipant struct {
	ID            uint64 `gorm:"primaryKey"`
	MatchId       string `gorm:"type:varchar(20);uniqueIndex:idx_match_puuid"`
	SummonerPuuid string `gorm:"type:char(78);uniqueIndex:idx_match_puuid;index"`
	SummonerId    string `gorm:"type:char(63)"`
	SummonerName  string `gorm:"type:varchar(100)"`

	CreationTime  time.Time
	GameStartTime time.Time
	DurationMin   float64

	Champion string `gorm:"type:varchar(30)"`
	Kills    int
	Deaths   int
	Assists  int
	Kda      float64
	Lane     string `gorm:"type:varchar(10)"`

	DamageDealt  int
	DamagePerMin float64
	DamageTaken  int

	Gold       int
	GoldPerMin float64

	Win bool

	// Cs is total plus neutral minions killed.
	Cs int

	VisionScore       int
	VisionScorePerMin float64

	Surrender bool

	RetrieveTime time.Time
}

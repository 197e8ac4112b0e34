package models

import "time"

// PlayerStanding is one ranked-ladder entry at retrieval time.
// Rows are append-only, never updated in place; the same player shows
// up once per run.
type PlayerStanding struct {
	ID            uint   `gorm:"primaryKey"`
	League        string `gorm:"type:varchar(30);index"`
	Queue         string `gorm:"type:varchar(30)"`
	SummonerName  string `gorm:"type:varchar(100)"`
	SummonerId    string `gorm:"type:char(63)"`
	SummonerPuuid string `gorm:"type:char(78);index"`
	SummonerLevel int
	LeaguePoints  int
	Wins          int
	Losses        int

	// WinRate is NaN when the player has no games.
	WinRate    float64
	TotalGames int

	RetrieveTime time.Time
}

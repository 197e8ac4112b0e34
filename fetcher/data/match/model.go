package matchfetcher

import (
	"encoding/json"
	"time"
)

// RiotTime handles the millisecond epoch timestamps from Riot.
type RiotTime time.Time

// UnmarshalJSON converts the millisecond field to a time.Time.
func (rt *RiotTime) UnmarshalJSON(b []byte) error {
	var timestamp int64
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}

	*rt = RiotTime(time.UnixMilli(timestamp))
	return nil
}

// Time returns the true time.
func (rt RiotTime) Time() time.Time {
	return time.Time(rt)
}

// MatchData is the match-v5 payload, trimmed to the fields the
// transform projects.
type MatchData struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

// MatchMetadata carries the stable upstream match id.
type MatchMetadata struct {
	MatchId string `json:"matchId"`
}

// MatchInfo contains the match level fields.
type MatchInfo struct {
	GameCreation       RiotTime      `json:"gameCreation"`
	GameStartTimestamp RiotTime      `json:"gameStartTimestamp"`
	GameDuration       int           `json:"gameDuration"`
	QueueId            int           `json:"queueId"`
	Participants       []Participant `json:"participants"`
}

// Participant contains one player's results in a match.
// Challenges is a pointer: older or malformed payloads miss the whole
// sub-object and the transform must be able to tell.
type Participant struct {
	Puuid                       string      `json:"puuid"`
	SummonerId                  string      `json:"summonerId"`
	SummonerName                string      `json:"summonerName"`
	ChampionName                string      `json:"championName"`
	Kills                       int         `json:"kills"`
	Deaths                      int         `json:"deaths"`
	Assists                     int         `json:"assists"`
	TeamPosition                string      `json:"teamPosition"`
	TotalDamageDealtToChampions int         `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            int         `json:"totalDamageTaken"`
	GoldEarned                  int         `json:"goldEarned"`
	Win                         bool        `json:"win"`
	TotalMinionsKilled          int         `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int         `json:"neutralMinionsKilled"`
	VisionScore                 int         `json:"visionScore"`
	GameEndedInSurrender        bool        `json:"gameEndedInSurrender"`
	Challenges                  *Challenges `json:"challenges,omitempty"`
}

// Challenges holds the upstream-derived per-participant statistics.
// Individual fields are pointers for the same reason the sub-object is.
type Challenges struct {
	Kda                  *float64 `json:"kda,omitempty"`
	DamagePerMinute      *float64 `json:"damagePerMinute,omitempty"`
	GoldPerMinute        *float64 `json:"goldPerMinute,omitempty"`
	VisionScorePerMinute *float64 `json:"visionScorePerMinute,omitempty"`
}

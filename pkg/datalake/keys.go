package datalake

import (
	"fmt"
	"time"
)

// windowLayout keeps the second resolution so two distinct windows for
// the same player never collide.
const windowLayout = "01-02-2006_15:04:05"

// LadderKey addresses one (league, queue, window-start) roster
// snapshot, the run input prefix that makes re-runs full cache hits.
func LadderKey(league string, queue string, asOf time.Time) string {
	return fmt.Sprintf("ladder/%s-%s-%s.json",
		league, queue, asOf.UTC().Format(windowLayout))
}

// PlayerKey addresses a summoner identity lookup.
func PlayerKey(summonerName string, summonerId string) string {
	return fmt.Sprintf("players/%s_%s.json", summonerName, summonerId)
}

// MatchHistoryKey addresses one (player, window, type) match-id query.
func MatchHistoryKey(puuid string, matchType string, startTime time.Time, endTime time.Time) string {
	return fmt.Sprintf("match-history/%s-%s-%s-%s.json",
		puuid,
		matchType,
		startTime.UTC().Format(windowLayout),
		endTime.UTC().Format(windowLayout),
	)
}

// MatchKey addresses one raw match payload.
func MatchKey(matchId string) string {
	return fmt.Sprintf("matches/%s.json", matchId)
}

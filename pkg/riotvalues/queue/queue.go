package queuevalues

import "slices"

// Ranked queues that the pipeline can snapshot.
var RankedQueues = []string{"RANKED_SOLO_5x5", "RANKED_FLEX_SR"}

// High elo league path segments accepted by league-v4.
var HighEloLeagues = []string{"challengerleagues", "grandmasterleagues", "masterleagues"}

// Positions that can show up on team_position.
// Sometimes could be "" on modes without fixed positions.
var TeamPositions = []string{"TOP", "JUNGLE", "MIDDLE", "BOTTOM", "UTILITY"}

// ValidLeague reports whether the league is a known high elo path.
func ValidLeague(league string) bool {
	return slices.Contains(HighEloLeagues, league)
}

// ValidQueue reports whether the queue can be snapshotted.
func ValidQueue(queue string) bool {
	return slices.Contains(RankedQueues, queue)
}

package leaguefetcher

// Entry is one raw ladder entry as returned by league-v4.
type Entry struct {
	SummonerId   string `json:"summonerId"`
	SummonerName string `json:"summonerName"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Rank         string `json:"rank"`
	Veteran      bool   `json:"veteran"`
	Inactive     bool   `json:"inactive"`
	FreshBlood   bool   `json:"freshBlood"`
	HotStreak    bool   `json:"hotStreak"`
}

// LeagueList is the full tier roster; the high elo endpoints return
// the whole league in a single unpaginated response.
type LeagueList struct {
	Tier    string  `json:"tier"`
	Queue   string  `json:"queue"`
	Entries []Entry `json:"entries"`
}

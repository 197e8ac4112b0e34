package playerfetcher

// Summoner is the identity payload of summoner-v4.
// The puuid is the stable identifier; names and even summoner ids can
// drift between seasons.
type Summoner struct {
	Id            string `json:"id"`
	AccountId     string `json:"accountId"`
	Puuid         string `json:"puuid"`
	Name          string `json:"name"`
	SummonerLevel int    `json:"summonerLevel"`
}

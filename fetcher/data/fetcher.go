package data

import (
	leaguefetcher "leaguelake/fetcher/data/league"
	matchfetcher "leaguelake/fetcher/data/match"
	playerfetcher "leaguelake/fetcher/data/player"
	"leaguelake/fetcher/requests"
	"leaguelake/pkg/config"
)

// RiotFetcher bundles the per-resource fetchers behind one shared
// client and rate limiter.
type RiotFetcher struct {
	League *leaguefetcher.Fetcher
	Player *playerfetcher.Fetcher
	Match  *matchfetcher.Fetcher
}

// NewRiotFetcher wires the fetchers to their hosts.
func NewRiotFetcher(client *requests.Client, routing config.Routing) *RiotFetcher {
	return &RiotFetcher{
		League: leaguefetcher.NewFetcher(client, routing.PlatformHost),
		Player: playerfetcher.NewFetcher(client, routing.PlatformHost, routing.RegionalHost),
		Match:  matchfetcher.NewFetcher(client, routing.RegionalHost),
	}
}

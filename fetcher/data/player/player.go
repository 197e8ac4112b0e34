package playerfetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"leaguelake/fetcher/requests"
	"leaguelake/pkg/messages"
)

// Fetcher reaches summoner-v4 on the platform host and the match-id
// listing of match-v5 on the regional host.
type Fetcher struct {
	client       *requests.Client
	platformHost string
	regionalHost string
}

// NewFetcher creates a player fetcher.
func NewFetcher(client *requests.Client, platformHost string, regionalHost string) *Fetcher {
	return &Fetcher{
		client:       client,
		platformHost: platformHost,
		regionalHost: regionalHost,
	}
}

// MatchIDsQuery is one page request of a player's match-id listing.
type MatchIDsQuery struct {
	StartTime time.Time
	EndTime   time.Time
	Type      string
	Start     int
	Count     int
}

// SummonerByName looks an identity up by display name.
// Returns the raw body so the caller can store it byte-identical.
func (f *Fetcher) SummonerByName(ctx context.Context, summonerName string) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-name/%s",
		f.platformHost, url.PathEscape(summonerName))

	return f.getIdentity(ctx, requestURL)
}

// SummonerById looks an identity up by encrypted summoner id.
// Fallback path for renamed or deleted display names.
func (f *Fetcher) SummonerById(ctx context.Context, summonerId string) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/lol/summoner/v4/summoners/%s",
		f.platformHost, summonerId)

	return f.getIdentity(ctx, requestURL)
}

// getIdentity runs the lookup and validates the payload shape.
func (f *Fetcher) getIdentity(ctx context.Context, requestURL string) ([]byte, error) {
	body, status, err := f.client.Get(ctx, requestURL, url.Values{})
	if err != nil {
		return nil, fmt.Errorf(messages.RequestFailedMsg+": %w", requestURL, err)
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf(messages.BadStatusCodeMsg, status, requestURL)
	}

	var summoner Summoner
	if err := json.Unmarshal(body, &summoner); err != nil {
		return nil, fmt.Errorf(messages.FailedToParseMsg+": %w", err)
	}
	if summoner.Puuid == "" {
		return nil, fmt.Errorf("identity payload without puuid on URL %s", requestURL)
	}

	return body, nil
}

// MatchIDs fetches one page of a player's match-id listing.
func (f *Fetcher) MatchIDs(ctx context.Context, puuid string, query MatchIDsQuery) ([]string, error) {
	requestURL := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids",
		f.regionalHost, puuid)

	params := url.Values{
		"startTime": {strconv.FormatInt(query.StartTime.Unix(), 10)},
		"endTime":   {strconv.FormatInt(query.EndTime.Unix(), 10)},
		"type":      {query.Type},
		"start":     {strconv.Itoa(query.Start)},
		"count":     {strconv.Itoa(query.Count)},
	}

	body, status, err := f.client.Get(ctx, requestURL, params)
	if err != nil {
		return nil, fmt.Errorf(messages.RequestFailedMsg+": %w", requestURL, err)
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf(messages.BadStatusCodeMsg, status, requestURL)
	}

	var matchIds []string
	if err := json.Unmarshal(body, &matchIds); err != nil {
		return nil, fmt.Errorf(messages.FailedToParseMsg+": %w", err)
	}

	return matchIds, nil
}

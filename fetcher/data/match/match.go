package matchfetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"leaguelake/fetcher/requests"
	"leaguelake/pkg/messages"
)

// Fetcher reaches the match-v5 detail endpoint on the regional host.
type Fetcher struct {
	client *requests.Client
	host   string
}

// NewFetcher creates a match fetcher.
func NewFetcher(client *requests.Client, host string) *Fetcher {
	return &Fetcher{
		client: client,
		host:   host,
	}
}

// MatchData fetches one full match payload.
// Returns the raw body so the lake stores it byte-identical.
func (f *Fetcher) MatchData(ctx context.Context, matchId string) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/lol/match/v5/matches/%s", f.host, matchId)

	body, status, err := f.client.Get(ctx, requestURL, url.Values{})
	if err != nil {
		return nil, fmt.Errorf(messages.RequestFailedMsg+": %w", requestURL, err)
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf(messages.BadStatusCodeMsg, status, requestURL)
	}

	return body, nil
}

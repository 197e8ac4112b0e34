package leaguefetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"leaguelake/fetcher/requests"
	"leaguelake/pkg/messages"
)

// Fetcher reaches the league-v4 resource family.
type Fetcher struct {
	client *requests.Client
	host   string
}

// NewFetcher creates a league fetcher against the platform host.
func NewFetcher(client *requests.Client, host string) *Fetcher {
	return &Fetcher{
		client: client,
		host:   host,
	}
}

// LadderEntries fetches the full roster of a high elo league for the
// given queue. Single call, no pagination.
// Returns the raw body so the caller can store it byte-identical.
func (f *Fetcher) LadderEntries(ctx context.Context, league string, queue string) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/lol/league/v4/%s/by-queue/%s",
		f.host, strings.ToLower(league), queue)

	body, status, err := f.client.Get(ctx, requestURL, url.Values{})
	if err != nil {
		return nil, fmt.Errorf(messages.RequestFailedMsg+": %w", requestURL, err)
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf(messages.BadStatusCodeMsg, status, requestURL)
	}

	var list LeagueList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf(messages.FailedToParseMsg+": %w", err)
	}

	return body, nil
}

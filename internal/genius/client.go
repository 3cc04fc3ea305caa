// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

/*
Package genius is the client for the external song/artist/lyrics catalog.

It is a thin I/O collaborator: HTTP GET + JSON decode for metadata, plus an
HTML scrape for lyrics (the upstream API does not serve lyrics text). The
core treats every failure here, network or parse alike, as "lyrics
unavailable", never as a fault.

Requests are throttled by a politeness rate limiter (roughly one per second)
and bounded by a per-request timeout.
*/
package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultUserAgent = "verso/1.0 (https://github.com/ngocanhtran/verso)"
	requestTimeout   = 10 * time.Second
	perPage          = 10
)

// Hit is one search or chart result.
type Hit struct {
	ID           int64
	Title        string
	Path         string // lyrics page path, e.g. "/artist-title-lyrics"
	ArtistName   string
	ThumbnailURL string
	Tags         []string
}

// Client talks to the external catalog API.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	lyricsBaseURL string
	accessToken   string
	limiter       *rate.Limiter
	logger        *slog.Logger
}

// NewClient builds a client for the given API and lyrics-site base URLs.
func NewClient(baseURL, lyricsBaseURL, accessToken string, logger *slog.Logger) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: requestTimeout},
		baseURL:       baseURL,
		lyricsBaseURL: lyricsBaseURL,
		accessToken:   accessToken,
		// One request per second keeps us well inside upstream limits.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		logger:  logger,
	}
}

// # Wire shapes

type searchResponse struct {
	Response struct {
		Hits []struct {
			Result songResult `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

type songDetailsResponse struct {
	Response struct {
		Song songResult `json:"song"`
	} `json:"response"`
}

type chartResponse struct {
	Response struct {
		ChartItems []struct {
			Item songResult `json:"item"`
		} `json:"chart_items"`
	} `json:"response"`
}

type songResult struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Path          string `json:"path"`
	PrimaryArtist struct {
		Name string `json:"name"`
	} `json:"primary_artist"`
	ThumbnailURL string   `json:"song_art_image_thumbnail_url"`
	Tags         []string `json:"tags"`
}

func (r songResult) toHit() Hit {
	return Hit{
		ID:           r.ID,
		Title:        r.Title,
		Path:         r.Path,
		ArtistName:   r.PrimaryArtist.Name,
		ThumbnailURL: r.ThumbnailURL,
		Tags:         r.Tags,
	}
}

// # Metadata endpoints

// Search queries the catalog for songs matching the query.
func (c *Client) Search(ctx context.Context, query string) ([]Hit, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&per_page=%d", c.baseURL, url.QueryEscape(query), perPage)

	var decoded searchResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(decoded.Response.Hits))
	for _, h := range decoded.Response.Hits {
		hits = append(hits, h.Result.toHit())
	}
	return hits, nil
}

// SongDetails fetches full metadata for one song, including its lyrics page
// path.
func (c *Client) SongDetails(ctx context.Context, songID int64) (*Hit, error) {
	endpoint := fmt.Sprintf("%s/songs/%d", c.baseURL, songID)

	var decoded songDetailsResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, err
	}

	hit := decoded.Response.Song.toHit()
	return &hit, nil
}

// ChartSongs fetches the current song chart.
func (c *Client) ChartSongs(ctx context.Context) ([]Hit, error) {
	endpoint := fmt.Sprintf("%s/charts/songs?per_page=%d", c.baseURL, perPage)

	var decoded chartResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(decoded.Response.ChartItems))
	for _, item := range decoded.Response.ChartItems {
		hits = append(hits, item.Item.toHit())
	}
	return hits, nil
}

// # Lyrics scrape

// Lyrics fetches the lyrics page at the given path and extracts the plain
// lyrics text. An empty extraction is an error so callers fall back to
// their placeholder.
func (c *Client) Lyrics(ctx context.Context, path string) (string, error) {
	body, err := c.get(ctx, c.lyricsBaseURL+path, "text/html")
	if err != nil {
		return "", err
	}
	defer body.Close()

	lyrics, err := extractLyrics(body)
	if err != nil {
		return "", fmt.Errorf("genius: failed to extract lyrics from %s: %w", path, err)
	}
	return lyrics, nil
}

// # Transport

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.get(ctx, endpoint, "application/json")
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("genius: failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint, accept string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("genius: rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("genius: failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", accept)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	c.logger.Debug("genius_request", slog.String("url", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("genius: request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("genius: unexpected status %d from %s", resp.StatusCode, endpoint)
	}
	return resp.Body, nil
}

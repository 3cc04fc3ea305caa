// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package genius

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "lose yourself", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": {
				"hits": [
					{
						"result": {
							"id": 1177,
							"title": "Lose Yourself",
							"path": "/eminem-lose-yourself-lyrics",
							"primary_artist": {"name": "Eminem"},
							"song_art_image_thumbnail_url": "https://images.example/1177.jpg",
							"tags": ["rap"]
						}
					}
				]
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, "test-token", testLogger())

	hits, err := client.Search(context.Background(), "lose yourself")
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, int64(1177), hits[0].ID)
	assert.Equal(t, "Lose Yourself", hits[0].Title)
	assert.Equal(t, "/eminem-lose-yourself-lyrics", hits[0].Path)
	assert.Equal(t, "Eminem", hits[0].ArtistName)
	assert.Equal(t, "https://images.example/1177.jpg", hits[0].ThumbnailURL)
	assert.Equal(t, []string{"rap"}, hits[0].Tags)
}

func TestClient_Search_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, "", testLogger())

	_, err := client.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
}

func TestClient_SongDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/songs/1177", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": {
				"song": {
					"id": 1177,
					"title": "Lose Yourself",
					"path": "/eminem-lose-yourself-lyrics",
					"primary_artist": {"name": "Eminem"}
				}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, "", testLogger())

	hit, err := client.SongDetails(context.Background(), 1177)
	require.NoError(t, err)
	assert.Equal(t, "Lose Yourself", hit.Title)
	assert.Equal(t, "Eminem", hit.ArtistName)
}

func TestClient_ChartSongs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/charts/songs", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": {
				"chart_items": [
					{"item": {"id": 1, "title": "First", "primary_artist": {"name": "A"}}},
					{"item": {"id": 2, "title": "Second", "primary_artist": {"name": "B"}}}
				]
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, "", testLogger())

	hits, err := client.ChartSongs(context.Background())
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "First", hits[0].Title)
	assert.Equal(t, "Second", hits[1].Title)
}

func TestClient_Lyrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/eminem-lose-yourself-lyrics", r.URL.Path)

		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<div data-lyrics-container="true">
				[Verse 1]<br>
				His palms are sweaty<br>
				Knees weak, arms are heavy
			</div>
			<div class="ad">buy things</div>
			<div data-lyrics-container="true">
				[Chorus]<br>
				You better lose yourself
			</div>
		</body></html>`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, "", testLogger())

	lyrics, err := client.Lyrics(context.Background(), "/eminem-lose-yourself-lyrics")
	require.NoError(t, err)

	want := "His palms are sweaty\nKnees weak, arms are heavy\n\nYou better lose yourself"
	assert.Equal(t, want, lyrics)
}

func TestClient_Lyrics_NoContainers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, "", testLogger())

	_, err := client.Lyrics(context.Background(), "/instrumental-lyrics")
	require.Error(t, err)
}

func TestExtractLyrics(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    string
		wantErr bool
	}{
		{
			name: "single block",
			html: `<div data-lyrics-container="true">line one<br>line two</div>`,
			want: "line one\nline two",
		},
		{
			name: "section headers dropped",
			html: `<div data-lyrics-container="true">[Intro]<br>hello<br>[Outro]<br>goodbye</div>`,
			want: "hello\ngoodbye",
		},
		{
			name: "nested markup flattened",
			html: `<div data-lyrics-container="true"><a href="/x"><span>annotated</span> words</a><br>plain words</div>`,
			want: "annotated words\nplain words",
		},
		{
			name:    "no containers",
			html:    `<div class="lyrics">not marked</div>`,
			wantErr: true,
		},
		{
			name:    "container with only headers",
			html:    `<div data-lyrics-container="true">[Instrumental]</div>`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractLyrics(strings.NewReader(tc.html))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

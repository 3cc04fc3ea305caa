// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

/*
Package importer reconciles external catalog search results into the local
catalog.

An import is a two-phase operation. The synchronous phase deduplicates by
external id, finds or creates the artist account, and inserts the song with
placeholder lyrics. The asynchronous phase fetches the real lyrics on a
bounded worker pool and swaps them in; on any failure the song settles on the
"Lyrics not available" placeholder rather than staying in the loading state
forever.
*/
package importer

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ngocanhtran/verso/internal/core/account"
	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/genius"
	"github.com/ngocanhtran/verso/internal/platform/apperr"
	"github.com/ngocanhtran/verso/internal/platform/sec"
	"github.com/ngocanhtran/verso/pkg/slug"
)

// MetadataClient is the slice of the external client the importer needs.
type MetadataClient interface {
	Search(ctx context.Context, query string) ([]genius.Hit, error)
	SongDetails(ctx context.Context, songID int64) (*genius.Hit, error)
	ChartSongs(ctx context.Context) ([]genius.Hit, error)
	Lyrics(ctx context.Context, path string) (string, error)
}

// Service imports songs and artists from the external catalog.
type Service struct {
	client   MetadataClient
	songs    song.Repository
	accounts account.Repository
	logger   *slog.Logger

	fetchTimeout time.Duration

	jobs   chan fetchJob
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

type fetchJob struct {
	songID string
	path   string
}

// NewService starts a pool of workers fetching lyrics in the background.
func NewService(client MetadataClient, songs song.Repository, accounts account.Repository, workers int, fetchTimeout time.Duration, logger *slog.Logger) *Service {
	if workers < 1 {
		workers = 1
	}
	s := &Service{
		client:       client,
		songs:        songs,
		accounts:     accounts,
		logger:       logger,
		fetchTimeout: fetchTimeout,
		jobs:         make(chan fetchJob, 64),
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Close stops accepting new fetches and drains the pool. Queued fetches
// still run to completion.
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()

	s.wg.Wait()
}

// # Import

// Search proxies a catalog search so the caller can present choices before
// importing.
func (s *Service) Search(ctx context.Context, query string) ([]genius.Hit, error) {
	hits, err := s.client.Search(ctx, query)
	if err != nil {
		s.logger.Warn("importer_search_failed", slog.String("query", query), slog.Any("error", err))
		return nil, apperr.Unavailable("Song search is temporarily unavailable", err)
	}
	return hits, nil
}

// Charts proxies the external chart so the caller can import trending songs.
func (s *Service) Charts(ctx context.Context) ([]genius.Hit, error) {
	hits, err := s.client.ChartSongs(ctx)
	if err != nil {
		s.logger.Warn("importer_charts_failed", slog.Any("error", err))
		return nil, apperr.Unavailable("The song chart is temporarily unavailable", err)
	}
	return hits, nil
}

// Import brings one external search hit into the local catalog. Importing a
// hit that is already present returns the existing song unchanged.
func (s *Service) Import(ctx context.Context, hit genius.Hit) (*song.Song, error) {
	if existing, err := s.songs.GetSongByGeniusID(ctx, hit.ID); err == nil {
		return existing, nil
	}

	// Chart entries sometimes arrive without a lyrics path; a details
	// lookup recovers it before the fetch is scheduled.
	if hit.Path == "" && hit.ID != 0 {
		if details, err := s.client.SongDetails(ctx, hit.ID); err == nil {
			hit.Path = details.Path
		}
	}

	artist, err := s.findOrCreateArtist(ctx, hit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newSong := &song.Song{
		ID:           uuid.NewString(),
		Title:        hit.Title,
		Lyrics:       song.LyricsLoading,
		ArtistIDs:    []string{artist.Username},
		Genre:        song.GenreFromTags(hit.Tags),
		Tags:         hit.Tags,
		ReleaseDate:  now,
		GeniusID:     hit.ID,
		ThumbnailURL: hit.ThumbnailURL,
		CreatedAt:    now,
	}

	if err := s.songs.CreateSong(ctx, newSong); err != nil {
		// Lost a race with a concurrent import of the same hit; the winner's
		// record is the one to use.
		if apperr.IsCode(err, apperr.CodeConflict) {
			if existing, lookupErr := s.songs.GetSongByGeniusID(ctx, hit.ID); lookupErr == nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("importer_create_song_failed: %w", err)
	}

	s.logger.Info("song_imported",
		slog.String("song_id", newSong.ID),
		slog.Int64("genius_id", hit.ID),
		slog.String("title", hit.Title),
		slog.String("artist", artist.Username))

	s.enqueueFetch(newSong.ID, hit.Path)
	return newSong, nil
}

// ImportQuery searches and imports every hit, returning the resulting songs
// in hit order. Hits that fail to import are skipped with a log line so one
// bad hit cannot sink the batch.
func (s *Service) ImportQuery(ctx context.Context, query string) ([]*song.Song, error) {
	hits, err := s.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	imported := make([]*song.Song, 0, len(hits))
	for _, hit := range hits {
		sng, err := s.Import(ctx, hit)
		if err != nil {
			s.logger.Warn("importer_hit_skipped",
				slog.Int64("genius_id", hit.ID),
				slog.String("title", hit.Title),
				slog.Any("error", err))
			continue
		}
		imported = append(imported, sng)
	}
	return imported, nil
}

// # Artist reconciliation

// findOrCreateArtist resolves the hit's artist to a local account by display
// name, creating an auto-verified artist account on first sight.
func (s *Service) findOrCreateArtist(ctx context.Context, hit genius.Hit) (*account.Account, error) {
	if existing, err := s.accounts.FindArtistByDisplayName(ctx, hit.ArtistName); err == nil {
		return existing, nil
	}

	tempPassword := make([]byte, 16)
	if _, err := rand.Read(tempPassword); err != nil {
		return nil, fmt.Errorf("importer_temp_password_failed: %w", err)
	}
	hash, err := sec.HashPassword(hex.EncodeToString(tempPassword))
	if err != nil {
		return nil, fmt.Errorf("importer_hash_failed: %w", err)
	}

	base := slug.Username(hit.ArtistName)
	username := base
	for attempt := 2; ; attempt++ {
		candidate := &account.Account{
			Username:     username,
			PasswordHash: hash,
			DisplayName:  hit.ArtistName,
			Role:         sec.RoleArtist,
			CreatedAt:    time.Now(),
			Artist: &account.ArtistProfile{
				// Imported artists come from the curated external catalog,
				// so they skip the manual approval queue.
				Verified: true,
				ImageURL: hit.ThumbnailURL,
			},
		}
		err := s.accounts.CreateAccount(ctx, candidate)
		if err == nil {
			s.logger.Info("artist_imported",
				slog.String("username", username),
				slog.String("display_name", hit.ArtistName))
			return candidate, nil
		}
		if !apperr.IsCode(err, apperr.CodeConflict) {
			return nil, fmt.Errorf("importer_create_artist_failed: %w", err)
		}
		if attempt > 50 {
			return nil, fmt.Errorf("importer_create_artist_failed: no free username for %q", hit.ArtistName)
		}
		username = fmt.Sprintf("%s_%d", base, attempt)
	}
}

// # Lyrics pool

func (s *Service) enqueueFetch(songID, path string) {
	if path == "" {
		s.settleUnavailable(songID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.settleUnavailable(songID)
		return
	}
	select {
	case s.jobs <- fetchJob{songID: songID, path: path}:
	default:
		// Pool backlog full; settle now instead of blocking the import.
		s.settleUnavailable(songID)
	}
}

func (s *Service) worker() {
	defer s.wg.Done()
	for job := range s.jobs {
		s.fetch(job)
	}
}

func (s *Service) fetch(job fetchJob) {
	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	defer cancel()

	lyrics, err := s.client.Lyrics(ctx, job.path)
	if err != nil {
		s.logger.Warn("lyrics_fetch_failed",
			slog.String("song_id", job.songID),
			slog.String("path", job.path),
			slog.Any("error", err))
		s.settleUnavailable(job.songID)
		return
	}

	if err := s.songs.SetLyrics(ctx, job.songID, lyrics); err != nil {
		s.logger.Warn("lyrics_store_failed", slog.String("song_id", job.songID), slog.Any("error", err))
	}
}

func (s *Service) settleUnavailable(songID string) {
	if err := s.songs.SetLyrics(context.Background(), songID, song.LyricsUnavailable); err != nil {
		s.logger.Warn("lyrics_store_failed", slog.String("song_id", songID), slog.Any("error", err))
	}
}

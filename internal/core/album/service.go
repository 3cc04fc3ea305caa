// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package album

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ngocanhtran/verso/internal/core/account"
	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/platform/apperr"
	"github.com/ngocanhtran/verso/internal/platform/validate"
)

// Service implements album use cases.
type Service struct {
	repo     Repository
	accounts account.Repository
	songs    song.Repository
	logger   *slog.Logger
}

func NewService(repo Repository, accounts account.Repository, songs song.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		songs:    songs,
		logger:   logger,
	}
}

// CreateAlbum registers a new album for a verified artist. Unverified
// artists cannot have albums created on their behalf.
func (service *Service) CreateAlbum(ctx context.Context, title, artistUsername string, releaseDate time.Time) (*Album, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldTitle, title).
		Required(FieldArtist, artistUsername).
		NotZeroTime(FieldReleaseDate, releaseDate)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	artist, err := service.accounts.GetAccount(ctx, artistUsername)
	if err != nil {
		return nil, err
	}
	if !artist.IsVerifiedArtist() {
		return nil, apperr.Forbidden("Only verified artists can create albums")
	}

	a := &Album{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		ArtistID:    artist.Username,
		ReleaseDate: releaseDate,
		CreatedAt:   time.Now(),
	}

	if err := service.repo.CreateAlbum(ctx, a); err != nil {
		return nil, err
	}

	service.logger.Info("album_created",
		slog.String("album_id", a.ID),
		slog.String("title", a.Title),
		slog.String("artist", a.ArtistID),
	)
	return a, nil
}

// AddSongToAlbum appends the song to the album's tracklist and back-fills
// the song's album reference atomically.
//
// The ownership invariant is enforced under the store lock: a song can only
// join an album whose artist is among the song's listed artists.
func (service *Service) AddSongToAlbum(ctx context.Context, albumID, songID string) error {
	err := service.repo.AttachSong(ctx, albumID, songID, func(a *Album, s *song.Song) error {
		if !s.HasArtist(a.ArtistID) {
			return apperr.Forbidden("Song does not belong to the album's artist")
		}
		if a.HasTrack(s.ID) {
			return apperr.Conflict("Song is already on this album")
		}
		return nil
	})
	if err != nil {
		return err
	}

	service.logger.Info("song_added_to_album",
		slog.String("album_id", albumID),
		slog.String("song_id", songID),
	)
	return nil
}

// GetAlbum returns a single album by id.
func (service *Service) GetAlbum(ctx context.Context, id string) (*Album, error) {
	return service.repo.GetAlbum(ctx, id)
}

// AlbumByTitle resolves an album by title, case-insensitive.
func (service *Service) AlbumByTitle(ctx context.Context, title string) (*Album, error) {
	return service.repo.AlbumByTitle(ctx, title)
}

// AlbumsByArtist returns the artist's albums in insertion order.
func (service *Service) AlbumsByArtist(ctx context.Context, username string) ([]*Album, error) {
	return service.repo.AlbumsByArtist(ctx, username)
}

// Tracklist resolves the album's songs in tracklist order.
func (service *Service) Tracklist(ctx context.Context, albumID string) ([]*song.Song, error) {
	a, err := service.repo.GetAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}

	tracks := make([]*song.Song, 0, len(a.TrackIDs))
	for _, id := range a.TrackIDs {
		s, err := service.songs.GetSong(ctx, id)
		if err != nil {
			continue
		}
		tracks = append(tracks, s)
	}
	return tracks, nil
}

// ArtistDiscography returns every song by the artist: album tracks in
// tracklist order first, then loose songs that belong to no album.
func (service *Service) ArtistDiscography(ctx context.Context, username string) ([]*song.Song, error) {
	albums, err := service.repo.AlbumsByArtist(ctx, username)
	if err != nil {
		return nil, err
	}

	var discography []*song.Song
	for _, a := range albums {
		tracks, err := service.Tracklist(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		discography = append(discography, tracks...)
	}

	loose, err := service.songs.SongsByArtist(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, s := range loose {
		if s.AlbumID == "" {
			discography = append(discography, s)
		}
	}
	return discography, nil
}

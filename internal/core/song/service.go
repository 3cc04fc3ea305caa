// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package song

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ngocanhtran/verso/internal/platform/apperr"
	"github.com/ngocanhtran/verso/internal/platform/validate"
)

// Service implements song catalog use cases: creation, view accounting,
// rankings, and comment threads.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput holds the data required to publish a new song.
type CreateInput struct {
	Title        string
	Lyrics       string // optional; defaults to empty
	Artist       string // owning artist username
	Genre        Genre
	ReleaseDate  time.Time
	GeniusID     int64  // optional external catalog id
	ThumbnailURL string // optional
}

// CreateSong validates and persists a new song owned by a single artist.
//
// Title, artist, genre, and release date are required; lyrics default to the
// empty string. The store is the only authority on "the artist's songs" —
// there is no second list to keep in sync.
func (service *Service) CreateSong(ctx context.Context, input CreateInput) (*Song, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldTitle, input.Title).
		Required(FieldArtist, input.Artist).
		Custom(FieldGenre, !input.Genre.Valid(), "Unknown genre").
		NotZeroTime(FieldReleaseDate, input.ReleaseDate)

	if input.ThumbnailURL != "" {
		validator.URL(FieldThumbnailURL, input.ThumbnailURL)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	s := &Song{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(input.Title),
		Lyrics:       input.Lyrics,
		ArtistIDs:    []string{input.Artist},
		Genre:        input.Genre,
		ReleaseDate:  input.ReleaseDate,
		GeniusID:     input.GeniusID,
		ThumbnailURL: strings.TrimSpace(input.ThumbnailURL),
		CreatedAt:    time.Now(),
	}

	if err := service.repo.CreateSong(ctx, s); err != nil {
		return nil, err
	}

	service.logger.Info("song_created",
		slog.String("song_id", s.ID),
		slog.String("title", s.Title),
		slog.String("artist", input.Artist),
	)
	return s, nil
}

// GetSong returns a single song by id.
func (service *Service) GetSong(ctx context.Context, id string) (*Song, error) {
	return service.repo.GetSong(ctx, id)
}

// SongsByArtist returns the artist's songs in insertion order.
func (service *Service) SongsByArtist(ctx context.Context, username string) ([]*Song, error) {
	return service.repo.SongsByArtist(ctx, username)
}

// AddView records one view of the song. Safe under concurrent callers; the
// counter increases by exactly one per call.
func (service *Service) AddView(ctx context.Context, id string) error {
	return service.repo.AddView(ctx, id)
}

// SetLyrics replaces the song's live lyrics. Only an owning artist may edit
// lyrics directly; crowd corrections go through the review engine.
func (service *Service) SetLyrics(ctx context.Context, songID, artistUsername, lyrics string) error {
	s, err := service.repo.GetSong(ctx, songID)
	if err != nil {
		return err
	}
	if !s.HasArtist(artistUsername) {
		return apperr.Forbidden("Only an owning artist can edit lyrics directly")
	}
	return service.repo.SetLyrics(ctx, songID, lyrics)
}

// TopSongs returns songs sorted by view count descending, truncated to
// max(limit, 0). Ties keep insertion order (stable sort).
func (service *Service) TopSongs(ctx context.Context, limit int) ([]*Song, error) {
	songs, err := service.repo.ListSongs(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].Views > songs[j].Views
	})

	if limit < 0 {
		limit = 0
	}
	if limit < len(songs) {
		songs = songs[:limit]
	}
	return songs, nil
}

// SearchSongs filters the local catalog by a case-insensitive substring match
// on title or owning artist.
func (service *Service) SearchSongs(ctx context.Context, query string) ([]*Song, error) {
	songs, err := service.repo.ListSongs(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return songs, nil
	}

	matched := songs[:0]
	for _, s := range songs {
		if strings.Contains(strings.ToLower(s.Title), needle) {
			matched = append(matched, s)
			continue
		}
		for _, artist := range s.ArtistIDs {
			if strings.Contains(strings.ToLower(artist), needle) {
				matched = append(matched, s)
				break
			}
		}
	}
	return matched, nil
}

// # Comments

// AddComment attaches a new comment by the given user to the song. The text
// is trimmed and must be non-empty; the creation timestamp is fixed here.
func (service *Service) AddComment(ctx context.Context, songID, author, text string) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldCommentText, text).MaxLen(FieldCommentText, text, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	c := Comment{
		ID:        uuid.NewString(),
		Author:    author,
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now(),
	}

	if err := service.repo.AddComment(ctx, songID, c); err != nil {
		return nil, err
	}

	service.logger.Info("comment_added",
		slog.String("song_id", songID),
		slog.String("author", author),
	)
	return &c, nil
}

// LikeComment increments the comment's like counter.
func (service *Service) LikeComment(ctx context.Context, songID, commentID string) error {
	return service.repo.UpdateComment(ctx, songID, commentID, func(c *Comment) error {
		c.Likes++
		return nil
	})
}

// DislikeComment increments the comment's dislike counter.
func (service *Service) DislikeComment(ctx context.Context, songID, commentID string) error {
	return service.repo.UpdateComment(ctx, songID, commentID, func(c *Comment) error {
		c.Dislikes++
		return nil
	})
}

// RemoveLike decrements the like counter, stopping at zero.
func (service *Service) RemoveLike(ctx context.Context, songID, commentID string) error {
	return service.repo.UpdateComment(ctx, songID, commentID, func(c *Comment) error {
		if c.Likes > 0 {
			c.Likes--
		}
		return nil
	})
}

// RemoveDislike decrements the dislike counter, stopping at zero.
func (service *Service) RemoveDislike(ctx context.Context, songID, commentID string) error {
	return service.repo.UpdateComment(ctx, songID, commentID, func(c *Comment) error {
		if c.Dislikes > 0 {
			c.Dislikes--
		}
		return nil
	})
}

// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ngocanhtran/verso/internal/core/account"
	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/platform/apperr"
	"github.com/ngocanhtran/verso/internal/platform/sec"
	"github.com/ngocanhtran/verso/internal/platform/validate"
)

// Service implements the lyric-edit review engine.
type Service struct {
	repo     Repository
	songs    song.Repository
	accounts account.Repository
	logger   *slog.Logger
}

func NewService(repo Repository, songs song.Repository, accounts account.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		songs:    songs,
		accounts: accounts,
		logger:   logger,
	}
}

// # Proposal

/*
Propose creates a new pending lyric edit.

The song's current lyrics are captured as a snapshot at this moment; later
mutations to the song do not touch the snapshot. Any authenticated account
may propose — following the artist is not required.
*/
func (service *Service) Propose(ctx context.Context, username, songID, proposedLyrics, explanation string) (*Edit, error) {
	validator := &validate.Validator{}
	validator.Required(FieldProposedLyrics, proposedLyrics)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	proposer, err := service.accounts.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	target, err := service.songs.GetSong(ctx, songID)
	if err != nil {
		return nil, err
	}

	e := &Edit{
		ID:             uuid.NewString(),
		SuggestedBy:    proposer.Username,
		SongID:         target.ID,
		OriginalLyrics: target.Lyrics,
		ProposedLyrics: proposedLyrics,
		Explanation:    explanation,
		SuggestedAt:    time.Now(),
		Status:         StatusPending,
	}

	if err := service.repo.CreateEdit(ctx, e); err != nil {
		return nil, err
	}

	service.logger.Info("lyric_edit_proposed",
		slog.String("edit_id", e.ID),
		slog.String("song_id", e.SongID),
		slog.String("suggested_by", e.SuggestedBy),
	)
	return e, nil
}

// # Adjudication

/*
Approve transitions a pending edit to Approved and applies the proposed
lyrics to the song, byte for byte.

The reviewer must be among the target song's listed artists, or an
administrator. Approving an already decided edit fails with a Conflict and
changes nothing — in particular it never flips an already rejected edit.
The snapshot is not re-validated against the current lyrics: a stale
proposal still overwrites.
*/
func (service *Service) Approve(ctx context.Context, editID, reviewerUsername string) error {
	reviewer, err := service.accounts.GetAccount(ctx, reviewerUsername)
	if err != nil {
		return err
	}

	err = service.repo.Decide(ctx, editID, func(e *Edit, s *song.Song) error {
		if e.Decided() {
			return apperr.Conflict("Lyric edit has already been decided")
		}
		if err := authorizeReviewer(reviewer, s); err != nil {
			return err
		}
		e.Status = StatusApproved
		e.ReviewedBy = reviewer.Username
		s.Lyrics = e.ProposedLyrics
		return nil
	})
	if err != nil {
		return err
	}

	service.logger.Info("lyric_edit_approved",
		slog.String("edit_id", editID),
		slog.String("reviewed_by", reviewer.Username),
	)
	return nil
}

/*
Reject transitions a pending edit to Rejected, recording the reviewer and a
mandatory reason. The song's lyrics are untouched.

An empty reason is a validation failure and leaves the edit Pending.
*/
func (service *Service) Reject(ctx context.Context, editID, reviewerUsername, reason string) error {
	validator := &validate.Validator{}
	validator.Required(FieldRejectionReason, reason)
	if err := validator.Err(); err != nil {
		return err
	}

	reviewer, err := service.accounts.GetAccount(ctx, reviewerUsername)
	if err != nil {
		return err
	}

	err = service.repo.Decide(ctx, editID, func(e *Edit, s *song.Song) error {
		if e.Decided() {
			return apperr.Conflict("Lyric edit has already been decided")
		}
		if err := authorizeReviewer(reviewer, s); err != nil {
			return err
		}
		e.Status = StatusRejected
		e.ReviewedBy = reviewer.Username
		e.RejectionReason = reason
		return nil
	})
	if err != nil {
		return err
	}

	service.logger.Info("lyric_edit_rejected",
		slog.String("edit_id", editID),
		slog.String("reviewed_by", reviewer.Username),
	)
	return nil
}

// authorizeReviewer enforces the adjudication rule: an owning artist of the
// song, or an administrator acting on any artist's behalf.
func authorizeReviewer(reviewer *account.Account, s *song.Song) error {
	if reviewer.Role.AtLeast(sec.RoleAdmin) {
		return nil
	}
	if reviewer.Role == sec.RoleArtist && s.HasArtist(reviewer.Username) {
		return nil
	}
	return apperr.Forbidden("Not authorized to review edits for this song")
}

// # Listings

// GetEdit returns a single edit by id.
func (service *Service) GetEdit(ctx context.Context, id string) (*Edit, error) {
	return service.repo.GetEdit(ctx, id)
}

// EditsForSong returns every edit targeting the song, in submission order.
func (service *Service) EditsForSong(ctx context.Context, songID string) ([]*Edit, error) {
	return service.repo.ListEdits(ctx, Filter{SongID: songID})
}

// PendingEditsForArtist returns pending edits targeting songs the artist
// owns, in submission order. Each song's edits are reviewed independently;
// approving one never invalidates the others.
func (service *Service) PendingEditsForArtist(ctx context.Context, artistUsername string) ([]*Edit, error) {
	pending, err := service.repo.ListEdits(ctx, Filter{Status: StatusPending})
	if err != nil {
		return nil, err
	}

	owned := make([]*Edit, 0)
	for _, e := range pending {
		s, err := service.songs.GetSong(ctx, e.SongID)
		if err != nil {
			// Dangling song reference; an ordinary negative, not a fault.
			continue
		}
		if s.HasArtist(artistUsername) {
			owned = append(owned, e)
		}
	}
	return owned, nil
}

// AllEdits is the administrator view: every edit regardless of disposition,
// including historical approved and rejected ones.
func (service *Service) AllEdits(ctx context.Context, requesterUsername string) ([]*Edit, error) {
	requester, err := service.accounts.GetAccount(ctx, requesterUsername)
	if err != nil {
		return nil, err
	}
	if !requester.Role.AtLeast(sec.RoleAdmin) {
		return nil, apperr.Forbidden("Only administrators can list all edits")
	}
	return service.repo.ListEdits(ctx, Filter{})
}

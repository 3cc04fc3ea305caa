// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package review_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocanhtran/verso/internal/core/account"
	"github.com/ngocanhtran/verso/internal/core/review"
	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/platform/apperr"
	"github.com/ngocanhtran/verso/internal/platform/sec"
	"github.com/ngocanhtran/verso/internal/storage/memory"
)

type fixture struct {
	store   *memory.Store
	reviews *review.Service
	songs   *song.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	store := memory.New()
	return &fixture{
		store:   store,
		reviews: review.NewService(store, store, store, logger),
		songs:   song.NewService(store, logger),
	}
}

func (f *fixture) addAccount(t *testing.T, username string, role sec.Role) {
	t.Helper()
	a := &account.Account{
		Username:     username,
		PasswordHash: "$2a$10$hashhashhashhashhashha",
		DisplayName:  username,
		Age:          25,
		Email:        username + "@example.com",
		Role:         role,
		CreatedAt:    time.Now(),
	}
	switch role {
	case sec.RoleArtist:
		a.Artist = &account.ArtistProfile{Verified: true}
	case sec.RoleAdmin:
		a.Admin = &account.AdminProfile{AdminLevel: "Standard", Department: "Platform Management"}
	default:
		a.User = &account.UserProfile{}
	}
	require.NoError(t, f.store.CreateAccount(context.Background(), a))
}

func (f *fixture) addSong(t *testing.T, title, artist, lyrics string) *song.Song {
	t.Helper()
	created, err := f.songs.CreateSong(context.Background(), song.CreateInput{
		Title:       title,
		Lyrics:      lyrics,
		Artist:      artist,
		Genre:       song.GenrePop,
		ReleaseDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return created
}

// seed builds the standard cast: a proposer, an owning artist, an unrelated
// artist, an admin, and one song.
func seed(t *testing.T) (*fixture, *song.Song) {
	f := newFixture(t)
	f.addAccount(t, "alice", sec.RoleUser)
	f.addAccount(t, "drake", sec.RoleArtist)
	f.addAccount(t, "hozier", sec.RoleArtist)
	f.addAccount(t, "root", sec.RoleAdmin)
	target := f.addSong(t, "Gods Plan", "drake", "original words")
	return f, target
}

func TestService_Propose(t *testing.T) {
	f, target := seed(t)
	ctx := context.Background()

	edit, err := f.reviews.Propose(ctx, "alice", target.ID, "better words", "misheard")
	require.NoError(t, err)

	assert.Equal(t, review.StatusPending, edit.Status)
	assert.Equal(t, "alice", edit.SuggestedBy)
	assert.Equal(t, "original words", edit.OriginalLyrics)
	assert.Equal(t, "better words", edit.ProposedLyrics)
	assert.False(t, edit.Decided())

	// Proposing never touches the song.
	current, err := f.songs.GetSong(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, "original words", current.Lyrics)
}

func TestService_Propose_Validation(t *testing.T) {
	f, target := seed(t)
	ctx := context.Background()

	_, err := f.reviews.Propose(ctx, "alice", target.ID, "", "explains nothing")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidationError))

	_, err = f.reviews.Propose(ctx, "ghost", target.ID, "words", "")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

	_, err = f.reviews.Propose(ctx, "alice", "missing-song", "words", "")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestService_Propose_SnapshotIsFrozen(t *testing.T) {
	f, target := seed(t)
	ctx := context.Background()

	edit, err := f.reviews.Propose(ctx, "alice", target.ID, "better words", "")
	require.NoError(t, err)

	// The artist rewrites the lyrics while the edit is pending.
	require.NoError(t, f.songs.SetLyrics(ctx, target.ID, "drake", "rewritten live"))

	stored, err := f.reviews.GetEdit(ctx, edit.ID)
	require.NoError(t, err)
	assert.Equal(t, "original words", stored.OriginalLyrics)

	// A stale approval still applies the proposal byte for byte.
	require.NoError(t, f.reviews.Approve(ctx, edit.ID, "drake"))

	current, err := f.songs.GetSong(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, "better words", current.Lyrics)
}

func TestService_Approve_AppliesExactly(t *testing.T) {
	f, target := seed(t)
	ctx := context.Background()

	proposed := "line one\n  line two with spaces  \nline three"
	edit, err := f.reviews.Propose(ctx, "alice", target.ID, proposed, "")
	require.NoError(t, err)

	require.NoError(t, f.reviews.Approve(ctx, edit.ID, "drake"))

	current, err := f.songs.GetSong(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, proposed, current.Lyrics)

	decided, err := f.reviews.GetEdit(ctx, edit.ID)
	require.NoError(t, err)
	assert.Equal(t, review.StatusApproved, decided.Status)
	assert.Equal(t, "drake", decided.ReviewedBy)
	assert.True(t, decided.Decided())
}

func TestService_DecisionsAreTerminal(t *testing.T) {
	tests := []struct {
		name   string
		decide func(f *fixture, editID string) error
	}{
		{
			name: "approved first",
			decide: func(f *fixture, editID string) error {
				return f.reviews.Approve(context.Background(), editID, "drake")
			},
		},
		{
			name: "rejected first",
			decide: func(f *fixture, editID string) error {
				return f.reviews.Reject(context.Background(), editID, "drake", "not better")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, target := seed(t)
			ctx := context.Background()

			edit, err := f.reviews.Propose(ctx, "alice", target.ID, "better words", "")
			require.NoError(t, err)
			require.NoError(t, tc.decide(f, edit.ID))

			first, err := f.reviews.GetEdit(ctx, edit.ID)
			require.NoError(t, err)
			lyricsBefore, err := f.songs.GetSong(ctx, target.ID)
			require.NoError(t, err)

			// Every second decision fails with a Conflict and changes nothing.
			err = f.reviews.Approve(ctx, edit.ID, "root")
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

			err = f.reviews.Reject(ctx, edit.ID, "root", "changed my mind")
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

			after, err := f.reviews.GetEdit(ctx, edit.ID)
			require.NoError(t, err)
			assert.Equal(t, first.Status, after.Status)
			assert.Equal(t, first.ReviewedBy, after.ReviewedBy)
			assert.Equal(t, first.RejectionReason, after.RejectionReason)

			lyricsAfter, err := f.songs.GetSong(ctx, target.ID)
			require.NoError(t, err)
			assert.Equal(t, lyricsBefore.Lyrics, lyricsAfter.Lyrics)
		})
	}
}

func TestService_Reject_RequiresReason(t *testing.T) {
	f, target := seed(t)
	ctx := context.Background()

	edit, err := f.reviews.Propose(ctx, "alice", target.ID, "better words", "")
	require.NoError(t, err)

	err = f.reviews.Reject(ctx, edit.ID, "drake", "")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidationError))

	// The failed reject left the edit pending and undecided.
	stored, err := f.reviews.GetEdit(ctx, edit.ID)
	require.NoError(t, err)
	assert.Equal(t, review.StatusPending, stored.Status)

	require.NoError(t, f.reviews.Reject(ctx, edit.ID, "drake", "the original is correct"))

	stored, err = f.reviews.GetEdit(ctx, edit.ID)
	require.NoError(t, err)
	assert.Equal(t, review.StatusRejected, stored.Status)
	assert.Equal(t, "the original is correct", stored.RejectionReason)

	// Rejection never touches the song.
	current, err := f.songs.GetSong(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, "original words", current.Lyrics)
}

func TestService_AuthorizationBoundary(t *testing.T) {
	f, target := seed(t)
	ctx := context.Background()

	edit, err := f.reviews.Propose(ctx, "alice", target.ID, "better words", "")
	require.NoError(t, err)

	// A different artist cannot decide edits on songs they do not own.
	err = f.reviews.Approve(ctx, edit.ID, "hozier")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	// Neither can the proposer.
	err = f.reviews.Approve(ctx, edit.ID, "alice")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	// The failed attempts left it pending; an admin can decide any edit.
	stored, err := f.reviews.GetEdit(ctx, edit.ID)
	require.NoError(t, err)
	assert.Equal(t, review.StatusPending, stored.Status)

	require.NoError(t, f.reviews.Approve(ctx, edit.ID, "root"))
}

func TestService_PendingEditsForArtist(t *testing.T) {
	f, target := seed(t)
	ctx := context.Background()
	other := f.addSong(t, "Take Me to Church", "hozier", "church words")

	first, err := f.reviews.Propose(ctx, "alice", target.ID, "edit one", "")
	require.NoError(t, err)
	second, err := f.reviews.Propose(ctx, "alice", target.ID, "edit two", "")
	require.NoError(t, err)
	_, err = f.reviews.Propose(ctx, "alice", other.ID, "other song edit", "")
	require.NoError(t, err)

	pending, err := f.reviews.PendingEditsForArtist(ctx, "drake")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)

	// Deciding one edit leaves the other reviewable.
	require.NoError(t, f.reviews.Approve(ctx, first.ID, "drake"))

	pending, err = f.reviews.PendingEditsForArtist(ctx, "drake")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}

func TestService_AllEdits_AdminOnly(t *testing.T) {
	f, target := seed(t)
	ctx := context.Background()

	edit, err := f.reviews.Propose(ctx, "alice", target.ID, "better words", "")
	require.NoError(t, err)
	require.NoError(t, f.reviews.Reject(ctx, edit.ID, "drake", "no"))

	_, err = f.reviews.AllEdits(ctx, "alice")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	_, err = f.reviews.AllEdits(ctx, "drake")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	// Decided edits stay in the history forever.
	all, err := f.reviews.AllEdits(ctx, "root")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, review.StatusRejected, all[0].Status)
}

func TestService_EditsForSong(t *testing.T) {
	f, target := seed(t)
	ctx := context.Background()
	other := f.addSong(t, "Take Me to Church", "hozier", "church words")

	_, err := f.reviews.Propose(ctx, "alice", target.ID, "edit one", "")
	require.NoError(t, err)
	_, err = f.reviews.Propose(ctx, "alice", other.ID, "other edit", "")
	require.NoError(t, err)

	edits, err := f.reviews.EditsForSong(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "edit one", edits[0].ProposedLyrics)
}

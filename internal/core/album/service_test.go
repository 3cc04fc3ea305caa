// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package album_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocanhtran/verso/internal/core/account"
	"github.com/ngocanhtran/verso/internal/core/album"
	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/platform/apperr"
	"github.com/ngocanhtran/verso/internal/platform/sec"
	"github.com/ngocanhtran/verso/internal/storage/memory"
)

type fixture struct {
	store  *memory.Store
	albums *album.Service
	songs  *song.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	store := memory.New()
	return &fixture{
		store:  store,
		albums: album.NewService(store, store, store, logger),
		songs:  song.NewService(store, logger),
	}
}

func (f *fixture) addArtist(t *testing.T, username string, verified bool) {
	t.Helper()
	err := f.store.CreateAccount(context.Background(), &account.Account{
		Username:     username,
		PasswordHash: "$2a$10$hashhashhashhashhashha",
		DisplayName:  username,
		Age:          30,
		Email:        username + "@example.com",
		Role:         sec.RoleArtist,
		CreatedAt:    time.Now(),
		Artist:       &account.ArtistProfile{Verified: verified},
	})
	require.NoError(t, err)
}

func (f *fixture) addSong(t *testing.T, title, artist string) *song.Song {
	t.Helper()
	created, err := f.songs.CreateSong(context.Background(), song.CreateInput{
		Title:       title,
		Artist:      artist,
		Genre:       song.GenrePop,
		ReleaseDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return created
}

func TestService_CreateAlbum(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addArtist(t, "adele", true)
	f.addArtist(t, "newbie", false)

	created, err := f.albums.CreateAlbum(ctx, "25", "adele", time.Date(2015, 11, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "adele", created.ArtistID)
	assert.Empty(t, created.TrackIDs)

	// Unverified artists cannot have albums.
	_, err = f.albums.CreateAlbum(ctx, "Demo Tape", "newbie", time.Now())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	// Validation failures never reach the store.
	_, err = f.albums.CreateAlbum(ctx, "", "adele", time.Now())
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidationError))

	_, err = f.albums.CreateAlbum(ctx, "30", "adele", time.Time{})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidationError))
}

func TestService_AddSongToAlbum_VisibleFromBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addArtist(t, "adele", true)

	created, err := f.albums.CreateAlbum(ctx, "25", "adele", time.Date(2015, 11, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	hello := f.addSong(t, "Hello", "adele")

	require.NoError(t, f.albums.AddSongToAlbum(ctx, created.ID, hello.ID))

	// Album side sees the track.
	tracks, err := f.albums.Tracklist(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "Hello", tracks[0].Title)

	// Song side sees the album.
	got, err := f.songs.GetSong(ctx, hello.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.AlbumID)
}

func TestService_AddSongToAlbum_OwnershipEnforced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addArtist(t, "adele", true)
	f.addArtist(t, "hozier", true)

	adeleAlbum, err := f.albums.CreateAlbum(ctx, "25", "adele", time.Date(2015, 11, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	church := f.addSong(t, "Take Me to Church", "hozier")

	err = f.albums.AddSongToAlbum(ctx, adeleAlbum.ID, church.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	// The rejected attach left both sides untouched.
	tracks, err := f.albums.Tracklist(ctx, adeleAlbum.ID)
	require.NoError(t, err)
	assert.Empty(t, tracks)

	got, err := f.songs.GetSong(ctx, church.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AlbumID)
}

func TestService_AddSongToAlbum_DuplicateTrack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addArtist(t, "adele", true)

	created, err := f.albums.CreateAlbum(ctx, "25", "adele", time.Date(2015, 11, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	hello := f.addSong(t, "Hello", "adele")

	require.NoError(t, f.albums.AddSongToAlbum(ctx, created.ID, hello.ID))
	err = f.albums.AddSongToAlbum(ctx, created.ID, hello.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	tracks, err := f.albums.Tracklist(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, tracks, 1)
}

func TestService_AlbumByTitle_CaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addArtist(t, "adele", true)

	_, err := f.albums.CreateAlbum(ctx, "25", "adele", time.Date(2015, 11, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	found, err := f.albums.AlbumByTitle(ctx, "25")
	require.NoError(t, err)
	assert.Equal(t, "adele", found.ArtistID)

	_, err = f.albums.AlbumByTitle(ctx, "unknown")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestService_ArtistDiscography(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addArtist(t, "adele", true)

	created, err := f.albums.CreateAlbum(ctx, "25", "adele", time.Date(2015, 11, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	hello := f.addSong(t, "Hello", "adele")
	f.addSong(t, "Easy on Me", "adele") // single, no album

	require.NoError(t, f.albums.AddSongToAlbum(ctx, created.ID, hello.ID))

	discography, err := f.albums.ArtistDiscography(ctx, "adele")
	require.NoError(t, err)
	require.Len(t, discography, 2)

	// Album tracks come first, loose singles after.
	assert.Equal(t, "Hello", discography[0].Title)
	assert.Equal(t, "Easy on Me", discography[1].Title)
}

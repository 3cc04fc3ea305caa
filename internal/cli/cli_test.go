// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocanhtran/verso/internal/cli"
	"github.com/ngocanhtran/verso/internal/core/account"
	"github.com/ngocanhtran/verso/internal/core/album"
	"github.com/ngocanhtran/verso/internal/core/importer"
	"github.com/ngocanhtran/verso/internal/core/review"
	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/genius"
	"github.com/ngocanhtran/verso/internal/storage/memory"
)

type stubClient struct{}

func (stubClient) Search(context.Context, string) ([]genius.Hit, error) {
	return nil, errors.New("offline")
}

func (stubClient) SongDetails(context.Context, int64) (*genius.Hit, error) {
	return nil, errors.New("offline")
}

func (stubClient) ChartSongs(context.Context) ([]genius.Hit, error) {
	return nil, errors.New("offline")
}

func (stubClient) Lyrics(context.Context, string) (string, error) {
	return "", errors.New("offline")
}

// fixture assembles a full stack around one memory store and returns a
// runner that plays a scripted session and yields the transcript.
type fixture struct {
	store    *memory.Store
	accounts *account.Service
	songs    *song.Service
	albums   *album.Service
	reviews  *review.Service
	imports  *importer.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	store := memory.New()

	imports := importer.NewService(stubClient{}, store, store, 1, time.Second, logger)
	t.Cleanup(imports.Close)

	return &fixture{
		store:    store,
		accounts: account.NewService(store, store, logger),
		songs:    song.NewService(store, logger),
		albums:   album.NewService(store, store, store, logger),
		reviews:  review.NewService(store, store, store, logger),
		imports:  imports,
	}
}

func (f *fixture) runSession(t *testing.T, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := cli.New(f.accounts, f.songs, f.albums, f.reviews, f.imports,
		strings.NewReader(strings.Join(script, "\n")+"\n"), &out,
		slog.New(slog.DiscardHandler))
	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func (f *fixture) registerUser(t *testing.T, username string) {
	t.Helper()
	_, err := f.accounts.Register(context.Background(), account.RegisterInput{
		Username:    username,
		Password:    "password1",
		DisplayName: username,
		Age:         25,
		Email:       username + "@example.com",
		Role:        "user",
	})
	require.NoError(t, err)
}

func (f *fixture) registerVerifiedArtist(t *testing.T, username string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.accounts.Register(ctx, account.RegisterInput{
		Username:    username,
		Password:    "password1",
		DisplayName: username,
		Age:         30,
		Email:       username + "@example.com",
		Role:        "artist",
	})
	require.NoError(t, err)

	_, err = f.accounts.Register(ctx, account.RegisterInput{
		Username:    "root_" + username,
		Password:    "password1",
		DisplayName: "Root",
		Age:         40,
		Email:       "root+" + username + "@example.com",
		Role:        "admin",
	})
	require.NoError(t, err)
	require.NoError(t, f.accounts.VerifyArtist(ctx, "root_"+username, username))
}

func TestCLI_RegisterAndExit(t *testing.T) {
	f := newFixture(t)

	out := f.runSession(t,
		"2",                 // register
		"alice", "password1", "Alice", "25", "alice@example.com", "user",
		"0", // log out
		"0", // exit
	)

	assert.Contains(t, out, "Registered alice.")
	assert.Contains(t, out, "You are now logged in.")
	assert.Contains(t, out, "Goodbye.")

	_, err := f.store.GetAccount(context.Background(), "alice")
	require.NoError(t, err)
}

func TestCLI_ArtistRegistrationNeedsApproval(t *testing.T) {
	f := newFixture(t)

	out := f.runSession(t,
		"2",
		"newartist", "password1", "New Artist", "30", "new@example.com", "artist",
		"0", // back at the auth menu, not logged in
	)

	assert.Contains(t, out, "administrator approval")
	assert.NotContains(t, out, "You are now logged in.")
}

func TestCLI_ProposeAndApproveFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.registerUser(t, "alice")
	f.registerVerifiedArtist(t, "drake")
	created, err := f.songs.CreateSong(ctx, song.CreateInput{
		Title:       "Gods Plan",
		Lyrics:      "original words",
		Artist:      "drake",
		Genre:       song.GenreHipHop,
		ReleaseDate: time.Date(2018, 1, 19, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Alice finds the song and suggests a correction.
	out := f.runSession(t,
		"1", "alice", "password1", // login
		"1", "gods", // search songs
		"3", "1", // view song #1
		"6",                  // suggest a correction
		"corrected words", ".", // lyrics, terminator
		"it was misheard", // explanation
		"0",               // log out
		"0",               // exit
	)
	assert.Contains(t, out, "Suggestion submitted")

	pending, err := f.reviews.PendingEditsForArtist(ctx, "drake")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	// Drake reviews and approves it.
	out = f.runSession(t,
		"1", "drake", "password1",
		"4",      // review pending corrections
		"1", "1", // pick edit #1, approve
		"0", "0",
	)
	assert.Contains(t, out, "Approved. The song's lyrics have been updated.")

	updated, err := f.songs.GetSong(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "corrected words", updated.Lyrics)

	// Viewing through the menu bumped the view counter once.
	assert.Equal(t, 1, updated.Views)
}

func TestCLI_AdminVerifiesArtist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.accounts.Register(ctx, account.RegisterInput{
		Username:    "root",
		Password:    "password1",
		DisplayName: "Root",
		Age:         40,
		Email:       "root@example.com",
		Role:        "admin",
	})
	require.NoError(t, err)
	_, err = f.accounts.Register(ctx, account.RegisterInput{
		Username:    "newartist",
		Password:    "password1",
		DisplayName: "New Artist",
		Age:         30,
		Email:       "new@example.com",
		Role:        "artist",
	})
	require.NoError(t, err)

	out := f.runSession(t,
		"1", "root", "password1",
		"1", "1", // approval queue, verify #1
		"0", "0",
	)
	assert.Contains(t, out, "Verified New Artist.")

	verified, err := f.store.GetAccount(ctx, "newartist")
	require.NoError(t, err)
	assert.True(t, verified.IsVerifiedArtist())
}

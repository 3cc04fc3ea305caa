// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/ngocanhtran/verso/internal/core/review"
	"github.com/ngocanhtran/verso/internal/core/song"
)

func (c *CLI) artistMenu(ctx context.Context) error {
	c.printf("")
	c.printf("-- %s (artist) --", c.current.DisplayName)
	c.printf("1) Publish a song")
	c.printf("2) Create an album")
	c.printf("3) Add a song to an album")
	c.printf("4) Review pending lyric corrections")
	c.printf("5) My discography")
	c.printf("6) Notifications")
	c.printf("0) Log out")

	choice, err := c.promptChoice(6)
	if err != nil {
		if errors.Is(err, errInputClosed) {
			c.current = nil
			return nil
		}
		return err
	}

	switch choice {
	case 0:
		c.logout()
		return nil
	case 1:
		return c.publishSong(ctx)
	case 2:
		return c.createAlbum(ctx)
	case 3:
		return c.addSongToAlbum(ctx)
	case 4:
		return c.reviewPendingEdits(ctx)
	case 5:
		return c.discography(ctx)
	case 6:
		return c.showNotifications(ctx)
	}
	return nil
}

func (c *CLI) publishSong(ctx context.Context) error {
	title, err := c.prompt("Title")
	if err != nil {
		return err
	}

	c.printf("Genres: %s", genreList())
	genreRaw, err := c.prompt("Genre")
	if err != nil {
		return err
	}
	genre, ok := song.ParseGenre(genreRaw)
	if !ok {
		c.printf("Unknown genre, using %s.", song.GenrePop.DisplayName())
		genre = song.GenrePop
	}

	releaseDate, err := c.promptDate("Release date")
	if err != nil {
		return err
	}
	lyrics, err := c.promptMultiline("Lyrics")
	if err != nil {
		return err
	}

	created, createErr := c.songs.CreateSong(ctx, song.CreateInput{
		Title:       title,
		Lyrics:      lyrics,
		Artist:      c.current.Username,
		Genre:       genre,
		ReleaseDate: releaseDate,
	})
	if createErr != nil {
		c.fail(createErr)
		return nil
	}
	c.printf("Published %q.", created.Title)
	return nil
}

func genreList() string {
	names := make([]string, 0, len(song.AllGenres))
	for _, g := range song.AllGenres {
		names = append(names, string(g))
	}
	return strings.Join(names, ", ")
}

func (c *CLI) createAlbum(ctx context.Context) error {
	title, err := c.prompt("Album title")
	if err != nil {
		return err
	}
	releaseDate, err := c.promptDate("Release date")
	if err != nil {
		return err
	}

	created, createErr := c.albums.CreateAlbum(ctx, title, c.current.Username, releaseDate)
	if createErr != nil {
		c.fail(createErr)
		return nil
	}
	c.printf("Created album %q.", created.Title)
	return nil
}

func (c *CLI) addSongToAlbum(ctx context.Context) error {
	albums, err := c.albums.AlbumsByArtist(ctx, c.current.Username)
	if err != nil {
		c.fail(err)
		return nil
	}
	if len(albums) == 0 {
		c.printf("You have no albums yet.")
		return nil
	}
	for i, a := range albums {
		c.printf("  %d) %s (%d tracks)", i+1, a.Title, len(a.TrackIDs))
	}
	n, err := c.promptInt("Album number")
	if err != nil {
		return err
	}
	if n < 1 || n > len(albums) {
		c.printf("No such album.")
		return nil
	}
	target := albums[n-1]

	mine, err := c.songs.SongsByArtist(ctx, c.current.Username)
	if err != nil {
		c.fail(err)
		return nil
	}
	loose := make([]*song.Song, 0, len(mine))
	for _, s := range mine {
		if s.AlbumID == "" {
			loose = append(loose, s)
		}
	}
	if len(loose) == 0 {
		c.printf("All your songs are already on albums.")
		return nil
	}
	for i, s := range loose {
		c.printf("  %d) %s", i+1, s.Title)
	}
	m, err := c.promptInt("Song number")
	if err != nil {
		return err
	}
	if m < 1 || m > len(loose) {
		c.printf("No such song.")
		return nil
	}

	if addErr := c.albums.AddSongToAlbum(ctx, target.ID, loose[m-1].ID); addErr != nil {
		c.fail(addErr)
		return nil
	}
	c.printf("Added %q to %q.", loose[m-1].Title, target.Title)
	return nil
}

// reviewPendingEdits lists the artist's pending lyric corrections and
// adjudicates one.
func (c *CLI) reviewPendingEdits(ctx context.Context) error {
	pending, err := c.reviews.PendingEditsForArtist(ctx, c.current.Username)
	if err != nil {
		c.fail(err)
		return nil
	}
	return c.adjudicate(ctx, pending)
}

// adjudicate is shared by the artist and admin review flows.
func (c *CLI) adjudicate(ctx context.Context, pending []*review.Edit) error {
	if len(pending) == 0 {
		c.printf("Nothing to review.")
		return nil
	}
	for i, e := range pending {
		c.printf("%d)", i+1)
		c.renderEdit(e)
	}

	n, err := c.promptInt("Review which (0 to skip)")
	if err != nil {
		return err
	}
	if n < 1 || n > len(pending) {
		return nil
	}
	target := pending[n-1]

	c.printf("1) Approve")
	c.printf("2) Reject")
	c.printf("0) Skip")
	choice, err := c.promptChoice(2)
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		if approveErr := c.reviews.Approve(ctx, target.ID, c.current.Username); approveErr != nil {
			c.fail(approveErr)
			return nil
		}
		c.printf("Approved. The song's lyrics have been updated.")
	case 2:
		reason, err := c.prompt("Reason")
		if err != nil {
			return err
		}
		if rejectErr := c.reviews.Reject(ctx, target.ID, c.current.Username, reason); rejectErr != nil {
			c.fail(rejectErr)
			return nil
		}
		c.printf("Rejected.")
	}
	return nil
}

func (c *CLI) discography(ctx context.Context) error {
	albums, err := c.albums.AlbumsByArtist(ctx, c.current.Username)
	if err != nil {
		c.fail(err)
		return nil
	}
	for _, a := range albums {
		c.printf("%s (%s)", a.Title, a.ReleaseDate.Format(dateLayout))
		tracks, trackErr := c.albums.Tracklist(ctx, a.ID)
		if trackErr != nil {
			c.fail(trackErr)
			continue
		}
		for i, s := range tracks {
			c.printf("  %d. %s", i+1, s.Title)
		}
	}

	all, err := c.albums.ArtistDiscography(ctx, c.current.Username)
	if err != nil {
		c.fail(err)
		return nil
	}
	singles := make([]*song.Song, 0)
	for _, s := range all {
		if s.AlbumID == "" {
			singles = append(singles, s)
		}
	}
	if len(singles) > 0 {
		c.printf("Singles:")
		for _, s := range singles {
			c.printf("  - %s", s.Title)
		}
	}
	if len(albums) == 0 && len(singles) == 0 {
		c.printf("Nothing published yet.")
	}
	return nil
}

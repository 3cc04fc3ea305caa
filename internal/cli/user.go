// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/genius"
)

const newReleaseLimit = 10

func (c *CLI) userMenu(ctx context.Context) error {
	c.printf("")
	c.printf("-- %s --", c.current.DisplayName)
	c.printf("1) Search songs")
	c.printf("2) Import from the external catalog")
	c.printf("3) View a song")
	c.printf("4) Top songs")
	c.printf("5) New releases from artists you follow")
	c.printf("6) Find and follow an artist")
	c.printf("7) Unfollow an artist")
	c.printf("8) Artists you follow")
	c.printf("9) Notifications")
	c.printf("0) Log out")

	choice, err := c.promptChoice(9)
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
		return c.searchSongs(ctx)
	case 2:
		return c.importSongs(ctx)
	case 3:
		return c.viewSong(ctx)
	case 4:
		return c.topSongs(ctx)
	case 5:
		return c.newReleases(ctx)
	case 6:
		return c.followArtist(ctx)
	case 7:
		return c.unfollowArtist(ctx)
	case 8:
		return c.followedArtists(ctx)
	case 9:
		return c.showNotifications(ctx)
	}
	return nil
}

func (c *CLI) searchSongs(ctx context.Context) error {
	query, err := c.prompt("Search")
	if err != nil {
		return err
	}
	results, searchErr := c.songs.SearchSongs(ctx, query)
	if searchErr != nil {
		c.fail(searchErr)
		return nil
	}
	c.renderSongs(results)
	return nil
}

func (c *CLI) importSongs(ctx context.Context) error {
	c.printf("  1) Search the catalog")
	c.printf("  2) Trending chart")
	source, err := c.promptChoice(2)
	if err != nil {
		return err
	}

	var hits []genius.Hit
	var fetchErr error
	switch source {
	case 1:
		query, err := c.prompt("Search the external catalog")
		if err != nil {
			return err
		}
		hits, fetchErr = c.imports.Search(ctx, query)
	case 2:
		hits, fetchErr = c.imports.Charts(ctx)
	default:
		return nil
	}
	if fetchErr != nil {
		c.fail(fetchErr)
		return nil
	}
	if len(hits) == 0 {
		c.printf("No matches.")
		return nil
	}
	for i, h := range hits {
		c.printf("  %d) %s by %s", i+1, h.Title, h.ArtistName)
	}

	n, err := c.promptInt("Import which (0 to cancel)")
	if err != nil {
		return err
	}
	if n < 1 || n > len(hits) {
		return nil
	}

	imported, importErr := c.imports.Import(ctx, hits[n-1])
	if importErr != nil {
		c.fail(importErr)
		return nil
	}
	c.printf("Imported %q. Lyrics are being fetched in the background.", imported.Title)
	return nil
}

func (c *CLI) topSongs(ctx context.Context) error {
	top, err := c.songs.TopSongs(ctx, 10)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.renderSongs(top)
	return nil
}

func (c *CLI) newReleases(ctx context.Context) error {
	releases, err := c.accounts.NewReleasesFromFollowedArtists(ctx, c.current.Username, newReleaseLimit)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.renderSongs(releases)
	return nil
}

// # Song detail

func (c *CLI) viewSong(ctx context.Context) error {
	picked, err := c.pickSong()
	if err != nil || picked == nil {
		return err
	}

	// Viewing counts.
	if err := c.songs.AddView(ctx, picked.ID); err != nil {
		c.fail(err)
		return nil
	}
	current, getErr := c.songs.GetSong(ctx, picked.ID)
	if getErr != nil {
		c.fail(getErr)
		return nil
	}

	c.renderSongDetail(current)
	return c.songActions(ctx, current)
}

func (c *CLI) renderSongDetail(s *song.Song) {
	c.printf("")
	c.printf("%s", s.Title)
	c.printf("by %s", strings.Join(s.ArtistIDs, ", "))
	c.printf("Genre: %s   Views: %d", s.Genre.DisplayName(), s.Views)
	if !s.ReleaseDate.IsZero() {
		c.printf("Released: %s", s.ReleaseDate.Format(dateLayout))
	}
	c.printf("")
	for _, line := range strings.Split(s.Lyrics, "\n") {
		c.printf("  %s", line)
	}
	c.printf("")
	if len(s.Comments) == 0 {
		c.printf("No comments yet.")
		return
	}
	c.printf("Comments:")
	for i, cm := range s.Comments {
		c.printf("  %d) %s: %s  (+%d/-%d)", i+1, cm.Author, cm.Text, cm.Likes, cm.Dislikes)
	}
}

func (c *CLI) songActions(ctx context.Context, s *song.Song) error {
	c.printf("")
	c.printf("1) Comment")
	c.printf("2) Like a comment")
	c.printf("3) Dislike a comment")
	c.printf("4) Remove your like")
	c.printf("5) Remove your dislike")
	c.printf("6) Suggest a lyric correction")
	c.printf("0) Back")

	choice, err := c.promptChoice(6)
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		text, err := c.prompt("Comment")
		if err != nil {
			return err
		}
		if _, addErr := c.songs.AddComment(ctx, s.ID, c.current.Username, text); addErr != nil {
			c.fail(addErr)
		}
	case 2, 3, 4, 5:
		comment, pickErr := c.pickComment(s)
		if pickErr != nil || comment == nil {
			return pickErr
		}
		var voteErr error
		switch choice {
		case 2:
			voteErr = c.songs.LikeComment(ctx, s.ID, comment.ID)
		case 3:
			voteErr = c.songs.DislikeComment(ctx, s.ID, comment.ID)
		case 4:
			voteErr = c.songs.RemoveLike(ctx, s.ID, comment.ID)
		case 5:
			voteErr = c.songs.RemoveDislike(ctx, s.ID, comment.ID)
		}
		if voteErr != nil {
			c.fail(voteErr)
		}
	case 6:
		return c.proposeEdit(ctx, s)
	}
	return nil
}

func (c *CLI) pickComment(s *song.Song) (*song.Comment, error) {
	if len(s.Comments) == 0 {
		c.printf("No comments on this song.")
		return nil, nil
	}
	n, err := c.promptInt("Comment number")
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(s.Comments) {
		c.printf("No such comment.")
		return nil, nil
	}
	return &s.Comments[n-1], nil
}

func (c *CLI) proposeEdit(ctx context.Context, s *song.Song) error {
	proposed, err := c.promptMultiline("Corrected lyrics")
	if err != nil {
		return err
	}
	explanation, err := c.prompt("Why (optional)")
	if err != nil {
		return err
	}

	edit, proposeErr := c.reviews.Propose(ctx, c.current.Username, s.ID, proposed, explanation)
	if proposeErr != nil {
		c.fail(proposeErr)
		return nil
	}
	c.printf("Suggestion submitted (%s). The artist or an admin will review it.", edit.ID)
	return nil
}

// # Follow graph

func (c *CLI) followArtist(ctx context.Context) error {
	query, err := c.prompt("Artist name")
	if err != nil {
		return err
	}
	artists, searchErr := c.accounts.SearchArtists(ctx, query)
	if searchErr != nil {
		c.fail(searchErr)
		return nil
	}
	if len(artists) == 0 {
		c.printf("No verified artists match.")
		return nil
	}
	for i, a := range artists {
		c.printf("  %d) %s (@%s)", i+1, a.DisplayName, a.Username)
	}

	n, err := c.promptInt("Follow which (0 to cancel)")
	if err != nil {
		return err
	}
	if n < 1 || n > len(artists) {
		return nil
	}

	if followErr := c.accounts.FollowArtist(ctx, c.current.Username, artists[n-1].Username); followErr != nil {
		c.fail(followErr)
		return nil
	}
	c.printf("Following %s.", artists[n-1].DisplayName)
	return nil
}

func (c *CLI) unfollowArtist(ctx context.Context) error {
	username, err := c.prompt("Artist username")
	if err != nil {
		return err
	}
	if unfollowErr := c.accounts.UnfollowArtist(ctx, c.current.Username, username); unfollowErr != nil {
		c.fail(unfollowErr)
		return nil
	}
	c.printf("Unfollowed %s.", username)
	return nil
}

func (c *CLI) followedArtists(ctx context.Context) error {
	artists, err := c.accounts.FollowedArtists(ctx, c.current.Username)
	if err != nil {
		c.fail(err)
		return nil
	}
	if len(artists) == 0 {
		c.printf("You are not following anyone yet.")
		return nil
	}
	for _, a := range artists {
		c.printf("  * %s (@%s)", a.DisplayName, a.Username)
	}
	return nil
}

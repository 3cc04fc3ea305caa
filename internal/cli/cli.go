// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

/*
Package cli is the numbered-menu front-end.

It is a thin presentation layer: every menu item maps to exactly one service
call, all business rules live below, and every error that reaches the loop
is rendered and swallowed. The loop itself cannot fail; it ends only on
exit, end of input, or context cancellation.
*/
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ngocanhtran/verso/internal/core/account"
	"github.com/ngocanhtran/verso/internal/core/album"
	"github.com/ngocanhtran/verso/internal/core/importer"
	"github.com/ngocanhtran/verso/internal/core/review"
	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/platform/apperr"
	"github.com/ngocanhtran/verso/internal/platform/sec"
)

// dateLayout is the input format for release dates.
const dateLayout = "2006-01-02"

// CLI drives the interactive session.
type CLI struct {
	accounts *account.Service
	songs    *song.Service
	albums   *album.Service
	reviews  *review.Service
	imports  *importer.Service

	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger

	// current is the logged-in account, nil between sessions.
	current *account.Account
	// lastSongs is the most recent song listing, so menus can take "pick a
	// number" input instead of raw ids.
	lastSongs []*song.Song
}

// New wires the CLI to its services and streams.
func New(
	accounts *account.Service,
	songs *song.Service,
	albums *album.Service,
	reviews *review.Service,
	imports *importer.Service,
	in io.Reader,
	out io.Writer,
	logger *slog.Logger,
) *CLI {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &CLI{
		accounts: accounts,
		songs:    songs,
		albums:   albums,
		reviews:  reviews,
		imports:  imports,
		in:       scanner,
		out:      out,
		logger:   logger,
	}
}

// Run is the top-level loop: authenticate, dispatch to the role menu,
// repeat until exit.
func (c *CLI) Run(ctx context.Context) error {
	c.printf("Welcome to Verso.")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if c.current == nil {
			done, err := c.authMenu(ctx)
			if err != nil {
				return err
			}
			if done {
				c.printf("Goodbye.")
				return nil
			}
			continue
		}

		var err error
		switch c.current.Role {
		case sec.RoleAdmin:
			err = c.adminMenu(ctx)
		case sec.RoleArtist:
			err = c.artistMenu(ctx)
		default:
			err = c.userMenu(ctx)
		}
		if err != nil {
			return err
		}
	}
}

// # Input helpers

// errInputClosed ends the loop when stdin runs out.
var errInputClosed = fmt.Errorf("input closed")

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// prompt reads one trimmed line.
func (c *CLI) prompt(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	if !c.in.Scan() {
		return "", errInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// promptInt reads an integer, re-prompting on garbage.
func (c *CLI) promptInt(label string) (int, error) {
	for {
		raw, err := c.prompt(label)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			c.printf("Please enter a number.")
			continue
		}
		return n, nil
	}
}

// promptChoice reads a menu selection in [0, max].
func (c *CLI) promptChoice(max int) (int, error) {
	for {
		n, err := c.promptInt("Choice")
		if err != nil {
			return 0, err
		}
		if n < 0 || n > max {
			c.printf("Please pick an option between 0 and %d.", max)
			continue
		}
		return n, nil
	}
}

// promptDate reads a YYYY-MM-DD date, re-prompting on garbage.
func (c *CLI) promptDate(label string) (time.Time, error) {
	for {
		raw, err := c.prompt(label + " (YYYY-MM-DD)")
		if err != nil {
			return time.Time{}, err
		}
		t, parseErr := time.Parse(dateLayout, raw)
		if parseErr != nil {
			c.printf("Please use the YYYY-MM-DD format.")
			continue
		}
		return t, nil
	}
}

// promptMultiline reads lines until a line containing only "." and joins
// them with newlines.
func (c *CLI) promptMultiline(label string) (string, error) {
	c.printf("%s (finish with a single '.' on its own line):", label)
	var lines []string
	for {
		if !c.in.Scan() {
			return "", errInputClosed
		}
		line := c.in.Text()
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// # Rendering helpers

// fail renders an error for the user. Expected failures print their
// message; anything else prints a generic line and is logged in full.
func (c *CLI) fail(err error) {
	if ae := apperr.As(err); ae != nil {
		c.printf("  ! %s", ae.Message)
		for _, d := range ae.Details {
			c.printf("    - %s: %s", d.Field, d.Message)
		}
		return
	}
	c.logger.Error("cli_unexpected_error", slog.Any("error", err))
	c.printf("  ! Something went wrong, please try again.")
}

func (c *CLI) renderSongs(songs []*song.Song) {
	if len(songs) == 0 {
		c.printf("  (no songs)")
		return
	}
	for i, s := range songs {
		c.printf("  %d) %s by %s  [%s, %d views]",
			i+1, s.Title, strings.Join(s.ArtistIDs, ", "), s.Genre.DisplayName(), s.Views)
	}
	c.lastSongs = songs
}

// pickSong turns a 1-based index into a song from the last listing.
func (c *CLI) pickSong() (*song.Song, error) {
	if len(c.lastSongs) == 0 {
		c.printf("List some songs first.")
		return nil, nil
	}
	n, err := c.promptInt("Song number")
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(c.lastSongs) {
		c.printf("No such song in the last listing.")
		return nil, nil
	}
	return c.lastSongs[n-1], nil
}

func (c *CLI) renderEdit(e *review.Edit) {
	c.printf("  Edit %s  [%s]", e.ID, e.Status)
	c.printf("    Suggested by %s at %s", e.SuggestedBy, e.SuggestedAt.Format(time.RFC822))
	if e.Explanation != "" {
		c.printf("    Explanation: %s", e.Explanation)
	}
	c.printf("    Proposed lyrics:")
	for _, line := range strings.Split(e.ProposedLyrics, "\n") {
		c.printf("      %s", line)
	}
	if e.Status == review.StatusRejected && e.RejectionReason != "" {
		c.printf("    Rejected by %s: %s", e.ReviewedBy, e.RejectionReason)
	}
	if e.Status == review.StatusApproved {
		c.printf("    Approved by %s", e.ReviewedBy)
	}
}

func (c *CLI) showNotifications(ctx context.Context) error {
	notes, err := c.accounts.Notifications(ctx, c.current.Username)
	if err != nil {
		c.fail(err)
		return nil
	}
	if len(notes) == 0 {
		c.printf("No notifications.")
		return nil
	}
	for _, n := range notes {
		c.printf("  * %s", n)
	}
	answer, err := c.prompt("Clear them? (y/n)")
	if err != nil {
		return err
	}
	if strings.EqualFold(answer, "y") {
		if err := c.accounts.ClearNotifications(ctx, c.current.Username); err != nil {
			c.fail(err)
		}
	}
	return nil
}

func (c *CLI) logout() {
	c.printf("Logged out %s.", c.current.Username)
	c.current = nil
	c.lastSongs = nil
}

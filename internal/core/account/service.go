// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/platform/apperr"
	"github.com/ngocanhtran/verso/internal/platform/sec"
	"github.com/ngocanhtran/verso/internal/platform/validate"
)

// Service implements the account lifecycle use cases.
//
// # Review Process
//
// This service is critical for access control. Any changes to hashing,
// registration, or the verification gate must be reviewed carefully.
type Service struct {
	repo   Repository
	songs  song.Repository
	logger *slog.Logger
}

func NewService(repo Repository, songs song.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		songs:  songs,
		logger: logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Username    string
	Password    string
	DisplayName string
	Age         int
	Email       string
	Role        string // "user", "artist", or "admin"; unknown values become "user"
}

/*
Register validates, hashes, and persists a brand new account.

Artists are inserted into the directory immediately, still unverified, and
placed on the pending-approval queue; the verified flag gates login, follows,
and search visibility until an administrator approves them. Registering a
username that already exists (case-insensitive) fails with a Conflict.
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Account, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 30).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 6).
		Required(FieldDisplayName, input.DisplayName).
		Range(FieldAge, input.Age, 13, 120).
		Email(FieldEmail, input.Email)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Prevent storing plain-text passwords. Default cost balances security
	// against registration latency.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	a := &Account{
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hashedPassword,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Age:          input.Age,
		Email:        strings.TrimSpace(input.Email),
		Role:         sec.ParseRole(input.Role),
		CreatedAt:    time.Now(),
	}

	switch a.Role {
	case sec.RoleArtist:
		a.Artist = &ArtistProfile{Verified: false}
	case sec.RoleAdmin:
		a.Admin = &AdminProfile{AdminLevel: "Standard", Department: "Platform Management"}
	default:
		a.User = &UserProfile{}
	}

	// Uniqueness is enforced by the store at insertion; the Conflict
	// surfaces unchanged to the caller.
	if err := service.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	// New artists wait for administrator approval.
	if a.Role == sec.RoleArtist {
		if err := service.repo.EnqueueApproval(ctx, a.Username); err != nil {
			return nil, err
		}
	}

	service.logger.Info("account_registered",
		slog.String("username", a.Username),
		slog.String("role", string(a.Role)),
	)
	return a, nil
}

// # Authentication Flow

/*
Login verifies credentials and returns the account.

Unknown usernames, wrong passwords, and unverified artists all fail with the
same generic Unauthorized error, so callers cannot probe which check failed.
*/
func (service *Service) Login(ctx context.Context, username, password string) (*Account, error) {
	a, err := service.repo.GetAccount(ctx, username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Constant-time comparison inside bcrypt prevents timing attacks.
	if !sec.CheckPasswordHash(password, a.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Unverified artists cannot authenticate even with correct credentials.
	if a.Role == sec.RoleArtist && !a.IsVerifiedArtist() {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	service.logger.Info("account_logged_in", slog.String("username", a.Username))
	return a, nil
}

// # Verification Workflow

/*
VerifyArtist marks an artist as verified, removes it from the pending queue,
and notifies the artist naming the approving administrator.

Re-verifying an already verified artist succeeds trivially. Only accounts
with the admin role may call this.
*/
func (service *Service) VerifyArtist(ctx context.Context, adminUsername, artistUsername string) error {
	admin, err := service.repo.GetAccount(ctx, adminUsername)
	if err != nil {
		return err
	}
	if !admin.Role.AtLeast(sec.RoleAdmin) {
		return apperr.Forbidden("Only administrators can verify artists")
	}

	err = service.repo.UpdateAccount(ctx, artistUsername, func(a *Account) error {
		if a.Role != sec.RoleArtist || a.Artist == nil {
			return apperr.ValidationError("Account is not an artist")
		}
		a.Artist.Verified = true
		return nil
	})
	if err != nil {
		return err
	}

	// No-op when the artist was already approved earlier.
	if err := service.repo.DequeueApproval(ctx, artistUsername); err != nil {
		return err
	}

	message := fmt.Sprintf("Your account has been verified by admin %s", admin.DisplayName)
	if err := service.repo.AppendNotification(ctx, artistUsername, message); err != nil {
		return err
	}

	service.logger.Info("artist_verified",
		slog.String("artist", artistUsername),
		slog.String("admin", adminUsername),
	)
	return nil
}

// ArtistsForApproval returns the pending-approval queue in enqueue order.
func (service *Service) ArtistsForApproval(ctx context.Context) ([]*Account, error) {
	queue, err := service.repo.ApprovalQueue(ctx)
	if err != nil {
		return nil, err
	}

	artists := make([]*Account, 0, len(queue))
	for _, username := range queue {
		a, err := service.repo.GetAccount(ctx, username)
		if err != nil {
			// Queue entry with no backing account; skip rather than fail the listing.
			continue
		}
		artists = append(artists, a)
	}
	return artists, nil
}

// # Follow Graph

/*
FollowArtist adds the artist to the user's following set and notifies the
user. It fails when either party is missing, the artist is not verified, or
the user already follows the artist (idempotence surfaces as a Conflict).
*/
func (service *Service) FollowArtist(ctx context.Context, username, artistUsername string) error {
	artist, err := service.repo.GetAccount(ctx, artistUsername)
	if err != nil {
		return err
	}
	if !artist.IsVerifiedArtist() {
		return apperr.Forbidden("Artist is not verified")
	}

	err = service.repo.UpdateAccount(ctx, username, func(a *Account) error {
		if a.User == nil {
			return apperr.Forbidden("Only regular users can follow artists")
		}
		if a.IsFollowing(artistUsername) {
			return apperr.Conflict("Already following this artist")
		}
		a.User.Following = append(a.User.Following, artist.Username)
		return nil
	})
	if err != nil {
		return err
	}

	message := fmt.Sprintf("You are now following %s", artist.DisplayName)
	if err := service.repo.AppendNotification(ctx, username, message); err != nil {
		return err
	}

	service.logger.Info("artist_followed",
		slog.String("user", username),
		slog.String("artist", artist.Username),
	)
	return nil
}

// UnfollowArtist removes the artist from the user's following set. It fails
// when the user is not currently following the artist.
func (service *Service) UnfollowArtist(ctx context.Context, username, artistUsername string) error {
	return service.repo.UpdateAccount(ctx, username, func(a *Account) error {
		if a.User == nil {
			return apperr.Forbidden("Only regular users can follow artists")
		}
		for i, f := range a.User.Following {
			if strings.EqualFold(f, artistUsername) {
				a.User.Following = append(a.User.Following[:i], a.User.Following[i+1:]...)
				return nil
			}
		}
		return apperr.NotFound("Followed artist")
	})
}

// FollowedArtists returns the artists the user follows, in follow order.
// A user with no follows gets an empty slice, not an error.
func (service *Service) FollowedArtists(ctx context.Context, username string) ([]*Account, error) {
	a, err := service.repo.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	if a.User == nil {
		return []*Account{}, nil
	}

	artists := make([]*Account, 0, len(a.User.Following))
	for _, f := range a.User.Following {
		artist, err := service.repo.GetAccount(ctx, f)
		if err != nil {
			continue
		}
		artists = append(artists, artist)
	}
	return artists, nil
}

// NewReleasesFromFollowedArtists returns the newest songs across the user's
// followed artists, by release date descending, truncated to limit.
func (service *Service) NewReleasesFromFollowedArtists(ctx context.Context, username string, limit int) ([]*song.Song, error) {
	followed, err := service.FollowedArtists(ctx, username)
	if err != nil {
		return nil, err
	}

	var releases []*song.Song
	for _, artist := range followed {
		songs, err := service.songs.SongsByArtist(ctx, artist.Username)
		if err != nil {
			return nil, err
		}
		releases = append(releases, songs...)
	}

	sort.SliceStable(releases, func(i, j int) bool {
		return releases[i].ReleaseDate.After(releases[j].ReleaseDate)
	})

	if limit < 0 {
		limit = 0
	}
	if limit < len(releases) {
		releases = releases[:limit]
	}
	return releases, nil
}

// # Directory Search

// SearchUsers finds regular users whose username or display name contains
// the query (case-insensitive).
func (service *Service) SearchUsers(ctx context.Context, query string) ([]*Account, error) {
	return service.search(ctx, query, func(a *Account) bool {
		return a.Role == sec.RoleUser
	})
}

// SearchArtists finds verified artists whose username or display name
// contains the query. Unverified artists never appear in results.
func (service *Service) SearchArtists(ctx context.Context, query string) ([]*Account, error) {
	return service.search(ctx, query, func(a *Account) bool {
		return a.IsVerifiedArtist()
	})
}

func (service *Service) search(ctx context.Context, query string, keep func(*Account) bool) ([]*Account, error) {
	accounts, err := service.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matched := make([]*Account, 0)
	for _, a := range accounts {
		if !keep(a) {
			continue
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(a.Username), needle) ||
			strings.Contains(strings.ToLower(a.DisplayName), needle) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// # Notifications

// Notifications returns the recipient's queued notifications in delivery
// order. Unknown recipients get an empty slice.
func (service *Service) Notifications(ctx context.Context, username string) ([]string, error) {
	return service.repo.Notifications(ctx, username)
}

// ClearNotifications drains the recipient's queue.
func (service *Service) ClearNotifications(ctx context.Context, username string) error {
	return service.repo.ClearNotifications(ctx, username)
}

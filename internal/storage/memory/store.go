// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

/*
Package memory is the canonical in-memory catalog store.

One mutex-guarded Store owns every top-level collection (accounts, songs,
albums, lyric edits, the artist approval queue, notification queues) and
implements the repository interfaces declared by the core packages. All
mutations are serialized by the single lock, so correctness never depends on
call sites remembering which object to lock; cross-entity transitions (a
lyric-edit decision touching the song, a tracklist append back-filling the
song's album reference) happen inside one critical section.

Reads return deep copies. No pointer into the store's tables ever escapes.

After every successful mutation the store fires its commit hook, which the
snapshot persister uses to schedule a write-behind save of the whole catalog.
*/
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/ngocanhtran/verso/internal/core/account"
	"github.com/ngocanhtran/verso/internal/core/album"
	"github.com/ngocanhtran/verso/internal/core/review"
	"github.com/ngocanhtran/verso/internal/core/song"
)

// Store is the single source of truth for all catalog entities.
type Store struct {
	mu sync.RWMutex

	accounts     map[string]*account.Account // key: lowercase username
	accountOrder []string

	songs          map[string]*song.Song
	songOrder      []string
	songByGeniusID map[int64]string

	albums     map[string]*album.Album
	albumOrder []string

	edits     map[string]*review.Edit
	editOrder []string

	approvalQueue []string
	notifications map[string][]string // key: lowercase username

	onCommit func()
}

// New creates an empty store.
func New() *Store {
	return &Store{
		accounts:       make(map[string]*account.Account),
		songs:          make(map[string]*song.Song),
		songByGeniusID: make(map[int64]string),
		albums:         make(map[string]*album.Album),
		edits:          make(map[string]*review.Edit),
		notifications:  make(map[string][]string),
	}
}

// SetOnCommit installs the hook fired after every successful mutation.
// It must be set before the store is shared; the hook runs outside the
// store lock and must not call back into the store synchronously with a
// mutation.
func (s *Store) SetOnCommit(fn func()) {
	s.onCommit = fn
}

// commit fires the mutation hook. Callers invoke it after releasing the lock
// and only when the mutation succeeded.
func (s *Store) commit() {
	if s.onCommit != nil {
		s.onCommit()
	}
}

// key normalizes a username for map lookups.
func key(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// # Snapshot / Restore

// Snapshot is the serializable whole-catalog state handed to the
// persistence collaborator.
type Snapshot struct {
	SavedAt       time.Time           `json:"saved_at"`
	Accounts      []*account.Account  `json:"accounts"`
	Songs         []*song.Song        `json:"songs"`
	Albums        []*album.Album      `json:"albums"`
	Edits         []*review.Edit      `json:"edits"`
	ApprovalQueue []string            `json:"approval_queue"`
	Notifications map[string][]string `json:"notifications"`
}

// TakeSnapshot deep-copies the entire catalog in insertion order.
func (s *Store) TakeSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		SavedAt:       time.Now(),
		Accounts:      make([]*account.Account, 0, len(s.accountOrder)),
		Songs:         make([]*song.Song, 0, len(s.songOrder)),
		Albums:        make([]*album.Album, 0, len(s.albumOrder)),
		Edits:         make([]*review.Edit, 0, len(s.editOrder)),
		ApprovalQueue: append([]string(nil), s.approvalQueue...),
		Notifications: make(map[string][]string, len(s.notifications)),
	}
	for _, k := range s.accountOrder {
		snap.Accounts = append(snap.Accounts, cloneAccount(s.accounts[k]))
	}
	for _, id := range s.songOrder {
		snap.Songs = append(snap.Songs, cloneSong(s.songs[id]))
	}
	for _, id := range s.albumOrder {
		snap.Albums = append(snap.Albums, cloneAlbum(s.albums[id]))
	}
	for _, id := range s.editOrder {
		snap.Edits = append(snap.Edits, cloneEdit(s.edits[id]))
	}
	for k, queue := range s.notifications {
		snap.Notifications[k] = append([]string(nil), queue...)
	}
	return snap
}

// Restore replaces the store's contents with the snapshot. Used once at
// startup, before the store is shared.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[string]*account.Account, len(snap.Accounts))
	s.accountOrder = s.accountOrder[:0]
	for _, a := range snap.Accounts {
		k := key(a.Username)
		s.accounts[k] = cloneAccount(a)
		s.accountOrder = append(s.accountOrder, k)
	}

	s.songs = make(map[string]*song.Song, len(snap.Songs))
	s.songByGeniusID = make(map[int64]string)
	s.songOrder = s.songOrder[:0]
	for _, sng := range snap.Songs {
		s.songs[sng.ID] = cloneSong(sng)
		s.songOrder = append(s.songOrder, sng.ID)
		if sng.GeniusID != 0 {
			s.songByGeniusID[sng.GeniusID] = sng.ID
		}
	}

	s.albums = make(map[string]*album.Album, len(snap.Albums))
	s.albumOrder = s.albumOrder[:0]
	for _, a := range snap.Albums {
		s.albums[a.ID] = cloneAlbum(a)
		s.albumOrder = append(s.albumOrder, a.ID)
	}

	s.edits = make(map[string]*review.Edit, len(snap.Edits))
	s.editOrder = s.editOrder[:0]
	for _, e := range snap.Edits {
		s.edits[e.ID] = cloneEdit(e)
		s.editOrder = append(s.editOrder, e.ID)
	}

	s.approvalQueue = append([]string(nil), snap.ApprovalQueue...)
	s.notifications = make(map[string][]string, len(snap.Notifications))
	for k, queue := range snap.Notifications {
		s.notifications[k] = append([]string(nil), queue...)
	}
}

// # Clone helpers

func cloneAccount(a *account.Account) *account.Account {
	if a == nil {
		return nil
	}
	out := *a
	if a.User != nil {
		user := *a.User
		user.Following = append([]string(nil), a.User.Following...)
		out.User = &user
	}
	if a.Artist != nil {
		artist := *a.Artist
		out.Artist = &artist
	}
	if a.Admin != nil {
		admin := *a.Admin
		out.Admin = &admin
	}
	return &out
}

func cloneSong(sng *song.Song) *song.Song {
	if sng == nil {
		return nil
	}
	out := *sng
	out.ArtistIDs = append([]string(nil), sng.ArtistIDs...)
	out.Tags = append([]string(nil), sng.Tags...)
	out.Comments = append([]song.Comment(nil), sng.Comments...)
	return &out
}

func cloneAlbum(a *album.Album) *album.Album {
	if a == nil {
		return nil
	}
	out := *a
	out.TrackIDs = append([]string(nil), a.TrackIDs...)
	return &out
}

func cloneEdit(e *review.Edit) *review.Edit {
	if e == nil {
		return nil
	}
	out := *e
	return &out
}

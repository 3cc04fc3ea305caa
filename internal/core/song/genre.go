// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package song

import (
	"regexp"
	"strings"
)

// Genre classifies a song. The zero value is not valid; use [ParseGenre] or
// [GenreFromTags] to obtain one.
type Genre string

const (
	GenrePop         Genre = "pop"
	GenreRock        Genre = "rock"
	GenreHipHop      Genre = "hip-hop"
	GenreRNB         Genre = "rnb"
	GenreCountry     Genre = "country"
	GenreJazz        Genre = "jazz"
	GenreBlues       Genre = "blues"
	GenreClassical   Genre = "classical"
	GenreElectronic  Genre = "electronic"
	GenreIndie       Genre = "indie"
	GenreAlternative Genre = "alternative"
	GenreMetal       Genre = "metal"
	GenrePunk        Genre = "punk"
	GenreFolk        Genre = "folk"
	GenreSoul        Genre = "soul"
	GenreFunk        Genre = "funk"
	GenreReggae      Genre = "reggae"
	GenreLatin       Genre = "latin"
	GenreKPop        Genre = "k-pop"
	GenreGospel      Genre = "gospel"
	GenreSoundtrack  Genre = "soundtrack"
	GenreAmbient     Genre = "ambient"
	GenreOther       Genre = "other"
)

// AllGenres lists every valid genre in display order, for menus and
// validation messages.
var AllGenres = []Genre{
	GenrePop, GenreRock, GenreHipHop, GenreRNB, GenreCountry, GenreJazz,
	GenreBlues, GenreClassical, GenreElectronic, GenreIndie, GenreAlternative,
	GenreMetal, GenrePunk, GenreFolk, GenreSoul, GenreFunk, GenreReggae,
	GenreLatin, GenreKPop, GenreGospel, GenreSoundtrack, GenreAmbient,
	GenreOther,
}

// displayNames maps canonical genre values to user-facing labels.
var displayNames = map[Genre]string{
	GenrePop:         "Pop",
	GenreRock:        "Rock",
	GenreHipHop:      "Hip Hop",
	GenreRNB:         "R&B",
	GenreCountry:     "Country",
	GenreJazz:        "Jazz",
	GenreBlues:       "Blues",
	GenreClassical:   "Classical",
	GenreElectronic:  "Electronic",
	GenreIndie:       "Indie",
	GenreAlternative: "Alternative",
	GenreMetal:       "Metal",
	GenrePunk:        "Punk",
	GenreFolk:        "Folk",
	GenreSoul:        "Soul",
	GenreFunk:        "Funk",
	GenreReggae:      "Reggae",
	GenreLatin:       "Latin",
	GenreKPop:        "K-Pop",
	GenreGospel:      "Gospel",
	GenreSoundtrack:  "Soundtrack",
	GenreAmbient:     "Ambient",
	GenreOther:       "Other",
}

// Valid reports whether g is one of the known genres.
func (g Genre) Valid() bool {
	_, ok := displayNames[g]
	return ok
}

// DisplayName returns the user-facing label for the genre.
func (g Genre) DisplayName() string {
	if name, ok := displayNames[g]; ok {
		return name
	}
	return displayNames[GenreOther]
}

// nonGenreChars normalizes separators when parsing free-form genre input.
var nonGenreChars = regexp.MustCompile(`[^a-z0-9&]+`)

// ParseGenre maps a free-form string to a [Genre], ignoring case and
// punctuation ("Hip Hop", "hip_hop" and "HIP-HOP" all parse to the same
// value). It returns false if no genre matches.
func ParseGenre(s string) (Genre, bool) {
	normalized := nonGenreChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	normalized = strings.Trim(normalized, "-")

	for g, display := range displayNames {
		if normalized == string(g) {
			return g, true
		}
		if strings.EqualFold(s, display) {
			return g, true
		}
	}

	// Common aliases seen in external tag data
	switch normalized {
	case "rap", "trap", "drill":
		return GenreHipHop, true
	case "r&b":
		return GenreRNB, true
	case "edm", "house", "techno", "trance", "dubstep":
		return GenreElectronic, true
	}
	return "", false
}

// genreTagMap maps external tag substrings to genres, checked in order.
// First match wins, so the more specific entries come first.
var genreTagMap = []struct {
	substr string
	genre  Genre
}{
	{"k-pop", GenreKPop},
	{"hip-hop", GenreHipHop},
	{"hip hop", GenreHipHop},
	{"rap", GenreHipHop},
	{"trap", GenreHipHop},
	{"r&b", GenreRNB},
	{"rnb", GenreRNB},
	{"soul", GenreSoul},
	{"funk", GenreFunk},
	{"metal", GenreMetal},
	{"punk", GenrePunk},
	{"indie", GenreIndie},
	{"alternative", GenreAlternative},
	{"rock", GenreRock},
	{"country", GenreCountry},
	{"jazz", GenreJazz},
	{"blues", GenreBlues},
	{"classical", GenreClassical},
	{"electronic", GenreElectronic},
	{"house", GenreElectronic},
	{"techno", GenreElectronic},
	{"reggae", GenreReggae},
	{"latin", GenreLatin},
	{"reggaeton", GenreLatin},
	{"gospel", GenreGospel},
	{"folk", GenreFolk},
	{"ambient", GenreAmbient},
	{"soundtrack", GenreSoundtrack},
	{"pop", GenrePop},
}

// GenreFromTags derives a genre from external metadata tags. Unknown or empty
// tag sets default to [GenrePop], matching the import behavior of the
// upstream catalog.
func GenreFromTags(tags []string) Genre {
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for _, entry := range genreTagMap {
			if strings.Contains(lower, entry.substr) {
				return entry.genre
			}
		}
	}
	return GenrePop
}

// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package song

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGenre(t *testing.T) {
	tests := []struct {
		in     string
		want   Genre
		wantOK bool
	}{
		{"pop", GenrePop, true},
		{"Pop", GenrePop, true},
		{"HIP-HOP", GenreHipHop, true},
		{"hip hop", GenreHipHop, true},
		{"rap", GenreHipHop, true},
		{"r&b", GenreRNB, true},
		{"K-Pop", GenreKPop, true},
		{"edm", GenreElectronic, true},
		{"polka-metal", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseGenre(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestGenreFromTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want Genre
	}{
		{"direct match", []string{"rock"}, GenreRock},
		{"rap maps to hip-hop", []string{"rap"}, GenreHipHop},
		{"first recognized tag wins", []string{"unknown-scene", "country", "rock"}, GenreCountry},
		{"substring match", []string{"UK Drill Rap"}, GenreHipHop},
		{"nothing recognized defaults to pop", []string{"vaporwave-adjacent"}, GenrePop},
		{"no tags defaults to pop", nil, GenrePop},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GenreFromTags(tc.tags))
		})
	}
}

func TestGenre_Valid(t *testing.T) {
	for _, g := range AllGenres {
		assert.True(t, g.Valid(), "genre %q should be valid", g)
	}
	assert.False(t, Genre("polka-metal").Valid())
	assert.False(t, Genre("").Valid())
}

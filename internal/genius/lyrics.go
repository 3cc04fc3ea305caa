// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package genius

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// errNoLyrics is returned when the page parses but holds no lyrics text,
// typically an instrumental or a not-yet-transcribed song.
var errNoLyrics = errors.New("no lyrics containers found")

// extractLyrics pulls the plain lyrics text out of a lyrics page. The page
// marks lyric blocks with div[data-lyrics-container="true"]; inside them,
// <br> is a line break and square-bracket section headers like "[Chorus]"
// are annotations, not lyrics.
func extractLyrics(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var blocks []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && isLyricsContainer(n) {
			var b strings.Builder
			collectText(n, &b)
			if text := cleanBlock(b.String()); text != "" {
				blocks = append(blocks, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(blocks) == 0 {
		return "", errNoLyrics
	}
	return strings.Join(blocks, "\n\n"), nil
}

func isLyricsContainer(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key == "data-lyrics-container" && attr.Val == "true" {
			return true
		}
	}
	return false
}

// collectText flattens a lyrics container into newline-separated text.
func collectText(n *html.Node, b *strings.Builder) {
	switch {
	case n.Type == html.TextNode:
		b.WriteString(n.Data)
	case n.Type == html.ElementNode && n.Data == "br":
		b.WriteString("\n")
	case n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style"):
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// cleanBlock trims each line and drops section headers such as "[Verse 1]".
func cleanBlock(raw string) string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

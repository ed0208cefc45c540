// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"regexp"
	"strings"
)

// videoIDPatterns match the supported YouTube URL forms (R1.1):
// watch?v=, youtu.be/, embed/, /v/, and shorts/. Each captures the
// 11-character video ID.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID returns the video ID embedded in a YouTube URL, or an
// empty string when none of the recognized URL forms match. Patterns are
// tried in declaration order and the first match wins.
func ExtractVideoID(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

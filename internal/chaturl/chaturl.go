// Package chaturl builds the embedded chat client URL from a server URL
// and a selected identity. All functions are pure.
package chaturl

import (
	"fmt"
	"net/url"
	"strings"
)

// Normalize ensures the server URL carries an http(s) scheme and has no
// trailing slashes. Input without a scheme gets https.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	return strings.TrimRight(s, "/")
}

// Build composes the chat client URL the embed page points its iframe at.
// The query contract belongs to the remote chat service: userId, displayName
// and apiUrl, with encodeURIComponent-style escaping (%20 for spaces).
func Build(serverURL string, userID int, displayName string) string {
	base := Normalize(serverURL)
	return fmt.Sprintf("%s/Teams?userId=%d&displayName=%s&apiUrl=%s",
		base, userID, encodeComponent(displayName), encodeComponent(base))
}

// encodeComponent matches JavaScript's encodeURIComponent for the characters
// that matter here: QueryEscape but with %20 instead of '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

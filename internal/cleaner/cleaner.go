// Package cleaner prepares loaded post sets for scoring.
//
// Three passes, in order: reduce the raw url field to its host, drop
// advertisement posts, drop rows without text. Mirrors the collection
// pipeline the datasets come from, where promoted posts always carry an
// off-platform link.
package cleaner

import (
	"strings"

	"github.com/francisatoyebi/housepulse/internal/domain"
)

// platformHost identifies non-promoted posts. Any longer, different host is
// treated as an advertisement link.
const platformHost = "twitter.com"

// Clean returns a copy of set with URLs reduced to hosts and ad/empty rows
// removed. The input set is not modified.
func Clean(set domain.PostSet) domain.PostSet {
	cleaned := domain.PostSet{
		Contestant: set.Contestant,
		Source:     set.Source,
		Posts:      make([]domain.Post, 0, len(set.Posts)),
	}

	for _, post := range set.Posts {
		host := HostFromURL(post.URL)
		if IsAd(host) {
			continue
		}
		if strings.TrimSpace(post.Text) == "" {
			continue
		}
		post.URL = host
		cleaned.Posts = append(cleaned.Posts, post)
	}

	return cleaned
}

// HostFromURL extracts the host segment from a raw url field.
// The field arrives bracket-wrapped from the scraper ("['https://x.com/a/b']");
// after stripping brackets and quotes, the host is the third slash-separated
// token. Values with fewer than three tokens reduce to the empty string.
func HostFromURL(raw string) string {
	trimmed := strings.Trim(raw, "[]")
	trimmed = strings.Trim(trimmed, `'"`)

	parts := strings.Split(trimmed, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

// IsAd reports whether a host marks an advertisement post. Hosts longer than
// the platform host and different from it are ads; shorter hosts and the
// empty string pass through.
func IsAd(host string) bool {
	return len(host) > len(platformHost) && host != platformHost
}

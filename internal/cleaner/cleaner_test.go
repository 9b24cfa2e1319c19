package cleaner

import (
	"testing"

	"github.com/francisatoyebi/housepulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostFromURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bracketed url", "['https://twitter.com/user/status/1']", "twitter.com"},
		{"plain url", "https://twitter.com/user/status/1", "twitter.com"},
		{"ad url", "['https://shop.example-store.com/deal']", "shop.example-store.com"},
		{"empty list", "[]", ""},
		{"empty string", "", ""},
		{"no slashes", "twitter.com", ""},
		{"short host kept verbatim", "['https://t.co/abc']", "t.co"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HostFromURL(tt.raw))
		})
	}
}

func TestIsAd(t *testing.T) {
	assert.False(t, IsAd("twitter.com"))
	assert.False(t, IsAd(""))
	// shorter hosts pass even when different
	assert.False(t, IsAd("t.co"))
	assert.True(t, IsAd("shop.example-store.com"))
	assert.True(t, IsAd("www.twitter.com"))
}

func TestClean(t *testing.T) {
	set := domain.PostSet{
		Contestant: "laycon",
		Source:     "laycon.csv",
		Posts: []domain.Post{
			{Date: "2020-09-18", Text: "Laycon carried the whole show", URL: "['https://twitter.com/a/status/1']"},
			{Date: "2020-09-18", Text: "Buy now!!", URL: "['https://shop.example-store.com/deal']"},
			{Date: "2020-09-18", Text: "   ", URL: "[]"},
			{Date: "2020-09-18", Text: "meh episode", URL: "[]"},
		},
	}

	cleaned := Clean(set)

	require.Equal(t, 2, cleaned.Count())
	assert.Equal(t, "laycon", cleaned.Contestant)
	assert.Equal(t, "twitter.com", cleaned.Posts[0].URL)
	assert.Equal(t, "meh episode", cleaned.Posts[1].Text)
	assert.Equal(t, "", cleaned.Posts[1].URL)

	// original untouched
	assert.Equal(t, 4, set.Count())
	assert.Equal(t, "['https://twitter.com/a/status/1']", set.Posts[0].URL)
}

func TestCleanAllRemoved(t *testing.T) {
	set := domain.PostSet{
		Contestant: "ozo",
		Posts: []domain.Post{
			{Text: "promoted", URL: "['https://ads.example.com/x/y']"},
		},
	}

	cleaned := Clean(set)
	assert.Equal(t, 0, cleaned.Count())
}

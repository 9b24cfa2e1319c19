package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francisatoyebi/housepulse/internal/domain"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func testRun() *domain.Run {
	return &domain.Run{
		ID:         uuid.New(),
		SourceDir:  "scraped_posts",
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		TotalPosts: 30,
		Results: []domain.ContestantResult{
			{Name: "laycon", Rating: 45.2, RawScore: 0.31, PostCount: 12},
			{Name: "dorathy", Rating: 32.1, RawScore: 0.12, PostCount: 10},
			{Name: "ozo", Rating: 22.7, RawScore: -0.05, PostCount: 8},
		},
	}
}

func TestRenderAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	r := NewRenderer(dir)

	require.NoError(t, r.RenderAll(testRun()))

	for _, name := range []string{PieFileName, BarFileName} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.Greater(t, len(data), len(pngMagic), name)
		assert.Equal(t, pngMagic, data[:len(pngMagic)], name)
	}
}

func TestRenderAllNoResults(t *testing.T) {
	r := NewRenderer(t.TempDir())

	err := r.RenderAll(&domain.Run{})
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestPath(t *testing.T) {
	r := NewRenderer("/tmp/out")
	assert.Equal(t, filepath.Join("/tmp/out", PieFileName), r.Path(PieFileName))
}

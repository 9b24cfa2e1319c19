package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/francisatoyebi/housepulse/internal/domain"
	"github.com/francisatoyebi/housepulse/internal/logging"
)

// Required columns in every contestant CSV. Extra columns are ignored.
var requiredColumns = []string{"date", "tweet", "urls"}

// File is a discovered contestant CSV.
type File struct {
	Path       string
	Contestant string
}

// Discover lists the CSV files in dir, one per contestant.
func Discover(dir string) ([]File, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", dir, err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		files = append(files, File{
			Path:       filepath.Join(dir, entry.Name()),
			Contestant: name,
		})
	}

	return files, nil
}

// LoadAll loads every contestant CSV in dir. Files that fail to parse are
// logged and skipped; an error is returned only when no file loads at all.
func LoadAll(dir string) ([]domain.PostSet, error) {
	files, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoDatasetsFound, dir)
	}

	sets := make([]domain.PostSet, 0, len(files))
	for _, f := range files {
		set, err := LoadFile(f.Path, f.Contestant)
		if err != nil {
			logging.WithError(err).Error("Failed to load dataset", "file", f.Path)
			continue
		}
		slog.Info("Loaded dataset", "contestant", set.Contestant, "posts", set.Count())
		sets = append(sets, set)
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("failed to load any dataset from %s", dir)
	}

	return sets, nil
}

// LoadFile parses a single contestant CSV into a PostSet.
func LoadFile(path, contestant string) (domain.PostSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.PostSet{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Scraper output has ragged rows on occasion; the header decides the width.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return domain.PostSet{}, fmt.Errorf("%s: %w", path, domain.ErrEmptyDataset)
	}
	if err != nil {
		return domain.PostSet{}, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return domain.PostSet{}, fmt.Errorf("%s: %w", path, err)
	}

	var posts []domain.Post
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.PostSet{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		posts = append(posts, domain.Post{
			Date: field(record, cols["date"]),
			Text: field(record, cols["tweet"]),
			URL:  field(record, cols["urls"]),
		})
	}

	if len(posts) == 0 {
		return domain.PostSet{}, fmt.Errorf("%s: %w", path, domain.ErrEmptyDataset)
	}

	return domain.PostSet{
		Contestant: contestant,
		Source:     path,
		Posts:      posts,
	}, nil
}

// columnIndex maps required column names to their positions in the header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumns, strings.Join(missing, ", "))
	}

	return index, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

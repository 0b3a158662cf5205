package logfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Egor213/RBACPanel/internal/domain"
	"github.com/Egor213/RBACPanel/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/RBACPanel/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	logExt          = ".log"
	DefaultMaxLines = 1000
)

// FileRepo reads line-oriented log files under <root>/{backend,frontend,system}.
type FileRepo struct {
	root string
}

func NewFileRepo(root string) *FileRepo {
	return &FileRepo{root: root}
}

func (r *FileRepo) categoryDir(c domain.Category) string {
	return filepath.Join(r.root, strings.ToLower(string(c)))
}

// ListFiles returns, per category, the .log files found recursively as slash-separated
// paths relative to the category root. Missing roots yield empty lists.
func (r *FileRepo) ListFiles(ctx context.Context) map[domain.Category][]string {
	out := make(map[domain.Category][]string, len(domain.Categories))

	for _, c := range domain.Categories {
		files := []string{}
		dir := r.categoryDir(c)

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) && path == dir {
					return fs.SkipAll
				}
				log.WithFields(log.Fields{"path": path, "error": err}).Warn("Skipping unreadable log path")
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() || filepath.Ext(path) != logExt {
				return nil
			}
			rel, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				return nil
			}
			files = append(files, filepath.ToSlash(rel))
			return nil
		})
		if err != nil && !errors.Is(err, fs.SkipAll) {
			log.WithFields(log.Fields{"category": c, "error": err}).Warn("Log discovery interrupted")
		}

		out[c] = files
	}

	return out
}

// ReadFile parses the last maxLines lines of one log file. A missing file yields no
// entries and no error; open and read failures are returned for the caller to report.
func (r *FileRepo) ReadFile(ctx context.Context, category domain.Category, name string, maxLines int) ([]domain.LogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cat, ok := domain.ParseCategory(string(category))
	if !ok {
		return []domain.LogEntry{}, nil
	}

	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%w: %q", repoerrs.ErrInvalidPath, name)
	}

	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	f, err := os.Open(filepath.Join(r.categoryDir(cat), rel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.LogEntry{}, nil
		}
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer f.Close()

	lines, err := tailLines(ctx, f, maxLines)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	entries := make([]domain.LogEntry, 0, len(lines))
	for _, line := range lines {
		entry, ok := ParseLine(line)
		if !ok {
			continue
		}
		entry.RawLine = strings.TrimSpace(line)
		entry.LogFile = name
		entry.Category = cat
		entries = append(entries, entry)
	}

	return entries, nil
}

package entries

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/dmitrijs2005/photojournal/internal/filex"
	"github.com/dmitrijs2005/photojournal/internal/journal/models"
)

const filePerm = 0o640

// FileRepository implements Repository over one flat directory.
type FileRepository struct {
	dir string
}

// NewFileRepository returns a repository rooted at dir. Relative dirs are
// made absolute so that paths handed out by List compare equal later.
func NewFileRepository(dir string) *FileRepository {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &FileRepository{dir: filepath.Clean(dir)}
}

// Dir returns the storage directory.
func (r *FileRepository) Dir() string {
	return r.dir
}

func (r *FileRepository) EnsureReady(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := filex.EnsureSubdDir(filepath.Dir(r.dir), filepath.Base(r.dir)); err != nil {
		return fmt.Errorf("prepare storage: %w", err)
	}
	return nil
}

func (r *FileRepository) PathFor(id int64) string {
	return filepath.Join(r.dir, models.FileNameForID(id))
}

// Create writes <id>.json exclusively; an existing file with the same id is
// reported as an error rather than overwritten.
func (r *FileRepository) Create(ctx context.Context, e models.Entry) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if e.IsEmpty() {
		return "", common.ErrEmptyEntry
	}
	if err := e.Validate(); err != nil {
		return "", err
	}

	data, err := e.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to encode entry: %w", err)
	}

	path := r.PathFor(e.ID)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
	if err != nil {
		return "", fmt.Errorf("failed to create entry file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write entry file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close entry file: %w", err)
	}
	return path, nil
}

// List reads every non-directory item. Hidden files (including in-flight
// temp files from Update) are skipped.
func (r *FileRepository) List(ctx context.Context) ([]models.Item, error) {
	dirEntries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage dir: %w", err)
	}

	result := make([]models.Item, 0, len(dirEntries))
	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}

		path := filepath.Join(r.dir, de.Name())
		e, err := readEntry(path)
		if err != nil {
			return nil, err
		}
		result = append(result, models.Item{Path: path, Entry: e})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Entry.ID > result[j].Entry.ID
	})
	return result, nil
}

func (r *FileRepository) Get(ctx context.Context, path string) (models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return models.Entry{}, err
	}
	p, err := r.resolve(path)
	if err != nil {
		return models.Entry{}, err
	}
	return readEntry(p)
}

func (r *FileRepository) Update(ctx context.Context, path string, e models.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.IsEmpty() {
		return common.ErrEmptyEntry
	}
	if err := e.Validate(); err != nil {
		return err
	}

	p, err := r.resolve(path)
	if err != nil {
		return err
	}
	if name := filepath.Base(p); name != e.FileName() {
		return fmt.Errorf("%w: cannot write id %d to %s", common.ErrInvalidEntry, e.ID, name)
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("entry %s: %w", filepath.Base(p), common.ErrorNotFound)
		}
		return fmt.Errorf("failed to stat entry file: %w", err)
	}

	data, err := e.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}
	if err := filex.WriteFileAtomic(p, data, filePerm); err != nil {
		return fmt.Errorf("failed to overwrite entry file: %w", err)
	}
	return nil
}

func (r *FileRepository) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := r.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete entry file: %w", err)
	}
	return nil
}

// resolve maps a path or bare file name onto a file directly inside dir.
func (r *FileRepository) resolve(path string) (string, error) {
	if path == "" {
		return "", common.ErrInvalidPath
	}
	p := path
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.dir, p)
	}
	p = filepath.Clean(p)
	if filepath.Dir(p) != r.dir {
		return "", fmt.Errorf("%s: %w", path, common.ErrInvalidPath)
	}
	return p, nil
}

func readEntry(path string) (models.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Entry{}, fmt.Errorf("entry %s: %w", filepath.Base(path), common.ErrorNotFound)
		}
		return models.Entry{}, fmt.Errorf("failed to read entry file: %w", err)
	}
	e, err := models.Parse(data)
	if err != nil {
		return models.Entry{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	// the file name is the id; edit and delete address records by it
	if name := filepath.Base(path); name != e.FileName() {
		return models.Entry{}, fmt.Errorf("%w: %s holds id %d", common.ErrInvalidEntry, name, e.ID)
	}
	return e, nil
}

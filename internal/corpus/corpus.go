// Package corpus loads the labeled review corpus used to train the classifier.
//
// The expected layout is the one of the NLTK movie_reviews package:
//
//	movie_reviews/
//	  neg/cv000_29416.txt ...
//	  pos/cv000_29590.txt ...
//
// Each category directory name is the label of every document under it.
package corpus

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyCorpus is returned when no labeled documents can be found.
var ErrEmptyCorpus = errors.New("corpus contains no documents")

// wordPunct splits text into runs of word characters and runs of punctuation.
var wordPunct = regexp.MustCompile(`[\p{L}\p{N}_]+|[^\p{L}\p{N}_\s]+`)

// Document is one labeled example.
type Document struct {
	FileID   string
	Category string
	Words    []string
}

// Text joins the document's words with single spaces.
func (d Document) Text() string {
	return strings.Join(d.Words, " ")
}

// Open returns a filesystem view of a corpus directory or .zip archive.
// The returned closer must be closed once loading is done.
func Open(p string) (fs.FS, io.Closer, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, nil, fmt.Errorf("corpus unavailable: %w", err)
	}

	if info.IsDir() {
		return os.DirFS(p), io.NopCloser(nil), nil
	}

	if strings.EqualFold(path.Ext(p), ".zip") {
		rc, err := zip.OpenReader(p)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open corpus archive: %w", err)
		}
		return rc, rc, nil
	}

	return nil, nil, fmt.Errorf("corpus path %s is neither a directory nor a .zip archive", p)
}

// Categories lists the labels found under root, sorted.
func Categories(fsys fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus root %q: %w", root, err)
	}

	var categories []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			categories = append(categories, e.Name())
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// Load reads every document of every category under root, ordered by category
// then file id.
func Load(fsys fs.FS, root string) ([]Document, error) {
	categories, err := Categories(fsys, root)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no category directories under %q", ErrEmptyCorpus, root)
	}

	var docs []Document
	for _, category := range categories {
		dir := path.Join(root, category)
		files, err := fs.Glob(fsys, path.Join(dir, "*.txt"))
		if err != nil {
			return nil, fmt.Errorf("failed to list %q: %w", dir, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%w: category %q has no documents", ErrEmptyCorpus, category)
		}
		sort.Strings(files)

		for _, f := range files {
			data, err := fs.ReadFile(fsys, f)
			if err != nil {
				return nil, fmt.Errorf("failed to read %q: %w", f, err)
			}
			docs = append(docs, Document{
				FileID:   strings.TrimPrefix(f, root+"/"),
				Category: category,
				Words:    Words(string(data)),
			})
		}
	}

	return docs, nil
}

// Words splits raw text the way the corpus reader does: word runs and
// punctuation runs become separate tokens, whitespace is dropped.
func Words(text string) []string {
	return wordPunct.FindAllString(text, -1)
}

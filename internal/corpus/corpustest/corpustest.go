// Package corpustest provides a small two-category review corpus for tests.
package corpustest

import (
	"archive/zip"
	"os"
	"path"
	"path/filepath"
	"sort"
	"testing"
	"testing/fstest"
)

// Root is the directory holding the categories inside FS.
const Root = "movie_reviews"

var reviews = map[string][]string{
	"pos": {
		"i loved this movie . the acting was amazing and the story was wonderful .",
		"an amazing film with a brilliant cast . i really loved every minute of it .",
		"a wonderful , moving and beautiful picture . the director did an amazing job .",
		"brilliant performances and a great script . loved it , truly memorable .",
		"the best movie of the year . amazing visuals , wonderful music , great fun .",
		"a beautiful and touching story . the cast is brilliant and the ending is perfect .",
		"i loved the characters . funny , smart and amazing from start to finish .",
		"great movie . memorable , beautiful and wonderful . highly recommended .",
	},
	"neg": {
		"this movie was boring and far too long . the plot made no sense at all .",
		"a dull , boring film . the acting was awful and the script was terrible .",
		"terrible story , bad acting and a long , painful ending . what a waste .",
		"boring from start to finish . the characters are flat and the jokes are bad .",
		"an awful mess . too long , too slow and completely boring .",
		"the worst movie of the year . bad script , terrible direction , dull cast .",
		"painfully long and boring . i wanted to leave after twenty minutes . awful .",
		"a waste of time . stupid plot , bad dialogue and a terrible , boring ending .",
	},
}

// Categories lists the labels of the fixture, sorted.
func Categories() []string {
	var out []string
	for c := range reviews {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Size is the number of documents in the fixture.
func Size() int {
	n := 0
	for _, docs := range reviews {
		n += len(docs)
	}
	return n
}

// FS returns the fixture as an in-memory filesystem rooted at Root.
func FS() fstest.MapFS {
	fsys := fstest.MapFS{
		path.Join(Root, "README"): &fstest.MapFile{Data: []byte("test corpus\n")},
	}
	for category, docs := range reviews {
		for i, text := range docs {
			name := path.Join(Root, category, fileID(category, i))
			fsys[name] = &fstest.MapFile{Data: []byte(text + "\n")}
		}
	}
	return fsys
}

// WriteDir writes the fixture below dir and returns the corpus directory path.
func WriteDir(t testing.TB, dir string) string {
	t.Helper()
	for category, docs := range reviews {
		catDir := filepath.Join(dir, Root, category)
		if err := os.MkdirAll(catDir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		for i, text := range docs {
			if err := os.WriteFile(filepath.Join(catDir, fileID(category, i)), []byte(text+"\n"), 0o644); err != nil {
				t.Fatalf("write review: %v", err)
			}
		}
	}
	return dir
}

// WriteZip writes the fixture as a zip archive at dest.
func WriteZip(t testing.TB, dest string) string {
	t.Helper()
	f, err := os.Create(dest)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for category, docs := range reviews {
		for i, text := range docs {
			w, err := zw.Create(path.Join(Root, category, fileID(category, i)))
			if err != nil {
				t.Fatalf("zip entry: %v", err)
			}
			if _, err := w.Write([]byte(text + "\n")); err != nil {
				t.Fatalf("zip write: %v", err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return dest
}

func fileID(category string, i int) string {
	return "cv00" + string(rune('0'+i)) + "_" + category + ".txt"
}

// Package intake collects the set of files to be submitted with a stamp job.
//
// Two acquisition paths feed one selection: an explicit pick of named paths,
// and a scan of a designated drop directory. Both replace the selection
// wholesale; the selection is never merged or appended to.
package intake

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileRef identifies one selected file.
type FileRef struct {
	Name string
	Size int64
	Path string
}

// Selection is the current set of files for submission. It is a single state
// cell with two producers (Pick and Drop) and one consumer (the stamp job);
// a mutex keeps the two producers from interleaving mid-write.
type Selection struct {
	mu    sync.Mutex
	files []FileRef
}

func NewSelection() *Selection {
	return &Selection{}
}

// Pick replaces the selection with the named files, in argument order.
// Every path must point to a regular file; on any error the previous
// selection is kept unchanged.
func (s *Selection) Pick(paths ...string) ([]FileRef, error) {
	refs := make([]FileRef, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%s: not a regular file", p)
		}
		refs = append(refs, FileRef{Name: filepath.Base(p), Size: info.Size(), Path: p})
	}
	s.replace(refs)
	return refs, nil
}

// Drop replaces the selection with the regular files found directly in dir,
// in name order. An empty directory yields an empty selection.
func (s *Selection) Drop(dir string) ([]FileRef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read drop dir %s: %w", dir, err)
	}

	refs := make([]FileRef, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		refs = append(refs, FileRef{
			Name: e.Name(),
			Size: info.Size(),
			Path: filepath.Join(dir, e.Name()),
		})
	}
	s.replace(refs)
	return refs, nil
}

func (s *Selection) replace(refs []FileRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = refs
}

// Files returns a copy of the current selection in acquisition order.
func (s *Selection) Files() []FileRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FileRef, len(s.files))
	copy(out, s.files)
	return out
}

// Summary renders the selection as "name (N KB)" per file, joined with
// ", ". Sizes are rounded to the nearest KB. An empty selection renders
// as an empty string.
func (s *Selection) Summary() string {
	return Summarize(s.Files())
}

// Summarize renders refs the way Summary does. It is a pure function:
// the same list always produces the same text.
func Summarize(refs []FileRef) string {
	if len(refs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(refs))
	for _, f := range refs {
		kb := int64(math.Round(float64(f.Size) / 1024))
		parts = append(parts, fmt.Sprintf("%s (%d KB)", f.Name, kb))
	}
	return strings.Join(parts, ", ")
}

package intake

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, make([]byte, size), 0o600))
	return p
}

func TestPick_ReplacesSelectionWholesale(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.png", 2048)
	b := writeFile(t, dir, "b.png", 100)

	s := NewSelection()

	refs, err := s.Pick(a)
	require.NoError(t, err)
	require.Len(t, refs, 1)

	refs, err = s.Pick(b)
	require.NoError(t, err)
	require.Len(t, refs, 1)

	files := s.Files()
	require.Len(t, files, 1)
	require.Equal(t, "b.png", files[0].Name)
}

func TestPick_ErrorKeepsPreviousSelection(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.png", 10)

	s := NewSelection()
	_, err := s.Pick(a)
	require.NoError(t, err)

	_, err = s.Pick(filepath.Join(dir, "missing.png"))
	require.Error(t, err)

	files := s.Files()
	require.Len(t, files, 1)
	require.Equal(t, "a.png", files[0].Name)
}

func TestPick_RejectsDirectories(t *testing.T) {
	dir := t.TempDir()
	s := NewSelection()
	_, err := s.Pick(dir)
	require.ErrorContains(t, err, "not a regular file")
}

func TestPick_PreservesArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.png", 10)
	a := writeFile(t, dir, "a.png", 10)

	s := NewSelection()
	refs, err := s.Pick(b, a)
	require.NoError(t, err)
	require.Equal(t, "b.png", refs[0].Name)
	require.Equal(t, "a.png", refs[1].Name)
}

func TestDrop_ScansRegularFilesInNameOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.jpg", 10)
	writeFile(t, dir, "a.jpg", 10)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))

	s := NewSelection()
	refs, err := s.Drop(dir)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	require.Equal(t, "a.jpg", refs[0].Name)
	require.Equal(t, "b.jpg", refs[1].Name)
}

func TestDrop_EmptyDirYieldsEmptySelection(t *testing.T) {
	dir := t.TempDir()
	full := t.TempDir()
	writeFile(t, full, "x.png", 10)

	s := NewSelection()
	_, err := s.Pick(filepath.Join(full, "x.png"))
	require.NoError(t, err)

	refs, err := s.Drop(dir)
	require.NoError(t, err)
	require.Empty(t, refs)
	require.Empty(t, s.Files())
}

func TestSummary_FormatAndRounding(t *testing.T) {
	tests := []struct {
		name string
		refs []FileRef
		want string
	}{
		{
			name: "empty selection renders empty text",
			refs: nil,
			want: "",
		},
		{
			name: "exact kilobytes",
			refs: []FileRef{{Name: "a.png", Size: 2048}},
			want: "a.png (2 KB)",
		},
		{
			name: "rounds to nearest",
			refs: []FileRef{{Name: "b.png", Size: 1536}},
			want: "b.png (2 KB)",
		},
		{
			name: "multiple files joined in order",
			refs: []FileRef{
				{Name: "a.png", Size: 2048},
				{Name: "b.png", Size: 100},
			},
			want: "a.png (2 KB), b.png (0 KB)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Summarize(tt.refs))
		})
	}
}

func TestSummary_Idempotent(t *testing.T) {
	refs := []FileRef{{Name: "a.png", Size: 2048}, {Name: "b.png", Size: 4000}}
	first := Summarize(refs)
	second := Summarize(refs)
	require.Equal(t, first, second)
}

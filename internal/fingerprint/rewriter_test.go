package fingerprint

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/leapstack-labs/hashassets/internal/classify"
	"github.com/leapstack-labs/hashassets/internal/scan"
	"github.com/leapstack-labs/hashassets/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mappingOf(t *testing.T, pairs ...Pair) *Mapping {
	t.Helper()
	m := NewMapping()
	for _, p := range pairs {
		require.NoError(t, m.Add(p.Old, p.New))
	}
	return m
}

func TestRewriter_ReplacesAllOccurrences(t *testing.T) {
	root := t.TempDir()
	index := `<script src="/assets/app.js"></script>
<link rel="preload" href="/assets/app.js">
<!-- app.js -->
<link href="/assets/style.css">
`
	testutil.WriteTree(t, root, map[string]string{
		"index.html":        index,
		"about/index.html":  "no references here",
		"assets/0000.js":    "X",
		"assets/style.json": `{"entry":"app.js"}`,
	})

	m := mappingOf(t, Pair{"app.js", "1111.js"}, Pair{"style.css", "2222.css"})
	w := NewRewriter(root, scan.NewScanner(nil), nil, testutil.NewTestLogger(t), nil)

	stats, err := w.Rewrite(m)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Rewritten)
	assert.Equal(t, 5, stats.Replacements)
	assert.Equal(t, 4, stats.Scanned)

	tree := testutil.ReadTree(t, root)
	want := strings.ReplaceAll(strings.ReplaceAll(index, "app.js", "1111.js"), "style.css", "2222.css")
	assert.Equal(t, want, tree["index.html"], "bytes outside substituted spans are preserved")
	assert.NotContains(t, tree["index.html"], "app.js")
	assert.Equal(t, 3, strings.Count(tree["index.html"], "1111.js"))
	assert.Equal(t, `{"entry":"1111.js"}`, tree["assets/style.json"])
	assert.Equal(t, "no references here", tree["about/index.html"])
}

func TestRewriter_SkipsBinaryFiles(t *testing.T) {
	root := t.TempDir()
	binary := "PNG\x00\x01app.js\x02"
	testutil.WriteTree(t, root, map[string]string{"logo.png": binary})

	opened := 0
	classifier := classify.Func(func(data []byte) bool {
		opened++
		return classify.Sniff{}.IsBinary(data)
	})
	w := NewRewriter(root, scan.NewScanner(nil), classifier, nil, nil)

	stats, err := w.Rewrite(mappingOf(t, Pair{"app.js", "1111.js"}))
	require.NoError(t, err)
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, stats.Binary)
	assert.Equal(t, 0, stats.Rewritten)
	assert.Equal(t, binary, testutil.ReadTree(t, root)["logo.png"])
}

func TestRewriter_SkipsInvalidUTF8(t *testing.T) {
	root := t.TempDir()
	latin1 := "caf\xe9 app.js"
	testutil.WriteTree(t, root, map[string]string{"menu.txt": latin1})

	logger, logs := testutil.NewBufferLogger()
	w := NewRewriter(root, scan.NewScanner(nil), nil, logger, nil)

	stats, err := w.Rewrite(mappingOf(t, Pair{"app.js", "1111.js"}))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, latin1, testutil.ReadTree(t, root)["menu.txt"])
	assert.Contains(t, logs.String(), "not valid UTF-8")
}

func TestRewriter_UnchangedFilesNotWritten(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"index.html": "nothing to see"})
	path := filepath.Join(root, "index.html")
	before, err := os.Stat(path)
	require.NoError(t, err)

	stats, err := NewRewriter(root, scan.NewScanner(nil), nil, nil, nil).Rewrite(mappingOf(t, Pair{"app.js", "1111.js"}))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Rewritten)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestRewriter_PreservesFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"run.sh": "load app.js"})
	path := filepath.Join(root, "run.sh")
	require.NoError(t, os.Chmod(path, 0o755))

	_, err := NewRewriter(root, scan.NewScanner(nil), nil, nil, nil).Rewrite(mappingOf(t, Pair{"app.js", "1111.js"}))
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestRewriter_WriteFailureKeepsOriginal(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"locked/page.html": "see app.js",
		"open/page.html":   "see app.js",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o555))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	logger, logs := testutil.NewBufferLogger()
	stats, err := NewRewriter(root, scan.NewScanner(nil), nil, logger, nil).Rewrite(mappingOf(t, Pair{"app.js", "1111.js"}))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Rewritten)
	assert.Equal(t, 1, stats.Skipped)
	assert.Contains(t, logs.String(), "failed to write file")

	tree := testutil.ReadTree(t, root)
	assert.Equal(t, "see app.js", tree["locked/page.html"])
	assert.Equal(t, "see 1111.js", tree["open/page.html"])
}

type failingLister struct{}

func (failingLister) Files(string) ([]string, error) {
	return nil, errors.New("boom")
}

func TestRewriter_TreeScanFailure(t *testing.T) {
	_, err := NewRewriter(t.TempDir(), failingLister{}, nil, nil, nil).Rewrite(mappingOf(t, Pair{"a.js", "b.js"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTreeScan)
}

func TestRewriter_EmptyMappingDoesNothing(t *testing.T) {
	stats, err := NewRewriter(t.TempDir(), failingLister{}, nil, nil, nil).Rewrite(NewMapping())
	require.NoError(t, err)
	assert.Equal(t, RewriteStats{}, stats)
}

func TestRewriter_DiffOutput(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"pages/index.html": "<script src=\"app.js\"></script>\n"})

	var out bytes.Buffer
	_, err := NewRewriter(root, scan.NewScanner(nil), nil, nil, &out).Rewrite(mappingOf(t, Pair{"app.js", "1111.js"}))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "--- a/pages/index.html")
	assert.Contains(t, out.String(), "-<script src=\"app.js\"></script>")
	assert.Contains(t, out.String(), "+<script src=\"1111.js\"></script>")
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		pairs     []Pair
		want      string
		wantCount int
	}{
		{
			name:      "no match",
			input:     "hello",
			pairs:     []Pair{{"app.js", "1.js"}},
			want:      "hello",
			wantCount: 0,
		},
		{
			name:      "every occurrence",
			input:     "app.js app.js/app.js",
			pairs:     []Pair{{"app.js", "1.js"}},
			want:      "1.js 1.js/1.js",
			wantCount: 3,
		},
		{
			name:      "no boundary awareness",
			input:     "vendor-app.js",
			pairs:     []Pair{{"app.js", "1.js"}},
			want:      "vendor-1.js",
			wantCount: 1,
		},
		{
			name:      "pairs applied in order",
			input:     "main.js main.js.map",
			pairs:     []Pair{{"main.js", "m.js"}, {"m.js.map", "x.map"}},
			want:      "m.js x.map",
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := Substitute([]byte(tt.input), tt.pairs)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"ambient/internal/kv"
	"ambient/internal/notes/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idLine = regexp.MustCompile(`(?m)^ID: (\S+)$`)

type env struct {
	dataDir   string
	exportDir string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"AMBIENT_DATA_DIR", "AMBIENT_EXPORT_DIR", "AMBIENT_STORAGE", "AMBIENT_EXPORT_FILE", "AMBIENT_STORAGE_KEY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	root := t.TempDir()
	return &env{dataDir: filepath.Join(root, "data"), exportDir: filepath.Join(root, "export")}
}

func (e *env) run(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--data-dir", e.dataDir, "--export-dir", e.exportDir}, args...)
	code := Run(full, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func (e *env) exportFile(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(e.exportDir, data.ExportFileName))
	require.NoError(t, err)
	return string(b)
}

func addNote(t *testing.T, e *env, args ...string) string {
	t.Helper()
	out, errOut, code := e.run(t, "", append([]string{"note", "add"}, args...)...)
	require.Equal(t, 0, code, errOut)
	m := idLine.FindStringSubmatch(out)
	require.NotNil(t, m, out)
	return m[1]
}

func TestAdd_WritesExport(t *testing.T) {
	e := newEnv(t)

	id := addNote(t, e, "Drones", "--date", "2024-01-05", "--content", "slow pads")

	assert.Equal(t, "x 2024-01-05 Drones #hash:"+id+"\nslow pads\n", e.exportFile(t))
}

func TestAdd_TitleFromSeveralArgs(t *testing.T) {
	e := newEnv(t)

	id := addNote(t, e, "Tape", "loop", "hiss", "--date", "2024-02-01", "--content", "c")

	assert.Contains(t, e.exportFile(t), "x 2024-02-01 Tape loop hiss #hash:"+id+"\n")
}

func TestAdd_ContentFromStdin(t *testing.T) {
	e := newEnv(t)

	out, errOut, code := e.run(t, "first line\nsecond line\n", "note", "add", "Hiss", "--date", "2024-03-01", "--content", "-")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Added: Hiss")
	assert.Contains(t, e.exportFile(t), "\nfirst line\nsecond line\n")
}

func TestAdd_CRLFContentRoundTrips(t *testing.T) {
	e := newEnv(t)

	out, errOut, code := e.run(t, "first line\r\nsecond line\r\n", "note", "add", "Hiss", "--date", "2024-03-01", "--content", "-")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Added: Hiss")
	assert.NotContains(t, e.exportFile(t), "\r")

	out, errOut, code = e.run(t, "", "check")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "In sync")
}

func TestAdd_MissingContentFails(t *testing.T) {
	e := newEnv(t)

	_, errOut, code := e.run(t, "", "note", "add", "Drones", "--date", "2024-01-05")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "content")

	_, err := os.Stat(filepath.Join(e.exportDir, data.ExportFileName))
	assert.True(t, os.IsNotExist(err), "export must not be written for an invalid draft")
}

func TestAdd_InvalidDateFails(t *testing.T) {
	e := newEnv(t)

	_, errOut, code := e.run(t, "", "note", "add", "Drones", "--date", "someday", "--content", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid date")
}

func TestAdd_NewestFirst(t *testing.T) {
	e := newEnv(t)

	first := addNote(t, e, "A", "--date", "2024-01-01", "--content", "a")
	second := addNote(t, e, "B", "--date", "2024-01-02", "--content", "b")

	want := "x 2024-01-02 B #hash:" + second + "\nb\n\nx 2024-01-01 A #hash:" + first + "\na\n"
	assert.Equal(t, want, e.exportFile(t))
}

func TestEdit_KeepsUnchangedFields(t *testing.T) {
	e := newEnv(t)
	id := addNote(t, e, "Drones", "--date", "2024-01-05", "--content", "slow pads")

	out, errOut, code := e.run(t, "", "note", "edit", id[:8], "--title", "Deep Drones")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Updated: Deep Drones")

	assert.Equal(t, "x 2024-01-05 Deep Drones #hash:"+id+"\nslow pads\n", e.exportFile(t))
}

func TestEdit_NothingToChange(t *testing.T) {
	e := newEnv(t)
	id := addNote(t, e, "Drones", "--date", "2024-01-05", "--content", "slow pads")

	_, errOut, code := e.run(t, "", "note", "edit", id)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "nothing to change")
}

func TestEdit_UnknownID(t *testing.T) {
	e := newEnv(t)

	_, errOut, code := e.run(t, "", "note", "edit", "deadbeef", "--title", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "note not found")
}

func TestList(t *testing.T) {
	e := newEnv(t)

	out, _, code := e.run(t, "", "note", "list")
	require.Equal(t, 0, code)
	assert.Equal(t, "No notes found.\n", out)

	addNote(t, e, "Drones", "--date", "2024-01-05", "--content", "slow pads\nmore")
	out, _, code = e.run(t, "", "note", "ls")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "2024-01-05 Drones")
	assert.Contains(t, out, "slow pads …")
	assert.Contains(t, out, "\n1 note(s)\n")
}

func TestShow(t *testing.T) {
	e := newEnv(t)
	id := addNote(t, e, "Drones", "--date", "2024-01-05", "--content", "slow pads")

	out, _, code := e.run(t, "", "note", "show", id)
	require.Equal(t, 0, code)
	assert.Equal(t, "x 2024-01-05 Drones #hash:"+id+"\nslow pads\n", out)
}

func TestExport_Stdout(t *testing.T) {
	e := newEnv(t)
	id := addNote(t, e, "Drones", "--date", "2024-01-05", "--content", "slow pads")

	out, _, code := e.run(t, "", "export", "--stdout")
	require.Equal(t, 0, code)
	assert.Equal(t, "x 2024-01-05 Drones #hash:"+id+"\nslow pads\n", out)
}

func TestExport_RewritesFileAndHTML(t *testing.T) {
	e := newEnv(t)
	id := addNote(t, e, "Drones", "--date", "2024-01-05", "--content", "slow pads")
	exportPath := filepath.Join(e.exportDir, data.ExportFileName)
	require.NoError(t, os.Remove(exportPath))

	htmlPath := filepath.Join(t.TempDir(), "ideas.html")
	out, errOut, code := e.run(t, "", "export", "--html", htmlPath)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Exported 1 note(s)")

	assert.Equal(t, "x 2024-01-05 Drones #hash:"+id+"\nslow pads\n", e.exportFile(t))
	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Drones")
}

func TestCheck(t *testing.T) {
	e := newEnv(t)
	addNote(t, e, "Drones", "--date", "2024-01-05", "--content", "slow pads")

	out, _, code := e.run(t, "", "check")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "In sync")

	require.NoError(t, os.WriteFile(filepath.Join(e.exportDir, data.ExportFileName), nil, 0644))
	out, errOut, code := e.run(t, "", "check")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Missing from export")
	assert.Contains(t, errOut, "out of sync")
}

func TestSQLiteStorage(t *testing.T) {
	e := newEnv(t)

	id := addNote(t, e, "--storage", "sqlite", "Drones", "--date", "2024-01-05", "--content", "slow pads")

	_, err := os.Stat(filepath.Join(e.dataDir, kv.DBFileName))
	require.NoError(t, err)

	out, _, code := e.run(t, "", "--storage", "sqlite", "note", "show", id)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "#hash:"+id)
}

func TestUnusableExportDirLeavesStoreUntouched(t *testing.T) {
	e := newEnv(t)
	// a regular file where the export directory should be
	require.NoError(t, os.MkdirAll(filepath.Dir(e.exportDir), 0755))
	require.NoError(t, os.WriteFile(e.exportDir, []byte("x"), 0644))

	_, errOut, code := e.run(t, "", "note", "add", "Drones", "--date", "2024-01-05", "--content", "c")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, errOut)

	_, err := os.Stat(filepath.Join(e.dataDir, data.StorageKey+".json"))
	assert.True(t, os.IsNotExist(err))
}

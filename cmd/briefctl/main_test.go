package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/testutil"
	"github.com/xavierca1/saint-brief/internal/usecase"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brief.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 4, 18, 30, 0, 0, time.UTC)
}

func TestHeadersCmd(t *testing.T) {
	out, err := run(t, newRootCmd(), "headers")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	headers := entity.SheetHeaders()
	require.Len(t, lines, len(headers)+1)
	assert.Contains(t, lines[0], "versão "+entity.HeaderVersion)
	assert.Contains(t, lines[1], headers[0])
}

// TestScopeDraftCmdFromExport - lê o JSON do export
func TestScopeDraftCmdFromExport(t *testing.T) {
	data, err := entity.Serialize(testutil.CompleteBrief(t))
	require.NoError(t, err)
	path := writeFile(t, data)

	root := &cobra.Command{Use: "briefctl"}
	root.AddCommand(newScopeDraftCmd(fixedNow))

	out, err := run(t, root, "scope-draft", "--file", path, "--lang", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "Dra. Ana López")
	// 18:30 UTC ainda é dia 4 na Cidade do México
	assert.Contains(t, out, "04/03/2026")
}

// TestScopeDraftCmdFromDraftRecord - aceita o registro do autosave
func TestScopeDraftCmdFromDraftRecord(t *testing.T) {
	b := testutil.DraftBrief(t)
	data, err := usecase.EncodeDraft(b, fixedNow())
	require.NoError(t, err)
	path := writeFile(t, data)

	root := &cobra.Command{Use: "briefctl"}
	root.AddCommand(newScopeDraftCmd(fixedNow))

	out, err := run(t, root, "scope-draft", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Dra. Ana López")
	assert.Contains(t, out, b.ID)
}

func TestScopeDraftCmdErrors(t *testing.T) {
	newRoot := func() *cobra.Command {
		root := &cobra.Command{Use: "briefctl", SilenceUsage: true}
		root.AddCommand(newScopeDraftCmd(fixedNow))
		return root
	}

	_, err := run(t, newRoot(), "scope-draft")
	require.Error(t, err)

	path := writeFile(t, []byte(`{"id":"x"}`))
	_, err = run(t, newRoot(), "scope-draft", "--file", path)
	require.Error(t, err)

	data, err := entity.Serialize(testutil.CompleteBrief(t))
	require.NoError(t, err)
	_, err = run(t, newRoot(), "scope-draft", "--file", writeFile(t, data), "--lang", "pt")
	assert.ErrorContains(t, err, "idioma não suportado")

	_, err = run(t, newRoot(), "scope-draft", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "erro ao ler")
}

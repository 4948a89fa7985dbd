package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/uniresp/response"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "statuses.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCatalogCommand(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, err := run(t, "catalog")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		assert.Len(t, lines, response.DefaultCatalog.Len())
		assert.Equal(t, "100\tContinue", lines[0])
		assert.Equal(t, "511\tNetwork Authentication Required", lines[len(lines)-1])
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "catalog", "--format", "json")
		require.NoError(t, err)

		var entries []catalogEntry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		assert.Len(t, entries, 60)
		assert.Equal(t, catalogEntry{Status: 200, Text: "OK"}, entries[3])
	})

	t.Run("yaml errors catalog", func(t *testing.T) {
		out, err := run(t, "catalog", "-f", "yaml", "--catalog", "errors")
		require.NoError(t, err)

		var entries []catalogEntry
		require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
		require.Len(t, entries, 11)
		assert.Equal(t, 200, entries[0].Status)
		assert.Equal(t, 500, entries[10].Status)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "catalog", "--format", "toml")
		assert.EqualError(t, err, `unknown format "toml"`)
	})

	t.Run("unknown catalog", func(t *testing.T) {
		_, err := run(t, "catalog", "--catalog", "mine")
		assert.EqualError(t, err, `unknown catalog "mine"`)
	})
}

func TestCheckCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := writeFile(t, "statuses: [200, 201, 502]\n")

		out, err := run(t, "check", path)
		require.NoError(t, err)
		assert.Contains(t, out, "3 statuses ok")
	})

	t.Run("unsupported", func(t *testing.T) {
		path := writeFile(t, "statuses: [200, 999, 299]\n")

		_, err := run(t, "check", path)
		var unsupported *response.UnsupportedStatusError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, []int{299, 999}, unsupported.Unsupported)
		assert.Len(t, unsupported.Supported, 60)
	})

	t.Run("unsupported in errors catalog", func(t *testing.T) {
		path := writeFile(t, "statuses: [200, 201]\n")

		_, err := run(t, "check", "--catalog", "errors", path)
		var unsupported *response.UnsupportedStatusError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, []int{201}, unsupported.Unsupported)
	})

	t.Run("duplicate", func(t *testing.T) {
		path := writeFile(t, "statuses: [200, 404, 200]\n")

		_, err := run(t, "check", path)
		var dup *response.DuplicateStatusError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, 200, dup.Status)
	})

	t.Run("empty", func(t *testing.T) {
		path := writeFile(t, "statuses: []\n")

		_, err := run(t, "check", path)
		assert.ErrorContains(t, err, "no statuses declared")
	})

	t.Run("malformed", func(t *testing.T) {
		path := writeFile(t, "statuses: [200\n")

		_, err := run(t, "check", path)
		assert.ErrorContains(t, err, "unable to parse")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "check", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("no arguments", func(t *testing.T) {
		_, err := run(t, "check")
		assert.Error(t, err)
	})
}

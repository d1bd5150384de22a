package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTOML_SectionsSorted(t *testing.T) {
	data, err := EncodeTOML(DefaultConfig())
	require.NoError(t, err)

	var headers []string
	for _, line := range strings.Split(string(data), "\n") {
		if m := sectionHeader.FindStringSubmatch(line); m != nil {
			headers = append(headers, m[1])
		}
	}
	assert.Equal(t, []string{"codec", "layout", "logging", "server", "storage"}, headers)
	assert.True(t, strings.HasSuffix(string(data), "\n"))
	assert.False(t, strings.HasSuffix(string(data), "\n\n"))
}

func TestEncodeTOML_DecodesBack(t *testing.T) {
	want := DefaultConfig()
	want.Codec.ContentTypes = []string{"editor"}
	data, err := EncodeTOML(want)
	require.NoError(t, err)

	var got Config
	require.NoError(t, toml.Unmarshal(data, &got))
	assert.Equal(t, want, &got)
}

func TestSortTOMLSections_KeepsPreamble(t *testing.T) {
	in := "title = \"x\"\n\n[b]\nk = 1\n\n[a]\nk = 2\n"
	assert.Equal(t, "title = \"x\"\n\n[a]\nk = 2\n\n[b]\nk = 1\n", sortTOMLSections(in))
}

func TestWriteConfigOrdered_NilConfig(t *testing.T) {
	assert.Error(t, WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "c.toml")))
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"center_zone"`)
	assert.Contains(t, string(data), `"unknown_content"`)

	path, err := WriteSchemaFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "config.schema.json", filepath.Base(path))
}

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glesirok/pytestid/pkg/engine"
)

const sampleManifest = `
requests:
  - action: to_native
    selector: "tests/test_a.py?TestA/test_x/[1-2]"
  - action: normalize
    node_id: "tests/test_a.py::TestA::test_x[1-2]"
  - action: to_selector
    item:
      location:
        path: tests/test_b.py
        line: 7
        name: TestB.test_y
where:
  path: "tests/**"
  name_not_in: [TestA/test_skip]
`

func TestLoad(t *testing.T) {
	m, err := Load([]byte(sampleManifest))
	require.NoError(t, err)

	require.Len(t, m.Requests, 3)
	assert.Equal(t, engine.ActionToNative, m.Requests[0].Action)
	assert.Equal(t, "tests/test_a.py?TestA/test_x/[1-2]", m.Requests[0].Selector)
	assert.Equal(t, "tests/test_a.py::TestA::test_x[1-2]", m.Requests[1].NodeID)
	require.NotNil(t, m.Requests[2].Item)
	assert.Equal(t, 7, m.Requests[2].Item.Location.Line)
	assert.Equal(t, "TestB.test_y", m.Requests[2].Item.Location.Name)
	require.NotNil(t, m.Where)
	assert.Equal(t, []string{"TestA/test_skip"}, m.Where.NameNotIn)
}

func TestLoadJSONWithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"requests":[{"action":"normalize","node_id":"a.py::b"}]}`)...)

	m, err := Load(data)
	require.NoError(t, err)
	require.Len(t, m.Requests, 1)
	assert.Equal(t, "a.py::b", m.Requests[0].NodeID)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		message string
	}{
		{"bad yaml", "requests: [", "unmarshal yaml"},
		{"unknown action", "requests:\n  - action: rename\n", "request 0: unknown action: rename"},
		{"missing selector", "requests:\n  - action: to_native\n", "request 0: selector is required"},
		{"missing node id", "requests:\n  - action: normalize\n", "request 0: node_id is required"},
		{"missing item", "requests:\n  - action: to_selector\n", "request 0: item is required"},
		{"empty item", "requests:\n  - action: to_selector\n    item: {class: A}\n", "request 0: item needs one of"},
		{"path without name", "requests:\n  - action: to_selector\n    item: {path: a.py}\n", "item.name is required"},
		{"bad where", "requests: []\nwhere:\n  name_regex: \"(\"\n", "where: invalid name_regex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadFromFileResolvesProjectRoot(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project_root: repo\nrequests: []\n"), 0644))

	m, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "repo"), m.ProjectRoot)

	path = filepath.Join(dir, "default.yaml")
	require.NoError(t, os.WriteFile(path, []byte("requests: []\n"), 0644))

	m, err = LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, dir, m.ProjectRoot)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read file")
}

func TestLoadFromFileResolvesItemPath(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "manifest.yaml")
	content := "requests:\n" +
		"  - action: to_selector\n    item: {path: tests/test_a.py, name: test_x}\n" +
		"  - action: to_selector\n    item: {path: /abs/test_b.py, name: test_y}\n" +
		"  - action: to_selector\n    item: {node_id: \"c.py::test_z\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, m.Requests, 3)
	assert.Equal(t, filepath.Join(dir, "tests", "test_a.py"), m.Requests[0].Item.Path)
	assert.Equal(t, "/abs/test_b.py", m.Requests[1].Item.Path)
	assert.Empty(t, m.Requests[2].Item.Path)
}

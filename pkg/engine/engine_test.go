package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glesirok/pytestid/pkg/caseid"
)

func TestApply(t *testing.T) {
	root := t.TempDir()
	e := NewEngine(root)

	tests := []struct {
		name     string
		req      *Request
		input    string
		output   string
		selector string
	}{
		{
			name:     "to native",
			req:      &Request{Action: ActionToNative, Selector: "tests/test_a.py?TestA/test_x/[1-2]"},
			input:    "tests/test_a.py?TestA/test_x/[1-2]",
			output:   "tests/test_a.py::TestA::test_x[1-2]",
			selector: "tests/test_a.py?TestA/test_x/[1-2]",
		},
		{
			name:     "normalize",
			req:      &Request{Action: ActionNormalize, NodeID: "tests/test_a.py::TestA::test_x[1-2]"},
			input:    "tests/test_a.py::TestA::test_x[1-2]",
			output:   "tests/test_a.py?TestA/test_x/[1-2]",
			selector: "tests/test_a.py?TestA/test_x/[1-2]",
		},
		{
			name: "to selector by path",
			req: &Request{Action: ActionToSelector, Item: &caseid.Item{
				Path:  filepath.Join(root, "tests", "test_a.py"),
				Class: "TestA",
				Name:  "test_x",
			}},
			input:    filepath.Join(root, "tests", "test_a.py") + "::TestA::test_x",
			output:   "tests/test_a.py?TestA/test_x",
			selector: "tests/test_a.py?TestA/test_x",
		},
		{
			name: "to selector by location",
			req: &Request{Action: ActionToSelector, Item: &caseid.Item{
				Location: caseid.Location{Path: "test_b.py", Line: 3, Name: "TestB.test_y"},
			}},
			input:    "test_b.py:3:TestB.test_y",
			output:   "test_b.py?TestB/test_y",
			selector: "test_b.py?TestB/test_y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Apply(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.req.Action, res.Action)
			assert.Equal(t, tt.input, res.Input)
			assert.Equal(t, tt.output, res.Output)
			assert.Equal(t, tt.selector, res.Selector)
		})
	}
}

func TestApplyErrors(t *testing.T) {
	e := NewEngine("")

	_, err := e.Apply(&Request{Action: "rename"})
	assert.EqualError(t, err, "unknown action: rename")

	_, err = e.Apply(&Request{Action: ActionToNative})
	assert.Error(t, err)

	_, err = e.Apply(&Request{Action: ActionToSelector})
	assert.Error(t, err)

	_, err = e.Apply(&Request{Action: ActionNormalize, NodeID: "tests/test_a.py"})
	assert.ErrorIs(t, err, caseid.ErrMalformedNodeID)
}

func TestRequestInput(t *testing.T) {
	assert.Equal(t, "a.py?x", (&Request{Action: ActionToNative, Selector: "a.py?x"}).Input())
	assert.Equal(t, "a.py::x", (&Request{Action: ActionNormalize, NodeID: "a.py::x"}).Input())
	assert.Equal(t, "broken", (&Request{Action: ActionToSelector, Item: &caseid.Item{NodeID: "broken"}}).Input())
	assert.Equal(t, "a.py::A::x", (&Request{Action: ActionToSelector, Item: &caseid.Item{Path: "a.py", Class: "A", Name: "x"}}).Input())
	assert.Empty(t, (&Request{Action: ActionToSelector}).Input())
	assert.Empty(t, (&Request{Action: "rename"}).Input())
}

func TestEngineProjectRoot(t *testing.T) {
	assert.Equal(t, "/work/repo", NewEngine("/work/repo").ProjectRoot())
}

package plan

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() Plan {
	return Plan{Nodes: []Node{
		Dir("app",
			Dir("utils", File("calc.py", "x = 1")),
			Dir("routers"),
			File("__init__.py", ""),
		),
		File("README.md", "# readme"),
	}}
}

func TestWalkOrder(t *testing.T) {
	var got []string
	err := samplePlan().Walk(func(rel string, n Node) error {
		got = append(got, n.Kind.String()+":"+rel)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"dir:app",
		"dir:app/utils",
		"file:app/utils/calc.py",
		"dir:app/routers",
		"file:app/__init__.py",
		"file:README.md",
	}, got)
}

func TestWalkStopsOnError(t *testing.T) {
	stop := errors.New("stop")
	var visited int
	err := samplePlan().Walk(func(rel string, _ Node) error {
		visited++
		if rel == "app/utils" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, visited)
}

func TestCount(t *testing.T) {
	dirs, files := samplePlan().Count()
	assert.Equal(t, 3, dirs)
	assert.Equal(t, 3, files)

	dirs, files = Plan{}.Count()
	assert.Zero(t, dirs)
	assert.Zero(t, files)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "dir", KindDir.String())
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRegistryTargets(t *testing.T) {
	reg := buildRegistry()
	assert.Equal(t, []string{
		"pipeline.detect",
		"pipeline.export",
		"pipeline.install",
		"pipeline.train",
		"workspace.setup",
	}, reg.Targets())
}

func TestBuildRootMenuLayout(t *testing.T) {
	root := buildRootMenu(buildRegistry(), "")

	require.Equal(t, "YOLO Venv Manager", root.Title)
	assert.Equal(t, "Welcome to the YOLO Venv Management System", root.Header)
	assert.Equal(t, "Select an option to continue", root.Footer)
	assert.Nil(t, root.Parent())
}

func TestKwargsDropsEmptyStrings(t *testing.T) {
	got := kwargs(map[string]interface{}{
		"config":      "",
		"data":        "data.yaml",
		"interactive": false,
		"epochs":      0,
	})
	assert.NotContains(t, got, "config")
	assert.Equal(t, "data.yaml", got["data"])
	assert.Equal(t, false, got["interactive"])
	assert.Equal(t, 0, got["epochs"])
}

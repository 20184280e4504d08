package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/flatpress/content"
)

func TestRunNewScaffoldsSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-blog")

	require.NoError(t, runNew(dir))

	env, err := os.ReadFile(filepath.Join(dir, ".env.example"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "SITE_NAME=My Blog")
	assert.NotContains(t, string(env), "{{")
	assert.FileExists(t, filepath.Join(dir, "README.md"))
	assert.FileExists(t, filepath.Join(dir, "public", "robots.txt"))

	store, err := content.Open(filepath.Join(dir, "blogs"))
	require.NoError(t, err)
	post, err := store.Find("hello-world")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(post.Content, "This is the first post on My Blog."))
}

func TestRunNewRefusesExistingDirectory(t *testing.T) {
	assert.Error(t, runNew(t.TempDir()))
}

func TestToTitle(t *testing.T) {
	assert.Equal(t, "My Blog", toTitle("my-blog"))
	assert.Equal(t, "Myblog", toTitle("myblog"))
}

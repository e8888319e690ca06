package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"sunset", "golden hour"}, splitTags("sunset, golden hour"))
	assert.Equal(t, []string{"one"}, splitTags(" one ,, ,"))
	assert.Nil(t, splitTags(""))
	assert.Nil(t, splitTags(" , "))
}

func TestMakeThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpg")
	img := imaging.New(1600, 900, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	require.NoError(t, imaging.Save(img, src))

	name, err := makeThumbnail(src, 480)
	require.NoError(t, err)
	assert.Equal(t, "thumb_photo.jpg", name)

	thumb, err := imaging.Open(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, 480, thumb.Bounds().Dx())
}

func TestMakeThumbnail_SmallImageKeptAsIs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "small.png")
	require.NoError(t, imaging.Save(imaging.New(120, 80, color.NRGBA{A: 255}), src))

	name, err := makeThumbnail(src, 480)
	require.NoError(t, err)
	thumb, err := imaging.Open(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 80), thumb.Bounds())
}

func TestMakeThumbnail_NotAnImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "junk.jpg")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0o644))
	_, err := makeThumbnail(src, 480)
	assert.Error(t, err)
}

package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestSelectFiles_RejectsOversizedAndNonImages(t *testing.T) {
	dir := t.TempDir()
	small1 := writeTemp(t, dir, "a.jpg", 100)
	small2 := writeTemp(t, dir, "b.png", 100)
	big := writeTemp(t, dir, "c.jpg", maxFileBytes)

	valid, rejected := selectFiles([]string{small1, small2, big})
	assert.Equal(t, []string{small1, small2}, valid)
	assert.Equal(t, []string{big}, rejected)
}

func TestSelectFiles_NonImageExtension(t *testing.T) {
	dir := t.TempDir()
	doc := writeTemp(t, dir, "notes.txt", 10)
	img := writeTemp(t, dir, "ok.jpeg", 10)

	valid, rejected := selectFiles([]string{doc, img})
	assert.Equal(t, []string{img}, valid)
	assert.Equal(t, []string{doc}, rejected)
}

func TestSelectFiles_MissingFile(t *testing.T) {
	valid, rejected := selectFiles([]string{"/does/not/exist.jpg"})
	assert.Empty(t, valid)
	assert.Len(t, rejected, 1)
}

func TestProgressTracker_MeanAcrossFiles(t *testing.T) {
	tr := newProgressTracker()
	tr.register("a", 100)
	tr.register("b", 100)
	tr.add("a", 100)
	// one file complete, the other untouched: mean is 50
	assert.InDelta(t, 50.0, tr.totalPercent(), 0.001)
	tr.add("b", 50)
	assert.InDelta(t, 75.0, tr.totalPercent(), 0.001)
}

func TestUploadAll_PartialSuccess(t *testing.T) {
	dir := t.TempDir()
	good := writeTemp(t, dir, "good.jpg", 256)
	bad := writeTemp(t, dir, "bad.jpg", 256)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("image")
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		if strings.HasPrefix(header.Filename, "bad") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"success":false,"message":"rejected by server"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"photoId":11,"url":"/public/1/good.jpg"}}`))
	}))
	defer srv.Close()

	tracker := newProgressTracker()
	client := &http.Client{Timeout: 10 * time.Second}
	results := uploadAll(client, srv.URL, "tok", uploadMeta{Title: "t"}, []string{good, bad}, tracker)

	require.Len(t, results, 2)
	byFile := map[string]uploadResult{}
	for _, r := range results {
		byFile[filepath.Base(r.File)] = r
	}
	assert.True(t, byFile["good.jpg"].Success)
	assert.Equal(t, int64(11), byFile["good.jpg"].PhotoID)
	assert.Equal(t, "/public/1/good.jpg", byFile["good.jpg"].URL)
	assert.False(t, byFile["bad.jpg"].Success)
	assert.Equal(t, "rejected by server", byFile["bad.jpg"].Err)
	assert.InDelta(t, 100.0, tracker.totalPercent(), 0.001)
}

func TestUploadAll_ServerDown(t *testing.T) {
	dir := t.TempDir()
	f := writeTemp(t, dir, "x.png", 10)
	tracker := newProgressTracker()
	client := &http.Client{Timeout: time.Second}
	results := uploadAll(client, "http://127.0.0.1:1", "", uploadMeta{Title: "t"}, []string{f}, tracker)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.NotEmpty(t, results[0].Err)
}

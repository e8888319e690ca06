// Command uploadclient pushes a batch of images to the gallery upload
// endpoint. Files are filtered locally (image MIME type, 10MB ceiling), then
// uploaded concurrently; one file failing does not stop the others.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const maxFileBytes = 10 * 1024 * 1024

type uploadMeta struct {
	Title       string
	Description string
	Category    string
	Tags        string
	IsPublic    bool
}

type uploadResult struct {
	File    string
	Success bool
	PhotoID int64
	URL     string
	Err     string
}

// selectFiles mirrors the browser-side filter: keep files whose extension
// maps to an image/* MIME type and whose size is under the ceiling.
func selectFiles(paths []string) (valid, rejected []string) {
	for _, p := range paths {
		mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(p)))
		if !strings.HasPrefix(mt, "image/") {
			rejected = append(rejected, p)
			continue
		}
		info, err := os.Stat(p)
		if err != nil || info.Size() >= maxFileBytes {
			rejected = append(rejected, p)
			continue
		}
		valid = append(valid, p)
	}
	return valid, rejected
}

// progressTracker aggregates per-file byte counts into an arithmetic-mean
// total percentage across all files.
type progressTracker struct {
	mu    sync.Mutex
	total map[string]int64
	sent  map[string]int64
}

func newProgressTracker() *progressTracker {
	return &progressTracker{total: map[string]int64{}, sent: map[string]int64{}}
}

func (t *progressTracker) register(file string, size int64) {
	t.mu.Lock()
	t.total[file] = size
	t.mu.Unlock()
}

func (t *progressTracker) add(file string, n int64) {
	t.mu.Lock()
	t.sent[file] += n
	t.mu.Unlock()
}

func (t *progressTracker) totalPercent() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.total) == 0 {
		return 0
	}
	var sum float64
	for file, total := range t.total {
		if total == 0 {
			sum += 100
			continue
		}
		pct := float64(t.sent[file]) / float64(total) * 100
		if pct > 100 {
			pct = 100
		}
		sum += pct
	}
	return sum / float64(len(t.total))
}

// countingReader reports bytes as they leave for the wire.
type countingReader struct {
	r       io.Reader
	file    string
	tracker *progressTracker
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.tracker.add(c.file, int64(n))
	}
	return n, err
}

// uploadOne sends a single multipart request. Errors are captured in the
// result, never returned, so sibling uploads are unaffected.
func uploadOne(client *http.Client, endpoint, token, path string, meta uploadMeta, tracker *progressTracker) uploadResult {
	result := uploadResult{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		result.Err = err.Error()
		return result
	}
	if _, err := fw.Write(data); err != nil {
		result.Err = err.Error()
		return result
	}
	_ = mw.WriteField("title", meta.Title)
	_ = mw.WriteField("description", meta.Description)
	_ = mw.WriteField("category", meta.Category)
	_ = mw.WriteField("tags", meta.Tags)
	_ = mw.WriteField("isPublic", fmt.Sprintf("%t", meta.IsPublic))
	if err := mw.Close(); err != nil {
		result.Err = err.Error()
		return result
	}

	tracker.register(path, int64(body.Len()))
	req, err := http.NewRequest(http.MethodPost, endpoint, &countingReader{r: body, file: path, tracker: tracker})
	if err != nil {
		result.Err = err.Error()
		return result
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = int64(body.Len())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			PhotoID int64  `json:"photoId"`
			URL     string `json:"url"`
		} `json:"data"`
	}
	respBody, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(respBody, &envelope)
	if resp.StatusCode >= 300 || !envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = resp.Status
		}
		result.Err = msg
		return result
	}
	result.Success = true
	result.PhotoID = envelope.Data.PhotoID
	result.URL = envelope.Data.URL
	return result
}

// uploadAll fires every upload concurrently and joins on completion. There is
// no cancellation or retry path; a failed file is simply reported as failed.
func uploadAll(client *http.Client, endpoint, token string, meta uploadMeta, files []string, tracker *progressTracker) []uploadResult {
	results := make([]uploadResult, len(files))
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f string) {
			defer wg.Done()
			results[i] = uploadOne(client, endpoint, token, f, meta, tracker)
		}(i, f)
	}
	wg.Wait()
	return results
}

func main() {
	server := flag.String("server", "http://localhost:8081", "gallery server base URL")
	token := flag.String("token", os.Getenv("GALLERY_TOKEN"), "access token (or GALLERY_TOKEN env)")
	title := flag.String("title", "", "title applied to every uploaded photo (required)")
	description := flag.String("description", "", "photo description")
	category := flag.String("category", "other", "photo category")
	tags := flag.String("tags", "", "comma-separated tags")
	isPublic := flag.Bool("public", true, "publish photos immediately")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: uploadclient [flags] <file>...")
		os.Exit(2)
	}
	if *title == "" {
		fmt.Fprintln(os.Stderr, "a -title is required")
		os.Exit(2)
	}

	valid, rejected := selectFiles(flag.Args())
	for _, r := range rejected {
		fmt.Fprintf(os.Stderr, "skipping %s: not an image or 10MB or larger\n", r)
	}
	if len(valid) == 0 {
		fmt.Fprintln(os.Stderr, "no uploadable files selected")
		os.Exit(1)
	}

	meta := uploadMeta{
		Title:       *title,
		Description: *description,
		Category:    *category,
		Tags:        *tags,
		IsPublic:    *isPublic,
	}
	endpoint := strings.TrimRight(*server, "/") + "/api/photos/upload"
	tracker := newProgressTracker()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fmt.Printf("\rtotal progress: %5.1f%%", tracker.totalPercent())
			}
		}
	}()

	client := &http.Client{Timeout: 5 * time.Minute}
	results := uploadAll(client, endpoint, *token, meta, valid, tracker)
	close(done)
	fmt.Printf("\rtotal progress: %5.1f%%\n", tracker.totalPercent())

	var ok int
	for _, r := range results {
		if r.Success {
			ok++
			fmt.Printf("uploaded %s -> photo %d (%s)\n", r.File, r.PhotoID, r.URL)
		} else {
			fmt.Printf("failed   %s: %s\n", r.File, r.Err)
		}
	}
	fmt.Printf("%d/%d uploads succeeded\n", ok, len(results))
	if ok == 0 {
		os.Exit(1)
	}
}

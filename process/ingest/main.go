// Command ingest registers photos dropped into a local folder for a given
// photographer: each image is copied into the upload dir, thumbnailed and
// recorded, the same as an upload through the API. With -watch it keeps
// running and picks up newly created files.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"photogallery/models"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ingester struct {
	db             *gorm.DB
	photographer   models.User
	uploadBase     string
	publicBase     string
	thumbnailWidth int
	category       string
}

func main() {
	dir := flag.String("dir", "", "directory to ingest (required)")
	email := flag.String("email", "", "photographer email the photos belong to (required)")
	category := flag.String("category", models.CategoryOther, "category for ingested photos")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent workers")
	watch := flag.Bool("watch", false, "keep watching the directory for new files")
	flag.Parse()

	if *dir == "" || *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	var photographer models.User
	if err := db.Where("email = ?", strings.ToLower(*email)).First(&photographer).Error; err != nil {
		log.Fatalf("photographer %s not found: %v", *email, err)
	}

	uploadBase := os.Getenv("UPLOAD_BASE")
	if uploadBase == "" {
		uploadBase = "uploads"
	}
	width := 480
	if v := os.Getenv("THUMBNAIL_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			width = n
		}
	}
	cat := *category
	if !models.ValidCategory(cat) {
		cat = models.CategoryOther
	}

	ing := &ingester{
		db:             db,
		photographer:   photographer,
		uploadBase:     uploadBase,
		publicBase:     os.Getenv("PUBLIC_BASE_URL"),
		thumbnailWidth: width,
		category:       cat,
	}

	initial := listImageFiles(*dir)
	log.Printf("ingesting %d existing files from %s", len(initial), *dir)

	if *watch {
		fileCh := make(chan string, 256)
		go ing.runWorkerPool(*dir, *workers, fileCh)
		for _, f := range initial {
			fileCh <- f
		}
		if err := watchDirectory(*dir, fileCh); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
		return
	}

	fileCh := make(chan string, len(initial))
	for _, f := range initial {
		fileCh <- f
	}
	close(fileCh)
	ing.runWorkerPool(*dir, *workers, fileCh)
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}

// watchDirectory forwards create events for image files, debounced so that
// files still being written are not picked up mid-copy. Blocks until the
// watcher fails.
func watchDirectory(dir string, fileCh chan<- string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("watching %s (debounced) ...", dir)

	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				close(fileCh)
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				name := filepath.Base(ev.Name)
				if isSupportedExt(name) {
					pending[name] = time.Now()
				}
			}
		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) > 300*time.Millisecond { // stable
					fileCh <- name
					delete(pending, name)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				close(fileCh)
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}

func (ing *ingester) runWorkerPool(dir string, workers int, fileCh <-chan string) {
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				if err := ing.processFile(dir, name); err != nil {
					log.Printf("ingest %s: %v", name, err)
				}
			}
		}()
	}
	wg.Wait()
}

// processFile copies one image into the upload tree and records a Photo.
// Idempotent per photographer and file name.
func (ing *ingester) processFile(dir, name string) error {
	var existing models.Photo
	if err := ing.db.Where("photographer_id = ? AND title = ?", ing.photographer.ID, name).
		First(&existing).Error; err == nil {
		return nil // already ingested
	}

	subDir := strconv.FormatUint(uint64(ing.photographer.ID), 10)
	stored := uuid.New().String() + "_" + name
	dstDir := filepath.Join(ing.uploadBase, subDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(dstDir, stored)
	if err := copyFile(filepath.Join(dir, name), dst); err != nil {
		return err
	}

	thumbURL := ""
	if img, err := imaging.Open(dst); err == nil {
		if img.Bounds().Dx() > ing.thumbnailWidth {
			img = imaging.Resize(img, ing.thumbnailWidth, 0, imaging.Lanczos)
		}
		thumbName := "thumb_" + stored
		if err := imaging.Save(img, filepath.Join(dstDir, thumbName)); err == nil {
			thumbURL = ing.publicBase + "/public/" + subDir + "/" + thumbName
		}
	}

	photo := models.Photo{
		Title:          name,
		ImageURL:       ing.publicBase + "/public/" + subDir + "/" + stored,
		ThumbnailURL:   thumbURL,
		Category:       ing.category,
		PhotographerID: ing.photographer.ID,
		IsPublished:    false, // ingested photos wait for review
	}
	if err := ing.db.Create(&photo).Error; err != nil {
		return err
	}
	log.Printf("ingested %s -> photo %d", name, photo.ID)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

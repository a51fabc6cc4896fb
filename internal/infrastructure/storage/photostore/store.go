// Package photostore manages the unmanaged photo trees: per-user enrollment
// photo directories (photos/user_<id>) and per-device capture directories.
// The filesystem is the source of truth here; directory names encode
// ownership and file mtimes stand in for capture timestamps.
package photostore

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/exp/slog"
)

const (
	UploadsBase  = "/uploads"
	CapturesBase = "/captures"

	userDirPrefix  = "user_"
	sidecarExt     = ".json"
	captureTimeFmt = "20060102T150405"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type UserPhoto struct {
	UserID     int
	Filename   string
	URL        string
	CapturedAt time.Time
}

type Capture struct {
	Device     string
	PersonName string
	Filename   string
	URL        string
	CapturedAt time.Time
}

// sidecar is the optional metadata file written next to a capture image.
type sidecar struct {
	PersonName string `json:"person_name"`
	CapturedAt string `json:"captured_at"`
}

type Store struct {
	photosDir   string
	capturesDir string
	log         *slog.Logger
}

func New(photosDir, capturesDir string, log *slog.Logger) *Store {
	return &Store{
		photosDir:   photosDir,
		capturesDir: capturesDir,
		log:         log,
	}
}

func (s *Store) EnsureDirs() error {
	if err := os.MkdirAll(s.photosDir, 0o755); err != nil {
		return fmt.Errorf("create photos dir: %w", err)
	}
	if err := os.MkdirAll(s.capturesDir, 0o755); err != nil {
		return fmt.Errorf("create captures dir: %w", err)
	}
	return nil
}

func (s *Store) PhotosDir() string   { return s.photosDir }
func (s *Store) CapturesDir() string { return s.capturesDir }

// SaveUserPhoto stores an enrollment photo under the user's directory and
// returns its public URL.
func (s *Store) SaveUserPhoto(userID int, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.photosDir, userDirPrefix+strconv.Itoa(userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create user photo dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return path.Join(UploadsBase, userDirPrefix+strconv.Itoa(userID), filename), nil
}

// UserPhotoURLs lists the stored photo URLs for one user. A missing
// directory means the user simply has no photos.
func (s *Store) UserPhotoURLs(userID int) ([]string, error) {
	dir := userDirPrefix + strconv.Itoa(userID)
	entries, err := os.ReadDir(filepath.Join(s.photosDir, dir))
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read user photo dir: %w", err)
	}

	urls := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isImage(entry.Name()) {
			continue
		}
		urls = append(urls, path.Join(UploadsBase, dir, entry.Name()))
	}
	return urls, nil
}

// UserPhotos walks every user_<id> directory and emits one record per image
// file. Directories that don't follow the naming convention are skipped;
// photos are emitted even when no matching user row exists.
func (s *Store) UserPhotos() ([]UserPhoto, error) {
	dirs, err := os.ReadDir(s.photosDir)
	if os.IsNotExist(err) {
		return []UserPhoto{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read photos dir: %w", err)
	}

	photos := make([]UserPhoto, 0)
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		idPart, ok := strings.CutPrefix(dir.Name(), userDirPrefix)
		if !ok {
			continue
		}
		userID, err := strconv.Atoi(idPart)
		if err != nil {
			continue
		}

		entries, err := os.ReadDir(filepath.Join(s.photosDir, dir.Name()))
		if err != nil {
			return nil, fmt.Errorf("read user photo dir %s: %w", dir.Name(), err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !isImage(entry.Name()) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("stat photo %s: %w", entry.Name(), err)
			}
			photos = append(photos, UserPhoto{
				UserID:     userID,
				Filename:   entry.Name(),
				URL:        path.Join(UploadsBase, dir.Name(), entry.Name()),
				CapturedAt: info.ModTime().UTC(),
			})
		}
	}
	return photos, nil
}

// Captures walks per-device capture directories. Sidecar metadata is best
// effort: a missing or unparseable sidecar is logged and the image entry is
// still emitted, falling back to the file mtime.
func (s *Store) Captures() ([]Capture, error) {
	dirs, err := os.ReadDir(s.capturesDir)
	if os.IsNotExist(err) {
		return []Capture{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read captures dir: %w", err)
	}

	captures := make([]Capture, 0)
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		device := dir.Name()

		entries, err := os.ReadDir(filepath.Join(s.capturesDir, device))
		if err != nil {
			return nil, fmt.Errorf("read capture dir %s: %w", device, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !isImage(entry.Name()) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("stat capture %s: %w", entry.Name(), err)
			}

			c := Capture{
				Device:     device,
				Filename:   entry.Name(),
				URL:        path.Join(CapturesBase, device, entry.Name()),
				CapturedAt: info.ModTime().UTC(),
			}
			s.applySidecar(&c)
			captures = append(captures, c)
		}
	}
	return captures, nil
}

func (s *Store) applySidecar(c *Capture) {
	raw, err := os.ReadFile(filepath.Join(s.capturesDir, c.Device, c.Filename+sidecarExt))
	if err != nil {
		return
	}

	var meta sidecar
	if err := json.Unmarshal(raw, &meta); err != nil {
		s.log.Warn("skipping malformed capture sidecar",
			"device", c.Device, "file", c.Filename, "error", err)
		return
	}

	c.PersonName = meta.PersonName
	if meta.CapturedAt != "" {
		if ts, err := time.Parse(time.RFC3339, meta.CapturedAt); err == nil {
			c.CapturedAt = ts.UTC()
		} else {
			s.log.Warn("skipping bad captured_at in sidecar",
				"device", c.Device, "file", c.Filename, "error", err)
		}
	}
}

type CaptureInput struct {
	Device     string
	PersonName string
	CapturedAt time.Time
	Ext        string
	Data       []byte
}

type SavedCapture struct {
	Device     string
	PersonName string
	CapturedAt time.Time
	Filename   string
	URL        string
	SizeBytes  int
}

// SaveCapture stores a device upload under a sanitized device directory with
// a filename derived from timestamp and person name, plus a sidecar carrying
// the metadata for later sync builds.
func (s *Store) SaveCapture(in CaptureInput) (SavedCapture, error) {
	if len(in.Data) == 0 {
		return SavedCapture{}, fmt.Errorf("empty capture upload")
	}

	device := Slug(in.Device)
	if device == "" {
		device = "unknown"
	}
	ext := strings.ToLower(in.Ext)
	if !imageExts[ext] {
		ext = ".jpg"
	}

	dir := filepath.Join(s.capturesDir, device)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return SavedCapture{}, fmt.Errorf("create capture dir: %w", err)
	}

	filename := in.CapturedAt.UTC().Format(captureTimeFmt) + "_" + Slug(in.PersonName) + ext
	if err := os.WriteFile(filepath.Join(dir, filename), in.Data, 0o644); err != nil {
		return SavedCapture{}, fmt.Errorf("write capture: %w", err)
	}

	meta := sidecar{
		PersonName: in.PersonName,
		CapturedAt: in.CapturedAt.UTC().Format(time.RFC3339),
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return SavedCapture{}, fmt.Errorf("encode sidecar: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename+sidecarExt), raw, 0o644); err != nil {
		return SavedCapture{}, fmt.Errorf("write sidecar: %w", err)
	}

	return SavedCapture{
		Device:     device,
		PersonName: in.PersonName,
		CapturedAt: in.CapturedAt.UTC(),
		Filename:   filename,
		URL:        path.Join(CapturesBase, device, filename),
		SizeBytes:  len(in.Data),
	}, nil
}

// Slug lowercases and replaces anything outside [a-z0-9._-] with '-',
// collapsing runs. Used for device and person names in paths.
func Slug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128, r == '.', r == '_':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func isImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

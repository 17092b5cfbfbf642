package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/runwayrivets/pictopost-api/internal/ai"
	"github.com/runwayrivets/pictopost-api/internal/config"
	"github.com/runwayrivets/pictopost-api/internal/dto"
	"go.uber.org/zap"
)

const draftTimestampLayout = "20060102_150405"

var draftMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// draftService stages uploaded item photos on disk under
// <dir>/<user_id>/ until they are consumed by listing generation.
type draftService struct {
	dir           string
	maxDrafts     int
	maxUploadSize int64
	logger        *zap.Logger

	// per-user locks so concurrent uploads cannot oversubscribe the cap
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDraftService creates a new draft staging service
func NewDraftService(cfg config.StagingConfig, logger *zap.Logger) DraftService {
	return &draftService{
		dir:           cfg.Dir,
		maxDrafts:     cfg.MaxDrafts,
		maxUploadSize: cfg.MaxUploadSize,
		logger:        logger,
		locks:         map[string]*sync.Mutex{},
	}
}

func (s *draftService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

func (s *draftService) userDir(userID string) string {
	return filepath.Join(s.dir, userID)
}

// Upload stages the given files. Capacity is checked up front against held
// plus requested; on overflow nothing is written. Individual files are then
// accepted or rejected on their own merits.
func (s *draftService) Upload(ctx context.Context, userID string, files []*multipart.FileHeader) (*dto.UploadResponse, error) {
	if len(files) == 0 {
		return nil, ErrNoFilesUploaded
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	held, err := s.countDrafts(userID)
	if err != nil {
		return nil, err
	}
	if held+len(files) > s.maxDrafts {
		return nil, fmt.Errorf("%w: %d drafts held, %d requested, maximum is %d",
			ErrDraftLimitExceeded, held, len(files), s.maxDrafts)
	}

	if err := os.MkdirAll(s.userDir(userID), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	timestamp := time.Now().Format(draftTimestampLayout)
	results := make([]dto.FileUploadResult, 0, len(files))
	accepted := 0

	for _, file := range files {
		result := dto.FileUploadResult{Filename: file.Filename}

		if err := s.validateFile(file); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		stored := fmt.Sprintf("%s_%s", timestamp, filepath.Base(file.Filename))
		if err := s.saveFile(file, filepath.Join(s.userDir(userID), stored)); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.Accepted = true
		result.Stored = stored
		results = append(results, result)
		accepted++
	}

	s.logger.Info("drafts uploaded",
		zap.String("user_id", userID),
		zap.Int("accepted", accepted),
		zap.Int("rejected", len(files)-accepted))

	return &dto.UploadResponse{
		Success: true,
		Files:   results,
		Count:   accepted,
	}, nil
}

func (s *draftService) validateFile(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := draftMIMETypes[ext]; !ok {
		return fmt.Errorf("unsupported file extension %q", ext)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("content type %q is not an image", contentType)
	}

	if file.Size > s.maxUploadSize {
		return fmt.Errorf("file exceeds the %d byte upload limit", s.maxUploadSize)
	}

	return nil
}

func (s *draftService) saveFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create draft file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to write draft file: %w", err)
	}
	return nil
}

func (s *draftService) countDrafts(userID string) (int, error) {
	entries, err := os.ReadDir(s.userDir(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read staging directory: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			count++
		}
	}
	return count, nil
}

// List returns the user's staged drafts sorted by filename, which orders
// them by upload time thanks to the timestamp prefix.
func (s *draftService) List(ctx context.Context, userID string) ([]dto.DraftInfo, error) {
	entries, err := os.ReadDir(s.userDir(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return []dto.DraftInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read staging directory: %w", err)
	}

	drafts := make([]dto.DraftInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		drafts = append(drafts, dto.DraftInfo{
			Filename:   entry.Name(),
			Size:       info.Size(),
			UploadedAt: info.ModTime().UTC().Format(time.RFC3339),
		})
	}

	sort.Slice(drafts, func(i, j int) bool { return drafts[i].Filename < drafts[j].Filename })
	return drafts, nil
}

// Delete removes one staged draft
func (s *draftService) Delete(ctx context.Context, userID, filename string) error {
	path, err := s.Path(userID, filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// Path resolves a draft filename to its on-disk path, rejecting anything
// that would escape the user's staging directory.
func (s *draftService) Path(userID, filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", fmt.Errorf("%w: invalid filename %q", ErrDraftNotFound, filename)
	}

	path := filepath.Join(s.userDir(userID), filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrDraftNotFound, filename)
		}
		return "", fmt.Errorf("failed to stat draft: %w", err)
	}
	return path, nil
}

// ReadImages loads staged drafts for generation, in the order requested.
func (s *draftService) ReadImages(userID string, filenames []string) ([]ai.Image, error) {
	images := make([]ai.Image, 0, len(filenames))
	for _, filename := range filenames {
		path, err := s.Path(userID, filename)
		if err != nil {
			return nil, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read draft %s: %w", filename, err)
		}

		mimeType := draftMIMETypes[strings.ToLower(filepath.Ext(filename))]
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		images = append(images, ai.Image{Data: data, MIMEType: mimeType})
	}
	return images, nil
}

// Remove deletes consumed drafts, best effort.
func (s *draftService) Remove(userID string, filenames []string) {
	for _, filename := range filenames {
		path, err := s.Path(userID, filename)
		if err != nil {
			continue
		}
		if err := os.Remove(path); err != nil {
			s.logger.Warn("failed to remove consumed draft",
				zap.String("user_id", userID),
				zap.String("filename", filename),
				zap.Error(err))
		}
	}
}

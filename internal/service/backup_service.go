package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"wordquiz/internal/models"
	"wordquiz/internal/validation"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData is the export file layout
type BackupData struct {
	Version    string               `json:"version"`
	ExportedAt time.Time            `json:"exportedAt"`
	ProfileID  string               `json:"profileId"`
	Progress   *models.UserProgress `json:"progress"`
}

// BackupService exports and restores the progress record
type BackupService struct {
	progress  *ProgressService
	profileID string
}

// NewBackupService creates a new backup service
func NewBackupService(progress *ProgressService, profileID string) *BackupService {
	return &BackupService{
		progress:  progress,
		profileID: profileID,
	}
}

// Export writes a backup of the record to a file
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(ctx, file); err != nil {
		return err
	}

	log.Printf("Progress exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes a backup of the record to w (useful for HTTP responses)
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	progress, err := s.progress.GetProgress(ctx)
	if err != nil {
		return fmt.Errorf("failed to read progress: %w", err)
	}

	backup := &BackupData{
		Version:    BackupVersion,
		ExportedAt: s.progress.Now(),
		ProfileID:  s.profileID,
		Progress:   progress,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// Import restores the record from a backup file
func (s *BackupService) Import(ctx context.Context, inputPath string) error {
	log.Printf("Starting progress import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader restores the record from a backup reader. The record is
// validated before anything is written.
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return validation.ValidationError{Field: "backup", Message: "failed to decode backup: " + err.Error()}
	}

	if backup.Version != BackupVersion {
		return validation.ValidationError{Field: "version", Message: fmt.Sprintf("unsupported backup version %q", backup.Version)}
	}
	if backup.Progress == nil {
		return validation.ValidationError{Field: "progress", Message: "backup has no progress record"}
	}
	backup.Progress.Normalize()

	if backup.ProfileID != "" && backup.ProfileID != s.profileID {
		log.Printf("Warning: importing backup of profile %q into profile %q", backup.ProfileID, s.profileID)
	}
	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt.Format(time.RFC3339))

	if err := s.progress.ReplaceProgress(ctx, backup.Progress); err != nil {
		return fmt.Errorf("failed to import progress: %w", err)
	}

	log.Println("Progress import completed successfully")
	return nil
}

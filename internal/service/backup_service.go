package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"mindcoach/internal/database"
	"mindcoach/internal/repository"
	"mindcoach/internal/state"
)

// BackupVersion is the format version written by Export
const BackupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string        `json:"version"`
	ExportedAt   time.Time     `json:"exported_at"`
	DatabaseType string        `json:"database_type"`
	StorageKey   string        `json:"storage_key"`
	Records      []StateBackup `json:"records"`
}

// StateBackup is one user's record
type StateBackup struct {
	UserID string         `json:"user_id"`
	State  state.AppState `json:"state"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db   *database.DB
	repo *repository.StateRepository
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db, repo: repository.NewStateRepository(db)}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(ctx, file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes every user's record as indented JSON
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	backup := &BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.MigrationsSubdir(),
		StorageKey:   state.StorageKey,
		Records:      []StateBackup{},
	}

	userIDs, err := s.repo.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to export records: %w", err)
	}
	for _, userID := range userIDs {
		st, err := s.repo.Load(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to export records: %w", err)
		}
		if st == nil {
			continue
		}
		backup.Records = append(backup.Records, StateBackup{UserID: userID, State: *st})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported %d records", len(backup.Records))
	return nil
}

// Import restores records from a backup file
func (s *BackupService) Import(ctx context.Context, inputPath string) (int, error) {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader restores records in a single transaction. Existing users are overwritten.
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader) (int, error) {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return 0, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return 0, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	log.Printf("Backup version: %s, exported at: %s, source: %s",
		backup.Version, backup.ExportedAt.Format(time.RFC3339), backup.DatabaseType)

	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		repo := s.repo.WithTx(tx)
		for _, r := range backup.Records {
			if r.UserID == "" {
				return fmt.Errorf("backup contains a record without user_id")
			}
			if err := repo.Save(ctx, r.UserID, r.State); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import records: %w", err)
	}

	log.Printf("Imported %d records", len(backup.Records))
	return len(backup.Records), nil
}

// Clear deletes every stored record
func (s *BackupService) Clear(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	log.Printf("Cleared %d records", removed)
	return removed, nil
}

// Count returns the number of stored records
func (s *BackupService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

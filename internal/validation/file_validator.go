package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "basketcli/internal/errors"
)

// FileValidator performs pre-flight checks on input tables and output
// locations so a misconfigured run fails before any table is parsed.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputTable checks that path points to a readable, non-empty CSV file.
func (v *FileValidator) ValidateInputTable(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("input table does not exist",
			slog.String("path", path))
		return apperrors.NewDataSourceError("input table does not exist", err).
			WithContext("path", path)
	}
	if err != nil {
		return apperrors.NewDataSourceError("failed to stat input table", err).
			WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("input table path is a directory",
			slog.String("path", path))
		return apperrors.NewDataSourceError("input table path is a directory", nil).
			WithContext("path", path)
	}
	if info.Size() == 0 {
		v.logger.Error("input table is empty",
			slog.String("path", path))
		return apperrors.NewDataSourceError("input table is empty", nil).
			WithContext("path", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		v.logger.Warn("input table does not have a .csv extension",
			slog.String("path", path),
			slog.String("extension", ext))
	}

	v.logger.Debug("input table validated",
		slog.String("path", path),
		slog.Int64("size_bytes", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures the output directory exists and is writable,
// creating it when missing.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to create output directory", err).
			WithContext("directory", dir)
	}

	probe := filepath.Join(dir, ".write_test")
	file, err := os.Create(probe)
	if err != nil {
		v.logger.Error("output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not writable", err).
			WithContext("directory", dir)
	}
	file.Close()
	os.Remove(probe)

	return nil
}

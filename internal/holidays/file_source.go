package holidays

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileSource implements Source using a local text file
type FileSource struct {
	filePath string
	logger   *zap.Logger
	data     []Holiday
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
	}
}

// Load loads holidays from file
func (fs *FileSource) Load() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var data []Holiday

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD type [note]
		// Example: 2004-05-17 recurring Constitution Day
		// The year of a recurring entry is ignored.
		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 2 {
			fs.logger.Warn("Invalid line format", zap.String("line", line))
			continue
		}

		date, err := time.Parse("2006-01-02", parts[0])
		if err != nil {
			fs.logger.Warn("Failed to parse date", zap.String("date", parts[0]), zap.Error(err))
			continue
		}

		holiday := Holiday{Date: date}
		if len(parts) == 3 {
			holiday.Note = parts[2]
		}

		switch parts[1] {
		case "holiday":
		case "recurring":
			holiday.Recurring = true
		default:
			fs.logger.Warn("Unknown holiday type", zap.String("type", parts[1]))
			continue
		}

		data = append(data, holiday)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fs.data = data

	fs.logger.Info("Holiday file loaded",
		zap.String("file", fs.filePath),
		zap.Int("holidays", len(fs.data)))

	return nil
}

// Holidays returns the file's holidays in the given year and all recurring ones
func (fs *FileSource) Holidays(year int) ([]Holiday, error) {
	if fs.data == nil {
		return nil, fmt.Errorf("holiday file not loaded: %s", fs.filePath)
	}

	return filterYear(fs.data, year), nil
}

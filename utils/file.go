package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveWithTimestamp writes content into uploadDir under the original
// filename with a timestamp suffix, creating the directory if needed.
// Returns the destination path.
func SaveWithTimestamp(content []byte, filename, uploadDir string) (string, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %v", err)
	}

	ext := filepath.Ext(filename)
	baseFileName := strings.TrimSuffix(filepath.Base(filename), ext)
	timestamp := time.Now().Unix()
	destFileName := sanitizeFileName(fmt.Sprintf("%s_%d%s", baseFileName, timestamp, ext))
	destPath := filepath.Join(uploadDir, destFileName)

	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}
	return destPath, nil
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}

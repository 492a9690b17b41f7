package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jgranda1999/agentic-sade/internal/core"
)

var _ core.Auditor = (*FileAuditor)(nil)

// FileAuditor writes audit entries to a file, one JSON object per
// line. Find re-reads the file so entries written by earlier runs of
// the service remain queryable.
type FileAuditor struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	encoder *json.Encoder
}

func NewFileAuditor(filePath string) (*FileAuditor, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening audit log file: %w", err)
	}
	return &FileAuditor{
		path:    filePath,
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

func (f *FileAuditor) Log(entry core.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.encoder.Encode(entry); err != nil {
		return fmt.Errorf("writing audit log entry: %w", err)
	}
	return nil
}

func (f *FileAuditor) Find(filter func(entry core.AuditEntry) bool, limit int) ([]core.AuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if limit < 0 {
		limit = 0
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening audit log file: %w", err)
	}
	defer file.Close()

	var matches []core.AuditEntry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry core.AuditEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			log.Warn().Err(err).Msg("skipping malformed audit log line")
			continue
		}
		if filter(entry) {
			matches = append(matches, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning audit log file: %w", err)
	}

	if len(matches) > limit {
		matches = matches[len(matches)-limit:]
	}
	return matches, nil
}

func (f *FileAuditor) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file.Close()
}

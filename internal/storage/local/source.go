// Package local serves documents from a directory tree laid out as one
// subfolder per provider (eon/, pgnig/, mpwik/). Document text is read from a
// .txt sidecar next to each file; text extraction itself happens upstream.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rachunki/internal/config"
	"rachunki/internal/domain"
	"rachunki/internal/port"
)

type localSource struct {
	root string
}

// NewSource creates a directory-backed DocumentSource.
func NewSource(cfg *config.SourceConfig) port.DocumentSource {
	return &localSource{root: cfg.Dir}
}

// providerDirs is ordered so listings, and with them logs and reports, come
// out the same on every run.
var providerDirs = []struct {
	dir      string
	provider domain.Provider
}{
	{"eon", domain.ProviderEON},
	{"pgnig", domain.ProviderPGNiG},
	{"mpwik", domain.ProviderMPWiK},
}

func (s *localSource) List(ctx context.Context) ([]domain.SourceDocument, error) {
	var docs []domain.SourceDocument
	for _, pd := range providerDirs {
		dir, provider := pd.dir, pd.provider
		entries, err := os.ReadDir(filepath.Join(s.root, dir))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || strings.HasSuffix(entry.Name(), ".txt") {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
			}
			docs = append(docs, domain.SourceDocument{
				Name:     entry.Name(),
				Path:     filepath.Join(s.root, dir, entry.Name()),
				Provider: provider,
				Size:     info.Size(),
				ModTime:  info.ModTime(),
			})
		}
	}
	return docs, nil
}

func (s *localSource) Text(ctx context.Context, doc domain.SourceDocument) (string, error) {
	data, err := os.ReadFile(sidecarPath(doc.Path))
	if err != nil {
		return "", fmt.Errorf("reading text for %s: %w", doc.Name, err)
	}
	return string(data), nil
}

// sidecarPath maps invoice.pdf to invoice.txt in the same directory.
func sidecarPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".txt"
}

package transform

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const wisdomVersion = 1

// DefaultWisdomPath is where the command-line tool keeps planning decisions.
const DefaultWisdomPath = "~/.config/vochorus/transform.wis"

type wisdomFile struct {
	Version int     `yaml:"version"`
	Plans   []Entry `yaml:"plans"`
}

// ExportWisdom writes every remembered decision as YAML.
func (p *Planner) ExportWisdom(w io.Writer) error {
	doc := wisdomFile{Version: wisdomVersion, Plans: p.Entries()}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("transform: encode wisdom: %w", err)
	}

	return enc.Close()
}

// ImportWisdom merges decisions read from r. Existing entries for the same
// size are replaced.
func (p *Planner) ImportWisdom(r io.Reader) error {
	var doc wisdomFile

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrWisdom, err)
	}

	if doc.Version != wisdomVersion {
		return fmt.Errorf("%w: version %d", ErrWisdom, doc.Version)
	}

	for _, e := range doc.Plans {
		if err := p.Remember(e); err != nil {
			return fmt.Errorf("%w: %w", ErrWisdom, err)
		}
	}

	return nil
}

// ImportWisdomFile reads a wisdom file. A missing file is not an error.
func (p *Planner) ImportWisdomFile(path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("transform: expand wisdom path: %w", err)
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	return p.ImportWisdom(f)
}

// ExportWisdomFile writes a wisdom file, creating parent directories.
func (p *Planner) ExportWisdomFile(path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("transform: expand wisdom path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := p.ExportWisdom(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

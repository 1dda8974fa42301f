// Package gitmodules reads submodule records from a .gitmodules file.
package gitmodules

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/ini.v1"
)

// FileName is the conventional location of the submodule metadata relative to the repository root.
const FileName = ".gitmodules"

// Record is a single section of a .gitmodules file
type Record struct {
	Section string
	URL     string
}

// Read parses the given file. A missing file is not an error and yields no records.
func Read(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if eris.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "Failed to read %s", path)
	}

	return Parse(data)
}

// Parse extracts all sections that carry a url key.
func Parse(data []byte) ([]Record, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys: true,
	}, data)
	if err != nil {
		return nil, eris.Wrap(err, "Failed to parse submodule metadata")
	}

	records := make([]Record, 0)
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection || !section.HasKey("url") {
			continue
		}

		records = append(records, Record{
			Section: section.Name(),
			URL:     section.Key("url").String(),
		})
	}

	return records, nil
}

// Contains reports whether any record points at url. The comparison is exact; trailing slashes or a
// missing .git suffix make a URL different.
func Contains(records []Record, url string) bool {
	for _, record := range records {
		if record.URL == url {
			return true
		}
	}
	return false
}

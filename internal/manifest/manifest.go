// Package manifest loads batch submissions from disk: a JSON file naming
// the declared facts and the path of each attachment. The manifest is
// validated against a schema before any file is touched, so a malformed
// batch fails fast with a field-level message.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvanroy/permit-validator/constants"
	"github.com/mvanroy/permit-validator/internal/match"
)

// Manifest mirrors the upload form for offline runs.
type Manifest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	CompanyName     string `json:"companyName"`
	CompanyNumber   string `json:"companyNumber"`
	OwnerName       string `json:"ownerName"`
	BusinessAddress string `json:"businessAddress"`

	// Documents maps attachment name to a path, relative to the manifest.
	Documents map[string]string `json:"documents"`
}

// Load reads, validates and resolves a manifest: declared facts plus the
// raw bytes of every attachment.
func Load(path string) (match.Facts, map[constants.DocumentKind][]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return match.Facts{}, nil, fmt.Errorf("read manifest: %w", err)
	}
	if err := ValidateJSONAgainstSchema(Schema(), raw); err != nil {
		return match.Facts{}, nil, err
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return match.Facts{}, nil, fmt.Errorf("decode manifest: %w", err)
	}

	facts := match.Facts{
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		CompanyName:     m.CompanyName,
		CompanyNumber:   m.CompanyNumber,
		OwnerName:       m.OwnerName,
		BusinessAddress: m.BusinessAddress,
	}

	base := filepath.Dir(path)
	docs := make(map[constants.DocumentKind][]byte, len(m.Documents))
	for name, docPath := range m.Documents {
		kind := constants.DocumentKind(name)
		if !kind.IsKnown() {
			return match.Facts{}, nil, fmt.Errorf("unknown document kind %q in manifest", name)
		}
		if !filepath.IsAbs(docPath) {
			docPath = filepath.Join(base, docPath)
		}
		data, err := os.ReadFile(docPath)
		if err != nil {
			return match.Facts{}, nil, fmt.Errorf("read attachment %s: %w", name, err)
		}
		docs[kind] = data
	}
	return facts, docs, nil
}

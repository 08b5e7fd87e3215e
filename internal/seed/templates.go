package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"docvault/internal/domain/models"
)

// TemplateFile is one entry of the static template manifest. The blobs
// behind these keys are provisioned once and shared by every tenant's
// Templates folder.
type TemplateFile struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
	URL  string `yaml:"url"`
	Size int64  `yaml:"size"`
}

// Manifest is the static provisioning manifest: the shared template
// files plus optional per-tenant-type default folder overrides.
type Manifest struct {
	Templates []TemplateFile      `yaml:"templates"`
	Folders   map[string][]string `yaml:"folders,omitempty"`
}

// LoadManifest reads the manifest from a YAML file
func LoadManifest(path string) (*Manifest, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(payload, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	return &manifest, nil
}

// defaultFolderSets is the built-in default folder list per tenant
// type, used when the manifest does not override it.
var defaultFolderSets = map[models.TenantType][]string{
	models.TenantTypeCompany: {
		"Company Documents",
		"Employee Documents",
		"Contracts",
		"Financials",
	},
	models.TenantTypeAgency: {
		"Agency Documents",
		"Client Documents",
		"Contracts",
	},
	models.TenantTypeIndividual: {
		"Personal Documents",
		"Identity",
	},
}

// FoldersFor returns the default folder names seeded for a tenant type
func (m *Manifest) FoldersFor(tenantType models.TenantType) []string {
	if m != nil {
		if names, ok := m.Folders[string(tenantType)]; ok {
			return names
		}
	}
	if names, ok := defaultFolderSets[tenantType]; ok {
		return names
	}
	return defaultFolderSets[models.TenantTypeCompany]
}

// TemplateSet is the set of shared, tenant-independent blob keys. These
// keys must never be deleted as a side effect of any tenant's folder or
// tenant deletion.
type TemplateSet struct {
	keys map[string]struct{}
}

// NewTemplateSet builds a set from explicit keys
func NewTemplateSet(keys ...string) *TemplateSet {
	set := &TemplateSet{keys: make(map[string]struct{}, len(keys))}
	for _, key := range keys {
		set.keys[key] = struct{}{}
	}
	return set
}

// TemplateSet returns the protected key set derived from the manifest
func (m *Manifest) TemplateSet() *TemplateSet {
	set := &TemplateSet{keys: make(map[string]struct{}, len(m.Templates))}
	for _, template := range m.Templates {
		set.keys[template.Key] = struct{}{}
	}
	return set
}

// Contains reports whether a key belongs to the protected set
func (s *TemplateSet) Contains(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.keys[key]
	return ok
}

// Package catalog holds the label catalog: the injectable mapping from a
// label volume's canonical name to its color identity, plus the fallback used
// for labels the catalog does not know.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"labelmesh/pkg/palette"
)

// Catalog maps label names to color identities of a single palette scheme.
type Catalog struct {
	// Scheme selects the palette variant every identity belongs to.
	Scheme palette.Scheme `yaml:"scheme" toml:"scheme"`

	// Table is the indexed color table. Ignored by the HSV ramp.
	Table palette.Table `yaml:"table,omitempty" toml:"table,omitempty"`

	// Fallback is given to labels not present in Labels. A nil Fallback
	// means palette.DefaultFallback(Scheme).
	Fallback *palette.Identity `yaml:"fallback,omitempty" toml:"fallback,omitempty"`

	// Labels maps canonical label names to identities.
	Labels map[string]palette.Identity `yaml:"labels" toml:"labels"`
}

// Resolution is the outcome of looking a label up.
type Resolution struct {
	Name     string
	Identity palette.Identity

	// Fallback is set when the label was absent and the fallback identity
	// was used instead. This is a recoverable event, not an error.
	Fallback bool
}

// New returns an empty catalog for the scheme.
func New(s palette.Scheme, table palette.Table) *Catalog {
	return &Catalog{Scheme: s, Table: table, Labels: map[string]palette.Identity{}}
}

// Add declares a label. The identity's scheme is set to the catalog's.
func (c *Catalog) Add(name string, id palette.Identity) {
	if c.Labels == nil {
		c.Labels = map[string]palette.Identity{}
	}
	id.Scheme = c.Scheme
	c.Labels[name] = id
}

// FallbackIdentity returns the identity assigned to unknown labels.
func (c *Catalog) FallbackIdentity() palette.Identity {
	if c.Fallback == nil {
		return palette.DefaultFallback(c.Scheme)
	}
	id := *c.Fallback
	id.Scheme = c.Scheme
	return id
}

// Resolve returns the identity for name, falling back for unknown labels.
func (c *Catalog) Resolve(name string) Resolution {
	if id, ok := c.Labels[name]; ok {
		id.Scheme = c.Scheme
		return Resolution{Name: name, Identity: id}
	}
	return Resolution{Name: name, Identity: c.FallbackIdentity(), Fallback: true}
}

// Names returns the declared label names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Labels))
	for name := range c.Labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Encoder returns the palette encoder matching the catalog's scheme.
func (c *Catalog) Encoder() (*palette.Encoder, error) {
	return palette.NewEncoder(c.Scheme, c.Table)
}

// Validate checks that every declared identity and the fallback can be encoded.
func (c *Catalog) Validate() error {
	enc, err := c.Encoder()
	if err != nil {
		return errors.Wrap(err, "catalog")
	}
	if err := enc.Check(c.FallbackIdentity()); err != nil {
		return errors.Wrap(err, "catalog fallback")
	}
	for _, name := range c.Names() {
		if err := enc.Check(c.Resolve(name).Identity); err != nil {
			return errors.Wrapf(err, "catalog label %q", name)
		}
	}
	return nil
}

// Load reads a catalog from a YAML (.yaml, .yml) or TOML (.toml) file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading catalog file")
	}

	c := &Catalog{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		_, err = toml.Decode(string(data), c)
	default:
		return nil, errors.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing catalog %s", path)
	}

	if c.Scheme == "" {
		c.Scheme = palette.HSVRamp
	}
	if c.Scheme == palette.Indexed && len(c.Table) == 0 {
		c.Table = palette.DefaultTable
	}
	for name, id := range c.Labels {
		id.Scheme = c.Scheme
		c.Labels[name] = id
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the catalog as YAML.
func (c *Catalog) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "error marshaling catalog")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "error writing catalog file")
	}
	return nil
}

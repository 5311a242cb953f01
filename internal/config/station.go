package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Family selects which cell-stream decoder a station's payloads go
// through. The set is closed: three source format families exist and
// new stations slot into one of them.
type Family string

const (
	// FamilyHTML is styled HTML: rows as markup elements, colors as CSS
	// classes or inline styles. Per-station markup differences are
	// handled by the Dialect field.
	FamilyHTML Family = "html"

	// FamilyFontMap is HTML whose glyphs are positions in a custom web
	// font; an auxiliary glyph-to-character map is fetched alongside
	// each page.
	FamilyFontMap Family = "html-fontmap"

	// FamilyJSON is a native JSON feed with one object per cell.
	FamilyJSON Family = "json"
)

// Styled-HTML dialects. The family shares one decoder; the dialect
// picks the station's markup conventions.
const (
	DialectZDF = "zdf"
	DialectNDR = "ndr"
	DialectSR  = "sr"
)

// Station describes one teletext source.
type Station struct {
	// Name is the station id used in session headers and filenames.
	// It must be filename-safe.
	Name string `yaml:"name"`

	// Family is the source format family.
	Family Family `yaml:"family"`

	// Dialect is the styled-HTML markup dialect. Only meaningful for
	// FamilyHTML.
	Dialect string `yaml:"dialect,omitempty"`

	// BaseURL is the root of the station's teletext service. Tests
	// point this at an httptest server.
	BaseURL string `yaml:"base_url"`

	// FontMapURL is where the glyph-to-character map is fetched from.
	// Only meaningful for FamilyFontMap.
	FontMapURL string `yaml:"font_map_url,omitempty"`

	// Mandant is the ZDF-infrastructure tenant name, e.g. "zdfinfo".
	// Only meaningful for the zdf dialect.
	Mandant string `yaml:"mandant,omitempty"`

	// Columns is the fixed grid width of the station's pages. Decoded
	// rows are filled to this width during assembly.
	Columns int `yaml:"columns"`
}

// Validate checks a station definition for completeness.
func (s Station) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidStation)
	}
	switch s.Family {
	case FamilyHTML:
		switch s.Dialect {
		case DialectZDF, DialectNDR, DialectSR:
		default:
			return fmt.Errorf("%w: station %q has unknown dialect %q", ErrInvalidStation, s.Name, s.Dialect)
		}
	case FamilyFontMap:
		if s.FontMapURL == "" {
			return fmt.Errorf("%w: station %q needs font_map_url", ErrInvalidStation, s.Name)
		}
	case FamilyJSON:
	default:
		return fmt.Errorf("%w: station %q has unknown family %q", ErrInvalidStation, s.Name, s.Family)
	}
	if s.Columns <= 0 {
		return fmt.Errorf("%w: station %q has no column count", ErrInvalidStation, s.Name)
	}
	return nil
}

// BuiltinStations returns the default station catalog.
func BuiltinStations() []Station {
	return []Station{
		{Name: "zdf", Family: FamilyHTML, Dialect: DialectZDF, BaseURL: "https://teletext.zdf.de", Mandant: "zdf", Columns: 40},
		{Name: "zdf-info", Family: FamilyHTML, Dialect: DialectZDF, BaseURL: "https://teletext.zdf.de", Mandant: "zdfinfo", Columns: 40},
		{Name: "zdf-neo", Family: FamilyHTML, Dialect: DialectZDF, BaseURL: "https://teletext.zdf.de", Mandant: "zdfneo", Columns: 40},
		{Name: "3sat", Family: FamilyFontMap, BaseURL: "https://teletext.3sat.de", FontMapURL: "https://teletext.3sat.de/fonts/glyphmap.json", Mandant: "dreisat", Columns: 40},
		{Name: "ndr", Family: FamilyHTML, Dialect: DialectNDR, BaseURL: "https://www.ndr.de/public/teletext", Columns: 40},
		{Name: "sr", Family: FamilyHTML, Dialect: DialectSR, BaseURL: "https://www.saartext.de", Columns: 40},
		{Name: "ntv", Family: FamilyJSON, BaseURL: "https://teletext.n-tv.de/teletext-api", Columns: 40},
	}
}

// stationsFile is the YAML shape of a stations override file.
type stationsFile struct {
	Stations []Station `yaml:"stations"`
}

// LoadStationsFile reads station definitions from a YAML file and
// merges them over the built-in catalog: same-name entries replace the
// built-in definition, new names are appended.
func LoadStationsFile(path string) ([]Station, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		return nil, err
	}

	var sf stationsFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse stations file %s: %w", path, err)
	}

	catalog := BuiltinStations()
	for _, st := range sf.Stations {
		if err := st.Validate(); err != nil {
			return nil, err
		}
		replaced := false
		for i := range catalog {
			if catalog[i].Name == st.Name {
				catalog[i] = st
				replaced = true
				break
			}
		}
		if !replaced {
			catalog = append(catalog, st)
		}
	}
	return catalog, nil
}

// SelectStations resolves a list of station names against the catalog.
// An empty selection means all stations.
func SelectStations(catalog []Station, names []string) ([]Station, error) {
	if len(names) == 0 {
		return catalog, nil
	}
	selected := make([]Station, 0, len(names))
	for _, name := range names {
		found := false
		for _, st := range catalog {
			if st.Name == name {
				selected = append(selected, st)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStation, name)
		}
	}
	return selected, nil
}

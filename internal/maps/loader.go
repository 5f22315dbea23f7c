package maps

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Load resolves a map by name. customDir, when set, is a directory holding
// <name>.yaml and short-circuits the search.
// Search order: customDir -> ~/.arrowfield/maps/<name>.yaml -> ./maps/<name>.yaml -> embedded default.
func Load(name, customDir string) (MapDef, error) {
	if customDir != "" {
		return loadFile(filepath.Join(customDir, name+".yaml"))
	}

	if userPath := userMapPath(name + ".yaml"); userPath != "" {
		if def, err := loadFile(userPath); err == nil {
			return def, nil
		}
	}

	if def, err := loadFile(filepath.Join("maps", name+".yaml")); err == nil {
		return def, nil
	}

	if data, ok := embeddedMaps[name]; ok {
		return parse(data)
	}

	return MapDef{}, fmt.Errorf("unknown map %q", name)
}

// List returns every built-in map definition sorted by name.
func List() []MapDef {
	defs := make([]MapDef, 0, len(embeddedMaps))
	for name, data := range embeddedMaps {
		def, err := parse(data)
		if err != nil {
			// Embedded maps are validated by tests; a parse failure here
			// means a broken build, not a user error.
			panic(fmt.Sprintf("maps: embedded map %s: %v", name, err))
		}
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Names returns the built-in map names sorted alphabetically.
func Names() []string {
	defs := List()
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	return names
}

// Exists reports whether name resolves to a built-in map.
func Exists(name string) bool {
	_, ok := embeddedMaps[name]
	return ok
}

func loadFile(path string) (MapDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MapDef{}, fmt.Errorf("reading map %s: %w", path, err)
	}
	def, err := parse(data)
	if err != nil {
		return MapDef{}, fmt.Errorf("map %s: %w", path, err)
	}
	return def, nil
}

func parse(data []byte) (MapDef, error) {
	var def MapDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return MapDef{}, fmt.Errorf("parsing map: %w", err)
	}
	if err := def.Validate(); err != nil {
		return MapDef{}, err
	}
	return def, nil
}

// userMapPath returns the per-user map path, or empty if home is unavailable.
func userMapPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arrowfield", "maps", filename)
}

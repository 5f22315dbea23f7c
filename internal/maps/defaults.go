package maps

import (
	_ "embed"
)

//go:embed defaults/default.yaml
var defaultMapYAML []byte

//go:embed defaults/cross.yaml
var crossMapYAML []byte

//go:embed defaults/garden.yaml
var gardenMapYAML []byte

// embeddedMaps holds the built-in maps shipped with the binary.
var embeddedMaps = map[string][]byte{
	"default": defaultMapYAML,
	"cross":   crossMapYAML,
	"garden":  gardenMapYAML,
}

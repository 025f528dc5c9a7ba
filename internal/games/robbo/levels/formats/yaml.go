package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLSet represents the YAML structure for a level set file.
type YAMLSet struct {
	Name   string      `yaml:"name"`
	Author string      `yaml:"author,omitempty"`
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel is one level: glyph rows plus facing overrides.
type YAMLLevel struct {
	Number     int      `yaml:"number"`
	Name       string   `yaml:"name,omitempty"`
	Size       YAMLSize `yaml:"size,omitempty"`
	Screws     int      `yaml:"screws,omitempty"`
	Rows       []string `yaml:"rows"`
	Additional []string `yaml:"additional,omitempty"` // x.y.dir[.param]
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// ParseYAML parses a level set written as YAML.
func ParseYAML(data []byte) (Set, error) {
	var ys YAMLSet
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Set{}, parseErr(0, "BAD_YAML", "%v", err)
	}
	if len(ys.Levels) == 0 {
		return Set{}, parseErr(0, "NO_LEVELS", "level set contains no levels")
	}

	set := Set{Name: ys.Name, Author: ys.Author}
	for i, yl := range ys.Levels {
		spec := levelSpec{
			number: yl.Number,
			name:   yl.Name,
			width:  yl.Size.W,
			height: yl.Size.H,
			screws: yl.Screws,
			rows:   yl.Rows,
		}
		if spec.number <= 0 {
			spec.number = i + 1
		}
		for _, raw := range yl.Additional {
			a, err := ParseAdditional(raw)
			if err != nil {
				return Set{}, parseErr(0, "BAD_ADDITIONAL", "level %d: %v", spec.number, err)
			}
			spec.additional = append(spec.additional, a)
		}
		def, err := buildLevel(spec)
		if err != nil {
			return Set{}, err
		}
		set.Levels = append(set.Levels, def)
	}
	return set, nil
}

// MarshalYAML encodes set in the YAML form ParseYAML reads.
func MarshalYAML(set Set) ([]byte, error) {
	ys := YAMLSet{Name: set.Name, Author: set.Author}
	for _, def := range set.Levels {
		yl := YAMLLevel{
			Number: def.Number,
			Name:   def.Name,
			Size:   YAMLSize{W: def.Width, H: def.Height},
			Screws: def.Screws,
			Rows:   def.Rows(),
		}
		for _, a := range additionalFor(def) {
			yl.Additional = append(yl.Additional, a.String())
		}
		ys.Levels = append(ys.Levels, yl)
	}
	out, err := yaml.Marshal(&ys)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return out, nil
}

package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/altercycle/ring"
)

// SequenceFile is the YAML input format shared by the analysis
// commands: an ordered list of elements to ingest into a ring.
type SequenceFile struct {
	Elements []SequenceElement `yaml:"elements"`
}

// SequenceElement is one element of a sequence file. When Orientation
// is absent the alternation engine computes it; when present it forces
// the tag, which is how pre-tagged captures are replayed.
type SequenceElement struct {
	Value       string         `yaml:"value"`
	Orientation *int           `yaml:"orientation,omitempty"`
	Meta        map[string]any `yaml:"meta,omitempty"`
}

// LoadSequence reads a sequence file and ingests it into a fresh ring
// with sequential handles. The ring never rejects a violating element;
// breaks surface through the validation commands.
func LoadSequence(path string) (*ring.Ring[string], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sequence: %w", err)
	}

	var sf SequenceFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("load sequence %s: %w", path, err)
	}
	if len(sf.Elements) == 0 {
		return nil, fmt.Errorf("load sequence %s: no elements", path)
	}

	r := ring.New[string](ring.WithHandleGenerator[string](ring.NewSeqGenerator()))
	for i, el := range sf.Elements {
		if el.Orientation != nil {
			if *el.Orientation != 0 && *el.Orientation != 1 {
				return nil, fmt.Errorf("load sequence %s: element %d: orientation must be 0 or 1, got %d",
					path, i+1, *el.Orientation)
			}
			if _, err := r.AppendOriented(el.Value, ring.Orientation(*el.Orientation), el.Meta); err != nil {
				return nil, fmt.Errorf("load sequence %s: element %d: %w", path, i+1, err)
			}
			continue
		}
		if _, err := r.Append(el.Value, el.Meta); err != nil {
			return nil, fmt.Errorf("load sequence %s: element %d: %w", path, i+1, err)
		}
	}
	return r, nil
}

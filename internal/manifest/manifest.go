// Package manifest reads the optional TOML file that pins artifact locations.
//
//	dataset = "data/mlm_aqi_data.csv"
//	importance_dir = "static"
//
//	[models.decision_tree]
//	artifact = "models/dt_aqi.json"
//	importance = "dt_feature_imp.svg"
package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-aqi/aqi/internal/dataset"
	"github.com/go-aqi/aqi/internal/predictor"
)

// Keys of the [models.*] tables.
const (
	KeyDecisionTree = "decision_tree"
	KeyRandomForest = "random_forest"
	KeyAdaBoost     = "adaboost"
)

type Model struct {
	Artifact   string `toml:"artifact"`
	Importance string `toml:"importance"`
}

type Manifest struct {
	Dataset       string           `toml:"dataset"`
	ImportanceDir string           `toml:"importance_dir"`
	Models        map[string]Model `toml:"models"`
}

func Load(path string) (*Manifest, error) {
	var m Manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("manifest %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &m, nil
}

// Apply overrides the configured locations with the non-empty manifest values.
func (m *Manifest) Apply(ds *dataset.Config, p *predictor.Config) error {
	if m.Dataset != "" {
		ds.Path = m.Dataset
	}
	if m.ImportanceDir != "" {
		p.ImportanceDir = m.ImportanceDir
	}
	for key, model := range m.Models {
		var artifact, importance *string
		switch key {
		case KeyDecisionTree:
			artifact, importance = &p.DecisionTreePath, &p.DecisionTreeImportance
		case KeyRandomForest:
			artifact, importance = &p.RandomForestPath, &p.RandomForestImportance
		case KeyAdaBoost:
			artifact, importance = &p.AdaBoostPath, &p.AdaBoostImportance
		default:
			return fmt.Errorf("manifest: unknown model %q", key)
		}
		if model.Artifact != "" {
			*artifact = model.Artifact
		}
		if model.Importance != "" {
			*importance = model.Importance
		}
	}
	return nil
}

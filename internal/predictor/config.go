package predictor

import "fmt"

// ModelType is the caller-facing model choice.
type ModelType string

const (
	ModelDecisionTree ModelType = "Decision Tree"
	ModelRandomForest ModelType = "Random Forest"
	ModelAdaBoost     ModelType = "AdaBoost"
)

// ModelTypes lists the choices in the order the selection form offers them.
var ModelTypes = []ModelType{ModelDecisionTree, ModelRandomForest, ModelAdaBoost}

type Config struct {
	DecisionTreePath string `envconfig:"AQI_MODEL_DT_PATH" default:"dt_aqi.json"`
	RandomForestPath string `envconfig:"AQI_MODEL_RF_PATH" default:"rf_aqi.json"`
	AdaBoostPath     string `envconfig:"AQI_MODEL_AD_PATH" default:"ad_aqi.json"`

	DecisionTreeImportance string `envconfig:"AQI_IMPORTANCE_DT" default:"dt_feature_imp.svg"`
	RandomForestImportance string `envconfig:"AQI_IMPORTANCE_RF" default:"rf_feature_imp.svg"`
	AdaBoostImportance     string `envconfig:"AQI_IMPORTANCE_AD" default:"ad_feature_imp.svg"`
	ImportanceDir          string `envconfig:"AQI_IMPORTANCE_DIR" default:"static"`

	StrictSchema bool `envconfig:"AQI_STRICT_SCHEMA" default:"true"`
}

func (c Config) ArtifactFor(t ModelType) (string, error) {
	switch t {
	case ModelDecisionTree:
		return c.DecisionTreePath, nil
	case ModelRandomForest:
		return c.RandomForestPath, nil
	case ModelAdaBoost:
		return c.AdaBoostPath, nil
	default:
		return "", fmt.Errorf("unknown model type: %s", t)
	}
}

// ImportanceFor returns the id of the precomputed feature-importance image of t.
func (c Config) ImportanceFor(t ModelType) (string, error) {
	switch t {
	case ModelDecisionTree:
		return c.DecisionTreeImportance, nil
	case ModelRandomForest:
		return c.RandomForestImportance, nil
	case ModelAdaBoost:
		return c.AdaBoostImportance, nil
	default:
		return "", fmt.Errorf("unknown model type: %s", t)
	}
}

package dataset

type Config struct {
	Path string `envconfig:"AQI_DATASET_PATH" default:"mlm_aqi_data.csv"`
}

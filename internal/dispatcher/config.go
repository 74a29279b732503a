package dispatcher

type Config struct {
	// Reject unrecognised model choices instead of routing them to the random forest.
	StrictModelChoice bool `envconfig:"AQI_STRICT_MODEL_CHOICE" default:"false"`
}

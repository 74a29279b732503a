package buildinfo

const Graffiti = "   ___   ____  ____\n  / _ | / __ \\/  _/\n / __ |/ /_/ // /  \n/_/ |_|\\___\\_\\___/  \n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "AQI"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo

// Command aqi runs one prediction against the configured artifacts and prints it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	aqi "github.com/go-aqi/aqi/internal/config"
	"github.com/go-aqi/aqi/internal/logging"
	"github.com/go-aqi/aqi/internal/predictor"
	"github.com/go-aqi/aqi/internal/service"
	"github.com/go-aqi/aqi/internal/setup"
)

// the pollutant inputs of the selection form start at 0.1
const defaultPercentage = 0.1

func main() {
	ctx := setup.LoadEnv(context.Background())
	logger := logging.FromContext(ctx)
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var (
		req    service.Request
		dump   bool
		list   bool
		fs     = flag.NewFlagSet("aqi", flag.ContinueOnError)
		config = aqi.ToolConfig{}
	)
	fs.StringVar(&req.State, "state", "", "state label of the reference dataset")
	fs.StringVar(&req.County, "county", "", "county label of the chosen state")
	fs.Float64Var(&req.CO, "co", defaultPercentage, "percentage of CO in [0, 1]")
	fs.Float64Var(&req.NO2, "no2", defaultPercentage, "percentage of NO2 in [0, 1]")
	fs.Float64Var(&req.O3, "o3", defaultPercentage, "percentage of O3 in [0, 1]")
	fs.Float64Var(&req.PM25, "pm25", defaultPercentage, "percentage of PM2.5 in [0, 1]")
	fs.Float64Var(&req.PM10, "pm10", defaultPercentage, "percentage of PM10 in [0, 1]")
	fs.StringVar(&req.Model, "model", string(predictor.ModelDecisionTree), `"Decision Tree", "Random Forest" or "AdaBoost"`)
	fs.BoolVar(&dump, "dump", false, "print the encoded feature vector")
	fs.BoolVar(&list, "list", false, "list states and counties instead of predicting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer env.Close(ctx)
	svc := env.Service()

	if list {
		return listLocations(svc, req.State, out)
	}

	if dump {
		vec, err := svc.Encode(req)
		if err != nil {
			return err
		}
		spew.Fdump(out, vec.Map())
	}

	result, err := svc.Submit(ctx, req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func listLocations(svc *service.Service, state string, out io.Writer) error {
	states := svc.States()
	if state != "" {
		states = []string{state}
	}
	for _, s := range states {
		counties, err := svc.Counties(s)
		if err != nil {
			return err
		}
		for _, c := range counties {
			_, _ = fmt.Fprintf(out, "%s\t%s\n", s, c)
		}
	}
	return nil
}

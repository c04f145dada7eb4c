package neat

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// LoadYAMLOptions loads NEAT options encoded as a YAML document, starting
// from the package defaults so a partial document only overrides what it sets.
func LoadYAMLOptions(r io.Reader) (*Options, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	opts := DefaultOptions()
	if err = yaml.Unmarshal(content, opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode NEAT options from YAML")
	}
	if err = InitLogger(opts.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err = opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}
	return opts, nil
}

// LoadNeatOptions loads NEAT options from a flat "name value" text format,
// one setting per line, coercing each value with spf13/cast the way the
// teacher's plain-text reader does.
func LoadNeatOptions(r io.Reader) (*Options, error) {
	opts := DefaultOptions()
	var name string
	var param string
	for {
		_, err := fmt.Fscanf(r, "%s %v\n", &name, &param)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		switch name {
		case "population_size":
			opts.PopulationSize = cast.ToInt(param)
		case "specie_threshold":
			opts.SpecieThreshold = cast.ToFloat64(param)
		case "no_improvement_truncate":
			opts.NoImprovementTruncate = cast.ToInt(param)
		case "champion_preservation":
			opts.ChampionPreservation = cast.ToInt(param)
		case "reproduction_copy_ratio":
			opts.ReproductionCopyRatio = cast.ToFloat64(param)
		case "excess_coeff":
			opts.ExcessCoeff = cast.ToFloat64(param)
		case "disjoint_coeff":
			opts.DisjointCoeff = cast.ToFloat64(param)
		case "mutdiff_coeff":
			opts.MutdiffCoeff = cast.ToFloat64(param)
		case "probability_pick_less_fit":
			opts.ProbabilityPickLessFit = cast.ToFloat64(param)
		case "probability_keep_disabled":
			opts.ProbabilityKeepDisabled = cast.ToFloat64(param)
		case "param_replace_prob":
			opts.ParamReplaceProb = cast.ToFloat64(param)
		case "param_perturb_factor":
			opts.ParamPerturbFactor = cast.ToFloat64(param)
		case "new_connection_prob":
			opts.NewConnectionProb = cast.ToFloat64(param)
		case "bisect_prob":
			opts.BisectProb = cast.ToFloat64(param)
		case "mutate_conn_prob":
			opts.MutateConnProb = cast.ToFloat64(param)
		case "ctrnn_precision":
			opts.CtrnnPrecision = cast.ToInt(param)
		case "max_generations":
			opts.MaxGenerations = cast.ToInt(param)
		case "parallel_evaluation":
			opts.ParallelEvaluation = cast.ToBool(param)
		case "log_level":
			opts.LogLevel = param
		default:
			return nil, errors.Errorf("unknown configuration parameter found: %s = %s", name, param)
		}
	}
	if err := InitLogger(opts.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}
	return opts, nil
}

// ReadOptionsFromFile reads NEAT options from configFilePath, resolving the
// encoding (YAML vs. flat text) from the file extension.
func ReadOptionsFromFile(configFilePath string) (*Options, error) {
	configFile, err := os.Open(configFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer configFile.Close()

	if strings.HasSuffix(configFilePath, "yml") || strings.HasSuffix(configFilePath, "yaml") {
		return LoadYAMLOptions(configFile)
	}
	return LoadNeatOptions(configFile)
}

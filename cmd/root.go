package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/candidate-ranker/internal/criteria"
	"github.com/spigell/candidate-ranker/internal/scoring"
)

const (
	app       = "candidate-ranker"
	envPrefix = "CANDIDATE_RANKER"
)

type Config struct {
	Pool          []string        `mapstructure:"pool"`
	Page          int             `mapstructure:"page"`
	PageSize      int             `mapstructure:"page-size"`
	Workers       int             `mapstructure:"workers"`
	Keywords      int             `mapstructure:"keywords"`
	DisableStages []string        `mapstructure:"disable-stages"`
	Output        string          `mapstructure:"output"`
	Explain       bool            `mapstructure:"explain"`
	Criteria      *CriteriaConfig `mapstructure:"criteria"`
	Scoring       *struct {
		Weights *scoring.Weights `mapstructure:"weights"`
	} `mapstructure:"scoring"`
}

type CriteriaConfig struct {
	RoleTitle       string   `mapstructure:"role-title"`
	Industry        string   `mapstructure:"industry"`
	ExperienceLevel string   `mapstructure:"experience-level"`
	Skills          []string `mapstructure:"skills"`
	FreeTextContext string   `mapstructure:"free-text-context"`
	CompanyStage    string   `mapstructure:"company-stage"`
	Milestones      []string `mapstructure:"milestones"`
	Accomplishments []string `mapstructure:"accomplishments"`
	CulturalValues  []string `mapstructure:"cultural-values"`
}

// SearchCriteria turns the config section into criteria. Blank values are
// left absent.
func (c *CriteriaConfig) SearchCriteria() (criteria.SearchCriteria, error) {
	if c == nil {
		return criteria.SearchCriteria{}, nil
	}

	level, err := criteria.Level(c.ExperienceLevel)
	if err != nil {
		return criteria.SearchCriteria{}, err
	}

	return criteria.SearchCriteria{
		RoleTitle:       criteria.Text(c.RoleTitle),
		Industry:        criteria.Text(c.Industry),
		ExperienceLevel: level,
		Skills:          criteria.List(c.Skills...),
		FreeTextContext: criteria.Text(c.FreeTextContext),
		CompanyStage:    criteria.Text(c.CompanyStage),
		Milestones:      criteria.List(c.Milestones...),
		Accomplishments: criteria.List(c.Accomplishments...),
		CulturalValues:  criteria.List(c.CulturalValues...),
	}, nil
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "candidate-ranker filters, scores and ranks a candidate pool against hiring criteria",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is candidate-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := setWeightDefaults(scoring.DefaultWeights()); err != nil {
		log.Fatalf("setting default weights: %v", err)
	}
}

// setWeightDefaults registers every weight as a viper default so a config
// file may override only some of them.
func setWeightDefaults(w scoring.Weights) error {
	var values map[string]any
	if err := mapstructure.Decode(w, &values); err != nil {
		return err
	}

	for key, value := range values {
		viper.SetDefault("scoring.weights."+key, value)
	}
	return nil
}

func initConfig() {
	// Config is only needed by search.
	if searchCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without an explicit --config the file is optional.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}

	return config, nil
}

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/candidate"
	"github.com/spigell/candidate-ranker/internal/criteria"
	"github.com/spigell/candidate-ranker/internal/engine"
	"github.com/spigell/candidate-ranker/internal/filtering"
	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/output"
	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/tokens"
)

const (
	PromptNext             = "Next page"
	PromptPrevious         = "Previous page"
	PromptReportByIndustry = "Report by industry"
	PromptResultsToFile    = "Dump results to file"
	PromptExit             = "Exit"

	defaultPageSize = 10
)

var errExit = errors.New("exit requested")

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Rank a candidate pool against hiring criteria",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	flags := searchCmd.Flags()
	flags.StringSliceP("pool", "p", nil, "candidate pool JSON file, repeat to merge several pools")
	flags.String("role", "", "role title to look for")
	flags.String("industry", "", "industry to look for")
	flags.String("level", "", "experience level: entry, mid, senior or lead")
	flags.StringSlice("skill", nil, "required skill, repeat for several (any one is enough to pass the filter)")
	flags.String("context", "", "free text hiring context, keywords are extracted from it")
	flags.String("stage", "", "company stage, e.g. Seed or Series A")
	flags.Int("page", 1, "page to show, starting from 1")
	flags.Int("page-size", defaultPageSize, "candidates per page")
	flags.Int("workers", runtime.NumCPU(), "scoring workers, 1 scores sequentially")
	flags.Int("keywords", tokens.DefaultKeywordCount, "keywords extracted from the hiring context")
	flags.StringSlice("disable-stage", nil, "filtering stage to skip, repeat for several: roleTitle, industry, skills, experience, companyStage")
	flags.StringP("output", "o", string(output.FormatTable), "output format: table, json or toml")
	flags.Bool("explain", false, "show per-field credit for every candidate")
	flags.BoolP("interactive", "i", false, "page through results interactively")

	for key, flag := range map[string]string{
		"pool":                       "pool",
		"criteria.role-title":        "role",
		"criteria.industry":          "industry",
		"criteria.experience-level":  "level",
		"criteria.skills":            "skill",
		"criteria.free-text-context": "context",
		"criteria.company-stage":     "stage",
		"page":                       "page",
		"page-size":                  "page-size",
		"workers":                    "workers",
		"keywords":                   "keywords",
		"disable-stages":             "disable-stage",
		"output":                     "output",
		"explain":                    "explain",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// search is the main command for the cli.
func search(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the candidate-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if len(config.Pool) == 0 {
		logger.Fatal("candidate pool is required", zap.String("hint", "pass --pool or set the 'pool' key in the configuration file"))
	}

	sc, err := config.Criteria.SearchCriteria()
	if err != nil {
		logger.Fatal("parsing criteria", zap.Error(err))
	}

	format, err := output.ParseFormat(config.Output)
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}

	pool, err := loadPool(config.Pool, logger)
	if err != nil {
		logger.Fatal("loading candidate pool", zap.Error(err))
	}

	logger.Debug("filter stages", zap.Any("stages", filtering.Describe(filtering.Stages(sc))))

	eng, err := newEngine(config, logger)
	if err != nil {
		logger.Fatal("creating search engine", zap.Error(err))
	}

	writer := output.NewWriter(os.Stdout, format, config.Explain)
	page := config.Page

	res, err := eng.Search(pool.Items, sc, page, config.PageSize)
	if err != nil {
		logger.Fatal("searching", zap.Error(err))
	}

	if err := writer.Write(res); err != nil {
		logger.Fatal("writing results", zap.Error(err))
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive {
		return
	}

	for {
		action, err := promptAction(res)
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		next, err := handleAction(action, eng, pool, sc, res, logger)
		if err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if next != res {
			res = next
			if err := writer.Write(res); err != nil {
				logger.Fatal("writing results", zap.Error(err))
			}
		}
	}
}

func loadPool(paths []string, logger *zap.Logger) (*candidate.Candidates, error) {
	loader, err := candidate.NewLoader(logger)
	if err != nil {
		return nil, err
	}

	pool, report, err := loader.LoadFiles(paths...)
	if err != nil {
		return nil, err
	}

	logger.Info("candidate pool loaded",
		zap.Strings("files", paths),
		zap.Int("total", report.Total),
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped", len(report.Skipped)),
	)
	logger.Debug("pool industries", zap.Strings("industries", pool.Industries()))

	return pool, nil
}

func newEngine(config *Config, logger *zap.Logger) (*engine.Engine, error) {
	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithWorkers(config.Workers),
		engine.WithKeywordCount(config.Keywords),
		engine.WithDisabledStages(config.DisableStages...),
	}

	if config.Scoring != nil && config.Scoring.Weights != nil {
		opts = append(opts, engine.WithWeights(*config.Scoring.Weights))
	}

	return engine.New(opts...)
}

func promptAction(res *ranking.Result) (string, error) {
	items := make([]string, 0, 5)
	if res.HasNext() {
		items = append(items, PromptNext)
	}
	if res.HasPrevious() {
		items = append(items, PromptPrevious)
	}
	items = append(items, PromptReportByIndustry, PromptResultsToFile, PromptExit)

	prompt := promptui.Select{
		Label: output.Summary(res),
		Items: items,
	}

	_, action, err := prompt.Run()
	return action, err
}

func handleAction(action string, eng *engine.Engine, pool *candidate.Candidates, sc criteria.SearchCriteria, res *ranking.Result, logger *zap.Logger) (*ranking.Result, error) {
	switch action {
	case PromptNext:
		return eng.Search(pool.Items, sc, res.Page+1, res.PageSize)
	case PromptPrevious:
		page := min(res.Page-1, max(res.Pages(), 1))
		return eng.Search(pool.Items, sc, page, res.PageSize)
	case PromptReportByIndustry:
		shown := &candidate.Candidates{Items: make([]candidate.Candidate, 0, res.Len())}
		for _, item := range res.Items {
			shown.Items = append(shown.Items, item.Candidate)
		}
		pretty, _ := json.MarshalIndent(shown.ReportByIndustry(), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", shown.Len()))
		return res, nil
	case PromptResultsToFile:
		filename, err := res.DumpToTmpFile()
		if err != nil {
			return nil, fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return res, nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return nil, errExit
	default:
		return nil, fmt.Errorf("invalid action: %s", action)
	}
}

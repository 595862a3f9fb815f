package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"abtest/adapters/rng"
	"abtest/adapters/stats/ttest"
	"abtest/app"
	"abtest/domain/experiment"
	"abtest/internal/analysis"
	"abtest/internal/config"
	"abtest/internal/logging"
	"abtest/internal/power"
	"abtest/internal/report"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "abtest",
		Short:         "Sample size estimation and two-sample t-tests for A/B experiments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newSampleSizeCmd(),
		newGenerateCmd(),
		newTTestCmd(),
	)

	return rootCmd
}

func newRunCmd() *cobra.Command {
	var scenariosFile, format, color, generator, logLevel string
	var seed int64
	var welch bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Estimate the sample size and run every scenario",
		Long: `Estimate the minimum sample size, simulate each scenario and compare the groups
with a library t-test and a hand-derived one.

Parameters come from ABTEST_* environment variables (see .env); flags override them.

Example: abtest run --seed 42 --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appConfig, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("seed") {
				appConfig.Experiment.Seed = seed
			}
			if flags.Changed("generator") {
				appConfig.Experiment.Generator = generator
			}
			if flags.Changed("welch") {
				appConfig.Experiment.EqualVariance = !welch
			}
			if flags.Changed("scenarios") {
				appConfig.Experiment.ScenariosFile = scenariosFile
			}
			if flags.Changed("format") {
				appConfig.Output.Format = format
			}
			if flags.Changed("color") {
				appConfig.Output.Color = color
			}
			if flags.Changed("log-level") {
				appConfig.Logging.Level = logLevel
			}
			if err := config.Validate(appConfig); err != nil {
				return err
			}

			logger, err := logging.New(cmd.ErrOrStderr(), appConfig.Logging.Level)
			if err != nil {
				return err
			}
			return runExperiment(cmd, appConfig, logger)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "Random seed for deterministic data generation")
	cmd.Flags().StringVar(&generator, "generator", rng.GeneratorLegacy, "Sample generator: legacy|pcg")
	cmd.Flags().BoolVar(&welch, "welch", false, "Use Welch's unequal-variance t-test for the library path")
	cmd.Flags().StringVar(&scenariosFile, "scenarios", "", "JSON file with scenarios to run instead of the built-in ones")
	cmd.Flags().StringVar(&format, "format", string(report.FormatText), "Report format: text|markdown|html")
	cmd.Flags().StringVar(&color, "color", string(report.ColorAuto), "Colour the text report: auto|always|never")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level")

	return cmd
}

func runExperiment(cmd *cobra.Command, appConfig *config.Config, logger logrus.FieldLogger) error {
	svc, runCfg, err := app.Bootstrap(appConfig, logger)
	if err != nil {
		return err
	}

	result, err := svc.Run(cmd.Context(), runCfg)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(appConfig.Output.Format)
	if err != nil {
		return err
	}
	color, err := report.ParseColorMode(appConfig.Output.Color)
	if err != nil {
		return err
	}
	return report.NewWriter(cmd.OutOrStdout(), format, color).Write(result)
}

func newSampleSizeCmd() *cobra.Command {
	params := experiment.DefaultSampleSizeParams(config.DefaultStdDev, config.DefaultMDE)

	cmd := &cobra.Command{
		Use:   "samplesize",
		Short: "Estimate the minimum sample size per group",
		Long: `Estimate the minimum sample size per group for a two-sided two-sample t-test,
assuming equal group sizes and equal standard deviations.

Example: abtest samplesize --std-dev 0.05 --mde 0.03 --alpha 0.05 --power 0.8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := power.MinSampleSize(params)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Minimum sample size for alpha = %s, power = %s and mde = %s: %d\n",
				experiment.FormatFloat(params.Alpha), experiment.FormatFloat(params.Power), experiment.FormatFloat(params.MDE), n)
			return nil
		},
	}

	cmd.Flags().Float64Var(&params.StdDev, "std-dev", params.StdDev, "Historical standard deviation")
	cmd.Flags().Float64Var(&params.MDE, "mde", params.MDE, "Minimum detectable effect")
	cmd.Flags().Float64Var(&params.Alpha, "alpha", params.Alpha, "Significance level")
	cmd.Flags().Float64Var(&params.Power, "power", params.Power, "Statistical power")

	return cmd
}

func newGenerateCmd() *cobra.Command {
	var n int
	var meanA, meanB, stdDev float64
	var seed int64
	var generator string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate two reproducible Gaussian samples",
		Long: `Generate two samples of size n from N(mean-a, std-dev) and N(mean-b, std-dev).
The same seed and generator always produce the same samples.

Example: abtest generate --n 44 --mean-a 0.2 --mean-b 0.23 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sampler, err := rng.New(generator)
			if err != nil {
				return err
			}
			groups, err := rng.GenerateGroups(sampler, seed, n, meanA, meanB, stdDev)
			if err != nil {
				return err
			}
			return writeGroups(cmd.OutOrStdout(), groups)
		},
	}

	cmd.Flags().IntVar(&n, "n", 44, "Sample size per group")
	cmd.Flags().Float64Var(&meanA, "mean-a", 0.2, "Mean of group A")
	cmd.Flags().Float64Var(&meanB, "mean-b", 0.23, "Mean of group B")
	cmd.Flags().Float64Var(&stdDev, "std-dev", rng.DefaultStdDev, "Shared standard deviation")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "Random seed for deterministic operations")
	cmd.Flags().StringVar(&generator, "generator", rng.GeneratorLegacy, "Sample generator: legacy|pcg")

	return cmd
}

func writeGroups(w io.Writer, groups experiment.Groups) error {
	if _, err := fmt.Fprintln(w, "index\tgroup_a\tgroup_b"); err != nil {
		return err
	}
	for i := range groups.A {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", i, experiment.FormatFloat(groups.A[i]), experiment.FormatFloat(groups.B[i])); err != nil {
			return err
		}
	}
	return nil
}

func newTTestCmd() *cobra.Command {
	var a, b []float64
	var welch bool
	var alternative string
	var alpha float64

	cmd := &cobra.Command{
		Use:   "ttest",
		Short: "Run a two-sample t-test on explicit samples",
		Long: `Run the independent two-sample t-test on two comma-separated samples. When both samples
have the same size the hand-derived statistic is printed next to the library one.

Example: abtest ttest --a 2,1,3,4 --b 6,5,7,9 --alternative two-sided`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			alt, err := experiment.ParseAlternative(alternative)
			if err != nil {
				return err
			}
			result, err := ttest.Independent(a, b, ttest.Options{EqualVariance: !welch, Alternative: alt})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "method = %s, alternative = %s, df = %s\n", result.Method, result.Alternative, experiment.FormatFloat(result.DF))
			fmt.Fprintf(out, "t-statistic = %s\n", experiment.FormatFloat(result.Statistic))
			fmt.Fprintf(out, "p-value = %s\n", experiment.FormatFloat(result.PValue))
			fmt.Fprintf(out, "Decision: %s\n", experiment.Decide(result.PValue, alpha).Verdict())

			if len(a) == len(b) {
				manual, err := analysis.ManualTTest(a, b, alpha)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "t-statistic calculated by hand = %s\n", experiment.FormatFloat(manual.Statistic))
				fmt.Fprintf(out, "critical t-statistic = %s\n", experiment.FormatFloat(experiment.Round2(manual.CriticalT)))
				fmt.Fprintf(out, "p-value calculated by hand = %s\n", experiment.FormatFloat(manual.PValue))
			}
			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&a, "a", nil, "Group A observations (comma-separated)")
	cmd.Flags().Float64SliceVar(&b, "b", nil, "Group B observations (comma-separated)")
	cmd.Flags().BoolVar(&welch, "welch", false, "Use Welch's unequal-variance t-test")
	cmd.Flags().StringVar(&alternative, "alternative", string(experiment.TwoSided), "Alternative hypothesis: two-sided|less|greater")
	cmd.Flags().Float64Var(&alpha, "alpha", experiment.DefaultAlpha, "Significance level")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")

	return cmd
}

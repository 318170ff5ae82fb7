package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"mindshift/internal/app"
	"mindshift/internal/config"
	"mindshift/internal/model"
	"mindshift/internal/scoring"
	"mindshift/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newRootCmd() *cobra.Command {
	v := config.New()
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "mindshift",
		Short: "Offline MBTI and trait inference",
		Long: `mindshift scores questionnaire answers without the API server.

Examples:
  mindshift score answers.json
  mindshift score --policy "random" < answers.json
  mindshift themes history.json
  mindshift bank show mbti16
  mindshift seed --traits data/personalities.json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			if err := v.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return fmt.Errorf("read config: %w", err)
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(newScoreCmd(v))
	rootCmd.AddCommand(newThemesCmd())
	rootCmd.AddCommand(newBankCmd())
	rootCmd.AddCommand(newPolicyCmd(v))
	rootCmd.AddCommand(newSeedCmd(v))
	return rootCmd
}

func newScoreCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [answers.json]",
		Short: "Resolve an MBTI code and traits from an answer file",
		Long: `Reads a JSON object mapping question text (or a label) to a 1-5 rating
or free text, from the file argument or stdin. An {"answers": {...}}
wrapper is accepted too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			answers, err := decodeAnswers(data)
			if err != nil {
				return err
			}

			cfg := config.FromViper(v)
			engine, err := app.BuildEngine(context.Background(), cfg.Scoring, nil)
			if err != nil {
				return err
			}
			profile, err := engine.Infer(answers)
			if err != nil {
				return err
			}
			return writeIndented(cmd.OutOrStdout(), profile)
		},
	}

	cmd.Flags().String("bank", scoring.DefaultBankName, "Builtin question bank")
	cmd.Flags().String("bank-path", "", "Question bank YAML file (overrides --bank)")
	cmd.Flags().String("traits", "", "Trait reference table (JSON)")
	cmd.Flags().String("policy", "", "Tie-break policy, e.g. \"first,EI=bias:I\"")
	cmd.Flags().Int("threshold", scoring.DefaultTieThreshold, "Near-tie threshold")
	cmd.Flags().Int("tolerance", scoring.DefaultTraitTolerance, "Trait tolerance band")
	cmd.PreRunE = bindFlags(v, map[string]string{
		"bank":            "bank",
		"bank_path":       "bank-path",
		"traits_path":     "traits",
		"tie_policy":      "policy",
		"tie_threshold":   "threshold",
		"trait_tolerance": "tolerance",
	})
	return cmd
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes [history.json]",
		Short: "Extract conversation themes and fallback statements from a chat history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var history []model.HistoryMessage
			if err := json.Unmarshal(data, &history); err != nil {
				return fmt.Errorf("decode history: %w", err)
			}

			svc := service.NewQuestionService(service.NewGroqGenerator(nil, nil), nil, nil, nil)
			return writeIndented(cmd.OutOrStdout(), svc.FromHistory(cmd.Context(), "", history))
		},
	}
}

func newBankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Inspect the builtin question banks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List builtin banks",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range scoring.BuiltinBankNames() {
				bank, err := scoring.BuiltinBank(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %2d  %s\n", name, bank.Len(), bank.Description())
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [name]",
		Short: "Print a bank's questions with their axis and pole",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := scoring.DefaultBankName
			if len(args) == 1 {
				name = args[0]
			}
			bank, err := scoring.BuiltinBank(name)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(bank.General())
		},
	})
	return cmd
}

func newPolicyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy [rules]",
		Short: "Validate a tie-break policy and print it per axis",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := v.GetString("tie_policy")
			if len(args) == 1 {
				spec = args[0]
			}
			policy, err := scoring.ParsePolicy(spec, v.GetInt("tie_threshold"))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "threshold=%d %s\n", policy.Threshold, policy.String())
			return nil
		},
	}
	cmd.Flags().Int("threshold", scoring.DefaultTieThreshold, "Near-tie threshold")
	cmd.PreRunE = bindFlags(v, map[string]string{"tie_threshold": "threshold"})
	return cmd
}

// bindFlags binds at run time so subcommands sharing a key don't clobber
// each other's bindings
func bindFlags(v *viper.Viper, keys map[string]string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		for key, flag := range keys {
			if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				return err
			}
		}
		return nil
	}
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

// decodeAnswers accepts a bare answer object or the API request body
func decodeAnswers(data []byte) (model.AnswerSet, error) {
	var wrapped struct {
		Answers json.RawMessage `json:"answers"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Answers) > 0 {
		data = wrapped.Answers
	}
	var answers model.AnswerSet
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return answers, nil
}

func writeIndented(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

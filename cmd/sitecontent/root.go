package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	site "github.com/littlemoon-zh/littlemoon-zh.github.io"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/logging"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

const cliModule = "site.cli"

var moduleBuilder = site.New

// app holds the flags shared by every subcommand and the module built from
// them before a subcommand runs.
type app struct {
	configPath string
	rootDir    string
	production bool
	strict     bool

	config site.Config
	module *site.Module
	logger interfaces.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sitecontent",
		Short: "Inspect and render the notes and demos of the site",
		Long: `sitecontent reads the Markdown and MDX documents under the content root,
validates their frontmatter and renders them exactly as the site build does.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (yaml, toml or json); defaults to ./site.*")
	flags.StringVar(&a.rootDir, "root", "", "content root directory, overrides the config")
	flags.BoolVar(&a.production, "production", false, "hide drafts like a production build")
	flags.BoolVar(&a.strict, "strict", false, "fail on the first invalid document")

	root.AddCommand(
		newListCommand(a),
		newLatestCommand(a),
		newSlugsCommand(a),
		newShowCommand(a),
		newCheckCommand(a),
		newStylesCommand(a),
		newMCPCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := site.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.rootDir != "" {
		cfg.Content.RootDir = a.rootDir
	}
	if a.production {
		cfg.Production = true
	}
	if a.strict {
		cfg.Content.Strict = true
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}

	ctx := logging.ContextWithFields(cmd.Context(), map[string]any{
		"run_id": uuid.NewString(),
	})
	cmd.SetContext(ctx)

	a.config = cfg
	a.module = module
	a.logger = logging.FromContext(ctx, logging.ModuleLogger(module.Container().LoggerProvider(), cliModule))
	a.logger.Debug("cli.command.started",
		"command", cmd.CommandPath(),
		"root", cfg.Content.RootDir,
		"production", cfg.Production,
	)
	return nil
}

// kindArg resolves the collection argument shared by most subcommands.
func kindArg(args []string) (site.Kind, error) {
	return site.ParseKind(args[0])
}

func kindCompletion(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{site.KindNotes.String(), site.KindDemos.String()}, cobra.ShellCompDirectiveNoFileComp
}

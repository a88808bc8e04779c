package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ycp/interpreter-go/pkg/driver"
	"ycp/interpreter-go/pkg/interpreter"
	"ycp/interpreter-go/pkg/runtime"
)

func newEvalCmd(envFile *string) *cobra.Command {
	var (
		asYAML     bool
		lang       string
		domainDir  string
		domainRepo string
		maxDepth   int
	)
	cmd := &cobra.Command{
		Use:   "eval <program.yaml>",
		Short: "Evaluate a program and print its result",
		Long: `Evaluate loads a program document, installs its functions and evaluates
its main expression. The result is printed in YCP syntax, or as a value
tree with --yaml. An error result exits with status 2.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			if lang != "" {
				if cfg.Language, err = parseLanguage(lang); err != nil {
					return err
				}
			}
			if domainRepo != "" {
				cfg.DomainRepo, cfg.DomainDir = domainRepo, ""
			}
			if domainDir != "" {
				cfg.DomainDir = domainDir
			}
			catalogs, err := cfg.catalogDir()
			if err != nil {
				return err
			}

			prog, err := driver.LoadProgram(args[0])
			if err != nil {
				return err
			}
			opts := []interpreter.Option{
				interpreter.WithLogHandler(cfg.logHandler(cmd.ErrOrStderr())),
				interpreter.WithLanguage(cfg.Language),
				interpreter.WithMaxDepth(maxDepth),
			}
			if catalogs != "" {
				cat, err := driver.LoadCatalogs(catalogs)
				if err != nil {
					return err
				}
				opts = append(opts, interpreter.WithCatalog(cat))
			}
			interp, err := interpreter.New(opts...)
			if err != nil {
				return err
			}
			result, err := prog.Run(interp)
			if err != nil {
				return err
			}

			if asYAML {
				data, err := driver.MarshalValue(result)
				if err != nil {
					return err
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), runtime.Format(result))
			}
			if e, ok := result.(runtime.ErrorValue); ok {
				printError(cmd.ErrOrStderr(), e.Message)
				return exitError(2)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the result as a YAML value tree")
	cmd.Flags().StringVar(&lang, "lang", "", "language for translations (overrides YCP_LANG)")
	cmd.Flags().StringVar(&domainDir, "domain-dir", "", "directory of translation catalogs (overrides YCP_DOMAIN_DIR)")
	cmd.Flags().StringVar(&domainRepo, "domain-repo", "", "git catalog source url[#rev][::dir] (overrides YCP_DOMAIN_REPO)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", interpreter.DefaultMaxDepth, "maximum evaluation depth")
	return cmd
}

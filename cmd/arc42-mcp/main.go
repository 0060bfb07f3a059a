package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sha1n/mcp-arc42-server/internal/app"
	"github.com/sha1n/mcp-arc42-server/internal/domain"
	"github.com/sha1n/mcp-arc42-server/internal/language"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "arc42-mcp"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	if err := Execute(Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing
func Execute(version, build, programName string, args []string) error {
	rootCmd := newRootCmd(version, build, programName)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func newRootCmd(version, build, programName string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   programName,
		Short: "arc42 MCP Server",
		Long: "MCP server for arc42 architecture documentation: localized templates " +
			"in Markdown and AsciiDoc, workspace management and template search",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithFlags(cmd.Flags(), version)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Version}} (%s)\n", build))

	app.RegisterFlags(rootCmd.Flags())
	rootCmd.AddCommand(newTemplateCmd(), newLanguagesCmd())

	return rootCmd
}

func runWithFlags(flags *pflag.FlagSet, version string) error {
	return app.RunWithDeps(context.Background(), app.DefaultRunParams(), flags, version)
}

func newTemplateCmd() *cobra.Command {
	var lang, f, workspace string

	cmd := &cobra.Command{
		Use:   "template <section>",
		Short: "Print the template of an arc42 section",
		Long: "Print the template of an arc42 section. The section is an id such as " +
			"05_building_block_view or a number from 1 to 12. Language and format not " +
			"given are read from the workspace config.yaml, then default to EN and markdown.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := domain.ParseSection(args[0])
			if err != nil {
				return err
			}

			catalog, err := app.NewCatalog(nil)
			if err != nil {
				return err
			}

			text, err := catalog.Provider.TemplateWithConfig(section, workspace, lang, f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&lang, "language", "l", "", "Language code, e.g. DE or pt-BR")
	cmd.Flags().StringVarP(&f, "format", "f", "", "Output format: markdown or asciidoc")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace whose config.yaml supplies defaults")

	return cmd
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the available languages and formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.NewCatalog(nil)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "CODE\tNAME\tNATIVE NAME")
			for _, code := range language.BuiltinCodes() {
				l, err := catalog.LanguageFactory.Create(string(code))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", l.Code(), l.Name(), l.NativeName())
			}
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, "FORMAT\tNAME\tEXTENSION")
			for _, f := range catalog.Provider.AvailableFormats() {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", f.Code, f.Name, f.FileExtension)
			}
			return w.Flush()
		},
	}
}

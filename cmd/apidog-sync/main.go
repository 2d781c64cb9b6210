package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"go.yaml.in/yaml/v4"

	apidogsync "github.com/akhelij/apidog-sync-mcp-server"
	"github.com/akhelij/apidog-sync-mcp-server/catalog"
	"github.com/akhelij/apidog-sync-mcp-server/internal/mcpserver"
	"github.com/akhelij/apidog-sync-mcp-server/reorganizer"
	"github.com/akhelij/apidog-sync-mcp-server/structdiff"
)

func main() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("apidog-sync v%s\n", apidogsync.Version())
	case "help", "-h", "--help":
		printUsage()
	case "serve":
		if err := handleServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "analyze":
		if err := handleAnalyze(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "plan":
		if err := handlePlan(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "apply":
		if err := handleApply(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "diff":
		if err := handleDiff(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	envFile := fs.String("env-file", "", "load environment variables from this file before starting")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: apidog-sync serve [flags]\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Start the MCP server over stdio.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
	} else {
		// A .env in the working directory is optional.
		_ = godotenv.Load()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

func handleAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: apidog-sync analyze <file>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Analyze the folder organization of an exported catalog document.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Examples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  apidog-sync analyze export.json\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("analyze command requires exactly one file path")
	}

	doc, err := readDocument(fs.Arg(0))
	if err != nil {
		return err
	}

	analysis := reorganizer.Analyze(doc.Endpoints)

	fmt.Printf("Catalog Folder Analysis\n")
	fmt.Printf("=======================\n\n")
	fmt.Printf("apidog-sync version: %s\n", apidogsync.Version())
	fmt.Printf("Document: %s\n", fs.Arg(0))
	fmt.Printf("Endpoints: %d\n", analysis.TotalEndpoints)
	fmt.Printf("Folders: %d\n", analysis.TotalFolders)
	fmt.Printf("Unfoldered: %d\n\n", analysis.UnfolderedCount)

	for folder, refs := range analysis.Folders {
		fmt.Printf("%s (%d):\n", folder, len(refs))
		for _, ref := range refs {
			fmt.Printf("  %s\n", ref)
		}
	}
	if len(analysis.Unfoldered) > 0 {
		fmt.Printf("\nNo folder (%d):\n", len(analysis.Unfoldered))
		for _, ref := range analysis.Unfoldered {
			fmt.Printf("  %s\n", ref)
		}
	}
	return nil
}

// planFlags contains flags for the plan command
type planFlags struct {
	strategy       string
	groupByVersion bool
	keepAPIPrefix  bool
	maxDepth       int
	mappings       mappingFlags
	output         string
	format         string
}

// mappingFlags collects repeated -map prefix=folder flags in declaration order.
type mappingFlags []reorganizer.Mapping

func (m *mappingFlags) String() string {
	parts := make([]string, 0, len(*m))
	for _, mapping := range *m {
		parts = append(parts, mapping.Prefix+"="+mapping.Folder)
	}
	return strings.Join(parts, ",")
}

func (m *mappingFlags) Set(value string) error {
	prefix, folder, ok := strings.Cut(value, "=")
	if !ok || prefix == "" || folder == "" {
		return fmt.Errorf("expected prefix=folder, got %q", value)
	}
	*m = append(*m, reorganizer.Mapping{Prefix: prefix, Folder: folder})
	return nil
}

func setupPlanFlags() (*flag.FlagSet, *planFlags) {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	flags := &planFlags{}

	fs.StringVar(&flags.strategy, "strategy", "", "reorganization strategy (path-based, preserve-top-level, flat)")
	fs.BoolVar(&flags.groupByVersion, "group-by-version", false, "keep version segments (v1, v2) as folder levels")
	fs.BoolVar(&flags.keepAPIPrefix, "keep-api-prefix", false, "keep a leading literal 'api' path segment")
	fs.IntVar(&flags.maxDepth, "max-depth", 0, "maximum folder depth (default 3)")
	fs.Var(&flags.mappings, "map", "path-prefix override as prefix=folder (repeatable, first match wins)")
	fs.StringVar(&flags.output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.format, "format", "json", "output format (json or yaml)")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: apidog-sync plan [flags] <file>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Plan a folder reorganization for an exported catalog document.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nExamples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  apidog-sync plan export.json\n")
		_, _ = fmt.Fprintf(fs.Output(), "  apidog-sync plan --strategy preserve-top-level export.json\n")
		_, _ = fmt.Fprintf(fs.Output(), "  apidog-sync plan --map /api/v1/admin=Administration -o plan.json export.json\n")
	}

	return fs, flags
}

func handlePlan(args []string) error {
	fs, flags := setupPlanFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("plan command requires exactly one file path")
	}

	doc, err := readDocument(fs.Arg(0))
	if err != nil {
		return err
	}

	opts := reorganizer.DefaultPlanOptions()
	if flags.strategy != "" {
		opts.Strategy = reorganizer.Strategy(flags.strategy)
	}
	opts.GroupByVersion = flags.groupByVersion
	opts.StripAPIPrefix = !flags.keepAPIPrefix
	if flags.maxDepth > 0 {
		opts.MaxDepth = flags.maxDepth
	}
	opts.CustomMappings = flags.mappings

	plan := reorganizer.Plan(doc.Endpoints, opts)

	var data []byte
	if flags.format == "yaml" {
		data, err = yaml.Marshal(plan)
	} else {
		data, err = json.MarshalIndent(plan, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, data, 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Plan written to %s (%d changes, %d unchanged)\n",
			flags.output, plan.ChangesCount, plan.UnchangedCount)
		return nil
	}

	fmt.Println(string(data))
	return nil
}

// applyFlags contains flags for the apply command
type applyFlags struct {
	changesPath string
	output      string
}

func setupApplyFlags() (*flag.FlagSet, *applyFlags) {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	flags := &applyFlags{}

	fs.StringVar(&flags.changesPath, "changes", "", "path to the approved changes (a plan JSON file, or a bare changes array) (required)")
	fs.StringVar(&flags.output, "o", "", "output file path (required)")
	fs.StringVar(&flags.output, "output", "", "output file path (required)")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: apidog-sync apply [flags] <file>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Apply approved folder changes to a catalog document and write the updated document.\n")
		_, _ = fmt.Fprintf(fs.Output(), "The input document is never modified.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nExamples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  apidog-sync apply --changes plan.json -o updated.json export.json\n")
	}

	return fs, flags
}

func handleApply(args []string) error {
	fs, flags := setupApplyFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("apply command requires exactly one file path")
	}
	if flags.changesPath == "" {
		fs.Usage()
		return fmt.Errorf("changes file is required (use --changes)")
	}
	if flags.output == "" {
		fs.Usage()
		return fmt.Errorf("output file is required (use -o or --output)")
	}

	doc, err := readDocument(fs.Arg(0))
	if err != nil {
		return err
	}

	changes, err := readChanges(flags.changesPath)
	if err != nil {
		return err
	}

	updated, applied := reorganizer.Apply(*doc, changes)

	data, err := updated.Marshal(updated.Format)
	if err != nil {
		return fmt.Errorf("marshaling updated document: %w", err)
	}
	if err := os.WriteFile(flags.output, data, 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	fmt.Printf("Applied %d of %d changes\n", applied, len(changes))
	if skipped := len(changes) - applied; skipped > 0 {
		fmt.Printf("Skipped %d changes whose endpoint no longer exists\n", skipped)
	}
	fmt.Printf("Output: %s\n", flags.output)
	return nil
}

// readChanges loads approved changes from a plan file (using its changes
// field) or from a bare JSON array of changes.
func readChanges(path string) ([]reorganizer.Change, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading changes file: %w", err)
	}

	var plan reorganizer.PlanResult
	if err := json.Unmarshal(data, &plan); err == nil && len(plan.Changes) > 0 {
		return plan.Changes, nil
	}

	var changes []reorganizer.Change
	if err := json.Unmarshal(data, &changes); err != nil {
		return nil, fmt.Errorf("parsing changes file: %w", err)
	}
	return changes, nil
}

func handleDiff(args []string) error {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: apidog-sync diff <old> <new>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Compare two operation definition files (JSON or YAML) and report field-level differences.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Exit Status:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  0    No differences found\n")
		_, _ = fmt.Fprintf(fs.Output(), "  1    Differences found\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Examples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  apidog-sync diff operation-old.yaml operation-new.yaml\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("diff command requires exactly two file paths")
	}

	oldOp, err := readOperation(fs.Arg(0))
	if err != nil {
		return err
	}
	newOp, err := readOperation(fs.Arg(1))
	if err != nil {
		return err
	}

	changes := structdiff.Diff(oldOp, newOp)
	printFormattedDiff(structdiff.Format(changes))

	if len(changes) > 0 {
		os.Exit(1)
	}
	return nil
}

// printFormattedDiff colorizes the formatter's output by line prefix:
// additions green, removals red, modifications yellow.
func printFormattedDiff(formatted string) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	changed := color.New(color.FgYellow)

	for _, line := range strings.Split(formatted, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		switch {
		case strings.HasPrefix(trimmed, "+ "):
			_, _ = added.Println(line)
		case strings.HasPrefix(trimmed, "- "):
			_, _ = removed.Println(line)
		case strings.HasPrefix(trimmed, "~ "), strings.HasPrefix(trimmed, "old: "), strings.HasPrefix(trimmed, "new: "):
			_, _ = changed.Println(line)
		default:
			fmt.Println(line)
		}
	}
}

func readDocument(path string) (*catalog.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return catalog.Decode(data)
}

func readOperation(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading operation file: %w", err)
	}
	op := make(map[string]any)
	if err := yaml.Unmarshal(data, &op); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return op, nil
}

func printUsage() {
	fmt.Println(`apidog-sync - Apidog catalog reorganization and diff tools

Usage:
  apidog-sync <command> [options]

Commands:
  serve       Start the MCP server over stdio
  analyze     Analyze the folder organization of an exported catalog document
  plan        Plan a folder reorganization
  apply       Apply approved folder changes to a document
  diff        Compare two operation definitions field by field
  version     Show version information
  help        Show this help message

Examples:
  apidog-sync serve
  apidog-sync analyze export.json
  apidog-sync plan --strategy path-based -o plan.json export.json
  apidog-sync apply --changes plan.json -o updated.json export.json
  apidog-sync diff operation-old.yaml operation-new.yaml

Run 'apidog-sync <command> --help' for more information on a command.`)
}

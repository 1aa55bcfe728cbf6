package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lognitor/go-callsite/callsite"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [file|-]",
	Short: "Resolve the call site of stack traces",
	Long: `Read stack traces from a file or stdin and print, for each of them, the first
frame that belongs neither to the logger nor to dependency code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

var resolveFlags struct {
	separator  string
	asJSON     bool
	skip       int
	maxDepth   int
	sourceMaps []string
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	f := resolveCmd.Flags()
	f.StringVar(&resolveFlags.separator, "separator", "\n\n", "separator between stack traces in the input")
	f.BoolVar(&resolveFlags.asJSON, "json", false, "print one JSON object per stack trace")
	f.IntVar(&resolveFlags.skip, "skip", 0, "leading lines to skip in every stack trace")
	f.IntVar(&resolveFlags.maxDepth, "max-depth", callsite.DefaultMaxDepth, "configured stack depth; the window is max(2*depth, 10)")
	f.StringArrayVar(&resolveFlags.sourceMaps, "sourcemap", nil, "source map for a generated file as generated=path.map (repeatable)")
}

type resolveResult struct {
	callsite.Context
	State string `json:"state"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	r := callsite.NewResolver(callsite.Options{
		CaptureStack:  true,
		MaxStackDepth: resolveFlags.maxDepth,
		Debug:         debug,
		SkipLines:     resolveFlags.skip,
	})
	r.SetDiagnostics(diag)

	if len(resolveFlags.sourceMaps) > 0 {
		maps, err := loadSourceMaps(resolveFlags.sourceMaps)
		if err != nil {
			return err
		}
		r.SetSourceMaps(maps)
		diag.Debug("source maps registered", zap.Int("count", maps.Len()))
	}

	results := resolveStacks(r, input, resolveFlags.separator)
	return writeResults(cmd.OutOrStdout(), results, resolveFlags.asJSON)
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func loadSourceMaps(pairs []string) (*callsite.SourceMaps, error) {
	maps := callsite.NewSourceMaps()
	for _, pair := range pairs {
		generated, path, ok := strings.Cut(pair, "=")
		if !ok || generated == "" || path == "" {
			return nil, fmt.Errorf("invalid --sourcemap %q, want generated=path.map", pair)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read source map: %w", err)
		}
		if err := maps.Register(generated, data); err != nil {
			return nil, err
		}
	}
	return maps, nil
}

// resolveStacks splits input on sep and resolves every non-blank stack.
func resolveStacks(r *callsite.Resolver, input, sep string) []resolveResult {
	input = strings.ReplaceAll(input, "\r\n", "\n")

	chunks := []string{input}
	if sep != "" {
		chunks = strings.Split(input, sep)
	}

	results := make([]resolveResult, 0, len(chunks))
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		ctx, state := r.Walk(strings.Trim(chunk, "\n"))
		results = append(results, resolveResult{Context: ctx, State: state.String()})
	}
	return results
}

func writeResults(w io.Writer, results []resolveResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		for _, res := range results {
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
		}
		return nil
	}

	for _, res := range results {
		if res.IsEmpty() {
			if _, err := fmt.Fprintf(w, "<%s>\n", res.State); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "[%s] (%s:%d:%d)\n",
			res.FunctionName, res.FileName, res.LineNumber, res.ColumnNumber); err != nil {
			return err
		}
	}
	return nil
}

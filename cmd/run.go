package cmd

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/genum-ai/genum/internal/cli"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/genum-ai/genum/internal/runner"
	"github.com/genum-ai/genum/internal/usage"
	"github.com/spf13/cobra"
)

type runFlags struct {
	vendor          string
	model           string
	instruction     string
	question        string
	files           []string
	temperature     float64
	maxTokens       int64
	format          string
	schemaFile      string
	toolsFile       string
	reasoningEffort string
	verbosity       string
	noStore         bool
	jsonOutput      bool
}

// NewRunCmd creates the command that sends one prompt to a vendor
func NewRunCmd(container *cli.Container) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [question]",
		Short: "Send one prompt to a vendor",
		Long: `Send an instruction and a question, with optional files, tools and a response
schema, to the chosen vendor. The answer is printed with its token usage and cost.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && f.question == "" {
				f.question = args[0]
			}
			if f.question == "" {
				return fmt.Errorf("a question is required, pass it as an argument or with --question")
			}

			req, err := buildRunRequest(container, f, cmd.Flags().Changed("temperature"))
			if err != nil {
				return err
			}

			var store usage.Store
			if f.noStore {
				store = usage.NewMemoryStore()
			}

			result, err := container.Runner(store).Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			if f.jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printRunResult(cmd, container, result)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.vendor, "vendor", "v", "", "Vendor to call (openai, anthropic, gemini). Defaults to the configured vendor")
	flags.StringVarP(&f.model, "model", "m", "", "Model id. Defaults to the configured model")
	flags.StringVarP(&f.instruction, "instruction", "i", "", "System instruction")
	flags.StringVarP(&f.question, "question", "q", "", "Question to ask")
	flags.StringSliceVarP(&f.files, "file", "f", nil, "File to attach, repeatable")
	flags.Float64VarP(&f.temperature, "temperature", "t", 0, "Sampling temperature")
	flags.Int64Var(&f.maxTokens, "max-tokens", 0, "Maximum output tokens")
	flags.StringVar(&f.format, "format", "", "Response format: text, json_object or json_schema")
	flags.StringVar(&f.schemaFile, "schema", "", "JSON schema file for structured output, implies --format json_schema")
	flags.StringVar(&f.toolsFile, "tools", "", "JSON file with an array of {name, description, parameters} tools")
	flags.StringVar(&f.reasoningEffort, "reasoning-effort", "", "Reasoning effort for reasoning models")
	flags.StringVar(&f.verbosity, "verbosity", "", "Answer verbosity where the vendor supports it")
	flags.BoolVar(&f.noStore, "no-store", false, "Do not record this run in the usage ledger")
	flags.BoolVar(&f.jsonOutput, "json", false, "Print the full result as JSON")

	return cmd
}

func buildRunRequest(container *cli.Container, f *runFlags, temperatureSet bool) (runner.RunRequest, error) {
	defaults := container.Config.Defaults

	vendor := provider.Vendor(strings.ToLower(f.vendor))
	if vendor == "" {
		vendor = defaults.Vendor
	}

	model := f.model
	if model == "" {
		if vendor != defaults.Vendor {
			return runner.RunRequest{}, fmt.Errorf("--model is required when --vendor differs from the default vendor %s", defaults.Vendor)
		}
		model = defaults.Model
	}

	params := provider.Parameters{
		Temperature:     defaults.Temperature,
		MaxTokens:       defaults.MaxTokens,
		ResponseFormat:  f.format,
		ReasoningEffort: f.reasoningEffort,
		Verbosity:       f.verbosity,
	}
	if temperatureSet {
		temp := f.temperature
		params.Temperature = &temp
	}
	if f.maxTokens > 0 {
		params.MaxTokens = f.maxTokens
	}

	if f.schemaFile != "" {
		schema, err := os.ReadFile(f.schemaFile)
		if err != nil {
			return runner.RunRequest{}, fmt.Errorf("failed to read schema file: %w", err)
		}
		params.JSONSchema = string(schema)
		if params.ResponseFormat == "" {
			params.ResponseFormat = provider.ResponseFormatJSONSchema
		}
	}

	if f.toolsFile != "" {
		data, err := os.ReadFile(f.toolsFile)
		if err != nil {
			return runner.RunRequest{}, fmt.Errorf("failed to read tools file: %w", err)
		}
		if err := json.Unmarshal(data, &params.Tools); err != nil {
			return runner.RunRequest{}, fmt.Errorf("failed to parse tools file: %w", err)
		}
	}

	files := make([]provider.File, 0, len(f.files))
	for _, path := range f.files {
		file, err := readAttachment(path)
		if err != nil {
			return runner.RunRequest{}, err
		}
		files = append(files, file)
	}

	return runner.RunRequest{
		Vendor: vendor,
		Request: provider.Request{
			Instruction: f.instruction,
			Question:    f.question,
			Model:       model,
			Parameters:  params,
			Files:       files,
		},
	}, nil
}

func readAttachment(path string) (provider.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return provider.File{}, fmt.Errorf("failed to read attachment %s: %w", path, err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	// drop parameters such as charset
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	return provider.File{
		FileName:    filepath.Base(path),
		ContentType: contentType,
		Buffer:      data,
	}, nil
}

func printRunResult(cmd *cobra.Command, container *cli.Container, result *runner.RunResult) {
	t := container.ThemeMgr.GetCurrentTheme()

	if result.Response.ChainOfThoughts != "" {
		t.Subtle().Println("Thinking:")
		t.Subtle().Println(result.Response.ChainOfThoughts)
		t.Subtle().Println("")
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Response.Answer)

	t.Subtle().Printf("\n%s %s · run %s\n", result.Vendor, result.Model, result.RunID)
	t.Custom("tokens").Printf("tokens: %d prompt + %d completion = %d total\n",
		result.Response.Tokens.Prompt, result.Response.Tokens.Completion, result.Response.Tokens.Total)
	t.Custom("cost").Printf("cost: $%.6f (prompt $%.6f, completion $%.6f) · %d ms\n",
		result.Cost.Total, result.Cost.Prompt, result.Cost.Completion, result.Response.ResponseTimeMs)

	if result.SchemaValid != nil {
		if *result.SchemaValid {
			t.Success().Println("answer matches the response schema")
		} else {
			t.Warning().Println("answer does not match the response schema:")
			for _, e := range result.SchemaErrors {
				t.Warning().Printf("  - %s\n", e)
			}
		}
	}
}

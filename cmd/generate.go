package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rahulj/mockmate/internal/genbank"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a question bank with an OpenAI-compatible model",
	Long: `Generate a draft question-bank JSON file for a domain.

The draft is validated against the bank schema before it is written,
but it is a starting point for review, not a finished bank.`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("domain", "", "Domain name for the bank (required)")
	f.Int("count", 10, "Number of questions to draft")
	f.Int("start-id", 1, "First question ID")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("openai-url", "", "OpenAI-compatible API base URL (empty = api.openai.com)")
	f.String("openai-key", "", "API key (or set MOCKMATE_OPENAI_KEY)")
	f.String("openai-model", "gpt-4o-mini", "Model name")
	_ = generateCmd.MarkFlagRequired("domain")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	v := viperForCmd(cmd)
	logger := setupLogging(v)

	apiKey := v.GetString("openai-key")
	if apiKey == "" {
		return fmt.Errorf("no API key: pass --openai-key or set MOCKMATE_OPENAI_KEY")
	}

	client := genbank.New(genbank.Config{
		BaseURL: v.GetString("openai-url"),
		APIKey:  apiKey,
		Model:   v.GetString("openai-model"),
	}, logger)

	doc, err := client.Generate(cmd.Context(),
		v.GetString("domain"), v.GetInt("count"), v.GetInt("start-id"))
	if err != nil {
		return err
	}

	out := v.GetString("output")
	if out == "-" {
		_, err = os.Stdout.Write(doc)
		return err
	}
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return fmt.Errorf("write bank file: %w", err)
	}
	fmt.Printf("Draft bank written to %s\n", out)
	return nil
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/j921216063/portfolio/renderer"
)

const assistModel = "gemini-2.5-pro"

const assistInstruction = `You are a careful portfolio analyst. You receive a
markdown report of a personal investment portfolio: summary statistics,
current holdings, value history and recent transactions. Review it in plain
language: concentration, drawdown, volatility and anything unusual in the
transaction log. You give observations, not investment advice.`

// assistCmd holds the flags for the 'assist' subcommand.
type assistCmd struct {
	overrides overridesFlag
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask Gemini to review the portfolio report" }
func (*assistCmd) Usage() string {
	return `pfd assist [question...]

  Sends the portfolio report to Gemini and prints a plain-language review.
  An optional question focuses the review. Requires Gemini credentials in
  the environment.

Usage Examples:
$ pfd assist
$ pfd assist how concentrated is this portfolio?
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	c.overrides = make(overridesFlag)
	f.Var(c.overrides, "price", "Manual price override, SYMBOL=PRICE. Repeatable.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	data, status := runSimulation(c.overrides)
	if data == nil {
		return status
	}
	report := renderer.Report(*portfolioName, data)

	question := "Review this portfolio."
	if f.NArg() > 0 {
		question = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: assistInstruction}}},
	}
	chat, err := client.Chats.Create(ctx, assistModel, config, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error starting the chat:", err)
		return subcommands.ExitFailure
	}

	resp, err := chat.Send(ctx,
		&genai.Part{Text: report},
		&genai.Part{Text: question},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error asking Gemini:", err)
		return subcommands.ExitFailure
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		fmt.Fprintln(os.Stderr, "Empty response from Gemini.")
		return subcommands.ExitFailure
	}

	printMarkdown(resp.Candidates[0].Content.Parts[0].Text)
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"fintrack"
	"fintrack/agent"
	"fintrack/renderer"
)

type assistCmd struct {
	offline bool
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `ft assist [question]

  Starts an interactive chat about your finances, grounded on the current
  ledger and holdings. Requires Gemini credentials in the environment.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Skip price fetches, value positions at cost.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	state, s, err := openState()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail(err)
	}

	rate, prices := marketData(ctx, c.offline, state.Investments)
	positions, _ := fintrack.AggregatePositions(state.Investments, rate, prices)

	a := agent.New(os.Stdout, os.Stdin,
		renderer.Transactions(state.Transactions),
		renderer.Recurring(state.Recurring),
		renderer.Holdings(positions),
	)
	if err := a.Run(ctx, client, prompts...); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

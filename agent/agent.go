// Package agent is the AI assistant that answers questions about the user's
// finances in an interactive chat session.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

const prompt = "assist> "

// Agent runs a chat session grounded on the user's current reports.
type Agent struct {
	w    io.Writer
	r    *bufio.Reader
	chat *genai.Chat
	// reports are markdown documents describing the current state,
	// handed to the model as system instruction.
	reports []string
}

// New creates an Agent. The reports are the markdown documents the assistant
// may ground its answers on (transactions, holdings, performance).
func New(w io.Writer, r io.Reader, reports ...string) *Agent {
	return &Agent{
		w:       w,
		r:       bufio.NewReader(r),
		reports: reports,
	}
}

// Start creates the chat session.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: a.systemInstruction()}},
		},
	}
	chat, err := client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

func (a *Agent) systemInstruction() string {
	var b strings.Builder
	fmt.Fprintln(&b, "You are a personal finance assistant. Answer questions about the user's budget and investments using only the reports below. Be concise. If the reports do not contain an answer, say so.")
	for _, report := range a.reports {
		fmt.Fprintf(&b, "\n---\n\n%s", report)
	}
	return b.String()
}

// Ask sends one question and returns the model's answer.
func (a *Agent) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from assistant")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Run starts the interactive REPL session for the agent. Prompts given up
// front are consumed before reading the user's input; blank ones are dropped
// before the loop starts, so the user is never greeted with an empty turn.
// The chat session is created on the first real question, which lets an
// immediate exit finish without credentials.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	prompts = slices.DeleteFunc(slices.Clone(prompts), func(p string) bool {
		return strings.TrimSpace(p) == ""
	})

	fmt.Fprintln(a.w, "Welcome to ft assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "bye" {
			return nil
		}

		if a.chat == nil {
			if err := a.Start(ctx, client); err != nil {
				return err
			}
		}
		answer, err := a.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		code := 1
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		os.Exit(code)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:                   "faqctl",
		Usage:                  "Query and check a taxi FAQ knowledge base from the command line",
		UseShortOptionHandling: true,
		Writer:                 out,
		ErrWriter:              out,
		ExitErrHandler:         func(*cli.Context, error) {}, // exit codes are set in main
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kb",
				Aliases: []string{"k"},
				Usage:   "Knowledge base file (JSON or block format)",
				Value:   "data/faq.json",
				EnvVars: []string{"KNOWLEDGE_PATH"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level for load diagnostics",
				Value: "warn",
			},
			&cli.BoolFlag{
				Name:  "no-fuzzy",
				Usage: "Disable typo-tolerant keyword matching",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "match",
				Aliases:   []string{"m"},
				Usage:     "Answer a question",
				ArgsUsage: "<question>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "category",
						Aliases: []string{"c"},
						Usage:   "Only consider entries of this category",
					},
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Print the full match result as JSON",
					},
				},
				Action: matchCommand,
			},
			{
				Name:      "classify",
				Usage:     "Print the category of a question",
				ArgsUsage: "<question>",
				Action:    classifyCommand,
			},
			{
				Name:  "validate",
				Usage: "Load the knowledge base and report skipped records",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Fail when any record was skipped",
					},
				},
				Action: validateCommand,
			},
		},
	}
}

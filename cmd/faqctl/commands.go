package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"taxi-faq/internal/knowledge"
	"taxi-faq/internal/matcher"
	"taxi-faq/internal/models"
	"taxi-faq/pkg/config"
	"taxi-faq/pkg/logger"
)

func loadKnowledge(c *cli.Context) (*knowledge.LoadReport, error) {
	log, err := logger.New(c.String("log-level"), "console")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	report, err := knowledge.NewLoader(log).LoadFile(c.String("kb"))
	if err != nil {
		return nil, cli.Exit(err.Error(), 2)
	}
	return report, nil
}

func question(c *cli.Context) (string, error) {
	q := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if q == "" {
		return "", cli.Exit("a question is required", 2)
	}
	return q, nil
}

func matchCommand(c *cli.Context) error {
	q, err := question(c)
	if err != nil {
		return err
	}

	var scope models.Category
	if raw := c.String("category"); raw != "" {
		scope, err = models.ParseCategory(raw)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
	}

	report, err := loadKnowledge(c)
	if err != nil {
		return err
	}

	cfg := config.DefaultMatcherConfig()
	cfg.FuzzyEnabled = !c.Bool("no-fuzzy")
	m, err := matcher.New(report.Entries, &cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to build matcher: %w", err)
	}

	res := m.MatchInCategory(q, scope)

	out := c.App.Writer
	if c.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if res.Matched() {
		fmt.Fprintf(out, "%s (%s, %.3f)\n", res.EntryID, res.Basis, res.Confidence)
		fmt.Fprintf(out, "Q: %s\n", res.Question)
	} else {
		fmt.Fprintf(out, "no match (%s)\n", res.QueryCategory)
	}
	fmt.Fprintln(out, res.Answer)
	for _, s := range res.Suggestions {
		fmt.Fprintf(out, "  ? %s\n", s)
	}
	return nil
}

func classifyCommand(c *cli.Context) error {
	q, err := question(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, matcher.Classify(q))
	return nil
}

func validateCommand(c *cli.Context) error {
	report, err := loadKnowledge(c)
	if err != nil {
		return err
	}

	counts := make(map[models.Category]int)
	for _, e := range report.Entries {
		counts[e.Category]++
	}

	out := c.App.Writer
	fmt.Fprintf(out, "%s: %d entries, %d skipped (%s)\n", report.Source, len(report.Entries), len(report.Skipped), report.Format)
	for _, cat := range matcher.CategoryPriority() {
		if counts[cat] > 0 {
			fmt.Fprintf(out, "  %-13s %d\n", cat, counts[cat])
		}
	}
	for _, skipped := range report.Skipped {
		fmt.Fprintf(out, "  skipped %s\n", skipped.Error())
	}

	if c.Bool("strict") && len(report.Skipped) > 0 {
		return cli.Exit(fmt.Sprintf("%d records skipped", len(report.Skipped)), 1)
	}
	return nil
}

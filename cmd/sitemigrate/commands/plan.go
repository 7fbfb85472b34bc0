package commands

import (
	"context"

	"git.home.luguber.info/inful/sitemigrate/internal/migrate"
	"git.home.luguber.info/inful/sitemigrate/internal/report"
)

// PlanCmd implements the 'plan' command.
type PlanCmd struct {
	Format string `short:"f" default:"text" enum:"text,markdown,html" help:"Output format (text, markdown or html)"`
}

func (p *PlanCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}

	migrator, err := migrate.New(cfg, migrate.WithLogger(g.logger()))
	if err != nil {
		return err
	}

	plan, err := migrator.Plan(context.Background())
	if err != nil {
		return err
	}
	return report.WritePlan(g.stdout(), report.Format(p.Format), plan)
}

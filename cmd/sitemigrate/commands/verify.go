package commands

import (
	"context"

	"git.home.luguber.info/inful/sitemigrate/internal/config"
	"git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
	"git.home.luguber.info/inful/sitemigrate/internal/report"
	"git.home.luguber.info/inful/sitemigrate/internal/verify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct{}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}

	result, err := verifySite(context.Background(), cfg)
	if err != nil {
		return err
	}
	if err := report.Verification(g.stdout(), result); err != nil {
		return err
	}

	if !result.OK() {
		return errors.NewError(errors.CategoryVerify, "stale references to legacy pages found").
			WithContext("findings", len(result.Findings)).
			Build()
	}
	return nil
}

func verifySite(ctx context.Context, cfg *config.Config) (*verify.Report, error) {
	return verify.New(cfg.Pages).CheckDir(ctx, cfg.Dir)
}

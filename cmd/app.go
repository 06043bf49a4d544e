package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dtroode/internhub/internal/config"
	"github.com/dtroode/internhub/internal/console"
	"github.com/dtroode/internhub/internal/logger"
	"github.com/dtroode/internhub/internal/metrics"
	"github.com/dtroode/internhub/internal/model"
	"github.com/dtroode/internhub/internal/repository/memory"
	"github.com/dtroode/internhub/internal/seed"
	"github.com/dtroode/internhub/internal/service"
	"github.com/dtroode/internhub/internal/token"
)

func buildServices(ctx context.Context, cfg *config.Config, logger *logger.Logger) (console.Services, error) {
	ds, err := loadDataset(cfg.Seed.Path)
	if err != nil {
		return console.Services{}, err
	}

	internshipRepo := memory.NewInternshipRepository()
	applicationRepo := memory.NewApplicationRepository()
	sessionRepo := memory.NewSessionRepository()

	if cfg.Seed.Enabled {
		if err := seed.Apply(ctx, ds, internshipRepo, applicationRepo); err != nil {
			return console.Services{}, fmt.Errorf("failed to apply seed dataset: %w", err)
		}
		for _, a := range ds.DanglingApplications() {
			logger.Warn("seed application references unknown internship",
				"application_id", a.ID,
				"internship_id", a.InternshipID)
		}
		logger.Info("seed dataset applied",
			"internships", len(ds.Internships),
			"applications", len(ds.Applications))
	}

	verifier, err := newVerifier(cfg.Auth.Mode, ds, logger)
	if err != nil {
		return console.Services{}, err
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	return console.Services{
		Identity: service.NewIdentity(verifier, tokenManager, sessionRepo, service.IdentityConfig{
			SessionTTL: cfg.Auth.SessionTTL,
			LoginDelay: cfg.Auth.LoginDelay,
		}, collector, logger.With("component", "identity")),
		Catalog: service.NewCatalog(internshipRepo, collector, logger.With("component", "catalog")),
		Ledger: service.NewLedger(applicationRepo, internshipRepo, service.LedgerConfig{
			ApplyDelay: cfg.Ledger.ApplyDelay,
		}, collector, logger.With("component", "ledger")),
		Projections: service.NewProjections(internshipRepo, applicationRepo),
		Gatherer:    registry,
	}, nil
}

func loadDataset(path string) (seed.Dataset, error) {
	if path == "" {
		ds, err := seed.Default()
		if err != nil {
			return seed.Dataset{}, fmt.Errorf("failed to load default seed dataset: %w", err)
		}
		return ds, nil
	}

	ds, err := seed.LoadFile(path)
	if err != nil {
		return seed.Dataset{}, fmt.Errorf("failed to load seed dataset %s: %w", path, err)
	}
	return ds, nil
}

func newVerifier(mode string, ds seed.Dataset, logger *logger.Logger) (model.CredentialVerifier, error) {
	switch mode {
	case config.AuthModeDemo:
		return service.NewDemoVerifier(ds.Users), nil
	case config.AuthModePassword:
		v := service.NewPasswordVerifier()
		for _, acc := range ds.Accounts {
			user := ds.Users[acc.Role]
			user.Email = acc.Email
			user.Role = acc.Role
			if err := v.Register(user, acc.Password); err != nil {
				return nil, fmt.Errorf("failed to register account %s: %w", acc.Email, err)
			}
		}
		if len(ds.Accounts) == 0 {
			logger.Warn("password mode without accounts, nobody can log in")
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown auth mode %q", mode)
}

func logAppVersion(w io.Writer) {
	tmpl := `Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Fprintf(w, tmpl, buildVersion, buildDate, buildCommit)
}

package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/vanguard/internal/backup"
	"github.com/julianstephens/vanguard/internal/cli"
	"github.com/julianstephens/vanguard/internal/keyring"
	"github.com/julianstephens/vanguard/internal/llm"
	"github.com/julianstephens/vanguard/internal/storage"
	"github.com/julianstephens/vanguard/internal/storage/sqlite"
	"github.com/julianstephens/vanguard/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
	// warnOnly failures do not fail the run.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Operator identity", needsDB: true, run: checkOperator},
	{name: "Ally integrity", needsDB: true, run: checkAllies},
	{name: "Text generation", needsDB: true, warnOnly: true, run: checkLLM},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
	{name: "Clock/timezone", run: checkClock},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d - run 'vanguard migrate'", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return validation.Settings(settings).Err()
}

func checkOperator(ctx *cli.Context) error {
	_, err := ctx.UserID()
	return err
}

func checkAllies(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return nil
	}
	allies, err := ctx.Store.GetAllies(userID)
	if err != nil {
		return fmt.Errorf("failed to get allies: %w", err)
	}
	for _, a := range allies {
		if err := validation.Ally(a).Err(); err != nil {
			return fmt.Errorf("ally %q: %w", a.Name, err)
		}
	}
	return nil
}

func checkLLM(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if _, err := llm.NewClient(llm.ConfigFromSettings(settings, ctx.APIKey)); err != nil {
		return fmt.Errorf("briefings and intel will be unavailable: %w", err)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'vanguard backup create'")
	}
	return nil
}

func checkKeyring(*cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkClock(*cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

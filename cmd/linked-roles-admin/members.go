package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/blitzforge/linked-roles/internal/bootstrap"
	"github.com/blitzforge/linked-roles/internal/domain/linkage"
	"github.com/blitzforge/linked-roles/internal/service"
)

const (
	defaultCommandTimeout   = 2 * time.Minute
	defaultMigrationTimeout = 5 * time.Minute
)

type memberOptions struct {
	UserID string
	NoSync bool
}

func parseMemberFlags(name string, args []string) (memberOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts memberOptions
	fs.StringVar(&opts.UserID, "user-id", "", "Discord user ID (required)")
	fs.BoolVar(&opts.NoSync, "no-sync", false, "Update the membership store without pushing to Discord")

	if err := fs.Parse(args); err != nil {
		return memberOptions{}, err
	}

	opts.UserID = strings.TrimSpace(opts.UserID)
	if opts.UserID == "" {
		return memberOptions{}, errors.New("--user-id is required")
	}
	return opts, nil
}

func runGrant(cmdCtx *commandContext, args []string) error {
	opts, err := parseMemberFlags("grant", args)
	if err != nil {
		return err
	}
	return mutateMembership(cmdCtx, opts, true)
}

func runRevoke(cmdCtx *commandContext, args []string) error {
	opts, err := parseMemberFlags("revoke", args)
	if err != nil {
		return err
	}
	return mutateMembership(cmdCtx, opts, false)
}

func mutateMembership(cmdCtx *commandContext, opts memberOptions, grant bool) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	return withServices(cmdCtx, func(services bootstrap.ServiceContainer) error {
		verb := "revoked"
		if grant {
			err := services.Memberships.AssignStaff(ctx, opts.UserID)
			if err != nil {
				return fmt.Errorf("assign staff: %w", err)
			}
			verb = "granted"
		} else if err := services.Memberships.RevokeStaff(ctx, opts.UserID); err != nil {
			return fmt.Errorf("revoke staff: %w", err)
		}

		cmdCtx.Logger.Info("membership updated", "user_id", opts.UserID, "action", verb)

		if opts.NoSync {
			return writef(os.Stdout, "%s %s for user %s (sync skipped)\n",
				verb, linkage.StaffRole, opts.UserID)
		}

		result := services.Sync.Synchronize(ctx, opts.UserID)
		return writef(os.Stdout, "%s %s for user %s (sync: %s%s)\n",
			verb, linkage.StaffRole, opts.UserID,
			result.Outcome, reasonSuffix(result))
	})
}

func reasonSuffix(result service.SyncResult) string {
	if result.Reason == "" {
		return ""
	}
	return ", " + result.Reason
}

func runListMembers(cmdCtx *commandContext, _ []string) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	return withServices(cmdCtx, func(services bootstrap.ServiceContainer) error {
		members, err := services.Memberships.Members(ctx, linkage.StaffRole)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		if len(members) == 0 {
			return writeln(os.Stdout, "No staff members recorded.")
		}
		for _, id := range members {
			if werr := writeln(os.Stdout, id); werr != nil {
				return werr
			}
		}
		return writef(os.Stdout, "\nTotal: %d\n", len(members))
	})
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	timeout := fs.Duration("timeout", defaultMigrationTimeout,
		"Maximum duration to wait for migrations to complete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *timeout <= 0 {
		return errors.New("--timeout must be greater than zero")
	}

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	db, err := bootstrap.OpenDB(ctx, cmdCtx.Config.Postgres)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer closeDB(cmdCtx, db)

	if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
		return fmt.Errorf("run migrations: %w", migrateErr)
	}

	cmdCtx.Logger.Info("migrations completed successfully")
	return nil
}

// withServices wires the full service container against live infrastructure
// and tears it down after f returns.
func withServices(cmdCtx *commandContext, f func(services bootstrap.ServiceContainer) error) error {
	db, err := bootstrap.OpenDB(cmdCtx.Ctx, cmdCtx.Config.Postgres)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer closeDB(cmdCtx, db)

	redisClient := bootstrap.NewRedisClient(cmdCtx.Config.Redis)
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", cerr)
		}
	}()

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cmdCtx.Config,
		DB:          db,
		RedisClient: redisClient,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return err
	}
	return f(services)
}

func closeDB(cmdCtx *commandContext, db *sql.DB) {
	if cerr := db.Close(); cerr != nil {
		cmdCtx.Logger.Warn("db close failed", "error", cerr)
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	sdomain "github.com/corvusHold/sentinel/internal/settings/domain"
	srepo "github.com/corvusHold/sentinel/internal/settings/repository"
)

// seedCmd represents the seed command group (direct DB operations for dev/test setup)
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Quick setup commands for development/test environments",
	Long: `Seed commands populate the realms, accounts, and app_settings tables
so an event sink instance has something to resolve deliveries against.

They write directly to the database configured via --database-url (or
SENTINEL_DATABASE_URL / DATABASE_URL), the same database the API serves from.

Example workflow:
  1. sentinel-cli seed realm --name master         # outputs REALM_ID
  2. sentinel-cli seed account --realm-id <id> --email new.user@acme.com
  3. sentinel-cli seed default                     # quick: realm + account in one go`,
}

var seedRealmCmd = &cobra.Command{
	Use:   "realm [name]",
	Short: "Create or update a realm",
	Long:  "Upsert a realm row; the ID defaults to a fresh UUID unless --realm is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if len(args) > 0 {
			name = args[0]
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		id, err := seedRealm(ctx, pool, realmID, name)
		if err != nil {
			return err
		}
		return emit(cmd, [][2]string{{"REALM_ID", id}, {"REALM_NAME", name}})
	},
}

var seedAccountCmd = &cobra.Command{
	Use:   "account",
	Short: "Create or update an account in a realm",
	Long:  "Upsert an account row; disabled accounts mimic a registration held for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		rid, _ := cmd.Flags().GetString("realm-id")
		if rid == "" {
			rid = realmID
		}
		id, _ := cmd.Flags().GetString("id")
		email, _ := cmd.Flags().GetString("email")
		disabled, _ := cmd.Flags().GetBool("disabled")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		accountID, err := seedAccount(ctx, pool, rid, id, email, !disabled)
		if err != nil {
			return err
		}
		return emit(cmd, [][2]string{
			{"REALM_ID", rid},
			{"ACCOUNT_ID", accountID},
			{"EMAIL", strings.ToLower(strings.TrimSpace(email))},
		})
	},
}

var seedSettingCmd = &cobra.Command{
	Use:   "setting [key] [value]",
	Short: "Set an app setting, globally or per realm",
	Long: `Upsert an app_settings row. With --realm-id the setting shadows the
global value for that realm only (e.g. notify.operator_email).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rid, _ := cmd.Flags().GetString("realm-id")
		if rid == "" {
			rid = realmID
		}
		secret, _ := cmd.Flags().GetBool("secret")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := seedSetting(ctx, pool, args[0], args[1], rid, secret); err != nil {
			return err
		}
		scope := rid
		if scope == "" {
			scope = "global"
		}
		return emit(cmd, [][2]string{{"SETTING_KEY", args[0]}, {"SETTING_SCOPE", scope}})
	},
}

var seedDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Quick setup: create realm + account in one command",
	Long: `Create a complete test setup with a realm and an account, optionally
pointing registration notifications at a realm-scoped operator address.

Example:
  sentinel-cli seed default --realm-name acme --email new.user@acme.com --operator-email ops@acme.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		realmName, _ := cmd.Flags().GetString("realm-name")
		email, _ := cmd.Flags().GetString("email")
		operatorEmail, _ := cmd.Flags().GetString("operator-email")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		rid, err := seedRealm(ctx, pool, realmID, realmName)
		if err != nil {
			return fmt.Errorf("realm: %w", err)
		}
		accountID, err := seedAccount(ctx, pool, rid, "", email, true)
		if err != nil {
			return fmt.Errorf("account: %w", err)
		}
		if operatorEmail != "" {
			if err := seedSetting(ctx, pool, sdomain.KeyOperatorEmail, operatorEmail, rid, false); err != nil {
				return fmt.Errorf("operator setting: %w", err)
			}
		}
		return emit(cmd, [][2]string{
			{"REALM_ID", rid},
			{"REALM_NAME", realmName},
			{"ACCOUNT_ID", accountID},
			{"EMAIL", strings.ToLower(strings.TrimSpace(email))},
		})
	},
}

func init() {
	seedRealmCmd.Flags().String("name", "test", "realm name")

	seedAccountCmd.Flags().String("realm-id", "", "realm the account belongs to (falls back to --realm)")
	seedAccountCmd.Flags().String("id", "", "account ID (default: fresh UUID)")
	seedAccountCmd.Flags().String("email", "", "account email")
	seedAccountCmd.Flags().Bool("disabled", false, "create the account in disabled state")

	seedSettingCmd.Flags().String("realm-id", "", "scope the setting to one realm (falls back to --realm)")
	seedSettingCmd.Flags().Bool("secret", false, "mark the setting as secret")

	seedDefaultCmd.Flags().String("realm-name", "test", "realm name")
	seedDefaultCmd.Flags().String("email", "new.user@example.com", "account email")
	seedDefaultCmd.Flags().String("operator-email", "", "realm-scoped operator notification address")

	seedCmd.AddCommand(seedRealmCmd)
	seedCmd.AddCommand(seedAccountCmd)
	seedCmd.AddCommand(seedSettingCmd)
	seedCmd.AddCommand(seedDefaultCmd)
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required (--database-url, SENTINEL_DATABASE_URL, or config file)")
	}
	pgCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	return pgxpool.NewWithConfig(ctx, pgCfg)
}

func seedRealm(ctx context.Context, pool *pgxpool.Pool, id, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("realm name is required")
	}
	if id == "" {
		id = uuid.NewString()
	}
	_, err := pool.Exec(ctx,
		`INSERT INTO realms (id, name) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, id, name)
	if err != nil {
		return "", fmt.Errorf("realm upsert: %w", err)
	}
	return id, nil
}

func seedAccount(ctx context.Context, pool *pgxpool.Pool, realmID, id, email string, enabled bool) (string, error) {
	if strings.TrimSpace(realmID) == "" {
		return "", fmt.Errorf("--realm-id is required")
	}
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("--email is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if id == "" {
		id = uuid.NewString()
	}
	_, err := pool.Exec(ctx,
		`INSERT INTO accounts (realm_id, id, email, enabled) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (realm_id, id) DO UPDATE SET email = EXCLUDED.email, enabled = EXCLUDED.enabled`,
		realmID, id, email, enabled)
	if err != nil {
		return "", fmt.Errorf("account upsert: %w", err)
	}
	return id, nil
}

func seedSetting(ctx context.Context, pool *pgxpool.Pool, key, value, realm string, secret bool) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("setting key is required")
	}
	var scope *string
	if realm != "" {
		scope = &realm
	}
	return srepo.New(pool).Upsert(ctx, key, scope, value, secret)
}

func emit(cmd *cobra.Command, pairs [][2]string) error {
	if outputFmt == "json" {
		return printJSON(cmd.OutOrStdout(), pairs)
	}
	printEnv(cmd.OutOrStdout(), pairs)
	return nil
}

// printEnv writes KEY=value lines for scripts (eval-able shell exports).
func printEnv(w io.Writer, pairs [][2]string) {
	for _, p := range pairs {
		fmt.Fprintf(w, "%s=%s\n", p[0], p[1])
	}
}

func printJSON(w io.Writer, pairs [][2]string) error {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[strings.ToLower(p[0])] = p[1]
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

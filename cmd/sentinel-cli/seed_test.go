package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	arepo "github.com/corvusHold/sentinel/internal/accounts/repository"
	sdomain "github.com/corvusHold/sentinel/internal/settings/domain"
	srepo "github.com/corvusHold/sentinel/internal/settings/repository"
)

func TestSeedRealm_RequiresName(t *testing.T) {
	if _, err := seedRealm(context.Background(), nil, "", "  "); err == nil {
		t.Fatal("expected error for blank realm name")
	}
}

func TestSeedAccount_Validation(t *testing.T) {
	ctx := context.Background()
	if _, err := seedAccount(ctx, nil, "", "", "a@b.example", true); err == nil {
		t.Fatal("expected error for missing realm-id")
	}
	if _, err := seedAccount(ctx, nil, "master", "", "  ", true); err == nil {
		t.Fatal("expected error for missing email")
	}
}

func TestSeedSetting_RequiresKey(t *testing.T) {
	if err := seedSetting(context.Background(), nil, " ", "v", "", false); err == nil {
		t.Fatal("expected error for blank setting key")
	}
}

func TestEmit_EnvFormat(t *testing.T) {
	orig := outputFmt
	defer func() { outputFmt = orig }()
	outputFmt = "env"

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	if err := emit(cmd, [][2]string{{"REALM_ID", "r-1"}, {"EMAIL", "a@b.example"}}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	want := "REALM_ID=r-1\nEMAIL=a@b.example\n"
	if buf.String() != want {
		t.Fatalf("env output = %q, want %q", buf.String(), want)
	}
}

func TestEmit_JSONFormat(t *testing.T) {
	orig := outputFmt
	defer func() { outputFmt = orig }()
	outputFmt = "json"

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	if err := emit(cmd, [][2]string{{"REALM_ID", "r-1"}}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	var m map[string]string
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if m["realm_id"] != "r-1" {
		t.Fatalf("json output = %v", m)
	}
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	if !names["seed"] || !names["version"] {
		t.Fatalf("root commands = %v", names)
	}

	sub := map[string]bool{}
	for _, c := range seedCmd.Commands() {
		sub[c.Name()] = true
	}
	for _, want := range []string{"realm", "account", "setting", "default"} {
		if !sub[want] {
			t.Fatalf("seed subcommands = %v, missing %q", sub, want)
		}
	}
}

func TestSeed_AccountAndSettingVisibleToStores(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("skipping CLI integration test: DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	rid, err := seedRealm(ctx, pool, "", "cli-itest")
	if err != nil {
		t.Fatalf("seed realm: %v", err)
	}
	email := "cli.itest." + rid + "@example.com"
	accountID, err := seedAccount(ctx, pool, rid, "", strings.ToUpper(email), true)
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if err := seedSetting(ctx, pool, sdomain.KeyOperatorEmail, "ops@cli.example", rid, false); err != nil {
		t.Fatalf("seed setting: %v", err)
	}

	store := arepo.New(pool)
	realm, err := store.RealmByID(ctx, rid)
	if err != nil {
		t.Fatalf("realm lookup: %v", err)
	}
	account, err := store.AccountByID(ctx, realm, accountID)
	if err != nil {
		t.Fatalf("account lookup: %v", err)
	}
	if account.Email != email {
		t.Fatalf("email not normalized, got %q want %q", account.Email, email)
	}
	if !account.Enabled {
		t.Fatal("expected seeded account to be enabled")
	}

	settings := srepo.New(pool)
	v, ok, err := settings.Get(ctx, sdomain.KeyOperatorEmail, &rid)
	if err != nil || !ok || v != "ops@cli.example" {
		t.Fatalf("setting lookup = %q ok=%v err=%v", v, ok, err)
	}
}

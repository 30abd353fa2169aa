package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/plato/internal/config"
	"github.com/hammamikhairi/plato/internal/domain"
	"github.com/hammamikhairi/plato/internal/logger"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	base := []string{
		"--demo", "--quiet",
		"--log-file", "stderr",
		"--config", filepath.Join(t.TempDir(), "absent.yml"),
	}
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(base, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestShowCommand(t *testing.T) {
	out, err := execute(t, "show", "1003")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Pasta Carbonara", "Ready in minutes: 25", "200 g - spaghetti", "1. Cook the spaghetti"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Back") {
		t.Errorf("expected no back link in CLI output:\n%s", out)
	}
}

func TestShowUnknownRecipe(t *testing.T) {
	if _, err := execute(t, "show", "42"); err == nil {
		t.Fatal("expected error for unknown recipe")
	}
	if _, err := execute(t, "show", "abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestSearchCommand(t *testing.T) {
	out, err := execute(t, "search", "chicken")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Total Results: 1") || !strings.Contains(out, "Chicken Alfredo") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRandomCommand(t *testing.T) {
	out, err := execute(t, "random", "-n", "2")
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if n := strings.Count(out, "image: "); n != 2 {
		t.Fatalf("expected 2 recipes, got %d:\n%s", n, out)
	}
}

func TestNumberFlagsAreIndependent(t *testing.T) {
	randomCount, searchCount = 0, 0

	if _, err := execute(t, "search", "spaghetti", "-n", "1"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if randomCount != 0 {
		t.Fatalf("search -n leaked into random: %d", randomCount)
	}
	out, err := execute(t, "random")
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if n := strings.Count(out, "image: "); n != 3 {
		t.Fatalf("expected all 3 recipes, got %d:\n%s", n, out)
	}
}

func TestTeardownRunsOnFailure(t *testing.T) {
	if _, err := execute(t, "show", "42"); err == nil {
		t.Fatal("expected error for unknown recipe")
	}
	if app.closeFn != nil {
		t.Fatal("expected log output closed after a failing command")
	}
}

// emptyAPI answers every call with neither a value nor an error.
type emptyAPI struct{}

func (emptyAPI) Random(context.Context, int) ([]domain.RecipeSummary, error) { return nil, nil }

func (emptyAPI) Search(context.Context, string, int) (*domain.SearchResultSet, error) {
	return nil, nil
}

func (emptyAPI) Information(context.Context, int) (*domain.RecipeDetail, error) { return nil, nil }

func runWith(t *testing.T, api domain.RecipeAPI, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	app.cfg, app.log, app.api = config.Default(), logger.New(logger.LevelOff, nil), api

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	t.Cleanup(func() { cmd.SetOut(nil) })
	err := cmd.RunE(cmd, args)
	return out.String(), err
}

func TestEmptyRepliesDoNotPanic(t *testing.T) {
	_, err := runWith(t, emptyAPI{}, showCmd, "5")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	out, err := runWith(t, emptyAPI{}, searchCmd, "soup")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Total Results: 0") {
		t.Fatalf("expected empty result set, got %q", out)
	}
}

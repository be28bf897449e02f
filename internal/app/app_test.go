package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"repoqa/internal/config"
)

func TestNew_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "mysql", DatabaseURL: filepath.Join(t.TempDir(), "x.db")}
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("New() error = nil, want error for unsupported driver")
	}
}

func TestNew_PgvectorNeedsPostgres(t *testing.T) {
	cfg := &config.Config{
		DBDriver:            config.DriverSQLite,
		DatabaseURL:         filepath.Join(t.TempDir(), "x.db"),
		VectorBackend:       config.BackendPgvector,
		EmbeddingDimensions: 768,
	}
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("New() error = nil, want migration error")
	}
}

func TestApp_Close(t *testing.T) {
	var order []string
	errBoom := errors.New("boom")
	a := &App{closers: []func() error{
		func() error { order = append(order, "db"); return nil },
		func() error { order = append(order, "index"); return errBoom },
		func() error { order = append(order, "llm"); return nil },
	}}

	err := a.Close()
	if !errors.Is(err, errBoom) {
		t.Errorf("Close() error = %v, want %v", err, errBoom)
	}
	want := []string{"llm", "index", "db"}
	if len(order) != len(want) {
		t.Fatalf("Close() order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Close() order = %v, want %v", order, want)
			break
		}
	}

	if err := a.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
}

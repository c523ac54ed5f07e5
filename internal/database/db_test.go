package database

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mueblesstgo-roster/internal/config"
	"github.com/rs/zerolog"
)

func unreachableConfig() *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Host:         "127.0.0.1",
		Port:         "1",
		User:         "postgres",
		Password:     "postgres",
		Name:         "mueblesstgo",
		SSLMode:      "disable",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		MaxLifetime:  time.Minute,
	}
}

func TestNew_UnreachableServer(t *testing.T) {
	db, err := New(unreachableConfig(), zerolog.Nop())
	if err == nil {
		db.Close()
		t.Fatal("Expected an error for an unreachable server")
	}
	if db != nil {
		t.Error("Expected no handle on failure")
	}

	msg := err.Error()
	if !strings.Contains(msg, "failed to ping database") {
		t.Errorf("Expected ping failure, got %q", msg)
	}
	if !strings.Contains(msg, "mueblesstgo at 127.0.0.1:1") {
		t.Errorf("Expected target in error, got %q", msg)
	}
}

func TestErrRosterMissing_NamesTable(t *testing.T) {
	if !strings.Contains(ErrRosterMissing.Error(), RosterTable) {
		t.Errorf("Expected %q in %q", RosterTable, ErrRosterMissing.Error())
	}
}

func TestRosterMigration_TextColumnsUnbounded(t *testing.T) {
	data, err := os.ReadFile("../../migrations/000001_create_empleados.up.sql")
	if err != nil {
		t.Fatalf("Failed to read migration: %v", err)
	}
	schema := strings.ToUpper(string(data))

	if strings.Contains(schema, "VARCHAR") || strings.Contains(schema, "CHECK") {
		t.Error("Roster text columns must not carry length or value constraints")
	}
	for _, column := range []string{"RUT", "APELLIDOS", "NOMBRES", "FECHA_NACIMIENTO", "CATEGORIA", "FECHA_INGRESO"} {
		found := false
		for _, line := range strings.Split(schema, "\n") {
			fields := strings.Fields(line)
			if len(fields) >= 2 && fields[0] == column && fields[1] == "TEXT" {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected column %s declared as TEXT", column)
		}
	}
}

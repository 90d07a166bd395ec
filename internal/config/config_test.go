package config

import (
	"testing"
	"time"
)

func TestWeekday_ParsesNames(t *testing.T) {
	r := RouteConfig{OutboundWeekday: "Friday"}
	wd, err := r.Weekday()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wd != time.Friday {
		t.Errorf("expected Friday, got %v", wd)
	}

	r.OutboundWeekday = "someday"
	if _, err := r.Weekday(); err == nil {
		t.Error("expected an error for an unknown weekday")
	}
}

func TestCredentialsFromEnv_RequiresPair(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "")
	if _, err := CredentialsFromEnv(); err == nil {
		t.Error("expected an error without a client secret")
	}

	t.Setenv("AMADEUS_CLIENT_SECRET", "secret")
	t.Setenv("AMADEUS_ENV", "")
	creds, err := CredentialsFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Environment != "primary" {
		t.Errorf("expected primary default, got %s", creds.Environment)
	}

	t.Setenv("AMADEUS_ENV", "secondary")
	creds, err = CredentialsFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Environment != "secondary" {
		t.Errorf("expected secondary, got %s", creds.Environment)
	}

	t.Setenv("AMADEUS_ENV", "staging")
	if _, err := CredentialsFromEnv(); err == nil {
		t.Error("expected an error for an unknown environment flag")
	}
}

func TestDefaultConfig_CarrierTable(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Carriers.Names["G3"] != "GOL" {
		t.Errorf("expected G3 -> GOL, got %s", cfg.Carriers.Names["G3"])
	}
	if cfg.Carriers.Names["LA"] != cfg.Carriers.Names["JJ"] {
		t.Error("expected LA and JJ to share one identity")
	}
	if len(cfg.Carriers.Priority) == 0 {
		t.Error("expected a non-empty priority list")
	}
}

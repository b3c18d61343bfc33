package config

import (
	"path/filepath"
	"testing"
)

func setup(t *testing.T) (*Profiles, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".marklogic.ini")
	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatal("Could not load the profile file")
	}
	return profiles, path
}

func TestLoadMissingFile(t *testing.T) {
	profiles, path := setup(t)

	if got := profiles.Path(); got != path {
		t.Errorf("Got path is %s; want %s", got, path)
	}
	if names := profiles.Names(); len(names) != 0 {
		t.Errorf("Got profiles %v in a missing file; want none", names)
	}
}

func TestSaveAndApply(t *testing.T) {
	profiles, path := setup(t)

	cfg := DefaultConfig()
	cfg.Host = "saved.example.com"
	cfg.Username = "deployer"
	if err := profiles.Save("staging", cfg); err != nil {
		t.Fatal("Could not save the profile")
	}

	// The profile must survive a reload from disk.
	reloaded, err := LoadProfiles(path)
	if err != nil {
		t.Fatal("Could not reload the profile file")
	}
	if !reloaded.Has("staging") {
		t.Fatal("The saved profile did not survive a reload")
	}

	applied := DefaultConfig()
	if err := reloaded.Apply("staging", &applied); err != nil {
		t.Fatal("Could not apply the profile")
	}
	if applied.Host != "saved.example.com" {
		t.Errorf("Got host is %s; want saved.example.com", applied.Host)
	}
	if applied.Username != "deployer" {
		t.Errorf("Got username is %s; want deployer", applied.Username)
	}
}

func TestApplyMissingProfile(t *testing.T) {
	profiles, _ := setup(t)
	cfg := DefaultConfig()

	// A missing default profile simply leaves the defaults in place.
	if err := profiles.Apply(DefaultProfile, &cfg); err != nil {
		t.Errorf("Got error %v applying a missing default profile; want none", err)
	}
	if cfg.Host != "localhost" {
		t.Errorf("Got host is %s; want localhost", cfg.Host)
	}

	if err := profiles.Apply("staging", &cfg); err == nil {
		t.Errorf("Got no error applying a missing named profile; want one")
	}
}

func TestSwitch(t *testing.T) {
	profiles, _ := setup(t)

	cfg := DefaultConfig()
	cfg.Host = "staging.example.com"
	if err := profiles.Save("staging", cfg); err != nil {
		t.Fatal("Could not save the profile")
	}
	if err := profiles.Switch("staging"); err != nil {
		t.Fatal("Could not switch to the profile")
	}

	applied := DefaultConfig()
	if err := profiles.Apply(DefaultProfile, &applied); err != nil {
		t.Fatal("Could not apply the default profile")
	}
	if applied.Host != "staging.example.com" {
		t.Errorf("Got host is %s; want staging.example.com", applied.Host)
	}

	if err := profiles.Switch("production"); err == nil {
		t.Errorf("Got no error switching to a missing profile; want one")
	}
}

func TestClear(t *testing.T) {
	profiles, _ := setup(t)

	cfg := DefaultConfig()
	if err := profiles.Save("staging", cfg); err != nil {
		t.Fatal("Could not save the profile")
	}
	if err := profiles.Save("production", cfg); err != nil {
		t.Fatal("Could not save the profile")
	}

	if err := profiles.Clear("staging"); err != nil {
		t.Fatal("Could not clear the profile")
	}
	if profiles.Has("staging") {
		t.Errorf("Got the profile after clearing it; want it gone")
	}
	if err := profiles.Clear("staging"); err == nil {
		t.Errorf("Got no error clearing a missing profile; want one")
	}

	if err := profiles.ClearAll(); err != nil {
		t.Fatal("Could not clear all profiles")
	}
	if names := profiles.Names(); len(names) != 0 {
		t.Errorf("Got profiles %v after clearing all; want none", names)
	}
}

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host != "localhost" {
		t.Errorf("Got host is %s; want localhost", cfg.Host)
	}
	if cfg.Port != 8000 || cfg.AdminPort != 8001 || cfg.ManagementPort != 8002 {
		t.Errorf("Got ports %d/%d/%d; want 8000/8001/8002", cfg.Port, cfg.AdminPort, cfg.ManagementPort)
	}
	if cfg.Protocol != "http" {
		t.Errorf("Got protocol is %s; want http", cfg.Protocol)
	}
	if cfg.Username != "admin" || cfg.Password != "admin" {
		t.Errorf("Got credentials %s:%s; want admin:admin", cfg.Username, cfg.Password)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	os.Setenv("MMACFGTEST_HOST", "env.example.com")
	os.Setenv("MMACFGTEST_ADMIN_PORT", "9001")
	defer os.Unsetenv("MMACFGTEST_HOST")
	defer os.Unsetenv("MMACFGTEST_ADMIN_PORT")

	err, cfg := NewConfig("mmacfgtest", nil)
	if err != nil {
		t.Fatal("Could not resolve the configuration")
	}
	if cfg.Host != "env.example.com" {
		t.Errorf("Got host is %s; want env.example.com", cfg.Host)
	}
	if cfg.AdminPort != 9001 {
		t.Errorf("Got admin port is %d; want 9001", cfg.AdminPort)
	}
	// Values without an override keep their defaults.
	if cfg.ManagementPort != 8002 {
		t.Errorf("Got management port is %d; want 8002", cfg.ManagementPort)
	}
}

func TestProfileLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".marklogic.ini")
	content := "[default]\nhost = profile.example.com\nmanagement-port = 9002\n"
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal("Could not write the profile file")
	}
	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatal("Could not load the profile file")
	}

	os.Setenv("MMACFGTEST_HOST", "env.example.com")
	defer os.Unsetenv("MMACFGTEST_HOST")

	err, cfg := NewConfig("mmacfgtest", profiles)
	if err != nil {
		t.Fatal("Could not resolve the configuration")
	}
	// The environment sits above the saved profile, which sits above
	// the built-in defaults.
	if cfg.Host != "env.example.com" {
		t.Errorf("Got host is %s; want env.example.com", cfg.Host)
	}
	if cfg.ManagementPort != 9002 {
		t.Errorf("Got management port is %d; want 9002", cfg.ManagementPort)
	}
	if cfg.Username != "admin" {
		t.Errorf("Got username is %s; want admin", cfg.Username)
	}
}

func TestDefaultPath(t *testing.T) {
	home := os.Getenv("HOME")
	defer os.Setenv("HOME", home)

	os.Setenv("HOME", "/home/tester")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal("Could not resolve the default path")
	}
	if path != filepath.Join("/home/tester", ".marklogic.ini") {
		t.Errorf("Got path is %s; want /home/tester/.marklogic.ini", path)
	}

	os.Unsetenv("HOME")
	if _, err := DefaultPath(); err == nil {
		t.Errorf("Got no error without HOME; want one")
	}
}

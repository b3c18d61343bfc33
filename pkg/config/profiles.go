package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// DefaultProfile is the section commands read their connection values
// from when no profile is named.
const DefaultProfile = "default"

// Profiles wraps the ~/.marklogic.ini file. Each section is a named
// connection profile; the default section is the one picked up at
// startup. The save, switch and clear commands edit the file in place.
type Profiles struct {
	path string
	file *ini.File
}

// LoadProfiles reads an INI profile file. A missing file is not an
// error, it simply holds no profiles yet.
func LoadProfiles(path string) (*Profiles, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Profiles{path: path, file: ini.Empty()}, nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return &Profiles{path: path, file: file}, nil
}

func (p *Profiles) Path() string {
	return p.path
}

// Names lists the saved profiles in file order.
func (p *Profiles) Names() []string {
	var names []string
	for _, name := range p.file.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		names = append(names, name)
	}
	return names
}

func (p *Profiles) Has(name string) bool {
	return p.file.HasSection(name)
}

// Apply copies a saved profile's values into cfg, leaving keys the
// profile does not set untouched. A missing default profile is fine; a
// missing named profile is an error.
func (p *Profiles) Apply(name string, cfg *Config) error {
	if !p.file.HasSection(name) {
		if name == DefaultProfile {
			return nil
		}
		return errors.Errorf("no saved profile %q in %s", name, p.path)
	}
	sec := p.file.Section(name)
	applyStr(sec, "host", &cfg.Host)
	applyInt(sec, "port", &cfg.Port)
	applyInt(sec, "admin-port", &cfg.AdminPort)
	applyInt(sec, "management-port", &cfg.ManagementPort)
	applyStr(sec, "protocol", &cfg.Protocol)
	applyStr(sec, "username", &cfg.Username)
	applyStr(sec, "password", &cfg.Password)
	applyStr(sec, "ca-cert-file", &cfg.CACertFile)
	return nil
}

// Save writes cfg under the named section and persists the file.
func (p *Profiles) Save(name string, cfg Config) error {
	sec := p.file.Section(name)
	sec.Key("host").SetValue(cfg.Host)
	sec.Key("port").SetValue(strconv.Itoa(cfg.Port))
	sec.Key("admin-port").SetValue(strconv.Itoa(cfg.AdminPort))
	sec.Key("management-port").SetValue(strconv.Itoa(cfg.ManagementPort))
	sec.Key("protocol").SetValue(cfg.Protocol)
	sec.Key("username").SetValue(cfg.Username)
	sec.Key("password").SetValue(cfg.Password)
	if cfg.CACertFile != "" {
		sec.Key("ca-cert-file").SetValue(cfg.CACertFile)
	}
	return errors.Wrapf(p.file.SaveTo(p.path), "writing %s", p.path)
}

// Switch copies a saved profile over the default one, making it the
// profile future invocations start from.
func (p *Profiles) Switch(name string) error {
	if !p.file.HasSection(name) {
		return errors.Errorf("no saved profile %q in %s", name, p.path)
	}
	src := p.file.Section(name)
	dst := p.file.Section(DefaultProfile)
	for _, key := range src.Keys() {
		dst.Key(key.Name()).SetValue(key.Value())
	}
	return errors.Wrapf(p.file.SaveTo(p.path), "writing %s", p.path)
}

// Clear removes a saved profile.
func (p *Profiles) Clear(name string) error {
	if !p.file.HasSection(name) {
		return errors.Errorf("no saved profile %q in %s", name, p.path)
	}
	p.file.DeleteSection(name)
	return errors.Wrapf(p.file.SaveTo(p.path), "writing %s", p.path)
}

// ClearAll removes every saved profile.
func (p *Profiles) ClearAll() error {
	for _, name := range p.file.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		p.file.DeleteSection(name)
	}
	return errors.Wrapf(p.file.SaveTo(p.path), "writing %s", p.path)
}

func applyStr(sec *ini.Section, key string, dst *string) {
	if sec.HasKey(key) {
		*dst = sec.Key(key).String()
	}
}

func applyInt(sec *ini.Section, key string, dst *int) {
	if sec.HasKey(key) {
		if v, err := sec.Key(key).Int(); err == nil {
			*dst = v
		}
	}
}

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/databricks/databricks-sdk-go/config"
	"gopkg.in/ini.v1"
)

const DefaultProfilesFile = ".warehousecfg"

// Profile holds the connection settings of one data source, one INI section per profile
type Profile struct {
	Name   string
	Driver string

	// databricks
	Host                 string
	Token                string
	HTTPPath             string
	Catalog              string
	Schema               string
	DatabricksProfile    string
	DatabricksConfigFile string

	// snowflake
	Account   string
	User      string
	Password  string
	Database  string
	Warehouse string
	Role      string

	// duckdb
	Path string

	WarehousesTable string
	ProductsTable   string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultPath returns $HOME/.warehousecfg
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfilesFile
	}
	return filepath.Join(home, DefaultProfilesFile)
}

func NewRegistry(path string) (Registry, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	return &Profile{
		Name:                 section.Name(),
		Driver:               strings.ToLower(section.Key("driver").String()),
		Host:                 section.Key("host").String(),
		Token:                section.Key("token").String(),
		HTTPPath:             section.Key("http_path").String(),
		Catalog:              section.Key("catalog").String(),
		Schema:               section.Key("schema").String(),
		DatabricksProfile:    section.Key("databricks_profile").String(),
		DatabricksConfigFile: section.Key("databricks_config_file").String(),
		Account:              section.Key("account").String(),
		User:                 section.Key("user").String(),
		Password:             section.Key("password").String(),
		Database:             section.Key("database").String(),
		Warehouse:            section.Key("warehouse").String(),
		Role:                 section.Key("role").String(),
		Path:                 section.Key("path").String(),
		WarehousesTable:      section.Key("warehouses_table").String(),
		ProductsTable:        section.Key("products_table").String(),
	}, nil
}

// ResolveDatabricks fills a missing host or token from the Databricks CLI profile
// named by databricks_profile (~/.databrickscfg unless databricks_config_file is set).
func ResolveDatabricks(p *Profile) error {
	if p.Host != "" && p.Token != "" {
		return nil
	}
	if p.DatabricksProfile == "" {
		return fmt.Errorf("profile %s: host and token or databricks_profile are required", p.Name)
	}

	cfg := &config.Config{
		Profile:    p.DatabricksProfile,
		ConfigFile: p.DatabricksConfigFile,
	}
	if err := cfg.EnsureResolved(); err != nil {
		return fmt.Errorf("failed to resolve databricks profile %s: %w", p.DatabricksProfile, err)
	}

	if p.Host == "" {
		p.Host = cfg.Host
	}
	if p.Token == "" {
		p.Token = cfg.Token
	}
	if p.Host == "" || p.Token == "" {
		return fmt.Errorf("databricks profile %s has no host or token", p.DatabricksProfile)
	}
	return nil
}

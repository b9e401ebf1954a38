package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileConfig holds operator defaults loaded from a YAML file. Values only
// apply to flags the user did not set on the command line.
type fileConfig struct {
	Sensor    string   `yaml:"sensor,omitempty"`
	Threshold *float64 `yaml:"threshold,omitempty"`
	NDays     *float64 `yaml:"ndays,omitempty"`

	path string
}

// loadFileConfig reads a defaults file. An explicit path must exist; the
// implicit default path is skipped silently when absent.
func loadFileConfig(path string, explicit bool) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("defaults file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("defaults file %s: %w", path, err)
	}
	fc.path = path
	return &fc, nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "recoverby.yaml")
}

// mergeFileConfig loads the defaults file (explicit --config path, else the
// default location) and fills in options the user left untouched. Returns the
// loaded config, or nil if none applied.
func mergeFileConfig(cmd *cobra.Command, o *opts, path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return nil, nil
		}
	}
	fc, err := loadFileConfig(path, explicit)
	if err != nil || fc == nil {
		return nil, err
	}

	if fc.Sensor != "" && !cmd.Flags().Changed("sensor") {
		o.sensor = fc.Sensor
	}
	if fc.Threshold != nil && !cmd.Flags().Changed("threshold") {
		o.threshold = *fc.Threshold
	}
	// A file-sourced ndays is the weaker windowing mode: explicit --start or
	// --stop wins outright rather than manufacturing a conflict.
	if fc.NDays != nil && !cmd.Flags().Changed("ndays") &&
		!cmd.Flags().Changed("start") && !cmd.Flags().Changed("stop") {
		o.ndays = *fc.NDays
		// Mark as set so buildWindow picks it up.
		if err := cmd.Flags().Set("ndays", fmt.Sprintf("%v", *fc.NDays)); err != nil {
			return nil, err
		}
	}
	return fc, nil
}

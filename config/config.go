package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	ExportsFolderPath    string `json:"exportsFolderPath"`
	ExternalDrivePath    string `json:"externalDrivePath"`
	EventosPlaceholder   string `json:"eventosPlaceholder"`
	CSVEncoding          string `json:"csvEncoding"`
	StoreLogsLocally     bool   `json:"storeLogsLocally"`
	AutosaveMaxPerCase   int    `json:"autosaveMaxPerCase"`
	AutosaveMaxAgeDays   int    `json:"autosaveMaxAgeDays"`
	RichTextMaxChars     int    `json:"richTextMaxChars"`
	CartaTemplatePath    string `json:"cartaTemplatePath"`
	CartaExternalMirror  string `json:"cartaExternalMirror"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./fic_config.json"

func applyDefaults(c *Config) {
	if c.ExportsFolderPath == "" {
		c.ExportsFolderPath = "./exports"
	}
	if c.ExternalDrivePath == "" {
		c.ExternalDrivePath = "./external drive"
	}
	if c.EventosPlaceholder == "" {
		c.EventosPlaceholder = "No aplica"
	}
	if c.CSVEncoding == "" {
		c.CSVEncoding = "utf-8"
	}
	if c.AutosaveMaxPerCase == 0 {
		c.AutosaveMaxPerCase = 30
	}
	if c.AutosaveMaxAgeDays == 0 {
		c.AutosaveMaxAgeDays = 7
	}
	if c.RichTextMaxChars == 0 {
		c.RichTextMaxChars = 5000
	}
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			defaults := Config{StoreLogsLocally: true}
			applyDefaults(&defaults)
			cfg = defaults
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&tempCfg)
	cfg = tempCfg

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

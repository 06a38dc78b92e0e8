package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ChunkingConfig configures how document text is split into chunks.
type ChunkingConfig struct {
	TargetSize int  `yaml:"target_size"`
	MaxSize    int  `yaml:"max_size"`
	MinSize    int  `yaml:"min_size"`
	Overlap    int  `yaml:"overlap"`
	KeepTail   bool `yaml:"keep_tail"`
}

// RetrievalConfig configures search and the relevance policy applied to it.
type RetrievalConfig struct {
	TopK            int     `yaml:"top_k"`
	MinSimilarity   float64 `yaml:"min_similarity"`
	AnswerThreshold float64 `yaml:"answer_threshold"`
}

// AnswererConfig configures the optional local generative model.
type AnswererConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// SummaryConfig configures the document summary shown after loading.
type SummaryConfig struct {
	MaxSentences int `yaml:"max_sentences"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Answerer  AnswererConfig  `yaml:"answerer"`
	Summary   SummaryConfig   `yaml:"summary"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/docqa/config.yaml.
// If neither exists, it writes defaults to ~/.config/docqa/config.yaml and
// returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docqa", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Chunking: ChunkingConfig{
			TargetSize: 800,
			MaxSize:    1200,
			MinSize:    200,
			Overlap:    100,
		},
		Retrieval: RetrievalConfig{
			TopK:            5,
			MinSimilarity:   0.05,
			AnswerThreshold: 0.1,
		},
		Answerer: AnswererConfig{
			Enabled:     false,
			Model:       "llama3.2",
			TimeoutSecs: 120,
		},
		Summary: SummaryConfig{MaxSentences: 3},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Chunking.TargetSize == 0 {
		cfg.Chunking.TargetSize = def.Chunking.TargetSize
	}
	if cfg.Chunking.MaxSize == 0 {
		cfg.Chunking.MaxSize = def.Chunking.MaxSize
	}
	if cfg.Chunking.MinSize == 0 {
		cfg.Chunking.MinSize = def.Chunking.MinSize
	}
	if cfg.Chunking.Overlap == 0 {
		cfg.Chunking.Overlap = def.Chunking.Overlap
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if cfg.Retrieval.MinSimilarity == 0 {
		cfg.Retrieval.MinSimilarity = def.Retrieval.MinSimilarity
	}
	if cfg.Retrieval.AnswerThreshold == 0 {
		cfg.Retrieval.AnswerThreshold = def.Retrieval.AnswerThreshold
	}
	if cfg.Answerer.Model == "" {
		cfg.Answerer.Model = def.Answerer.Model
	}
	if cfg.Answerer.TimeoutSecs == 0 {
		cfg.Answerer.TimeoutSecs = def.Answerer.TimeoutSecs
	}
	if cfg.Summary.MaxSentences == 0 {
		cfg.Summary.MaxSentences = def.Summary.MaxSentences
	}
}

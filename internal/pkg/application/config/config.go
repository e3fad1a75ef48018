package config

import (
	"fmt"
	"io"

	"github.com/diwise/api-offerings/internal/pkg/application/extraction"
	"gopkg.in/yaml.v2"
)

const (
	DefaultTemplatePath string = "offering.template.jmespath"
	DefaultLogFile      string = "logs/api-offerings.log"
	DefaultMaxSizeMB    int    = 10
	DefaultMaxBackups   int    = 2
)

type Config struct {
	Classification Classification `yaml:"classification"`
	Distribution   Distribution   `yaml:"distribution"`
	Template       string         `yaml:"template"`
	Logging        Logging        `yaml:"logging"`
}

type Classification struct {
	DatasetSegment      string `yaml:"datasetSegment"`
	DistributionSegment string `yaml:"distributionSegment"`
	PreferRDFType       bool   `yaml:"preferRDFType"`
}

// Distribution selects which distribution contributes to an offering. When Required
// is left out it defaults to true for accessURL selection and false otherwise.
type Distribution struct {
	Selection string `yaml:"selection"`
	AccessURL string `yaml:"accessURL"`
	Required  *bool  `yaml:"required"`
}

type Logging struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
}

func Default() *Config {
	return &Config{
		Classification: Classification{
			DatasetSegment:      extraction.DefaultDatasetSegment,
			DistributionSegment: extraction.DefaultDistributionSegment,
			PreferRDFType:       true,
		},
		Distribution: Distribution{
			Selection: string(extraction.FirstFoundMode),
		},
		Template: DefaultTemplatePath,
		Logging: Logging{
			File:       DefaultLogFile,
			MaxSizeMB:  DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
		},
	}
}

// Load reads a YAML mapping configuration on top of the defaults. Keys that are
// missing from the input keep their default values.
func Load(input io.Reader) (*Config, error) {
	cfg := Default()

	b, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	_, err = cfg.SelectionPolicy()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Classifier() extraction.Classifier {
	return extraction.Classifier{
		DatasetSegment:      c.Classification.DatasetSegment,
		DistributionSegment: c.Classification.DistributionSegment,
		PreferRDFType:       c.Classification.PreferRDFType,
	}
}

func (c *Config) SelectionPolicy() (extraction.SelectionPolicy, error) {
	switch extraction.SelectionMode(c.Distribution.Selection) {
	case extraction.FirstFoundMode:
		policy := extraction.FirstFound()
		policy.Required = c.Distribution.required(policy.Required)
		return policy, nil
	case extraction.MatchAccessURLMode:
		if c.Distribution.AccessURL == "" {
			return extraction.SelectionPolicy{}, fmt.Errorf("distribution selection %q requires an access url", c.Distribution.Selection)
		}
		policy := extraction.MatchAccessURL(c.Distribution.AccessURL)
		policy.Required = c.Distribution.required(policy.Required)
		return policy, nil
	default:
		return extraction.SelectionPolicy{}, fmt.Errorf("unknown distribution selection %q", c.Distribution.Selection)
	}
}

func (d Distribution) required(def bool) bool {
	if d.Required == nil {
		return def
	}
	return *d.Required
}

// Package config defines the data structures related to configuration and
// includes functions for loading the offer table and validating it.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/lp-bulk/internal/row"
	"github.com/iwvelando/lp-bulk/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for lp-bulk.
type Configuration struct {
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
	Multiplier int           `yaml:"multiplier,omitempty"`
	Offers     []Offer       `yaml:"offers"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Offer is one LP store row as its text appears on the page.
type Offer struct {
	Corporation   string `yaml:"corporation"`
	Item          string `yaml:"item"`
	SellPrice     string `yaml:"sellPrice"`
	LoyaltyPoints string `yaml:"loyaltyPoints"`
	BasePrice     string `yaml:"basePrice"`
	Requirements  string `yaml:"requirements,omitempty"`
}

// Raw converts the offer into the row controller's input.
func (o Offer) Raw() row.Raw {
	return row.Raw{
		Corporation:   o.Corporation,
		Item:          o.Item,
		SellPrice:     o.SellPrice,
		LoyaltyPoints: o.LoyaltyPoints,
		BasePrice:     o.BasePrice,
		Requirements:  o.Requirements,
	}
}

// RawOffers returns the row controller input for every configured offer.
func (c *Configuration) RawOffers() []row.Raw {
	raws := make([]row.Raw, len(c.Offers))
	for i, offer := range c.Offers {
		raws[i] = offer.Raw()
	}
	return raws
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r,
// e.g. an uploaded offer table.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.TableValidator{Multiplier: c.Multiplier}
	for _, offer := range c.Offers {
		validator.Offers = append(validator.Offers, validation.OfferConfig{
			Corporation: offer.Corporation,
			Item:        offer.Item,
			SellPrice:   offer.SellPrice,
			BasePrice:   offer.BasePrice,
		})
	}
	return validator.ValidateAll()
}

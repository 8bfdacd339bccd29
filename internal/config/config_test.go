package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test offer table",
			configPath: "../../test/test_offers.yaml",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_offers.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Logging.Level != "info" {
		t.Errorf("Expected logging level info, got %q", config.Logging.Level)
	}
	if config.Logging.Format != "console" {
		t.Errorf("Expected logging format console, got %q", config.Logging.Format)
	}
	if config.Output.Format != "pretty" {
		t.Errorf("Expected output format pretty, got %q", config.Output.Format)
	}
	if config.Multiplier != 10 {
		t.Errorf("Expected multiplier 10, got %d", config.Multiplier)
	}

	expectedItems := []string{"Sisters Core Probe Launcher", "Sisters Core Scanner Probe", "Federation Navy Comet"}
	if len(config.Offers) != len(expectedItems) {
		t.Fatalf("Expected %d offers, got %d", len(expectedItems), len(config.Offers))
	}
	for i, expected := range expectedItems {
		if config.Offers[i].Item != expected {
			t.Errorf("Expected offer %d item %s, got %s", i, expected, config.Offers[i].Item)
		}
	}

	first := config.Offers[0]
	if first.SellPrice != "1M ISK" || first.LoyaltyPoints != "1,250 LP" || first.BasePrice != "200K ISK" {
		t.Errorf("Unexpected first offer fields: %+v", first)
	}
	if !strings.HasPrefix(first.Requirements, "Requirements: Tritanium (50)") {
		t.Errorf("Unexpected requirements block: %q", first.Requirements)
	}
	if config.Offers[1].Requirements != "" {
		t.Errorf("Expected no requirements for offer 1, got %q", config.Offers[1].Requirements)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	data := `multiplier: 3
offers:
  - corporation: Sisters of EVE
    item: Probe
    sellPrice: 90K ISK
    loyaltyPoints: 50 LP
    basePrice: 10K ISK
`
	config, err := LoadConfigurationFromReader(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if config.Multiplier != 3 {
		t.Errorf("Expected multiplier 3, got %d", config.Multiplier)
	}
	if len(config.Offers) != 1 || config.Offers[0].SellPrice != "90K ISK" {
		t.Errorf("Unexpected offers: %+v", config.Offers)
	}

	if _, err := LoadConfigurationFromReader(strings.NewReader("offers: [unterminated")); err == nil {
		t.Errorf("LoadConfigurationFromReader() expected error for invalid YAML")
	}
}

func TestLoadConfigurationIsolated(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	if err := os.WriteFile(first, []byte("multiplier: 5\noutput:\n  format: csv\n"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	if err := os.WriteFile(second, []byte("multiplier: 7\n"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := LoadConfiguration(first); err != nil {
		t.Fatalf("LoadConfiguration(first) error = %v", err)
	}
	config, err := LoadConfiguration(second)
	if err != nil {
		t.Fatalf("LoadConfiguration(second) error = %v", err)
	}
	if config.Output.Format != "" {
		t.Errorf("Expected no output format to leak from the first file, got %q", config.Output.Format)
	}
	if config.Multiplier != 7 {
		t.Errorf("Expected multiplier 7, got %d", config.Multiplier)
	}
}

func TestRawOffers(t *testing.T) {
	config := &Configuration{
		Offers: []Offer{
			{Corporation: "Sisters of EVE", Item: "Probe", SellPrice: "90K", LoyaltyPoints: "50", BasePrice: "10K", Requirements: "Requirements: A - 1K ISK"},
		},
	}

	raws := config.RawOffers()
	if len(raws) != 1 {
		t.Fatalf("Expected 1 raw offer, got %d", len(raws))
	}
	raw := raws[0]
	if raw.Corporation != "Sisters of EVE" || raw.Item != "Probe" || raw.SellPrice != "90K" ||
		raw.LoyaltyPoints != "50" || raw.BasePrice != "10K" || raw.Requirements != "Requirements: A - 1K ISK" {
		t.Errorf("Raw() dropped fields: %+v", raw)
	}
}

func TestValidateConfiguration(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_offers.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := config.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("Expected no warnings for test offers, got %v", warnings)
	}

	config.Multiplier = 1
	config.Offers = append(config.Offers, config.Offers[0])
	warnings := config.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Errorf("Expected 2 warnings, got %d: %v", len(warnings), warnings)
	}

	empty := &Configuration{}
	if warnings := empty.ValidateConfiguration(); len(warnings) != 1 {
		t.Errorf("Expected 1 warning for empty config, got %v", warnings)
	}
}

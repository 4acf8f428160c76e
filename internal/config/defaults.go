package config

// DefaultSelectionConfig returns the selection settings with every default applied.
func DefaultSelectionConfig() *SelectionConfig {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return &cfg.Selection
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "/usr/local/var/erabu/catalog.json"
	}
	if cfg.Catalog.Format == "" {
		cfg.Catalog.Format = "auto"
	}
	if cfg.Selection.DefaultLimit == 0 {
		cfg.Selection.DefaultLimit = 10
	}
	if cfg.Selection.MaxLimit == 0 {
		cfg.Selection.MaxLimit = 20
	}
	if cfg.Selection.MaxResults == 0 {
		cfg.Selection.MaxResults = 10
	}
	if cfg.Selection.SimilarLimit == 0 {
		cfg.Selection.SimilarLimit = 5
	}
	if cfg.Selection.RRFK == 0 {
		cfg.Selection.RRFK = 60
	}
	if cfg.Selection.DescriptionMaxChars == 0 {
		cfg.Selection.DescriptionMaxChars = 150
	}
	if cfg.Selection.MaxCardTags == 0 {
		cfg.Selection.MaxCardTags = 3
	}
	if cfg.Selection.CurrencySymbol == "" {
		cfg.Selection.CurrencySymbol = "$"
	}
}

package world

import "strings"

const (
	DefaultSeed   = "wildmark"
	DefaultWidth  = 2400.0
	DefaultHeight = 1800.0
)

type Config struct {
	Seed   string  `json:"seed"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	FoxCount   int `json:"foxCount"`
	WolfCount  int `json:"wolfCount"`
	ViperCount int `json:"viperCount"`

	TreeCount          int `json:"treeCount"`
	StoneCount         int `json:"stoneCount"`
	StorageBoxCount    int `json:"storageBoxCount"`
	RainCollectorCount int `json:"rainCollectorCount"`
}

func (cfg Config) normalized() Config {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = DefaultSeed
	}
	if normalized.Width <= 0 {
		normalized.Width = DefaultWidth
	}
	if normalized.Height <= 0 {
		normalized.Height = DefaultHeight
	}
	if normalized.FoxCount < 0 {
		normalized.FoxCount = 0
	}
	if normalized.WolfCount < 0 {
		normalized.WolfCount = 0
	}
	if normalized.ViperCount < 0 {
		normalized.ViperCount = 0
	}
	if normalized.TreeCount < 0 {
		normalized.TreeCount = 0
	}
	if normalized.StoneCount < 0 {
		normalized.StoneCount = 0
	}
	if normalized.StorageBoxCount < 0 {
		normalized.StorageBoxCount = 0
	}
	if normalized.RainCollectorCount < 0 {
		normalized.RainCollectorCount = 0
	}
	return normalized
}

func (cfg Config) Normalized() Config {
	return cfg.normalized()
}

func DefaultConfig() Config {
	return Config{
		Seed:   DefaultSeed,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

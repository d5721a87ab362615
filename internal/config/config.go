package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/groblegark/bingod/internal/model"
)

type Config struct {
	HTTPAddr   string // BINGO_HTTP_ADDR (default "127.0.0.1:0", OS-assigned port)
	DataDir    string // BINGO_DATA_DIR (default "data")
	WebDir     string // BINGO_WEB_DIR (optional, empty = no static UI)
	RuntimeDir string // BINGO_RUNTIME_DIR (default "runtime"; url.txt lives here)
	NATSURL    string // BINGO_NATS_URL (optional, empty = no events)

	// Backup settings
	BackupInterval   time.Duration // BINGO_BACKUP_INTERVAL (default 0 = disabled)
	BackupS3Bucket   string        // BINGO_BACKUP_S3_BUCKET (enables S3 when set)
	BackupS3Endpoint string        // BINGO_BACKUP_S3_ENDPOINT (custom endpoint for MinIO)
	BackupS3Region   string        // BINGO_BACKUP_S3_REGION (default "us-east-1")
	BackupS3Key      string        // BINGO_BACKUP_S3_KEY (default "bingo/backup.jsonl")

	// Defaults applied to newly created events, optionally overridden by a
	// TOML file named by BINGO_DEFAULTS.
	DefaultUI    model.UIConfig
	DefaultRules model.RulesConfig
}

func Load() (*Config, error) {
	c := &Config{
		HTTPAddr:         envOrDefault("BINGO_HTTP_ADDR", "127.0.0.1:0"),
		DataDir:          envOrDefault("BINGO_DATA_DIR", "data"),
		WebDir:           os.Getenv("BINGO_WEB_DIR"),
		RuntimeDir:       envOrDefault("BINGO_RUNTIME_DIR", "runtime"),
		NATSURL:          os.Getenv("BINGO_NATS_URL"),
		BackupS3Bucket:   os.Getenv("BINGO_BACKUP_S3_BUCKET"),
		BackupS3Endpoint: os.Getenv("BINGO_BACKUP_S3_ENDPOINT"),
		BackupS3Region:   envOrDefault("BINGO_BACKUP_S3_REGION", "us-east-1"),
		BackupS3Key:      envOrDefault("BINGO_BACKUP_S3_KEY", "bingo/backup.jsonl"),
		DefaultUI:        model.DefaultUI(),
		DefaultRules:     model.DefaultRules(),
	}

	if intervalStr := os.Getenv("BINGO_BACKUP_INTERVAL"); intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("BINGO_BACKUP_INTERVAL: %w", err)
		}
		c.BackupInterval = d
	}

	if path := os.Getenv("BINGO_DEFAULTS"); path != "" {
		if err := c.loadDefaults(path); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// defaultsFile mirrors the TOML shape of the optional defaults file:
//
//	[ui]
//	animation_ms = 1500
//	confirm_undo = false
//
//	[rules]
//	win_line = 2
type defaultsFile struct {
	UI struct {
		AnimationMs *int  `toml:"animation_ms"`
		ConfirmUndo *bool `toml:"confirm_undo"`
		ConfirmEnd  *bool `toml:"confirm_end"`
	} `toml:"ui"`
	Rules struct {
		FreeCenter  *bool `toml:"free_center"`
		WinLine     *int  `toml:"win_line"`
		DiagAllowed *bool `toml:"diag_allowed"`
	} `toml:"rules"`
}

// loadDefaults overlays the TOML defaults file onto the built-in defaults.
// Absent keys keep their built-in values; the 1..75 range is not overridable.
func (c *Config) loadDefaults(path string) error {
	var df defaultsFile
	if _, err := toml.DecodeFile(path, &df); err != nil {
		return fmt.Errorf("BINGO_DEFAULTS %s: %w", path, err)
	}

	if v := df.UI.AnimationMs; v != nil {
		if *v < 0 {
			return fmt.Errorf("BINGO_DEFAULTS %s: ui.animation_ms must be non-negative", path)
		}
		c.DefaultUI.AnimationMs = *v
	}
	if v := df.UI.ConfirmUndo; v != nil {
		c.DefaultUI.ConfirmUndo = *v
	}
	if v := df.UI.ConfirmEnd; v != nil {
		c.DefaultUI.ConfirmEnd = *v
	}

	if v := df.Rules.FreeCenter; v != nil {
		c.DefaultRules.FreeCenter = *v
	}
	if v := df.Rules.WinLine; v != nil {
		if *v < 1 {
			return fmt.Errorf("BINGO_DEFAULTS %s: rules.win_line must be at least 1", path)
		}
		c.DefaultRules.WinLine = *v
	}
	if v := df.Rules.DiagAllowed; v != nil {
		c.DefaultRules.DiagAllowed = *v
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration against its struct-level validation
// tags and cross-field rules the tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	if cfg.Upstream.Backend == "firebase" &&
		cfg.Upstream.Firebase.ProjectID == "" &&
		cfg.Upstream.Firebase.CredentialsFile == "" {
		return fmt.Errorf("upstream backend is firebase but neither project_id nor credentials_file is set")
	}
	return nil
}

package module

import "pricehunter/internal/platform/config"

// Options controls the catalog API surface
type Options struct {
	AdminToken string
}

// FromConfig reads CORE_API_* values
func FromConfig(cfg config.Conf) Options {
	return Options{AdminToken: cfg.Prefix("CORE_API_").MayString("ADMIN_TOKEN", "")}
}

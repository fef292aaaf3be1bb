package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"api_url":            "",
		"retention_days":     30,
		"release_lookback":   10,
		"deploy.environment": "production",
	}
}

// GetDefaultConfigTemplate returns a commented project config template.
func GetDefaultConfigTemplate() string {
	return `# ghscripts configuration
# Environment variables override these values (GHSCRIPTS_<KEY>, e.g. GHSCRIPTS_RETENTION_DAYS).

retention_days: 30                    # Age in days after which cleanup deletes runs and artifacts
release_lookback: 10                  # Releases fetched when looking for the previous tag
api_url: ""                           # GitHub Enterprise Server API URL (default: api.github.com)

deploy:
  environment: production             # Environment named in deployment notifications
`
}

package config

// ProjectConfigPath returns the path to the project-level config file,
// relative to the current directory.
func ProjectConfigPath() string {
	return ".ghscripts.yml"
}

// LegacyProjectConfigPath returns the path to the legacy JSON config file.
func LegacyProjectConfigPath() string {
	return ".ghscripts.json"
}

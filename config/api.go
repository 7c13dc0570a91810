package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Read-only public surface (dashboard widgets query GraphQL directly)
	return []string{"/health", "/graphql"}
}

package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public read-only surfaces (GraphQL query surface, health check)
	return []string{"/graphql", "/playground", "/healthz"}
}

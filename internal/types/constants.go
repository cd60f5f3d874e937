package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// AllowedOrigins is the CORS allow-list: CLIENT_URL plus any extra origins
// from ALLOWED_ORIGINS (comma separated). Falls back to the local dashboard
// dev server when neither is set.
var AllowedOrigins = allowedOrigins()

func allowedOrigins() []string {
	var origins []string

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	return origins
}

package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar      = "PORT"
	appNameVar      = "APP_NAME"
	envVar          = "ENV"
	logLevelVar     = "LOG_LEVEL"
	jwtSecretVar    = "JWT_SECRET"
	defaultJWTValue = "development-secret-key"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "UIGen")
}

func (EnvVars) GetEnv() string {
	return GetEnv(envVar, "DEV")
}

// IsProduction reports whether session cookies must carry the Secure attribute.
func (e EnvVars) IsProduction() bool {
	switch strings.ToLower(e.GetEnv()) {
	case "production", "prod":
		return true
	}
	return false
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetJWTSecret() string {
	return GetEnv(jwtSecretVar, defaultJWTValue)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

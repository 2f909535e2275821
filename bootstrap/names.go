package bootstrap

import (
	"fmt"
	"time"
)

const (
	migratedNamePrefix = "Design from "
	newDesignNameFmt   = "New Design #%d"

	// localeTimeLayout renders like an en-US toLocaleTimeString, e.g. 3:45:22 PM
	localeTimeLayout = "3:04:05 PM"

	newDesignRange = 100000
)

// MigratedProjectName names a project created from anonymous work.
func MigratedProjectName(now time.Time) string {
	return migratedNamePrefix + now.Format(localeTimeLayout)
}

// NewProjectName names an empty project. r is a uniform draw from [0, 1).
func NewProjectName(r float64) string {
	return fmt.Sprintf(newDesignNameFmt, int(r*newDesignRange))
}

// Package buildinfo carries the values stamped in with -ldflags -X.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the release version, else the commit, else "dev".
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	}
	return "dev"
}

// String is the multi-line form printed by the version command.
func String() string {
	return fmt.Sprintf("recoveryui %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// Package version описывает сборку ledger-service; значения подставляются через -ldflags:
//
//	-X github.com/vladislavdragonenkov/posledger/internal/version.version=v1.2.0
package version

import (
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// Service: имя сервиса в логах и ответах /healthz.
const Service = "posledger"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Build: сведения о текущем бинарнике.
type Build struct {
	Service   string
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// Current возвращает сведения о сборке.
func Current() Build {
	return Build{
		Service:   Service,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
}

// Dev истинно для бинарников, собранных без -ldflags.
func (b Build) Dev() bool { return b.Version == "dev" }

func (b Build) String() string {
	return fmt.Sprintf("%s %s (commit=%s date=%s %s)", b.Service, b.Version, b.Commit, b.Date, b.GoVersion)
}

// Fields: поля сборки для стартовой записи лога.
func (b Build) Fields() log.Fields {
	return log.Fields{
		"service": b.Service,
		"version": b.Version,
		"commit":  b.Commit,
		"built":   b.Date,
		"go":      b.GoVersion,
	}
}

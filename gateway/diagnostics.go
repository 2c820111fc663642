package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/example/goldshop/pkg/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Status strings reported by GET /test.
const (
	statusRunning        = "✅ Running"
	statusNotAvailable   = "❌ Not Available"
	statusAvailable      = "✅ Available"
	statusWorking        = "✅ Connected & Working"
	statusNotInitialized = "⚠️  Available but not initialized"
	statusConnected      = "Connected"
	statusNotConnected   = "Not Connected"
	statusSet            = "✅ Set"
	statusNotSet         = "❌ Not Set"
	placeholderName      = "✅ Connected"

	prefixConnectedError = "⚠️  Connected but Error: "
	prefixError          = "❌ Error: "
)

const (
	maxListedCollections = 10
	maxErrorLength       = 50
)

// DiagnosticReport is the body of GET /test. DatabaseURL and DatabaseName
// report whether the environment variables are set; ActiveDatabase holds the
// name of the connected database.
type DiagnosticReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ActiveDatabase   *string  `json:"active_database"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

func (g *Gateway) diagnostics(c *gin.Context) {
	report := runDiagnostics(c.Request.Context(), g.store, g.lookupEnv, g.config.Diagnostics.Timeout)
	g.logger.Debug("Diagnostics report",
		zap.String("database", report.Database),
		zap.String("connection_status", report.ConnectionStatus))
	c.JSON(http.StatusOK, report)
}

// runDiagnostics never fails. Each check is isolated: an error or panic in
// one only rewrites that check's field.
func runDiagnostics(ctx context.Context, store DatabaseInspector, lookupEnv func(string) (string, bool), timeout time.Duration) DiagnosticReport {
	report := DiagnosticReport{
		Backend:          statusRunning,
		Database:         statusNotAvailable,
		DatabaseURL:      statusNotSet,
		DatabaseName:     statusNotSet,
		ConnectionStatus: statusNotConnected,
		Collections:      []string{},
	}

	if err := guard(func() error {
		if store == nil {
			report.Database = statusNotInitialized
			return nil
		}

		report.Database = statusAvailable
		report.ConnectionStatus = statusConnected

		name := placeholderName
		if err := guard(func() error {
			if n := store.DatabaseName(); n != "" {
				name = n
			}
			return nil
		}); err != nil {
			name = prefixError + truncate(err.Error(), maxErrorLength)
		}
		report.ActiveDatabase = &name

		if err := guard(func() error {
			listCtx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				listCtx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			names, err := store.ListCollectionNames(listCtx)
			if err != nil {
				return err
			}
			if len(names) > maxListedCollections {
				names = names[:maxListedCollections]
			}
			if names != nil {
				report.Collections = names
			}
			report.Database = statusWorking
			return nil
		}); err != nil {
			report.Database = prefixConnectedError + truncate(err.Error(), maxErrorLength)
		}
		return nil
	}); err != nil {
		report.Database = prefixError + truncate(err.Error(), maxErrorLength)
	}

	report.DatabaseURL = envStatus(lookupEnv, config.EnvDatabaseURL)
	report.DatabaseName = envStatus(lookupEnv, config.EnvDatabaseName)

	return report
}

func envStatus(lookupEnv func(string) (string, bool), key string) string {
	status := statusNotSet
	if err := guard(func() error {
		if v, ok := lookupEnv(key); ok && v != "" {
			status = statusSet
		}
		return nil
	}); err != nil {
		return prefixError + truncate(err.Error(), maxErrorLength)
	}
	return status
}

// guard runs fn and converts a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

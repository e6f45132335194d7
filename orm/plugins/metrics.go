package plugins

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/husky-nft/nftgate/metrics"
)

const startTimeKey = "metrics:start_time"

var tablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)DELETE\s+FROM\s+["\x60]?(\w+)["\x60]?`),
	regexp.MustCompile(`(?i)INSERT\s+INTO\s+["\x60]?(\w+)["\x60]?`),
	regexp.MustCompile(`(?i)UPDATE\s+["\x60]?(\w+)["\x60]?`),
	regexp.MustCompile(`(?i)FROM\s+["\x60]?(\w+)["\x60]?`),
}

// MetricsPlugin is a GORM plugin that tracks database query metrics
type MetricsPlugin struct{}

func NewMetricsPlugin() *MetricsPlugin {
	return &MetricsPlugin{}
}

func (p *MetricsPlugin) Name() string {
	return "MetricsPlugin"
}

func (p *MetricsPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Query().Before("*").Register("metrics:before_query", p.before); err != nil {
		return err
	}
	if err := cb.Query().After("*").Register("metrics:after_query", p.after); err != nil {
		return err
	}
	if err := cb.Create().Before("*").Register("metrics:before_create", p.before); err != nil {
		return err
	}
	if err := cb.Create().After("*").Register("metrics:after_create", p.after); err != nil {
		return err
	}
	if err := cb.Update().Before("*").Register("metrics:before_update", p.before); err != nil {
		return err
	}
	if err := cb.Update().After("*").Register("metrics:after_update", p.after); err != nil {
		return err
	}
	if err := cb.Delete().Before("*").Register("metrics:before_delete", p.before); err != nil {
		return err
	}
	if err := cb.Delete().After("*").Register("metrics:after_delete", p.after); err != nil {
		return err
	}
	if err := cb.Raw().Before("*").Register("metrics:before_raw", p.before); err != nil {
		return err
	}
	return cb.Raw().After("*").Register("metrics:after_raw", p.after)
}

func (p *MetricsPlugin) before(db *gorm.DB) {
	db.Set(startTimeKey, time.Now())
}

func (p *MetricsPlugin) after(db *gorm.DB) {
	v, ok := db.Get(startTimeKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok {
		return
	}

	status := "success"
	if db.Error != nil {
		status = "error"
	}

	operation := operationType(db)
	rows := db.RowsAffected
	if operation == "SELECT" {
		rows = -1
	}
	metrics.TrackDBQuery(operation, tableName(db), status, time.Since(start), rows)
}

func statementSQL(db *gorm.DB) string {
	if db.Statement == nil {
		return ""
	}
	return strings.TrimSpace(db.Statement.SQL.String())
}

// operationType extracts the leading SQL verb of the statement
func operationType(db *gorm.DB) string {
	sql := strings.ToUpper(statementSQL(db))
	if sql == "" {
		return "UNKNOWN"
	}
	for _, verb := range []string{"SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "ALTER", "DROP"} {
		if strings.HasPrefix(sql, verb) {
			return verb
		}
	}
	return "OTHER"
}

func tableName(db *gorm.DB) string {
	if db.Statement == nil {
		return "unknown"
	}
	if db.Statement.Table != "" {
		return db.Statement.Table
	}
	if t := extractTableFromSQL(statementSQL(db)); t != "" {
		return t
	}
	return "unknown"
}

func extractTableFromSQL(sql string) string {
	for _, re := range tablePatterns {
		if m := re.FindStringSubmatch(sql); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

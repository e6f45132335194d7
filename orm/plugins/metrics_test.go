package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func stmtDB(sql, table string) *gorm.DB {
	db := &gorm.DB{Statement: &gorm.Statement{Table: table}}
	db.Statement.SQL.WriteString(sql)
	return db
}

func TestOperationType(t *testing.T) {
	tests := map[string]string{
		`SELECT * FROM "collection_entry"`:            "SELECT",
		`  insert into collection_entry (mint) values`: "INSERT",
		`DELETE FROM "collection_entry" WHERE mint`:   "DELETE",
		`VACUUM`: "OTHER",
		``:       "UNKNOWN",
	}
	for sql, want := range tests {
		assert.Equal(t, want, operationType(stmtDB(sql, "")), sql)
	}
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "explicit", tableName(stmtDB(`SELECT 1`, "explicit")))
	assert.Equal(t, "collection_entry", tableName(stmtDB(`DELETE FROM "collection_entry" WHERE 1=1`, "")))
	assert.Equal(t, "collection_entry", tableName(stmtDB(`INSERT INTO "collection_entry" ("mint") VALUES ($1)`, "")))
	assert.Equal(t, "unknown", tableName(stmtDB(`SELECT 1`, "")))
	assert.Equal(t, "unknown", tableName(&gorm.DB{}))
}

package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationSQL_CreatesMarkerTable(t *testing.T) {
	assert.Equal(t, "agents", schemaMarkerTable)
	assert.Contains(t, migrationSQL, "CREATE TABLE IF NOT EXISTS "+schemaMarkerTable+" (")
}

func TestMigrationSQL_TableOrder(t *testing.T) {
	users := strings.Index(migrationSQL, "CREATE TABLE IF NOT EXISTS users")
	agents := strings.Index(migrationSQL, "CREATE TABLE IF NOT EXISTS agents")
	strategies := strings.Index(migrationSQL, "CREATE TABLE IF NOT EXISTS strategies")
	trades := strings.Index(migrationSQL, "CREATE TABLE IF NOT EXISTS trades")

	assert.True(t, users >= 0 && users < agents, "users must precede agents")
	assert.Less(t, agents, strategies)
	assert.Less(t, agents, trades)
}

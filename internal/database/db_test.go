package database

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnConfigRoundTrip(t *testing.T) {
	dsn := connConfig("agenda", "s3cr:et", "db.internal", "3307", "agenda").FormatDSN()

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "agenda", parsed.User)
	assert.Equal(t, "s3cr:et", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "agenda", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, time.UTC, parsed.Loc)
	assert.Equal(t, "utf8mb4_unicode_ci", parsed.Collation)
}

func TestConnConfigIPv6Host(t *testing.T) {
	cfg := connConfig("u", "", "::1", "3306", "d")
	assert.Equal(t, "[::1]:3306", cfg.Addr)
}

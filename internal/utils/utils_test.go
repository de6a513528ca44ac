package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestParseDurationEnv(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want time.Duration
	}{
		{"10s", 10 * time.Second},
		{"5m", 5 * time.Minute},
		{"24h", 24 * time.Hour},
		{"10", 10 * time.Second},
		{`"10s"`, 10 * time.Second},
		{"'60'", time.Minute},
	}
	for _, tc := range cases {
		got, err := ParseDurationEnv(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}

	for _, bad := range []string{"", "abc", "10x"} {
		_, err := ParseDurationEnv(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestParseRedisURL(t *testing.T) {
	t.Parallel()

	addr, password, db, err := ParseRedisURL("redis://default:pw@host:35459/3")
	require.NoError(t, err)
	require.Equal(t, "host:35459", addr)
	require.Equal(t, "pw", password)
	require.Equal(t, 3, db)

	_, _, _, err = ParseRedisURL("http://host:1")
	require.Error(t, err)
}

func TestIsPGUniqueViolation(t *testing.T) {
	t.Parallel()

	require.True(t, IsPGUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.False(t, IsPGUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, IsPGUniqueViolation(errors.New("other")))
}

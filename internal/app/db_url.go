package app

import (
	"net/url"
	"strings"

	"github.com/lib/pq"
)

// postgresDSN is DB_URL in either lib/pq form: a postgres:// URL or key=value conninfo.
type postgresDSN struct {
	raw   string
	isURL bool
	name  string
}

func parsePostgresDSN(raw string) postgresDSN {
	dsn := postgresDSN{raw: strings.TrimSpace(raw)}

	conninfo := dsn.raw
	if converted, err := pq.ParseURL(dsn.raw); err == nil {
		dsn.isURL = true
		conninfo = converted
	}
	dsn.name = conninfoValue(conninfo, "dbname")
	return dsn
}

// connString turns on lib/pq binary_parameters for URLs that do not set it.
// Conninfo strings are passed through untouched.
func (d postgresDSN) connString(binaryParameters bool) string {
	if !binaryParameters || !d.isURL {
		return d.raw
	}

	parsed, err := url.Parse(d.raw)
	if err != nil {
		return d.raw
	}
	query := parsed.Query()
	if query.Get("binary_parameters") != "" {
		return d.raw
	}
	query.Set("binary_parameters", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func conninfoValue(conninfo, key string) string {
	prefix := key + "="
	for _, token := range strings.Fields(conninfo) {
		if value, ok := strings.CutPrefix(token, prefix); ok {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

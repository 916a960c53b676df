// Package sqlxrepos implements the domain Repository interfaces over
// a PostgreSQL database via sqlx.
package sqlxrepos

import "strconv"

// placeholder returns the psql positional placeholder for the n-th arg.
func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

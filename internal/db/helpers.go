package db

import "github.com/jmoiron/sqlx"

// prepareInQuery expands IN (?) clauses and rebinds to $n placeholders.
func prepareInQuery(query string, args ...interface{}) (string, []interface{}, error) {
	q, a, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}
	return DB.Rebind(q), a, nil
}

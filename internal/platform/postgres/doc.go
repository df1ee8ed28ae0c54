// Package postgres implements the store interfaces against PostgreSQL
// using database/sql with the pgx driver.
package postgres

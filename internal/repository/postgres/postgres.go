// Package postgres implements the repository interfaces on PostgreSQL through pgx.
package postgres

import "github.com/egalea504/LightBnB/internal/repository"

var (
	_ repository.UserRepository        = (*UserRepository)(nil)
	_ repository.PropertyRepository    = (*PropertyRepository)(nil)
	_ repository.ReservationRepository = (*ReservationRepository)(nil)
)

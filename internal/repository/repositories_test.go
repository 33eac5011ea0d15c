package repository

import (
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}

	assert.NotNil(t, NewCatalogRepository(pool))
	assert.NotNil(t, NewRouteRepository(pool))
	assert.NotNil(t, NewFlightRepository(pool))
	assert.NotNil(t, NewOrderRepository(pool))
	assert.NotNil(t, NewUserRepository(pool))
}

// List appends its WHERE clause directly after these constants, so the
// window total has to live inside the select list, never after the joins.
func TestSharedSelects_TotalColumnInsideSelectList(t *testing.T) {
	testCases := []struct {
		name   string
		query  string
		suffix string
	}{
		{"routes", routeSelect, "ON dc.id = da.city_id"},
		{"flights", flightSelect, "ON a.id = f.airplane_id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			totalAt := strings.Index(tc.query, "COUNT(*) OVER()")
			fromAt := strings.Index(tc.query, "FROM")

			assert.Greater(t, totalAt, 0)
			assert.Less(t, totalAt, fromAt)
			assert.True(t, strings.HasSuffix(strings.TrimSpace(tc.query), tc.suffix))
		})
	}
}

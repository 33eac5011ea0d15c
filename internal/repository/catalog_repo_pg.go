package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/loplicat/airport-api-service/internal/domain"
)

// Page bounds a listing query.
type Page struct {
	Limit  int
	Offset int
}

// AirplaneFilter mirrors the airplane listing query parameters.
type AirplaneFilter struct {
	Name        string
	TypeIDs     []int64
	CapacityGTE *int
}

type CatalogRepository interface {
	CreateCountry(ctx context.Context, c *domain.Country) error
	ListCountries(ctx context.Context, page Page) ([]domain.Country, int64, error)

	CreateCity(ctx context.Context, c *domain.City) error
	ListCities(ctx context.Context, page Page) ([]domain.City, int64, error)

	CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	ListAirplaneTypes(ctx context.Context, page Page) ([]domain.AirplaneType, int64, error)

	CreateAirplane(ctx context.Context, a *domain.Airplane) error
	ListAirplanes(ctx context.Context, filter AirplaneFilter, page Page) ([]domain.Airplane, int64, error)
	GetAirplaneByID(ctx context.Context, id int64) (*domain.Airplane, error)
	SetAirplaneImage(ctx context.Context, id int64, imagePath string) error

	CreateAirport(ctx context.Context, a *domain.Airport) error
	ListAirports(ctx context.Context, page Page) ([]domain.Airport, int64, error)

	CreateCrew(ctx context.Context, c *domain.Crew) error
	ListCrew(ctx context.Context, page Page) ([]domain.Crew, int64, error)
}

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) CreateCountry(ctx context.Context, c *domain.Country) error {
	err := r.db.QueryRow(ctx, `INSERT INTO countries (name) VALUES ($1) RETURNING id`, c.Name).Scan(&c.ID)
	return mapUniqueViolation(err, "name", "country with this name already exists")
}

func (r *PGCatalogRepository) ListCountries(ctx context.Context, page Page) ([]domain.Country, int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, COUNT(*) OVER() FROM countries ORDER BY name LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	countries := make([]domain.Country, 0)
	var total int64
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name, &total); err != nil {
			return nil, 0, err
		}
		countries = append(countries, c)
	}
	return countries, total, rows.Err()
}

func (r *PGCatalogRepository) CreateCity(ctx context.Context, c *domain.City) error {
	err := r.db.QueryRow(ctx, `INSERT INTO cities (name, country_id) VALUES ($1, $2) RETURNING id`, c.Name, c.CountryID).Scan(&c.ID)
	return mapForeignKeyViolation(err, "country", c.CountryID)
}

func (r *PGCatalogRepository) ListCities(ctx context.Context, page Page) ([]domain.City, int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ci.id, ci.name, ci.country_id, co.name, COUNT(*) OVER()
		FROM cities ci
		JOIN countries co ON co.id = ci.country_id
		ORDER BY ci.name LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	var total int64
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryID, &c.CountryName, &total); err != nil {
			return nil, 0, err
		}
		cities = append(cities, c)
	}
	return cities, total, rows.Err()
}

func (r *PGCatalogRepository) CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
	return mapUniqueViolation(err, "name", "airplane type with this name already exists")
}

func (r *PGCatalogRepository) ListAirplaneTypes(ctx context.Context, page Page) ([]domain.AirplaneType, int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, COUNT(*) OVER() FROM airplane_types ORDER BY name LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	var total int64
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name, &total); err != nil {
			return nil, 0, err
		}
		types = append(types, t)
	}
	return types, total, rows.Err()
}

func (r *PGCatalogRepository) CreateAirplane(ctx context.Context, a *domain.Airplane) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO airplanes (name, rows, seats_in_row, airplane_type_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		a.Name, a.Rows, a.SeatsInRow, a.AirplaneTypeID).Scan(&a.ID)
	if a.AirplaneTypeID != nil {
		return mapForeignKeyViolation(err, "airplane_type", *a.AirplaneTypeID)
	}
	return err
}

func (r *PGCatalogRepository) ListAirplanes(ctx context.Context, filter AirplaneFilter, page Page) ([]domain.Airplane, int64, error) {
	capacityGTE := -1
	if filter.CapacityGTE != nil {
		capacityGTE = *filter.CapacityGTE
	}
	typeIDs := filter.TypeIDs
	if typeIDs == nil {
		typeIDs = []int64{}
	}
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id, t.name, a.image_path, COUNT(*) OVER()
		FROM airplanes a
		LEFT JOIN airplane_types t ON t.id = a.airplane_type_id
		WHERE ($1 = '' OR a.name ILIKE '%' || $1 || '%')
		  AND (cardinality($2::bigint[]) = 0 OR a.airplane_type_id = ANY($2::bigint[]))
		  AND ($3 < 0 OR a.rows * a.seats_in_row >= $3)
		ORDER BY a.name LIMIT $4 OFFSET $5`,
		filter.Name, typeIDs, capacityGTE, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	var total int64
	for rows.Next() {
		var a domain.Airplane
		if err := rows.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.AirplaneTypeName, &a.ImagePath, &total); err != nil {
			return nil, 0, err
		}
		airplanes = append(airplanes, a)
	}
	return airplanes, total, rows.Err()
}

func (r *PGCatalogRepository) GetAirplaneByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	row := r.db.QueryRow(ctx, `
		SELECT a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id, t.name, a.image_path
		FROM airplanes a
		LEFT JOIN airplane_types t ON t.id = a.airplane_type_id
		WHERE a.id = $1`, id)
	var a domain.Airplane
	if err := row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.AirplaneTypeName, &a.ImagePath); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "airplane", ID: id}
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGCatalogRepository) SetAirplaneImage(ctx context.Context, id int64, imagePath string) error {
	res, err := r.db.Exec(ctx, `UPDATE airplanes SET image_path = $1 WHERE id = $2`, imagePath, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "airplane", ID: id}
	}
	return nil
}

func (r *PGCatalogRepository) CreateAirport(ctx context.Context, a *domain.Airport) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO airports (name, city_id, closest_big_city) VALUES ($1, $2, $3) RETURNING id`,
		a.Name, a.CityID, a.ClosestBigCity).Scan(&a.ID)
	return mapForeignKeyViolation(err, "city", a.CityID)
}

func (r *PGCatalogRepository) ListAirports(ctx context.Context, page Page) ([]domain.Airport, int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.name, a.city_id, c.name, a.closest_big_city, COUNT(*) OVER()
		FROM airports a
		JOIN cities c ON c.id = a.city_id
		ORDER BY a.name LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	var total int64
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.CityID, &a.CityName, &a.ClosestBigCity, &total); err != nil {
			return nil, 0, err
		}
		airports = append(airports, a)
	}
	return airports, total, rows.Err()
}

func (r *PGCatalogRepository) CreateCrew(ctx context.Context, c *domain.Crew) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO crew (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		c.FirstName, c.LastName).Scan(&c.ID)
}

func (r *PGCatalogRepository) ListCrew(ctx context.Context, page Page) ([]domain.Crew, int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name, COUNT(*) OVER() FROM crew ORDER BY id LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	members := make([]domain.Crew, 0)
	var total int64
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &total); err != nil {
			return nil, 0, err
		}
		members = append(members, c)
	}
	return members, total, rows.Err()
}

func mapUniqueViolation(err error, field, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &domain.ValidationError{Field: field, Message: message}
	}
	return err
}

func mapForeignKeyViolation(err error, entity string, id int64) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return err
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)

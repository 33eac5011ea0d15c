package catalog

import (
	"context"
	"io"
	"strings"

	"github.com/loplicat/airport-api-service/internal/domain"
	"github.com/loplicat/airport-api-service/internal/repository"
	"github.com/loplicat/airport-api-service/internal/storage"
)

type CatalogUseCase interface {
	CreateCountry(ctx context.Context, name string) (*domain.Country, error)
	ListCountries(ctx context.Context, page repository.Page) ([]domain.Country, int64, error)

	CreateCity(ctx context.Context, name string, countryID int64) (*domain.City, error)
	ListCities(ctx context.Context, page repository.Page) ([]domain.City, int64, error)

	CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error)
	ListAirplaneTypes(ctx context.Context, page repository.Page) ([]domain.AirplaneType, int64, error)

	CreateAirplane(ctx context.Context, input CreateAirplaneInput) (*domain.Airplane, error)
	ListAirplanes(ctx context.Context, filter repository.AirplaneFilter, page repository.Page) ([]domain.Airplane, int64, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	UploadAirplaneImage(ctx context.Context, id int64, filename string, src io.Reader) (*domain.Airplane, error)

	CreateAirport(ctx context.Context, input CreateAirportInput) (*domain.Airport, error)
	ListAirports(ctx context.Context, page repository.Page) ([]domain.Airport, int64, error)

	CreateCrew(ctx context.Context, firstName, lastName string) (*domain.Crew, error)
	ListCrew(ctx context.Context, page repository.Page) ([]domain.Crew, int64, error)
}

type CreateAirplaneInput struct {
	Name           string
	Rows           int
	SeatsInRow     int
	AirplaneTypeID *int64
}

type CreateAirportInput struct {
	Name           string
	CityID         int64
	ClosestBigCity string
}

type CatalogService struct {
	repo   repository.CatalogRepository
	images storage.ImageStore
}

func NewCatalogService(repo repository.CatalogRepository, images storage.ImageStore) *CatalogService {
	return &CatalogService{repo: repo, images: images}
}

func (s *CatalogService) CreateCountry(ctx context.Context, name string) (*domain.Country, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	country := &domain.Country{Name: name}
	if err := s.repo.CreateCountry(ctx, country); err != nil {
		return nil, err
	}
	return country, nil
}

func (s *CatalogService) ListCountries(ctx context.Context, page repository.Page) ([]domain.Country, int64, error) {
	return s.repo.ListCountries(ctx, page)
}

func (s *CatalogService) CreateCity(ctx context.Context, name string, countryID int64) (*domain.City, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	city := &domain.City{Name: name, CountryID: countryID}
	if err := s.repo.CreateCity(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *CatalogService) ListCities(ctx context.Context, page repository.Page) ([]domain.City, int64, error) {
	return s.repo.ListCities(ctx, page)
}

func (s *CatalogService) CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	t := &domain.AirplaneType{Name: name}
	if err := s.repo.CreateAirplaneType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CatalogService) ListAirplaneTypes(ctx context.Context, page repository.Page) ([]domain.AirplaneType, int64, error) {
	return s.repo.ListAirplaneTypes(ctx, page)
}

func (s *CatalogService) CreateAirplane(ctx context.Context, input CreateAirplaneInput) (*domain.Airplane, error) {
	if err := requireName(input.Name); err != nil {
		return nil, err
	}
	if input.Rows < 1 {
		return nil, &domain.ValidationError{Field: "rows", Message: "rows must be positive"}
	}
	if input.SeatsInRow < 1 {
		return nil, &domain.ValidationError{Field: "seats_in_row", Message: "seats_in_row must be positive"}
	}

	airplane := &domain.Airplane{
		Name:           input.Name,
		Rows:           input.Rows,
		SeatsInRow:     input.SeatsInRow,
		AirplaneTypeID: input.AirplaneTypeID,
	}
	if err := s.repo.CreateAirplane(ctx, airplane); err != nil {
		return nil, err
	}
	return airplane, nil
}

func (s *CatalogService) ListAirplanes(ctx context.Context, filter repository.AirplaneFilter, page repository.Page) ([]domain.Airplane, int64, error) {
	return s.repo.ListAirplanes(ctx, filter, page)
}

func (s *CatalogService) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.repo.GetAirplaneByID(ctx, id)
}

// UploadAirplaneImage stores the blob and records its path on the
// airplane. The core never touches the image bytes beyond streaming them
// into the store.
func (s *CatalogService) UploadAirplaneImage(ctx context.Context, id int64, filename string, src io.Reader) (*domain.Airplane, error) {
	airplane, err := s.repo.GetAirplaneByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := s.images.SaveAirplaneImage(airplane.Name, filename, src)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetAirplaneImage(ctx, id, path); err != nil {
		return nil, err
	}

	airplane.ImagePath = &path
	return airplane, nil
}

func (s *CatalogService) CreateAirport(ctx context.Context, input CreateAirportInput) (*domain.Airport, error) {
	if err := requireName(input.Name); err != nil {
		return nil, err
	}
	airport := &domain.Airport{
		Name:           input.Name,
		CityID:         input.CityID,
		ClosestBigCity: input.ClosestBigCity,
	}
	if err := s.repo.CreateAirport(ctx, airport); err != nil {
		return nil, err
	}
	return airport, nil
}

func (s *CatalogService) ListAirports(ctx context.Context, page repository.Page) ([]domain.Airport, int64, error) {
	return s.repo.ListAirports(ctx, page)
}

func (s *CatalogService) CreateCrew(ctx context.Context, firstName, lastName string) (*domain.Crew, error) {
	if strings.TrimSpace(firstName) == "" {
		return nil, &domain.ValidationError{Field: "first_name", Message: "first_name is required"}
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, &domain.ValidationError{Field: "last_name", Message: "last_name is required"}
	}
	member := &domain.Crew{FirstName: firstName, LastName: lastName}
	if err := s.repo.CreateCrew(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *CatalogService) ListCrew(ctx context.Context, page repository.Page) ([]domain.Crew, int64, error) {
	return s.repo.ListCrew(ctx, page)
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

var _ CatalogUseCase = (*CatalogService)(nil)

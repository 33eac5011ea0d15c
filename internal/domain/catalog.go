package domain

// Country is a top-level reference entity. Name is unique.
type Country struct {
	ID   int64
	Name string
}

type City struct {
	ID        int64
	Name      string
	CountryID int64

	// CountryName is filled by list queries that join countries.
	CountryName string
}

type AirplaneType struct {
	ID   int64
	Name string
}

type Airplane struct {
	ID         int64
	Name       string
	Rows       int
	SeatsInRow int

	// AirplaneTypeID is nil when the type was deleted (set-null reference).
	AirplaneTypeID   *int64
	AirplaneTypeName *string

	// ImagePath is the media-relative path of the uploaded image, nil when none.
	ImagePath *string
}

// Capacity is derived on read and never stored.
func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

type Airport struct {
	ID             int64
	Name           string
	CityID         int64
	CityName       string
	ClosestBigCity string
}

type Crew struct {
	ID        int64
	FirstName string
	LastName  string
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

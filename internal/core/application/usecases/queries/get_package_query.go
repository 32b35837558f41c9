package queries

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

// ErrGetPackageQueryIsNotConstructed is returned when a GetPackageQuery was
// not created through the NewGetPackageQuery constructor.
var ErrGetPackageQueryIsNotConstructed = errors.New(
	"GetPackageQuery must be created via NewGetPackageQuery constructor",
)

// GetPackageQuery retrieves the public view of one package.
type GetPackageQuery struct {
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPackageQuery creates a query for a package by id.
func NewGetPackageQuery(packageID kernel.UUID) (GetPackageQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetPackageQuery{}, err
	}

	return GetPackageQuery{
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPackageQuery) Validate() error {
	return q.guard.Validate(ErrGetPackageQueryIsNotConstructed)
}

// PackageID returns the id of the requested package.
func (q GetPackageQuery) PackageID() kernel.UUID { return q.packageID }

// GetPackageQueryResponse is the read-side view of a package: everything the
// presentation layer renders without touching the domain aggregate.
type GetPackageQueryResponse struct {
	ID                   kernel.UUID  `json:"id"`
	Category             string       `json:"category"`
	Headline             string       `json:"headline"`
	Description          string       `json:"description,omitempty"`
	CoverPicURL          string       `json:"cover_pic_url,omitempty"`
	DestinationName      string       `json:"destination_name,omitempty"`
	DestinationAddress   string       `json:"destination_address"`
	DestinationLatitude  float64      `json:"destination_latitude"`
	DestinationLongitude float64      `json:"destination_longitude"`
	CurrentLatitude      float64      `json:"current_latitude"`
	CurrentLongitude     float64      `json:"current_longitude"`
	Status               string       `json:"status"`
	Author               kernel.UUID  `json:"author"`
	InTransitBy          *kernel.UUID `json:"in_transit_by,omitempty"`
	CreatedDate          time.Time    `json:"created_date"`
	CountFollowers       int          `json:"count_followers"`
	CountMovers          int          `json:"count_movers"`
}

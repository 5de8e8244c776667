package domain

import "errors"

var (
	ErrCoordinateSystem        = errors.New("unsupported coordinate system")
	ErrCatalogJoinInvariant    = errors.New("catalog join invariant violated")
	ErrNoData                  = errors.New("no data")
	ErrGridArchiveNotFound     = errors.New("grid archive not found")
	ErrGridArchiveInconsistent = errors.New("grid archive inconsistent")
	ErrUnknownQuantity         = errors.New("unknown quantity")

	ErrUnknownDataset  = errors.New("unknown dataset")
	ErrStationNotFound = errors.New("station not found")
	ErrInvalidPosition = errors.New("invalid position")
	ErrUpstream        = errors.New("upstream request failed")
)

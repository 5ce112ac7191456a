package repository

import (
	"context"

	"tutorly/models"
)

func (r *DefaultStateRepo) Bookings(ctx context.Context) []models.Occurrence {
	var bookings []models.Occurrence
	r.loadJSON(ctx, KeyBookings, &bookings)
	// Stored bookings predate the provenance tag in older blobs; anything
	// persisted here is a one-off by definition.
	for i := range bookings {
		bookings[i].Provenance = models.ProvenanceOneOff
	}
	return bookings
}

func (r *DefaultStateRepo) SaveBookings(ctx context.Context, bookings []models.Occurrence) error {
	return r.saveJSON(ctx, KeyBookings, bookings)
}

func (r *DefaultStateRepo) Exceptions(ctx context.Context) []models.RecurringException {
	var exceptions []models.RecurringException
	r.loadJSON(ctx, KeyExceptions, &exceptions)
	return exceptions
}

func (r *DefaultStateRepo) SaveExceptions(ctx context.Context, exceptions []models.RecurringException) error {
	return r.saveJSON(ctx, KeyExceptions, exceptions)
}

package payment

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"order_reference",
	"snapshot",
	"amount",
	"currency",
	"status",
	"external_reference",
	"redirect_url",
	"created_at",
	"updated_at",
}

func selectByReferenceQuery(orderReference string, forUpdate bool) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(paymentColumns...).
		From(pendingTable).
		Where(squirrel.Eq{"order_reference": orderReference})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	return builder
}

func staleChargedQuery(before time.Time, limit int) squirrel.SelectBuilder {
	return psqlbuilder.Select(paymentColumns...).
		From(pendingTable).
		Where(squirrel.Lt{"created_at": before}).
		Where(squirrel.Eq{"status": string(domain.PaymentPending)}).
		Where(squirrel.NotEq{"external_reference": nil}).
		OrderBy("created_at ASC").
		Limit(uint64(limit))
}

// Записи со статусом conflict и pending с созданным платежом не попадают под удаление
func deleteAbandonedQuery(before time.Time) squirrel.DeleteBuilder {
	return psqlbuilder.Delete(pendingTable).
		Where(squirrel.Lt{"created_at": before}).
		Where(squirrel.Or{
			squirrel.Eq{"status": string(domain.PaymentFailed)},
			squirrel.And{
				squirrel.Eq{"status": string(domain.PaymentPending)},
				squirrel.Eq{"external_reference": nil},
			},
		})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPayment читает строку в порядке paymentColumns. sql.ErrNoRows возвращается как есть
func scanPayment(row rowScanner) (*domain.PendingPayment, error) {
	var (
		p                 domain.PendingPayment
		snapshot          []byte
		externalReference sql.NullString
		redirectURL       sql.NullString
	)

	err := row.Scan(
		&p.ID,
		&p.OrderReference,
		&snapshot,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&externalReference,
		&redirectURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan payment: %w", ErrScanRow, err)
	}

	p.Snapshot, err = domain.DecodeReservationSnapshot(snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: reference=%s: %v", ErrSnapshot, p.OrderReference, err)
	}
	if externalReference.Valid {
		p.ExternalReference = &externalReference.String
	}
	if redirectURL.Valid {
		p.RedirectURL = &redirectURL.String
	}

	return &p, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kessal001/prenotazione-sale/internal/domain"
	"github.com/kessal001/prenotazione-sale/internal/repository"
)

// Publisher is where change events go after a successful mutation.
// Satisfied by mq.Publisher.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type BookingSvc struct {
	repo   *repository.BookingRepo
	pub    Publisher
	log    *zap.Logger
	tracer trace.Tracer
}

func NewBookingSvc(r *repository.BookingRepo, pub Publisher, log *zap.Logger) *BookingSvc {
	return &BookingSvc{
		repo:   r,
		pub:    pub,
		log:    log,
		tracer: otel.Tracer("prenotazioni"),
	}
}

func parseRFC3339UTC(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

type CreateInput struct {
	Sala          string
	Utente        string
	Fornitore     string
	NumeroPersone int
	DataOra       string // RFC3339, required
	DataOraFine   string // RFC3339, "" = open-ended
}

func (in CreateInput) validate() (start time.Time, end *time.Time, err error) {
	if in.Sala == "" {
		return start, nil, &domain.ValidationError{Field: "sala", Reason: "obbligatoria"}
	}
	if in.Utente == "" {
		return start, nil, &domain.ValidationError{Field: "utente", Reason: "obbligatorio"}
	}
	if in.Fornitore == "" {
		return start, nil, &domain.ValidationError{Field: "fornitore", Reason: "obbligatorio"}
	}
	if in.NumeroPersone <= 0 {
		return start, nil, &domain.ValidationError{Field: "numero_persone", Reason: "deve essere positivo"}
	}
	if in.DataOra == "" {
		return start, nil, &domain.ValidationError{Field: "data_ora", Reason: "obbligatoria"}
	}
	start, perr := parseRFC3339UTC(in.DataOra)
	if perr != nil {
		return start, nil, &domain.ValidationError{Field: "data_ora", Reason: "non valida"}
	}
	if in.DataOraFine != "" {
		e, perr := parseRFC3339UTC(in.DataOraFine)
		if perr != nil {
			return start, nil, &domain.ValidationError{Field: "data_ora_fine", Reason: "non valida"}
		}
		end = &e
	}
	// no end-after-start check, matching what the table accepts
	return start, end, nil
}

// Create validates, inserts, then emits an INSERT change event.
// Validation failures never reach the database.
func (s *BookingSvc) Create(ctx context.Context, in CreateInput) (*domain.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "prenotazioni.create")
	defer span.End()

	start, end, err := in.validate()
	if err != nil {
		return nil, err
	}
	b := &domain.Booking{
		Room:      in.Sala,
		Start:     start,
		End:       end,
		Requester: in.Utente,
		Vendor:    in.Fornitore,
		Headcount: in.NumeroPersone,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, domain.NewInsertError(err)
	}
	s.publish(ctx, domain.ChangeEvent{EventType: domain.EventInsert, New: b})
	return b, nil
}

type UpdateInput struct {
	Utente        *string
	Fornitore     *string
	NumeroPersone *int
	DataOra       *string // RFC3339
	DataOraFine   *string // "" clears the end, making the booking open-ended
}

func (in UpdateInput) fields() (map[string]any, error) {
	fields := map[string]any{}
	if in.Utente != nil {
		if *in.Utente == "" {
			return nil, &domain.ValidationError{Field: "utente", Reason: "obbligatorio"}
		}
		fields["utente"] = *in.Utente
	}
	if in.Fornitore != nil {
		if *in.Fornitore == "" {
			return nil, &domain.ValidationError{Field: "fornitore", Reason: "obbligatorio"}
		}
		fields["fornitore"] = *in.Fornitore
	}
	if in.NumeroPersone != nil {
		if *in.NumeroPersone <= 0 {
			return nil, &domain.ValidationError{Field: "numero_persone", Reason: "deve essere positivo"}
		}
		fields["numero_persone"] = *in.NumeroPersone
	}
	if in.DataOra != nil {
		t, err := parseRFC3339UTC(*in.DataOra)
		if err != nil {
			return nil, &domain.ValidationError{Field: "data_ora", Reason: "non valida"}
		}
		fields["data_ora"] = t
	}
	if in.DataOraFine != nil {
		if *in.DataOraFine == "" {
			fields["data_ora_fine"] = nil
		} else {
			t, err := parseRFC3339UTC(*in.DataOraFine)
			if err != nil {
				return nil, &domain.ValidationError{Field: "data_ora_fine", Reason: "non valida"}
			}
			fields["data_ora_fine"] = t
		}
	}
	return fields, nil
}

// Update merges the provided fields into the row and emits an UPDATE
// change event carrying both the prior and the merged row. sala is
// immutable and cannot be changed here.
func (s *BookingSvc) Update(ctx context.Context, id string, in UpdateInput) (*domain.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "prenotazioni.update")
	defer span.End()

	fields, err := in.fields()
	if err != nil {
		return nil, err
	}
	old, err := s.repo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.NewUpdateError(err)
	}
	b, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.NewUpdateError(err)
	}
	s.publish(ctx, domain.ChangeEvent{EventType: domain.EventUpdate, New: b, Old: old})
	return b, nil
}

// Delete removes the row and emits a DELETE change event carrying the
// prior row snapshot.
func (s *BookingSvc) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "prenotazioni.delete")
	defer span.End()

	old, err := s.repo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return domain.NewDeleteError(err)
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.NewDeleteError(err)
	}
	if !found {
		return domain.ErrNotFound
	}
	s.publish(ctx, domain.ChangeEvent{EventType: domain.EventDelete, Old: old})
	return nil
}

func (s *BookingSvc) List(ctx context.Context, sala string) ([]domain.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "prenotazioni.list")
	defer span.End()

	out, err := s.repo.ListByRoom(ctx, sala)
	if err != nil {
		return nil, domain.NewFetchError(err)
	}
	return out, nil
}

// publish is fire-and-forget: the feed is best-effort and a broker
// hiccup must not fail a mutation that already committed.
func (s *BookingSvc) publish(ctx context.Context, ev domain.ChangeEvent) {
	if err := s.pub.PublishJSON(ctx, ev.RoutingKey(), ev); err != nil {
		s.log.Warn("publish change event", zap.String("key", ev.RoutingKey()), zap.Error(err))
	}
}

package domain

import "errors"

var ErrNotFound = errors.New("prenotazione non trovata")

// Op identifies the backend call category a failure belongs to.
type Op string

const (
	OpFetch  Op = "fetch"
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

var banners = map[Op]string{
	OpFetch:  "Errore nel caricamento delle prenotazioni",
	OpInsert: "Errore nella creazione della prenotazione",
	OpUpdate: "Errore durante l'aggiornamento",
	OpDelete: "Errore durante l'eliminazione",
}

// BackendError wraps a failed backend call with the category that
// selects the banner message shown to the user. No retry, no backoff:
// the failure is surfaced once and state is left as it was.
type BackendError struct {
	Op  Op
	Err error
}

func (e *BackendError) Error() string { return string(e.Op) + " prenotazioni: " + e.Err.Error() }
func (e *BackendError) Unwrap() error { return e.Err }

// Banner is the localized message for the dismissible error banner.
func (e *BackendError) Banner() string { return banners[e.Op] }

func NewFetchError(err error) *BackendError  { return &BackendError{Op: OpFetch, Err: err} }
func NewInsertError(err error) *BackendError { return &BackendError{Op: OpInsert, Err: err} }
func NewUpdateError(err error) *BackendError { return &BackendError{Op: OpUpdate, Err: err} }
func NewDeleteError(err error) *BackendError { return &BackendError{Op: OpDelete, Err: err} }

// ValidationError reports a rejected form field. The backend is never
// called when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + " " + e.Reason }

package domain

import "errors"

// Domänenfehler (ohne externe Abhängigkeiten).
var (
	ErrNotFound           = errors.New("ressource nicht gefunden")
	ErrUserNotFound       = errors.New("benutzer nicht gefunden")
	ErrEmailAlreadyExists = errors.New("email ist bereits registriert")
	ErrInvalidInput       = errors.New("ungültige eingabe")
	ErrDuplicate          = errors.New("ressource bereits vorhanden")
	ErrUnauthorized       = errors.New("nicht autorisiert")
	ErrForbidden          = errors.New("zugriff verweigert")

	// ErrUnknownFormat: angefordertes E-Rechnungs-Format ist keines von
	// XRechnung, ZUGFeRD oder Both. Einziger Fehler, den die Engine wirft;
	// wird mit dem fehlerhaften Wert gewrappt.
	ErrUnknownFormat = errors.New("unbekanntes rechnungsformat")
)

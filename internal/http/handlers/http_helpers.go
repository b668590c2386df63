package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/store-inventory/internal/inventory"
)

const dateOnly = "2006-01-02"

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func respond(w http.ResponseWriter, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// writeServiceError maps the inventory error kinds onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	var (
		notFound *inventory.NotFoundError
		stock    *inventory.InsufficientStockError
	)
	switch {
	case errors.As(err, &notFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &stock):
		http.Error(w, err.Error(), http.StatusConflict)
	case len(inventory.FieldErrors(err)) > 0:
		respond(w, http.StatusBadRequest, inventory.FieldErrors(err))
	default:
		log.Printf("could not %s: %v", op, err)
		http.Error(w, "could not "+op, http.StatusInternalServerError)
	}
}

func pathID(w http.ResponseWriter, r *http.Request, entity string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid "+entity+" ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// parseTimeParam reads an RFC3339 timestamp or a plain date from the query.
// A plain date used as an upper bound covers the whole day.
func parseTimeParam(r *http.Request, name string, endOfDay bool) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	// URL query parameters turn + into a space, so 2025-07-03T17:44:03+02:00
	// arrives as 2025-07-03T17:44:03 02:00.
	if len(s) == len(time.RFC3339) && s[len(s)-6] == ' ' {
		s = s[:len(s)-6] + "+" + s[len(s)-5:]
	}

	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return &ts, nil
	}
	day, err := time.Parse(dateOnly, s)
	if err != nil {
		log.Printf("could not parse %s date %s: %v", name, s, err)
		return nil, fmt.Errorf("invalid %s date format", name)
	}
	if endOfDay {
		day = day.Add(24*time.Hour - time.Nanosecond)
	}
	return &day, nil
}

func parseWindow(w http.ResponseWriter, r *http.Request) (since, until *time.Time, ok bool) {
	since, err := parseTimeParam(r, "since", false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	until, err = parseTimeParam(r, "until", true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	return since, until, true
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

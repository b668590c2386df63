package handlers

import (
	"github.com/rogerio-castellano/store-inventory/internal/alerts"
	"github.com/rogerio-castellano/store-inventory/internal/inventory"
	"github.com/rogerio-castellano/store-inventory/internal/report"
)

// Server holds the dependencies shared by every handler.
type Server struct {
	svc     *inventory.Service
	reports *report.Generator
	alerts  alerts.Notifier
}

func NewServer(svc *inventory.Service, reports *report.Generator, notifier alerts.Notifier) *Server {
	return &Server{
		svc:     svc,
		reports: reports,
		alerts:  notifier,
	}
}

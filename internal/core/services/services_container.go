package services

import (
	"github.com/SscSPs/currency_converter_app/internal/core/ledger"
	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/platform/metrics"
)

// NewServiceContainer creates a new service container backed by a single ledger
func NewServiceContainer(l *ledger.Ledger, m *metrics.Metrics) *portssvc.ServiceContainer {
	converter := NewConverterService(l, m)

	return &portssvc.ServiceContainer{
		ExchangeRate: converter,
		Conversion:   converter,
	}
}

package orderprocessor

import (
	"github.com/nkiryanov/orderprocessor/internal/logger"
	"github.com/nkiryanov/orderprocessor/internal/models"
)

// Factory picks the handler by order type
// Handlers are stateless, so the factory creates them once and hands out the same instances
type Factory struct {
	typeA   Handler
	typeB   Handler
	typeC   Handler
	unknown Handler
}

func NewFactory(sink ExportSink, classifier Classifier, l logger.Logger) *Factory {
	return &Factory{
		typeA:   NewTypeAHandler(sink, l),
		typeB:   NewTypeBHandler(classifier, l),
		typeC:   TypeCHandler{},
		unknown: UnknownHandler{},
	}
}

// Create never fails: type match is exact, everything else is handled as unknown type
func (f *Factory) Create(order models.Order) Handler {
	switch order.Type {
	case models.OrderTypeA:
		return f.typeA
	case models.OrderTypeB:
		return f.typeB
	case models.OrderTypeC:
		return f.typeC
	default:
		return f.unknown
	}
}

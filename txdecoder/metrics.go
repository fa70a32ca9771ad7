package txdecoder

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeDecoded         = "decoded"
	OutcomeUnknownSelector = "unknown_selector"
	OutcomeMalformedInput  = "malformed_input"
	OutcomeAbiMismatch     = "abi_mismatch"
)

// Metrics counts decode attempts by contract type and outcome.
type Metrics struct {
	Decodes *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "narrator",
			Name:      "decode_total",
			Help:      "Transaction inputs decoded, by contract type and outcome.",
		}, []string{"contract_type", "outcome"}),
	}
	if err := reg.Register(m.Decodes); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(t ContractType, outcome string) {
	if m == nil {
		return
	}
	m.Decodes.WithLabelValues(t.String(), outcome).Inc()
}

package util

import (
	"github.com/tranvictor/narrator/history"
	"github.com/tranvictor/narrator/ui"
)

// ParamDisplay is one decoded parameter. Scalars carry Value; lists and
// tuples carry Items, named "[i]" for list elements and by field name for
// tuple members.
type ParamDisplay struct {
	Name  string         `json:"name"`
	Value *ui.StyledText `json:"value,omitempty"` // serializes as string
	Items []ParamDisplay `json:"items,omitempty"`
}

// CallDisplay is the view-model for one decoded transaction input.
type CallDisplay struct {
	Function     string         `json:"function"`
	ContractType string         `json:"contract_type"`
	Selector     string         `json:"selector,omitempty"`
	Destination  ui.StyledText  `json:"destination"`
	Narrative    string         `json:"narrative,omitempty"`
	Params       []ParamDisplay `json:"params,omitempty"`
}

// TxSummaryDisplay is one row of the history table.
type TxSummaryDisplay struct {
	Hash         string        `json:"hash"`
	Status       ui.StyledText `json:"status"`
	Function     string        `json:"function,omitempty"`
	ContractType string        `json:"contract_type,omitempty"`
	Narrative    string        `json:"narrative,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// ReportDisplay is the view-model for a history report.
type ReportDisplay struct {
	Narrative    string               `json:"narrative"`
	Analyzed     int                  `json:"transactions_analyzed"`
	Failed       int                  `json:"transactions_failed"`
	Transactions []TxSummaryDisplay   `json:"transactions"`
	Errors       []history.FetchError `json:"errors,omitempty"`
}

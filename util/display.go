package util

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tranvictor/narrator/addrbook"
	ncommon "github.com/tranvictor/narrator/common"
	"github.com/tranvictor/narrator/history"
	"github.com/tranvictor/narrator/txdecoder"
	"github.com/tranvictor/narrator/ui"
)

// ── Build phase (no UI side-effects) ────────────────────────────────────────

// labeller turns addresses into display text. A nil resolver leaves every
// address unlabelled.
type labeller struct {
	ctx      context.Context
	resolver addrbook.LabelResolver
}

// styledAddress renders a labelled address as "label (0x..)" in green and an
// unlabelled one as plain hex.
func (l labeller) styledAddress(addr common.Address) ui.StyledText {
	hex := ncommon.LowerHex(addr)
	if l.resolver == nil {
		return ui.StyledText{Text: hex}
	}
	label, err := l.resolver.ResolveLabel(l.ctx, addr)
	if err != nil || label == "" {
		return ui.StyledText{Text: hex}
	}
	return ui.StyledText{Text: fmt.Sprintf("%s (%s)", label, hex), Severity: ui.SeveritySuccess}
}

func isAddressText(s string) bool {
	return len(s) == 2+2*common.AddressLength && strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

func (l labeller) buildParam(name string, value any) ParamDisplay {
	d := ParamDisplay{Name: name}
	switch v := value.(type) {
	case *txdecoder.Parameters:
		d.Items = l.buildParams(v)
	case []any:
		d.Items = make([]ParamDisplay, 0, len(v))
		for i, item := range v {
			d.Items = append(d.Items, l.buildParam(fmt.Sprintf("[%d]", i), item))
		}
	case string:
		styled := ui.StyledText{Text: v}
		if isAddressText(v) {
			styled = l.styledAddress(common.HexToAddress(v))
		}
		d.Value = &styled
	case bool:
		d.Value = &ui.StyledText{Text: strconv.FormatBool(v)}
	default:
		d.Value = &ui.StyledText{Text: fmt.Sprintf("%v", v)}
	}
	return d
}

func (l labeller) buildParams(params *txdecoder.Parameters) []ParamDisplay {
	if params == nil {
		return nil
	}
	out := make([]ParamDisplay, 0, params.Len())
	for pair := params.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, l.buildParam(pair.Key, pair.Value))
	}
	return out
}

func buildCallDisplay(
	ctx context.Context,
	call *txdecoder.DecodedCall,
	destination *common.Address,
	resolver addrbook.LabelResolver,
) *CallDisplay {
	l := labeller{ctx: ctx, resolver: resolver}
	d := &CallDisplay{
		Function:     call.FunctionName,
		ContractType: call.ContractType.String(),
		Selector:     call.Selector,
		Params:       l.buildParams(call.Parameters),
	}
	switch {
	case destination != nil:
		d.Destination = l.styledAddress(*destination)
	case call.FunctionName == txdecoder.ConstructorFunction:
		d.Destination = ui.StyledText{Text: "contract creation"}
	default:
		d.Destination = ui.StyledText{Text: "unknown", Severity: ui.SeverityWarn}
	}
	if call.ContractType == txdecoder.Unknown {
		d.Function = fmt.Sprintf("%s (%s)", txdecoder.UnknownFunction, call.Selector)
	}
	return d
}

func styledStatus(s history.Status) ui.StyledText {
	switch s {
	case history.StatusSuccess:
		return ui.StyledText{Text: string(s), Severity: ui.SeveritySuccess}
	case history.StatusFailed:
		return ui.StyledText{Text: string(s), Severity: ui.SeverityError}
	case "":
		return ui.StyledText{Text: "not fetched", Severity: ui.SeverityWarn}
	default:
		return ui.StyledText{Text: string(s), Severity: ui.SeverityWarn}
	}
}

func buildReportDisplay(report *history.Report) *ReportDisplay {
	d := &ReportDisplay{
		Narrative: report.Narrative,
		Analyzed:  report.TransactionsAnalyzed,
		Failed:    report.TransactionsFailed,
		Errors:    report.Errors,
	}
	for _, tx := range report.Transactions {
		d.Transactions = append(d.Transactions, TxSummaryDisplay{
			Hash:         tx.Hash,
			Status:       styledStatus(tx.Status),
			Function:     tx.Function,
			ContractType: tx.ContractType,
			Narrative:    tx.Narrative,
			Error:        tx.Error,
		})
	}
	return d
}

// ── Print phase (reads only from the display structs) ───────────────────────

// paramRows flattens params into [path, value] rows, e.g. "path[1]" for
// the second element of a list and "order.amount" for a tuple member.
func paramRows(u ui.UI, prefix string, params []ParamDisplay) [][]string {
	var rows [][]string
	for _, p := range params {
		path := p.Name
		switch {
		case prefix == "":
		case strings.HasPrefix(p.Name, "["):
			path = prefix + p.Name
		default:
			path = prefix + "." + p.Name
		}
		if p.Value != nil {
			rows = append(rows, []string{path, u.Style(*p.Value)})
			continue
		}
		if len(p.Items) == 0 {
			rows = append(rows, []string{path, "[]"})
			continue
		}
		rows = append(rows, paramRows(u, path, p.Items)...)
	}
	return rows
}

func printCallDisplay(u ui.UI, d *CallDisplay) {
	u.Section(fmt.Sprintf("Function call: %s", d.Function))

	metaGroup := [][]string{
		{"Contract", u.Style(d.Destination)},
		{"Type", d.ContractType},
	}
	if d.Selector != "" {
		metaGroup = append(metaGroup, []string{"Selector", d.Selector})
	}
	groups := [][][]string{metaGroup}
	if rows := paramRows(u, "", d.Params); len(rows) > 0 {
		groups = append(groups, rows)
	}
	u.TableWithGroups(nil, groups)

	if d.Narrative != "" {
		u.Critical("%s", d.Narrative)
	}
}

func printReportDisplay(u ui.UI, d *ReportDisplay) {
	u.Section("Story")
	if d.Narrative != "" {
		u.Critical("%s", d.Narrative)
	} else {
		u.Warn("Nothing to tell.")
	}

	if len(d.Transactions) > 0 {
		u.Section("Transactions")
		groups := make([][][]string, 0, len(d.Transactions))
		for i, tx := range d.Transactions {
			what := tx.Function
			if tx.ContractType != "" {
				what = fmt.Sprintf("%s (%s)", tx.Function, tx.ContractType)
			}
			if tx.Error != "" {
				what = tx.Error
			}
			groups = append(groups, [][]string{{
				strconv.Itoa(i + 1),
				ncommon.ShortHex(tx.Hash),
				u.Style(tx.Status),
				what,
			}})
		}
		u.TableWithGroups([]string{"#", "Hash", "Status", "Call"}, groups)
	}

	for _, e := range d.Errors {
		u.Error("%s: %s (%s)", ncommon.ShortHex(e.Hash), e.Message, e.Type)
	}
	u.Info("Analyzed %d transaction(s), %d could not be fetched.", d.Analyzed, d.Failed)
}

// ── Public API ──────────────────────────────────────────────────────────────

// DisplayDecodedCall builds the view-model for a decoded call, labelling
// address parameters through resolver, and writes it to u. narrativeText is
// printed below the parameters when non-empty.
func DisplayDecodedCall(
	ctx context.Context,
	u ui.UI,
	call *txdecoder.DecodedCall,
	destination *common.Address,
	resolver addrbook.LabelResolver,
	narrativeText string,
) *CallDisplay {
	d := buildCallDisplay(ctx, call, destination, resolver)
	d.Narrative = narrativeText
	printCallDisplay(u, d)
	return d
}

// DisplayReport builds the view-model for a history report and writes it to
// u.
func DisplayReport(u ui.UI, report *history.Report) *ReportDisplay {
	d := buildReportDisplay(report)
	printReportDisplay(u, d)
	return d
}

// ParseInput decodes 0x-prefixed calldata; "0x" and "" are empty input.
func ParseInput(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0x" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

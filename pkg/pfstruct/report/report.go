// Package report renders extraction results as human-readable markdown.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/models"
)

// Currency is the currency of every amount in a statement.
const Currency = money.INR

const reportTemplate = `# Portfolio of {{ cell .PersonalDetails.Name }}

| Phone | PAN |
|---|---|
| {{ cell .PersonalDetails.Phone }} | {{ cell .PersonalDetails.PAN }} |

## Summary

| Total Investments | Current Value | Total Profit/Loss | % Profit/Loss |
|---:|---:|---:|---:|
| {{ total .Summary.TotalInvestments }} | {{ total .Summary.CurrentValue }} | {{ cell .Summary.TotalProfitLoss }} | {{ cell .Summary.ProfitLossPercent }} |

## Holdings
{{ if .Holdings }}
| Scheme Name | AMC | Category | Sub-category | Folio No. | Source | Units | Invested Value | Current Value | Returns | XIRR |
|---|---|---|---|---|---|---:|---:|---:|---:|---:|
{{ range .Holdings }}| {{ cell .SchemeName }} | {{ cell .AMC }} | {{ cell .Category }} | {{ cell .SubCategory }} | {{ cell .FolioNo }} | {{ cell .Source }} | {{ units .Units }} | {{ amount .InvestedValue }} | {{ amount .CurrentValue }} | {{ amount .Returns }} | {{ cell .XIRR }} |
{{ end }}{{ else }}
No holdings.
{{ end }}`

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"amount": Amount,
	"cell":   cell,
	"units":  units,
	"total":  total,
}).Parse(reportTemplate))

// Markdown renders the result as a markdown document.
func Markdown(result *models.Result) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, result); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return sb.String(), nil
}

// Terminal renders markdown for display in a terminal. An empty style picks
// one from the terminal background.
func Terminal(markdown, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

// Amount formats v as an INR amount with comma-separated thousands.
func Amount(v float64) string {
	cur := money.GetCurrency(Currency)
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, Currency).Display()
}

// total formats a summary total; a blank total renders as an empty cell.
func total(v *float64) string {
	if v == nil {
		return ""
	}
	return Amount(*v)
}

func units(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cellEscaper keeps a value on one table row.
var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// cell formats a raw cell value for a table column.
func cell(v interface{}) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = fmt.Sprint(x)
	}
	return cellEscaper.Replace(s)
}

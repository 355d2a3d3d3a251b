// Package pdf renders a budget plus the business profile into the fixed
// multi-section quotation document. The layout is a greedy top-to-bottom
// stack of sections; overflow paging is handled by maroto. Rendering never
// mutates its inputs and embeds no wall clock, so output is reproducible
// for a given budget.
package pdf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/diewo77/presupuestos/internal/models"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	primaryColor  = props.Color{Red: 30, Green: 58, Blue: 95}
	accentColor   = props.Color{Red: 46, Green: 125, Blue: 102}
	textColor     = props.Color{Red: 51, Green: 51, Blue: 51}
	whiteColor    = props.Color{Red: 255, Green: 255, Blue: 255}
	blockColor    = props.Color{Red: 245, Green: 247, Blue: 250}
	altRowColor   = props.Color{Red: 250, Green: 251, Blue: 252}
	acBlockColor  = props.Color{Red: 240, Green: 248, Blue: 255}
	solBlockColor = props.Color{Red: 240, Green: 255, Blue: 240}
	eleBlockColor = props.Color{Red: 255, Green: 248, Blue: 240}
	eleTitleColor = props.Color{Red: 180, Green: 100, Blue: 50}
	footerColor   = props.Color{Red: 128, Green: 128, Blue: 128}
)

const footerText = "Documento generado digitalmente - Presupuestos Pro"

// DocumentNumber derives the printed quote number from the budget id:
// first 8 characters, uppercased.
func DocumentNumber(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

var whitespaceRe = regexp.MustCompile(`\s`)

// ArtifactName is the deterministic download filename:
// Presupuesto_<id prefix>_<client name with whitespace replaced>.pdf
func ArtifactName(b *models.Budget) string {
	id := b.ID
	if len(id) > 8 {
		id = id[:8]
	}
	client := whitespaceRe.ReplaceAllString(b.ClientName, "_")
	return "Presupuesto_" + id + "_" + client + ".pdf"
}

// Render produces the document bytes for one budget and the letterhead
// profile.
func Render(b *models.Budget, p *models.Profile) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(14).
		WithTopMargin(10).
		WithRightMargin(14).
		Build()
	m := maroto.New(cfg)

	if err := m.RegisterFooter(row.New(6).Add(
		text.NewCol(12, footerText, props.Text{Size: 8, Align: align.Center, Color: &footerColor}),
	)); err != nil {
		return nil, err
	}

	addHeader(m, b, p)
	addClientBlock(m, b)
	addTechnicalBlock(m, b)
	addItemsTable(m, b)
	addTotalsBlock(m, b)
	addNotesBlock(m, b)
	addTermsBlock(m, b)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate budget pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, b *models.Budget, p *models.Profile) {
	business := p.BusinessName
	if business == "" {
		business = p.Name
	}
	band := &props.Cell{BackgroundColor: &primaryColor}
	m.AddRows(
		row.New(10).Add(
			text.NewCol(8, business, props.Text{Size: 18, Style: fontstyle.Bold, Color: &whiteColor}),
			text.NewCol(4, "PRESUPUESTO", props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right, Color: &whiteColor}),
		).WithStyle(band),
		row.New(6).Add(
			text.NewCol(8, "CUIT: "+p.TaxID, props.Text{Size: 10, Color: &whiteColor}),
			text.NewCol(4, "No. "+DocumentNumber(b.ID), props.Text{Size: 10, Align: align.Right, Color: &whiteColor}),
		).WithStyle(band),
		row.New(6).Add(
			text.NewCol(8, "Tel: "+p.Phone+" | "+p.Email, props.Text{Size: 10, Color: &whiteColor}),
			text.NewCol(4, FormatDate(b.CreatedAt), props.Text{Size: 10, Align: align.Right, Color: &whiteColor}),
		).WithStyle(band),
		row.New(7).Add(
			text.NewCol(8, p.Address, props.Text{Size: 10, Color: &whiteColor}),
			text.NewCol(4, models.CategoryLabels[b.Category], props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: &whiteColor}).
				WithStyle(&props.Cell{BackgroundColor: &accentColor}),
		).WithStyle(band),
	)
}

func addClientBlock(m core.Maroto, b *models.Budget) {
	block := &props.Cell{BackgroundColor: &blockColor}
	m.AddRows(
		row.New(8).Add(
			text.NewCol(12, "CLIENTE", props.Text{Top: 2, Size: 10, Style: fontstyle.Bold, Color: &textColor}),
		).WithStyle(block),
		row.New(8).Add(
			text.NewCol(8, b.ClientName, props.Text{Size: 10, Color: &textColor}),
			text.NewCol(4, FormatDate(b.CreatedAt), props.Text{Size: 9, Align: align.Right, Color: &textColor}),
		).WithStyle(block),
	)
}

// TechnicalLines builds the category-conditional label:value lines. AC and
// solar get their payload fields joined by a literal separator; electric is
// a static banner; anything without a payload renders nothing.
func TechnicalLines(b *models.Budget) (title string, lines []string) {
	switch {
	case b.Category == models.CategoryAC && b.ACEquipment != nil:
		eq := b.ACEquipment
		return "DATOS DEL EQUIPO", []string{
			fmt.Sprintf("Capacidad: %s frigorias   |   Tecnologia: %s   |   Estado: %s", eq.Capacity, eq.Technology, eq.Status),
		}
	case b.Category == models.CategorySolar && b.SolarSystem != nil:
		ss := b.SolarSystem
		return "DATOS DEL SISTEMA FOTOVOLTAICO", []string{
			fmt.Sprintf("Tipo de Sistema: %s", ss.SystemType),
			fmt.Sprintf("Tipo de Panel: %s   |   Potencia: %s Wp   |   Cantidad: %d", ss.PanelType, ss.PanelPower, ss.Quantity),
		}
	case b.Category == models.CategoryElectric:
		return "INSTALACION ELECTRICA DOMICILIARIA", nil
	}
	return "", nil
}

func addTechnicalBlock(m core.Maroto, b *models.Budget) {
	title, lines := TechnicalLines(b)
	if title == "" {
		return
	}
	background := &acBlockColor
	titleColor := &primaryColor
	switch b.Category {
	case models.CategorySolar:
		background = &solBlockColor
		titleColor = &accentColor
	case models.CategoryElectric:
		background = &eleBlockColor
		titleColor = &eleTitleColor
	}
	block := &props.Cell{BackgroundColor: background}
	m.AddRows(row.New(8).Add(
		text.NewCol(12, title, props.Text{Top: 2, Size: 10, Style: fontstyle.Bold, Color: titleColor}),
	).WithStyle(block))
	for _, l := range lines {
		m.AddRows(row.New(6).Add(
			text.NewCol(12, l, props.Text{Size: 9, Color: &textColor}),
		).WithStyle(block))
	}
}

func addItemsTable(m core.Maroto, b *models.Budget) {
	m.AddRows(row.New(4))
	m.AddRows(row.New(8).Add(
		text.NewCol(6, "Descripcion", props.Text{Top: 2, Size: 10, Style: fontstyle.Bold, Color: &whiteColor}),
		text.NewCol(2, "Cant.", props.Text{Top: 2, Size: 10, Style: fontstyle.Bold, Align: align.Center, Color: &whiteColor}),
		text.NewCol(2, "Precio Unit.", props.Text{Top: 2, Size: 10, Style: fontstyle.Bold, Align: align.Right, Color: &whiteColor}),
		text.NewCol(2, "Total", props.Text{Top: 2, Size: 10, Style: fontstyle.Bold, Align: align.Right, Color: &whiteColor}),
	).WithStyle(&props.Cell{BackgroundColor: &primaryColor}))
	for i, it := range b.Items {
		r := row.New(7).Add(
			text.NewCol(6, it.Description, props.Text{Size: 9, Color: &textColor}),
			text.NewCol(2, fmt.Sprintf("%d", it.Quantity), props.Text{Size: 9, Align: align.Center, Color: &textColor}),
			text.NewCol(2, FormatAmount(it.UnitPrice), props.Text{Size: 9, Align: align.Right, Color: &textColor}),
			text.NewCol(2, FormatAmount(it.Total), props.Text{Size: 9, Align: align.Right, Color: &textColor}),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: &altRowColor})
		}
		m.AddRows(r)
	}
}

func addTotalsBlock(m core.Maroto, b *models.Budget) {
	m.AddRows(row.New(4))
	totalsRow := func(label, value string, valueColor *props.Color) core.Row {
		return row.New(6).Add(
			col.New(5),
			text.NewCol(4, label, props.Text{Size: 10, Color: valueColor}),
			text.NewCol(3, value, props.Text{Size: 10, Align: align.Right, Color: valueColor}),
		)
	}
	m.AddRows(totalsRow("Subtotal Materiales:", FormatAmount(b.Subtotal), &textColor))
	m.AddRows(totalsRow("Mano de Obra:", FormatAmount(b.LaborCost), &textColor))
	if b.TaxRate > 0 {
		m.AddRows(totalsRow(fmt.Sprintf("IVA (%g%%):", b.TaxRate), FormatAmount(b.TaxAmount), &textColor))
	}
	if b.Discount > 0 {
		m.AddRows(totalsRow("Descuento:", "-"+FormatAmount(b.Discount), &accentColor))
	}
	m.AddRows(row.New(9).Add(
		col.New(5),
		text.NewCol(4, "TOTAL:", props.Text{Top: 2, Size: 12, Style: fontstyle.Bold, Color: &whiteColor}).
			WithStyle(&props.Cell{BackgroundColor: &primaryColor}),
		text.NewCol(3, FormatAmount(b.Total), props.Text{Top: 2, Size: 12, Style: fontstyle.Bold, Align: align.Right, Color: &whiteColor}).
			WithStyle(&props.Cell{BackgroundColor: &primaryColor}),
	))
}

func addNotesBlock(m core.Maroto, b *models.Budget) {
	if b.Notes == "" {
		return
	}
	m.AddRows(row.New(6))
	m.AddRows(row.New(5).Add(
		text.NewCol(12, "OBSERVACIONES:", props.Text{Size: 9, Style: fontstyle.Bold, Color: &textColor}),
	))
	m.AddRows(text.NewRow(10, b.Notes, props.Text{Size: 9, Color: &textColor}))
}

func addTermsBlock(m core.Maroto, b *models.Budget) {
	m.AddRows(row.New(4))
	block := &props.Cell{BackgroundColor: &blockColor}
	m.AddRows(
		row.New(7).Add(
			text.NewCol(12, "CONDICIONES:", props.Text{Top: 2, Size: 9, Style: fontstyle.Bold, Color: &textColor}),
		).WithStyle(block),
		row.New(5).Add(
			text.NewCol(12, fmt.Sprintf("Validez del presupuesto: %d dias", b.ValidityDays), props.Text{Size: 9, Color: &textColor}),
		).WithStyle(block),
		row.New(5).Add(
			text.NewCol(12, "Garantia: "+b.Warranty, props.Text{Size: 9, Color: &textColor}),
		).WithStyle(block),
		row.New(6).Add(
			text.NewCol(12, "Forma de pago: "+b.PaymentTerms, props.Text{Size: 9, Color: &textColor}),
		).WithStyle(block),
	)
}

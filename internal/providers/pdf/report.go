package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotocfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

func (p *provider) EmployeeReport(ctx context.Context, data ReportData) (io.Reader, error) {
	return p.render(data, GroupByNone)
}

func (p *provider) BranchReport(ctx context.Context, data ReportData) (io.Reader, error) {
	return p.render(data, GroupByName)
}

func (p *provider) CompanyReport(ctx context.Context, data ReportData) (io.Reader, error) {
	return p.render(data, GroupByBranch)
}

func (p *provider) RoleReport(ctx context.Context, data ReportData) (io.Reader, error) {
	return p.render(data, GroupByBranch)
}

func (p *provider) render(data ReportData, groupBy GroupBy) (io.Reader, error) {
	cfg := p.cfg.Get()
	m := maroto.New(marotocfg.NewBuilder().
		WithPageSize(parsePageSize(cfg.PageSize)).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build())

	m.AddRow(12,
		text.NewCol(12, cfg.Title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, data.Heading, props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	if data.Subtitle != "" {
		m.AddRow(6,
			text.NewCol(12, data.Subtitle, props.Text{Size: 9, Align: align.Center}),
		)
	}
	m.AddRow(6,
		text.NewCol(12,
			data.From.Format(cfg.DateFormat)+" to "+data.To.Format(cfg.DateFormat),
			props.Text{Size: 9, Align: align.Center},
		),
	)

	if len(data.Rows) == 0 {
		m.AddRow(15,
			text.NewCol(12, "No reports in this period.", props.Text{
				Size:  10,
				Top:   5,
				Align: align.Center,
			}),
		)
		return generate(m)
	}

	group := ""
	for _, row := range data.Rows {
		if label := groupLabel(row, groupBy); label != "" && label != group {
			group = label
			m.AddRow(10,
				text.NewCol(12, group, props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Top:   3,
				}),
			)
		}

		entryText := truncateText(row.Text, cfg.MaxTextChars)

		m.AddRow(8,
			text.NewCol(3, row.Date.Format(cfg.DateFormat), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
			}),
			text.NewCol(9, row.FullName+" ("+row.RoleName+")", props.Text{Size: 9}),
		)
		m.AddRow(14,
			col.New(1),
			text.NewCol(11, entryText, props.Text{Size: 9}),
		)
	}

	return generate(m)
}

// truncateText cuts on a rune boundary so multi-byte text never gets split
// mid-sequence.
func truncateText(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func groupLabel(row ReportRow, groupBy GroupBy) string {
	switch groupBy {
	case GroupByBranch:
		return row.BranchName
	case GroupByName:
		return row.FullName
	default:
		return ""
	}
}

func parsePageSize(size string) pagesize.Type {
	switch size {
	case "Letter":
		return pagesize.Letter
	case "A5":
		return pagesize.A5
	default:
		return pagesize.A4
	}
}

func generate(m core.Maroto) (io.Reader, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

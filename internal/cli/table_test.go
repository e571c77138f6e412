package cli

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/matzehuels/isomers/pkg/service"
)

func sampleTable() *service.Table {
	return &service.Table{
		Degrees: []int{3, 4},
		Rows: [][]*big.Int{
			{big.NewInt(1), big.NewInt(1)},
			{big.NewInt(1), big.NewInt(1)},
			{big.NewInt(1), big.NewInt(1)},
			{big.NewInt(2), big.NewInt(2)},
			{big.NewInt(2), big.NewInt(3)},
		},
	}
}

func TestTableHeadersAndRows(t *testing.T) {
	tbl := sampleTable()
	headers := tableHeaders(tbl)
	if len(headers) != 3 || headers[0] != "n" || headers[2] != "deg ≤ 4" {
		t.Errorf("tableHeaders = %v", headers)
	}
	rows := tableRows(tbl)
	if len(rows) != 5 {
		t.Fatalf("tableRows length = %d, want 5", len(rows))
	}
	if got := strings.Join(rows[4], ","); got != "5,2,3" {
		t.Errorf("row 5 = %q, want 5,2,3", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(sampleTable())
	for _, want := range []string{"deg ≤ 3", "deg ≤ 4", "5"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderTable missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTableCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := writeTableCSV(&buf, sampleTable()); err != nil {
		t.Fatalf("writeTableCSV error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("CSV has %d lines, want 6:\n%s", len(lines), buf.String())
	}
	if lines[0] != "vertices,degree_3,degree_4" {
		t.Errorf("CSV header = %q", lines[0])
	}
	if lines[5] != "5,2,3" {
		t.Errorf("CSV last row = %q", lines[5])
	}
}

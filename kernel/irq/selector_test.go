package irq

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeSelectorError(t *testing.T) {
	specs := []struct {
		errorCode uint64
		exp       SelectorError
	}{
		{0x0, SelectorError{Table: TableGDT}},
		{0x1, SelectorError{External: true, Table: TableGDT}},
		{0x10, SelectorError{Table: TableGDT, Index: 2}},
		{0x2, SelectorError{Table: TableIDT}},
		{0x6, SelectorError{Table: TableIDT}},
		{0x4, SelectorError{Table: TableLDT}},
		// vector 13 raised by INT 0x80 through a non-present gate
		{0x80<<3 | 0x2, SelectorError{Table: TableIDT, Index: 0x80}},
		{0xfffb, SelectorError{External: true, Table: TableIDT, Index: 0x1fff}},
		// bits above 15 are ignored
		{0xffff0000 | 0x1c, SelectorError{Table: TableLDT, Index: 3}},
	}

	for specIndex, spec := range specs {
		if diff := cmp.Diff(spec.exp, DecodeSelectorError(spec.errorCode)); diff != "" {
			t.Errorf("[spec %d] decoded selector mismatch (-want +got):\n%s", specIndex, diff)
		}
	}
}

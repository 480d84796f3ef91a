package zlite

import (
	"bytes"
	"context"
	"testing"

	"github.com/zlite-go/zlite/internal/testutil"
)

func TestBlockScanner(t *testing.T) {
	data := testutil.GenRepeatingData(3*MaxBlockIn/2, []byte("pattern"))
	var compressed bytes.Buffer
	if err := NewPipeline().EncodeStream(bytes.NewReader(data), &compressed); err != nil {
		t.Fatalf("EncodeStream: %v", err)
	}

	sc := NewBlockScanner(bytes.NewReader(compressed.Bytes()))
	var blocks []BlockInfo
	ctx := context.Background()
	for sc.Scan(ctx) {
		blocks = append(blocks, sc.Block())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scanner error: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	// Rlen is a ROLZ symbol count, so the first block's value is what
	// encoding exactly its MaxBlockIn input bytes produces.
	wantRlen, _ := NewPipeline().encodeBlock(data[:MaxBlockIn])
	if blocks[0].Rlen != wantRlen {
		t.Fatalf("blocks[0].Rlen = %d, want %d", blocks[0].Rlen, wantRlen)
	}
	for i, b := range blocks {
		if b.Index != i {
			t.Fatalf("blocks[%d].Index = %d, want %d", i, b.Index, i)
		}
		if b.Lengths.UsedSymbols == 0 {
			t.Fatalf("blocks[%d] reports zero used symbols", i)
		}
		if b.Lengths.MaxLength > 15 {
			t.Fatalf("blocks[%d] max length %d exceeds 15", i, b.Lengths.MaxLength)
		}
	}
}

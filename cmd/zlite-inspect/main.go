package main

import (
	"context"
	"fmt"
	"os"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
	"cloudeng.io/errors"

	"github.com/zlite-go/zlite"
)

type noFlags struct{}

var cmdSet *subcmd.CommandSet

func init() {
	blocksCmd := subcmd.NewCommand("blocks",
		subcmd.MustRegisterFlagStruct(&noFlags{}, nil, nil),
		blocks, subcmd.AtLeastNArguments(1))
	blocksCmd.Document(`scan a zlite stream's block headers and Polar length-table summary without decoding it.`)

	cmdSet = subcmd.NewCommandSet(blocksCmd)
	cmdSet.Document(`inspect zlite block streams.`)
}

func main() {
	cmdSet.MustDispatch(context.Background())
}

func blocksFile(ctx context.Context, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := zlite.NewBlockScanner(f)
	for sc.Scan(ctx) {
		b := sc.Block()
		fmt.Printf("%s block %d: rlen=%d olen=%d symbols=%d lengths=[%d,%d]\n",
			name, b.Index, b.Rlen, b.Olen,
			b.Lengths.UsedSymbols, b.Lengths.MinLength, b.Lengths.MaxLength)
	}
	return sc.Err()
}

func blocks(ctx context.Context, values interface{}, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	cmdutil.HandleSignals(cancel, os.Interrupt)
	errs := &errors.M{}
	for _, arg := range args {
		errs.Append(blocksFile(ctx, arg))
	}
	return errs.Err()
}

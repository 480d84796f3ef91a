package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"cloudeng.io/cmdutil"
	"cloudeng.io/errors"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/schollz/progressbar/v2"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/zlite-go/zlite"
)

func init() {
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(
			s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: zlite e|d [src] [dst]\n")
	fmt.Fprintf(os.Stderr, "  e  compress src (default stdin) to dst (default stdout)\n")
	fmt.Fprintf(os.Stderr, "  d  decompress src (default stdin) to dst (default stdout)\n")
	fmt.Fprintf(os.Stderr, "  src/dst may be a local path, an s3:// object, or (src only) an http(s):// URL\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(255)
	}

	var encode bool
	switch os.Args[1] {
	case "e":
		encode = true
	case "d":
		encode = false
	default:
		usage()
		os.Exit(255)
	}

	verbose := false
	var positional []string
	for _, a := range os.Args[2:] {
		if a == "-verbose" {
			verbose = true
			continue
		}
		positional = append(positional, a)
	}

	if err := run(context.Background(), encode, verbose, positional); err != nil {
		log.Fatalf("zlite: %v", err)
	}
}

func run(ctx context.Context, encode, verbose bool, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmdutil.HandleSignals(cancel, os.Interrupt)

	srcName, dstName := "", ""
	if len(args) > 0 {
		srcName = args[0]
	}
	if len(args) > 1 {
		dstName = args[1]
	}

	src, size, closeSrc, err := openSrc(ctx, srcName)
	if err != nil {
		return err
	}
	dst, closeDst, err := createDst(ctx, dstName)
	if err != nil {
		return err
	}

	var (
		progressCh chan zlite.Progress
		wg         sync.WaitGroup
	)
	if dstName != "" {
		isTTY := terminal.IsTerminal(int(os.Stdout.Fd()))
		progressCh = make(chan zlite.Progress, 8)
		wg.Add(1)
		barWr := os.Stdout
		if !isTTY {
			barWr = os.Stderr
		}
		go func() {
			defer wg.Done()
			renderProgress(ctx, barWr, progressCh, size)
		}()
	}

	opts := []zlite.Option{zlite.WithVerbose(verbose)}
	if progressCh != nil {
		opts = append(opts, zlite.WithProgress(progressCh))
	}
	pipeline := zlite.NewPipeline(opts...)

	errs := &errors.M{}
	if encode {
		errs.Append(pipeline.EncodeStream(src, dst))
	} else {
		errs.Append(pipeline.DecodeStream(src, dst))
	}
	errs.Append(pipeline.Close())
	errs.Append(closeSrc(ctx))
	errs.Append(closeDst(ctx))

	if progressCh != nil {
		close(progressCh)
		wg.Wait()
	}

	return errs.Err()
}

func renderProgress(ctx context.Context, w io.Writer, ch chan zlite.Progress, size int64) {
	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetBytes64(size),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetPredictTime(true))
	bar.RenderBlank()
	for {
		select {
		case p, ok := <-ch:
			if !ok {
				fmt.Fprintf(w, "\n")
				return
			}
			bar.Add(p.CompressedSize)
		case <-ctx.Done():
			return
		}
	}
}

func openSrc(ctx context.Context, name string) (io.Reader, int64, func(context.Context) error, error) {
	if name == "" {
		return os.Stdin, 0, func(context.Context) error { return nil }, nil
	}
	if strings.HasPrefix(name, "http") {
		resp, err := http.Get(name)
		if err != nil {
			return nil, 0, nil, err
		}
		return resp.Body, resp.ContentLength,
			func(context.Context) error { return resp.Body.Close() }, nil
	}
	info, err := file.Stat(ctx, name)
	if err != nil {
		return nil, 0, nil, err
	}
	f, err := file.Open(ctx, name)
	if err != nil {
		return nil, 0, nil, err
	}
	return f.Reader(ctx), info.Size(), f.Close, nil
}

func createDst(ctx context.Context, name string) (io.Writer, func(context.Context) error, error) {
	if name == "" {
		return os.Stdout, func(context.Context) error { return nil }, nil
	}
	f, err := file.Create(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return f.Writer(ctx), f.Close, nil
}

// Binary lzjb compresses and decompresses files with the LZJB codec.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-faster/errors"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/woozymasta/lzjb"
	"github.com/woozymasta/lzjb/internal/app"
)

const suffix = ".lzjb"

type options struct {
	Decompress bool
	Raw        bool
	Test       bool
	Compare    bool
	Force      bool
	TableSize  int
	Jobs       int
}

// runner processes files. Methods are safe for concurrent use.
type runner struct {
	opt options
	lg  *zap.Logger

	outMux sync.Mutex
	out    io.Writer

	zstd *zstd.Encoder

	bytesIn  atomic.Uint64
	bytesOut atomic.Uint64
}

func newRunner(opt options, lg *zap.Logger, out io.Writer) (*runner, error) {
	if opt.Compare && !opt.Test {
		return nil, errors.New("-compare requires -t")
	}

	r := &runner{opt: opt, lg: lg, out: out}
	if opt.Compare {
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			return nil, errors.Wrap(err, "zstd")
		}
		r.zstd = enc
	}
	return r, nil
}

// Close releases encoder resources.
func (r *runner) Close() {
	if r.zstd != nil {
		_ = r.zstd.Close()
	}
}

func (r *runner) compressOptions() *lzjb.CompressOptions {
	return &lzjb.CompressOptions{WithSize: !r.opt.Raw, TableSize: r.opt.TableSize}
}

func (r *runner) decompressOptions() *lzjb.DecompressOptions {
	return &lzjb.DecompressOptions{WithSize: !r.opt.Raw}
}

// File handles one input file according to options.
func (r *runner) File(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrap(err, "read")
	}
	r.bytesIn.Add(uint64(len(data)))

	switch {
	case r.opt.Test:
		return r.test(name, data)
	case r.opt.Decompress:
		if !strings.HasSuffix(name, suffix) {
			return errors.Errorf("%s: unknown suffix, want %s", name, suffix)
		}
		dec, err := lzjb.Decompress(data, r.decompressOptions())
		if err != nil {
			return errors.Wrapf(err, "decompress %s", name)
		}
		return r.write(strings.TrimSuffix(name, suffix), dec)
	default:
		enc, err := lzjb.Compress(data, r.compressOptions())
		if err != nil {
			return errors.Wrapf(err, "compress %s", name)
		}
		return r.write(name+suffix, enc)
	}
}

func (r *runner) write(name string, data []byte) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !r.opt.Force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(name, flags, 0o644)
	if err != nil {
		return errors.Wrap(err, "create")
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "write")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close")
	}

	r.bytesOut.Add(uint64(len(data)))
	r.lg.Info("Wrote",
		zap.String("file", name),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// test compresses and decompresses data in memory, verifies the round trip and
// reports ratio and throughput.
func (r *runner) test(name string, data []byte) error {
	start := time.Now()
	enc, err := lzjb.Compress(data, r.compressOptions())
	if err != nil {
		return errors.Wrapf(err, "compress %s", name)
	}
	elapsed := time.Since(start)
	r.bytesOut.Add(uint64(len(enc)))

	dec, err := lzjb.Decompress(enc, r.decompressOptions())
	if err != nil {
		return errors.Wrapf(err, "decompress %s", name)
	}
	if !bytes.Equal(dec, data) {
		return errors.Errorf("%s: decompressed data does not match input", name)
	}

	line := fmt.Sprintf("%s: %s -> %s (%s) in %s [%s/s]",
		name,
		humanize.Bytes(uint64(len(data))),
		humanize.Bytes(uint64(len(enc))),
		ratio(len(enc), len(data)),
		elapsed.Round(time.Microsecond),
		humanize.Bytes(rate(len(data), elapsed)),
	)
	if r.opt.Compare {
		other, err := r.compare(data)
		if err != nil {
			return errors.Wrap(err, name)
		}
		line += other
	}
	r.outMux.Lock()
	defer r.outMux.Unlock()
	_, err = fmt.Fprintln(r.out, line)
	return err
}

// compare returns the ratios other block codecs reach on data.
func (r *runner) compare(data []byte) (string, error) {
	var lz4c lz4.Compressor
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4c.CompressBlock(data, buf)
	if err != nil {
		return "", errors.Wrap(err, "lz4")
	}

	zn := len(r.zstd.EncodeAll(data, nil))
	sn := len(snappy.Encode(nil, data))

	return fmt.Sprintf(" lz4=%s zstd=%s snappy=%s",
		ratio(n, len(data)),
		ratio(zn, len(data)),
		ratio(sn, len(data)),
	), nil
}

func ratio(n, of int) string {
	if of == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", 100*float64(n)/float64(of))
}

func rate(n int, d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(float64(n) / d.Seconds())
}

// Files processes names with at most opt.Jobs files in flight.
func (r *runner) Files(ctx context.Context, names []string) error {
	jobs := r.opt.Jobs
	if jobs < 1 {
		jobs = 1
	}
	sem := semaphore.NewWeighted(int64(jobs))

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			return r.File(gctx, name)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.lg.Info("Done",
		zap.Int("files", len(names)),
		zap.String("in", humanize.Bytes(r.bytesIn.Load())),
		zap.String("out", humanize.Bytes(r.bytesOut.Load())),
	)
	return nil
}

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger) error {
		var opt options
		flag.BoolVar(&opt.Decompress, "d", false, "decompress "+suffix+" files")
		flag.BoolVar(&opt.Raw, "raw", false, "no size prefix in compressed data")
		flag.BoolVar(&opt.Test, "t", false, "compress and verify in memory, print statistics")
		flag.BoolVar(&opt.Compare, "compare", false, "with -t, also report lz4, zstd and snappy ratios")
		flag.BoolVar(&opt.Force, "f", false, "overwrite existing output files")
		flag.IntVar(&opt.TableSize, "table", lzjb.LempelSize, "match table size, power of two")
		flag.IntVar(&opt.Jobs, "j", 1, "files processed concurrently")
		flag.Parse()

		if flag.NArg() == 0 {
			flag.Usage()
			return errors.New("no input files")
		}

		r, err := newRunner(opt, lg, os.Stdout)
		if err != nil {
			return err
		}
		defer r.Close()

		return r.Files(ctx, flag.Args())
	})
}

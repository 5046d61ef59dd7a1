package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/cref"
)

// ProfileReport summarizes a profiling run.
type ProfileReport struct {
	Iterations int    `json:"iterations" yaml:"iterations"`
	Elapsed    string `json:"elapsed" yaml:"elapsed"`
	Output     string `json:"output" yaml:"output"`
}

func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		iterations int
		output     string
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Run a pointer workload and write a heap profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			if iterations <= 0 {
				return NewExitError(ExitCommandError, "iterations must be positive")
			}
			file, err := os.Create(output)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeIO, err)
			}
			defer file.Close()

			prev := runtime.MemProfileRate
			runtime.MemProfileRate = 1
			defer func() { runtime.MemProfileRate = prev }()

			start := time.Now()
			if err := workload(iterations); err != nil {
				return f.Fail(ExitFailure, ErrCodeInvalidValue, err)
			}
			elapsed := time.Since(start)
			runtime.GC()
			if err := pprof.WriteHeapProfile(file); err != nil {
				return f.Fail(ExitFailure, ErrCodeIO, err)
			}

			report := ProfileReport{Iterations: iterations, Elapsed: elapsed.String(), Output: output}
			return f.Success(report, func(w io.Writer) {
				fmt.Fprintf(w, "wrote %s after %s\n", report.Output, report.Elapsed)
			})
		},
	}
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 10000, "workload iterations")
	cmd.Flags().StringVarP(&output, "output", "o", "mem.prof", "heap profile path")
	return cmd
}

// workload exercises allocation, pointers, C strings and the 64-bit codec.
func workload(n int) error {
	wide := cref.NewBuffer(make([]byte, 8))
	for i := 0; i < n; i++ {
		v, err := cref.AllocValue(cref.Int32, i&0x7fff)
		if err != nil {
			return err
		}
		p, err := cref.Ref(v)
		if err != nil {
			return err
		}
		if _, err := cref.Deref(p); err != nil {
			return err
		}
		s, err := cref.AllocValue(cref.CString, "profile")
		if err != nil {
			return err
		}
		if _, err := cref.Deref(s); err != nil {
			return err
		}
		if err := cref.WriteInt64BE(wide, 0, int64(i)<<40); err != nil {
			return err
		}
	}
	return nil
}

package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/cref"
	"github.com/rawbytedev/cref/internal/common"
)

// TypeInfo is the printable shape of a type descriptor.
type TypeInfo struct {
	Name        string `json:"name" yaml:"name"`
	Size        int    `json:"size" yaml:"size"`
	Indirection int    `json:"indirection" yaml:"indirection"`
	Alignment   int    `json:"alignment" yaml:"alignment"`
}

func typeInfo(t *cref.Type) TypeInfo {
	return TypeInfo{Name: t.Name, Size: t.Size, Indirection: t.Indirection, Alignment: t.Alignment}
}

func writeTypeTable(w io.Writer, infos []TypeInfo) {
	rows := make([][]string, 0, len(infos))
	for _, ti := range infos {
		rows = append(rows, []string{
			ti.Name,
			strconv.Itoa(ti.Size),
			strconv.Itoa(ti.Indirection),
			strconv.Itoa(ti.Alignment),
		})
	}
	writeTable(w, []string{"NAME", "SIZE", "INDIRECTION", "ALIGNMENT"}, rows)
}

func NewTypesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the built-in types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := builtinTypes()
			return rootOpts.formatter(cmd).Success(infos, func(w io.Writer) {
				writeTypeTable(w, infos)
			})
		},
	}
}

func builtinTypes() []TypeInfo {
	names := cref.TypeNames()
	infos := make([]TypeInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, typeInfo(cref.Types[name]))
	}
	return infos
}

// SizeofReport describes the platform tables.
type SizeofReport struct {
	PointerSize int         `json:"pointer_size" yaml:"pointer_size"`
	Endianness  string      `json:"endianness" yaml:"endianness"`
	Entries     []SizeEntry `json:"entries" yaml:"entries"`
}

type SizeEntry struct {
	Name  string `json:"name" yaml:"name"`
	Size  int    `json:"size" yaml:"size"`
	Align int    `json:"align" yaml:"align"`
}

func NewSizeofCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sizeof",
		Short: "Print the platform sizeof and alignof tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := sizeofReport()
			return rootOpts.formatter(cmd).Success(report, func(w io.Writer) {
				rows := make([][]string, 0, len(report.Entries))
				for _, e := range report.Entries {
					rows = append(rows, []string{e.Name, strconv.Itoa(e.Size), strconv.Itoa(e.Align)})
				}
				writeTable(w, []string{"NAME", "SIZE", "ALIGN"}, rows)
				fmt.Fprintf(w, "\npointer size: %d\nendianness:   %s\n", report.PointerSize, report.Endianness)
			})
		},
	}
}

func sizeofReport() SizeofReport {
	names := make([]string, 0, len(common.Sizeof))
	for name := range common.Sizeof {
		names = append(names, name)
	}
	sort.Strings(names)
	report := SizeofReport{PointerSize: common.PointerSize, Endianness: common.Endianness}
	for _, name := range names {
		report.Entries = append(report.Entries, SizeEntry{
			Name:  name,
			Size:  common.Sizeof[name],
			Align: common.Alignof[name],
		})
	}
	return report
}

func NewCoerceCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "coerce <type>...",
		Short: "Resolve type strings such as \"int **\", \"pointer\" or \"string\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			infos := make([]TypeInfo, 0, len(args))
			for _, spec := range args {
				t, err := cref.CoerceType(spec)
				if err != nil {
					return f.Fail(ExitFailure, ErrCodeInvalidType, err)
				}
				f.VerboseLog("%q -> %s", spec, t.Name)
				infos = append(infos, typeInfo(t))
			}
			return f.Success(infos, func(w io.Writer) {
				writeTypeTable(w, infos)
			})
		},
	}
}

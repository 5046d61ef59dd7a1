package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/cref/internal/common"
)

func NewDocsCommand(rootOpts *RootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate a Markdown reference of the built-in types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return rootOpts.formatter(cmd).Fail(ExitCommandError, ErrCodeIO, err)
				}
				defer file.Close()
				w = file
			}
			if err := WriteReference(w); err != nil {
				return rootOpts.formatter(cmd).Fail(ExitFailure, ErrCodeIO, err)
			}
			rootOpts.Log.Debug().Str("output", output).Msg("wrote reference")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

// WriteReference renders the built-in type table and platform facts as
// Markdown.
func WriteReference(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("# cref type reference\n\n")
	fmt.Fprintf(&sb, "Platform: %d-byte pointers, %s byte order.\n\n", common.PointerSize, endiannessName(common.Endianness))
	sb.WriteString("## Built-in types\n\n")
	sb.WriteString("| Name | Size | Indirection | Alignment |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, ti := range builtinTypes() {
		fmt.Fprintf(&sb, "| `%s` | %d | %d | %d |\n", ti.Name, ti.Size, ti.Indirection, ti.Alignment)
	}
	sb.WriteString("\n## Type strings\n\n")
	sb.WriteString("- A built-in name resolves to that type; lookup ignores case and whitespace.\n")
	sb.WriteString("- Each trailing `*` adds one level of indirection: `int **`.\n")
	sb.WriteString("- `pointer` is `void*` and `string` is `CString`.\n")
	sb.WriteString("\n## 64-bit integers\n\n")
	sb.WriteString("Reads return a number when the magnitude is at most 2^53 and a decimal string otherwise.\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func endiannessName(tag string) string {
	if tag == common.BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

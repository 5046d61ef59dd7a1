package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/cref"
	"github.com/rawbytedev/cref/internal/common"
)

// Int64Report is the result of pushing a value through the 64-bit codec.
type Int64Report struct {
	Input   string `json:"input" yaml:"input"`
	Type    string `json:"type" yaml:"type"`
	Endian  string `json:"endian" yaml:"endian"`
	Hex     string `json:"hex" yaml:"hex"`
	Value   string `json:"value" yaml:"value"`
	Numeric bool   `json:"numeric" yaml:"numeric"`
}

type int64Options struct {
	unsigned bool
	endian   string
}

func NewInt64Command(rootOpts *RootOptions) *cobra.Command {
	opts := &int64Options{}
	cmd := &cobra.Command{
		Use:   "int64 <value>",
		Short: "Encode a decimal value as a 64-bit integer and read it back",
		Long: `Writes the value into an 8 byte buffer, prints the bytes and reads them
back. Values beyond 2^53 in magnitude read back as decimal strings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInt64(rootOpts, opts, args[0], cmd)
		},
	}
	cmd.Flags().BoolVarP(&opts.unsigned, "unsigned", "u", false, "use the unsigned codec")
	cmd.Flags().StringVar(&opts.endian, "endian", "native", "byte order (native|LE|BE)")
	return cmd
}

func runInt64(rootOpts *RootOptions, opts *int64Options, input string, cmd *cobra.Command) error {
	f := rootOpts.formatter(cmd)

	endian := strings.ToUpper(opts.endian)
	if endian == "NATIVE" {
		endian = common.Endianness
	}
	if endian != common.LittleEndian && endian != common.BigEndian {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid endian %q: must be native, LE or BE", opts.endian))
	}

	write, read, name := cref.WriteInt64LE, cref.ReadInt64LE, "int64"
	switch {
	case opts.unsigned && endian == common.LittleEndian:
		write, read, name = cref.WriteUInt64LE, cref.ReadUInt64LE, "uint64"
	case opts.unsigned:
		write, read, name = cref.WriteUInt64BE, cref.ReadUInt64BE, "uint64"
	case endian == common.BigEndian:
		write, read = cref.WriteInt64BE, cref.ReadInt64BE
	}

	b := cref.NewBuffer(make([]byte, 8))
	if err := write(b, 0, input); err != nil {
		return f.Fail(ExitFailure, ErrCodeInvalidValue, err)
	}
	v, err := read(b, 0)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeInvalidValue, err)
	}
	_, isString := v.(string)
	report := Int64Report{
		Input:   input,
		Type:    name,
		Endian:  endian,
		Hex:     hex.EncodeToString(b.Bytes()),
		Value:   fmt.Sprint(v),
		Numeric: !isString,
	}
	return f.Success(report, func(w io.Writer) {
		kind := "number"
		if !report.Numeric {
			kind = "string"
		}
		fmt.Fprintf(w, "%s %s: %s\n", report.Type, report.Endian, report.Hex)
		fmt.Fprintf(w, "read back (%s): %s\n", kind, report.Value)
	})
}

// CStringReport describes an encoded C string.
type CStringReport struct {
	Text       string `json:"text" yaml:"text"`
	Encoding   string `json:"encoding" yaml:"encoding"`
	ByteLength int    `json:"byte_length" yaml:"byte_length"`
	Size       int    `json:"size" yaml:"size"`
	Hex        string `json:"hex" yaml:"hex"`
	ReadBack   string `json:"read_back" yaml:"read_back"`
}

func NewCStringCommand(rootOpts *RootOptions) *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "cstring <text>",
		Short: "Encode text as a NUL terminated C string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := encoding
			if !cmd.Flags().Changed("encoding") {
				enc = rootOpts.Config.Encoding
			}
			return runCString(rootOpts, args[0], enc, cmd)
		},
	}
	cmd.Flags().StringVarP(&encoding, "encoding", "e", cref.DefaultEncoding, "string encoding (utf8|ucs2|latin1)")
	return cmd
}

func runCString(rootOpts *RootOptions, text, enc string, cmd *cobra.Command) error {
	f := rootOpts.formatter(cmd)
	b, err := cref.AllocCString(text, enc)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeInvalidValue, err)
	}
	data := b.Bytes()
	n := len(data) - 1
	// payload only; the terminator is a single byte for every encoding
	back, err := cref.Decode(data[:n], enc)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeInvalidValue, err)
	}
	report := CStringReport{
		Text:       text,
		Encoding:   enc,
		ByteLength: n,
		Size:       b.Len(),
		Hex:        hex.EncodeToString(data),
		ReadBack:   back,
	}
	return f.Success(report, func(w io.Writer) {
		fmt.Fprintf(w, "encoding:    %s\n", report.Encoding)
		fmt.Fprintf(w, "byte length: %d\n", report.ByteLength)
		fmt.Fprintf(w, "buffer size: %d\n", report.Size)
		fmt.Fprintf(w, "hex:         %s\n", report.Hex)
		fmt.Fprintf(w, "read back:   %q\n", report.ReadBack)
	})
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Outputter is implemented by command results that can be printed in any format.
type Outputter interface {
	// ToData returns the value marshaled for json and yaml output
	ToData() any
	ToText(w io.Writer)
}

func setupOutputFlags(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(format, "format", "o", "text", "Output format: text, json or yaml")
}

func writeOutput(w io.Writer, o Outputter, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		b, err := json.MarshalIndent(o.ToData(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml", "yml":
		b, err := yaml.Marshal(o.ToData())
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "text", "":
		o.ToText(w)
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}

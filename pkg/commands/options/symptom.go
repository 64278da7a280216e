package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/entry"
)

// SymptomOptions
type SymptomOptions struct {
	Severity int
	Notes    string
}

func AddSymptomArgs(cmd *cobra.Command, o *SymptomOptions) {
	cmd.Flags().IntVarP(&o.Severity, "severity", "s", 0,
		"How bad it is, 1 (mild) to 10 (worst).")
	cmd.Flags().StringVar(&o.Notes, "notes", "",
		"Optional notes.")
	_ = cmd.MarkFlagRequired("severity")
}

func (o *SymptomOptions) GetSeverity() (entry.Severity, error) {
	s := entry.Severity(o.Severity)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: severity must be between %d and %d", entry.ErrValidation, entry.MinSeverity, entry.MaxSeverity)
	}
	return s, nil
}

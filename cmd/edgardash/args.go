package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seenimoa/edgardash/pkg/utils"
)

func cikArg(raw string) (string, error) {
	cik, ok := utils.NormalizeCIK(raw)
	if !ok {
		return "", fmt.Errorf("invalid CIK %q", raw)
	}
	return cik, nil
}

func cusipArg(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !utils.IsCUSIP(raw) {
		return "", fmt.Errorf("invalid CUSIP %q: want 9 characters", raw)
	}
	return strings.ToUpper(raw), nil
}

// dateRange reads --from and --to. Both are optional; when both are set
// from must not be after to.
func dateRange(cmd *cobra.Command) (from, to string, err error) {
	rawFrom, _ := cmd.Flags().GetString("from")
	rawTo, _ := cmd.Flags().GetString("to")
	return parseDateRange(rawFrom, rawTo)
}

func parseDateRange(rawFrom, rawTo string) (from, to string, err error) {
	if from, err = dateArg("from", rawFrom); err != nil {
		return "", "", err
	}
	if to, err = dateArg("to", rawTo); err != nil {
		return "", "", err
	}
	if from != "" && to != "" && from > to {
		return "", "", fmt.Errorf("--from %s is after --to %s", from, to)
	}
	return from, to, nil
}

func dateArg(flag, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return "", fmt.Errorf("invalid --%s date %q: want YYYY-MM-DD", flag, raw)
	}
	return utils.FormatDateET(t), nil
}

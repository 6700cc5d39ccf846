package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"autokey-backend/crypto"
)

func code(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// writeTrace prints the cipher trace with the column names of a classroom worksheet
func writeTrace(w io.Writer, trace crypto.TraceTable, decrypt bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if decrypt {
		fmt.Fprintln(tw, "CT\tn(CT)\tK\tn(K)\t(nCT-nK)%26\tPT\tn(PT)\tKeyStream")
	} else {
		fmt.Fprintln(tw, "PT\tn(PT)\tK\tn(K)\t(nPT+nK)%26\tCT\tn(CT)\tKeyStream")
	}
	for _, row := range trace {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Input, code(row.InputCode),
			row.Key, code(row.KeyCode),
			code(row.Result),
			row.Output, code(row.OutputCode),
			row.Keystream)
	}
	return tw.Flush()
}

func writeRecoveryTrace(w io.Writer, trace crypto.TraceTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PT\tn(PT)\tCT\tn(CT)\t(nCT-nPT)%26\tKey\tn(Key)")
	for _, row := range trace {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Input, code(row.InputCode),
			row.Output, code(row.OutputCode),
			code(row.Result),
			row.Key, code(row.KeyCode))
	}
	return tw.Flush()
}

package replay

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/arcball/pkg/math"
)

// WriteYAML encodes res as YAML.
func WriteYAML(w io.Writer, res *Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return enc.Close()
}

// WriteTable prints res as aligned row-major matrices.
func WriteTable(w io.Writer, res *Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "steps\t%d\t\n", res.Steps)
	fmt.Fprintf(tw, "eye\t%.6f\t%.6f\t%.6f\t\n", res.Eye[0], res.Eye[1], res.Eye[2])
	q := res.Rotation
	fmt.Fprintf(tw, "rotation\t%.6f\t%.6f\t%.6f\t%.6f\t\n", q.X, q.Y, q.Z, q.W)

	writeMatrix(tw, "view", res.View)
	writeMatrix(tw, "inverse view", res.InverseView)
	for _, s := range res.Snapshots {
		writeMatrix(tw, fmt.Sprintf("#%d %s", s.Index, s.Action), s.View)
	}
	return tw.Flush()
}

func writeMatrix(w io.Writer, label string, m math.Mat4d) {
	for row := 0; row < 4; row++ {
		if row == 0 {
			fmt.Fprintf(w, "%s\t", label)
		} else {
			fmt.Fprint(w, "\t")
		}
		for col := 0; col < 4; col++ {
			fmt.Fprintf(w, "%.6f\t", m.At(row, col))
		}
		fmt.Fprintln(w)
	}
}

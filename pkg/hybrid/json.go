package hybrid

import "encoding/json"

// jsonBlock is the tagged form of a Block used in JSON dumps
type jsonBlock struct {
	Kind   string     `json:"kind"`
	Text   string     `json:"text,omitempty"`
	Level  int        `json:"level,omitempty"`
	Number int        `json:"number,omitempty"`
	Label  string     `json:"label,omitempty"`
	Grid   [][]string `json:"grid,omitempty"`
	Width  int        `json:"width,omitempty"`
	Height int        `json:"height,omitempty"`
	Format string     `json:"format,omitempty"`
	Bytes  int        `json:"bytes,omitempty"`
}

type jsonDiagnostic struct {
	Code    string `json:"code"`
	Page    int    `json:"page,omitempty"`
	Table   int    `json:"table,omitempty"`
	Message string `json:"message"`
}

// MarshalJSON writes every block with its kind. Image payloads are reported
// by size only.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := struct {
		Blocks      []jsonBlock      `json:"blocks"`
		Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
	}{Blocks: make([]jsonBlock, 0, len(d.Blocks))}

	for _, b := range d.Blocks {
		jb := jsonBlock{Kind: b.Kind().String()}
		switch v := b.(type) {
		case *Heading:
			jb.Text, jb.Level = v.Text, v.Level
		case *Paragraph:
			jb.Text = v.Text
		case *Table:
			jb.Number, jb.Label, jb.Grid = v.Number, v.Label, v.Grid
		case *Image:
			jb.Width, jb.Height, jb.Format, jb.Bytes = v.Width, v.Height, v.Format, len(v.Data)
		}
		out.Blocks = append(out.Blocks, jb)
	}
	for _, diag := range d.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic(diag))
	}
	return json.Marshal(out)
}

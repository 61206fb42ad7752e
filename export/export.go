// Package export writes trained models in the two downstream inference formats
package export

import "bytes"
import "errors"
import "strconv"

import "github.com/tonecap/tonecap/net/tcn"

// isNameChar reports whether the exported model name is valid
func isNameChar(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || (c == '_')
}

// GoSource serializes the model into a compilable Go source file holding
// the architecture constants and a flat weight table
func GoSource(n *tcn.Network, pkg, name string, rate int) (b *bytes.Buffer, err error) {
	if pkg == "" || name == "" {
		return nil, errors.New("export: package and name must not be empty")
	}
	for _, v := range pkg {
		if !isNameChar(v) {
			return nil, errors.New("export: package is invalid")
		}
	}
	for _, v := range name {
		if !isNameChar(v) {
			return nil, errors.New("export: name is invalid")
		}
	}
	b = new(bytes.Buffer)
	b.WriteString("// Code generated by tonecap. DO NOT EDIT.\n\n")
	b.WriteString("package " + pkg + "\n\n")
	b.WriteString("const " + name + "Channels = " + strconv.Itoa(n.Channels()) + "\n")
	b.WriteString("const " + name + "Blocks = " + strconv.Itoa(n.Blocks()) + "\n")
	b.WriteString("const " + name + "Kernel = " + strconv.Itoa(n.Kernel()) + "\n")
	b.WriteString("const " + name + "Growth = " + strconv.Itoa(n.Growth()) + "\n")
	b.WriteString("const " + name + "SampleRate = " + strconv.Itoa(rate) + "\n\n")
	b.WriteString("var " + name + "Weights = []float32{\n")
	var col int
	for _, p := range n.Parameters() {
		for _, v := range p.Data {
			if col == 0 {
				b.WriteByte('\t')
			}
			b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
			b.WriteString(", ")
			col++
			if col == 8 {
				b.WriteByte('\n')
				col = 0
			}
		}
	}
	if col != 0 {
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return
}

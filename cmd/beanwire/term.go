package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/karagenc/beanproto/parser"
	"golang.org/x/term"
)

var colors = []string{
	"#e21400", "#91580f", "#f8a700", "#f78b00",
	"#58dc00", "#287b00", "#a8f07a", "#4ae8c4",
	"#3b88eb", "#3824aa", "#a700ff", "#d300e7",
}

func getIdentifierColor(identifier string) color.RGBColor {
	hash := 7
	for _, r := range identifier {
		hash = int(r) + (hash << 5) - hash
	}
	index := int(math.Abs(float64(hash % len(colors))))
	return color.Hex(colors[index])
}

type printer struct {
	w        io.Writer
	colorful bool
}

func newPrinter(f *os.File) *printer {
	return &printer{
		w:        f,
		colorful: term.IsTerminal(int(f.Fd())),
	}
}

func (p *printer) print(msg *parser.Message) {
	var b strings.Builder
	if p.colorful {
		b.WriteString(getIdentifierColor(msg.Identifier).Sprint(msg.Identifier))
	} else {
		b.WriteString(msg.Identifier)
	}

	for _, name := range msg.Args.Names() {
		v, _ := msg.Args.Get(name)
		b.WriteString(" " + name + "=")
		switch x := v.(type) {
		case []byte:
			b.WriteString(strconv.Quote(string(x)))
		default:
			fmt.Fprint(&b, x)
		}
	}

	if msg.Unrecognized {
		if p.colorful {
			b.WriteString(" " + color.Red.Sprint("(unrecognized)"))
		} else {
			b.WriteString(" (unrecognized)")
		}
	}
	fmt.Fprintln(p.w, b.String())
}

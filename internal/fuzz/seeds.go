package fuzztests

import (
	"testing"
)

const (
	maxFuzzInput = 16 << 10 // 16 KiB: больше входа только замедляет рендер
)

// seedTexts cover the shapes that drive layout decisions: empty files, missing
// final newline, CRLF, tabs, wide and combining characters, invalid UTF-8.
var seedTexts = []string{
	"",
	"a\nbb\nccc\n",
	"no newline at end",
	"\n\n\n",
	"crlf\r\nline\r\n",
	"\tindented\n\t\tdeeper\n",
	"let 名前 = \"値\";\n",
	"é́ combining\n",
	"\xff\xfe broken \xc3\x28 utf8\n",
	"fn main() {\n    let x = 1;\n}\n",
}

func addSeeds(f *testing.F) {
	for i, text := range seedTexts {
		n := uint32(len(text))
		f.Add([]byte(text), uint32(0), n, uint32(i)%(n+1), uint32(i)%3 == 0)
		f.Add([]byte(text), n/2, n, n/3, false)
	}
}

package duolog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessagePlainText(t *testing.T) {
	assert.Equal(t, "hello", FormatMessage(Text("hello")))
}

func TestFormatMessagePrintfArgs(t *testing.T) {
	got := FormatMessage(Text("user %s failed %d times"), "bob", 3)
	assert.Equal(t, "user bob failed 3 times", got)
}

func TestFormatMessageFlattensLineBreaks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"crlf pair", "line1\r\nline2", "line1;line2"},
		{"bare lf", "a\nb\nc", "a;b;c"},
		{"bare cr", "a\rb", "a;b"},
		{"trailing stripped", "done\r\n\r\n", "done"},
		{"trailing and embedded", "a\nb\n", "a;b"},
		{"empty", "", ""},
		{"only terminators", "\r\n\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMessage(Text(tt.input)))
		})
	}
}

func TestFormatMessageProducer(t *testing.T) {
	calls := 0
	producer := Producer(func() string {
		calls++

		return "expensive"
	})

	got := FormatMessage(producer)

	assert.Equal(t, "expensive", got)
	assert.Equal(t, 1, calls)
}

func TestFormatMessageProducerWithArgs(t *testing.T) {
	producer := Producer(func() string { return "value=%d" })

	assert.Equal(t, "value=7", FormatMessage(producer, 7))
}

func TestFormatMessageTable(t *testing.T) {
	table := Table{
		{"col1", "col2"},
		{"a", "b"},
	}

	got := FormatMessage(table)

	assert.Equal(t, "\n\tcol1\tcol2\n\ta\tb", got)
}

func TestFormatMessageNilSource(t *testing.T) {
	assert.Equal(t, "", FormatMessage(nil))
}

func TestAsSource(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"string", "plain", "plain"},
		{"func", func() string { return "lazy" }, "lazy"},
		{"error", errors.New("boom"), "boom"},
		{"nil", nil, ""},
		{"int", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsSource(tt.input).Resolve())
		})
	}
}

func TestAsSourceTable(t *testing.T) {
	source := AsSource([][]string{{"x"}})

	_, ok := source.(Table)
	assert.True(t, ok)
}

func TestAsSourcePassThrough(t *testing.T) {
	original := Text("same")
	assert.Equal(t, original, AsSource(original))
}

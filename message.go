package duolog

import (
	"fmt"
	"strings"
)

// MessageSource supplies the text of a log record. Implementations may defer
// building the message until Resolve is called; the Logger resolves a source
// only after one of its thresholds has admitted the record, so an expensive
// message is never built for a filtered-out call.
type MessageSource interface {
	// Resolve produces the concrete message.
	Resolve() string
}

// Text adapts a plain string into a MessageSource.
type Text string

// Resolve returns the literal string.
func (t Text) Resolve() string {
	return string(t)
}

// Producer is a deferred message producer. It is invoked at most once per
// emitted record and never when the record is filtered out by both thresholds.
type Producer func() string

// Resolve invokes the producer.
func (p Producer) Resolve() string {
	return p()
}

// Table is a structured multi-row message. It renders as a multi-line dump
// with a leading newline marker so it stays recognizable as one logical record
// even though it spans visual lines.
type Table [][]string

// Resolve renders the rows one per line, each indented by a tab.
func (t Table) Resolve() string {
	var builder strings.Builder

	for _, row := range t {
		builder.WriteString("\n\t")
		builder.WriteString(strings.Join(row, "\t"))
	}

	return builder.String()
}

// AsSource normalizes a message value into a MessageSource. Strings,
// zero-argument string producers, string matrices, errors, and Stringers are
// handled directly; anything else is rendered lazily with the fmt verb %v.
func AsSource(msg any) MessageSource {
	switch value := msg.(type) {
	case MessageSource:
		return value
	case string:
		return Text(value)
	case func() string:
		return Producer(value)
	case [][]string:
		return Table(value)
	case error:
		return Producer(value.Error)
	case fmt.Stringer:
		return Producer(value.String)
	case nil:
		return Text("")
	default:
		return Producer(func() string {
			return fmt.Sprintf("%v", value)
		})
	}
}

//nolint:gochecknoglobals
var lineBreakReplacer = strings.NewReplacer("\r\n", ";", "\r", ";", "\n", ";")

// FormatMessage renders a message source plus optional printf-style arguments
// into one log line. Table sources keep their indented multi-line layout;
// everything else is flattened to a single physical line: trailing carriage
// returns and line feeds are stripped, embedded ones become semicolons. An
// empty message after trimming is valid and yields an empty message field.
func FormatMessage(source MessageSource, args ...any) string {
	if source == nil {
		return ""
	}

	msg := source.Resolve()

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	if _, ok := source.(Table); ok {
		return msg
	}

	return flattenLine(msg)
}

// flattenLine guarantees the returned string contains no raw line terminators.
func flattenLine(msg string) string {
	msg = strings.TrimRight(msg, "\r\n")

	if !strings.ContainsAny(msg, "\r\n") {
		return msg
	}

	return lineBreakReplacer.Replace(msg)
}

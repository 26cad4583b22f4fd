package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiFaint = "\033[2m"

	timeColor   = "\033[38;2;148;163;184m"
	keyColor    = "\033[38;2;94;234;212m"
	textColor   = "\033[38;2;226;232;240m"
	warnColor   = "\033[38;2;253;230;138m"
	errorColor  = "\033[38;2;254;202;202m"
	fieldIndent = "  "
)

//nolint:gochecknoglobals // palette is a static lookup shared across encoder instances.
var levelPalette = map[zapcore.Level]string{
	zapcore.DebugLevel:  "\033[38;2;129;140;248m",
	zapcore.InfoLevel:   "\033[38;2;16;185;129m",
	zapcore.WarnLevel:   "\033[38;2;245;158;11m",
	zapcore.ErrorLevel:  "\033[38;2;248;113;113m",
	zapcore.DPanicLevel: "\033[38;2;244;63;94m",
	zapcore.PanicLevel:  "\033[38;2;244;63;94m",
	zapcore.FatalLevel:  "\033[38;2;217;70;239m",
}

// prettyEncoder wraps zap's JSON encoder and re-renders each entry as a
// colorized header line followed by one indented line per field.
type prettyEncoder struct {
	zapcore.Encoder
}

func newPrettyEncoder(cfg zapcore.EncoderConfig) *prettyEncoder {
	return &prettyEncoder{Encoder: zapcore.NewJSONEncoder(cfg)}
}

// Clone keeps derived loggers on the pretty encoder.
func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{Encoder: e.Encoder.Clone()}
}

// newPrettyLogger creates a pretty logger writing to the configured output stream.
func newPrettyLogger(cfg *zap.Config, output string) *zap.Logger {
	sink := zapcore.Lock(os.Stderr)
	if output == outStdout {
		sink = zapcore.Lock(os.Stdout)
	}

	core := zapcore.NewCore(newPrettyEncoder(cfg.EncoderConfig), sink, cfg.Level)
	return zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr)))
}

// EncodeEntry formats a log entry with pretty printing and colorization.
func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}

	payload, err := unmarshalOrdered(bytes.TrimSpace(buf.Bytes()))
	if err != nil || payload == nil {
		// not an object, keep the json line as is
		return buf, nil
	}
	buf.Reset()

	buf.AppendString(header(entry))
	for _, line := range fieldLines(payload, entry.Level) {
		buf.AppendString(line)
		buf.AppendByte('\n')
	}
	return buf, nil
}

func header(entry zapcore.Entry) string {
	ts := entry.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	levelColor, ok := levelPalette[entry.Level]
	if !ok {
		levelColor = textColor
	}

	var b strings.Builder
	b.WriteString(ansiFaint + timeColor + "[" + ts.Format(time.DateTime) + "]" + ansiReset + " ")
	b.WriteString(ansiBold + levelColor + entry.Level.CapitalString() + ansiReset)
	if entry.LoggerName != "" {
		b.WriteString(" " + ansiFaint + timeColor + entry.LoggerName + ansiReset)
	}
	if entry.Message != "" {
		b.WriteString(" " + messageColor(entry.Level) + entry.Message + ansiReset)
	}
	b.WriteByte('\n')
	return b.String()
}

// fieldLines renders every non-reserved field as "key: value" in logging order.
func fieldLines(payload *orderedmap.OrderedMap[string, any], level zapcore.Level) []string {
	valColor := messageColor(level)
	lines := make([]string, 0, payload.Len())
	for pair := payload.Oldest(); pair != nil; pair = pair.Next() {
		switch pair.Key {
		case timeKey, levelKey, messageKey, nameKey:
			continue
		}
		lines = append(lines, fieldIndent+keyColor+pair.Key+ansiReset+": "+ansiFaint+valColor+renderValue(pair.Value)+ansiReset)
	}
	return lines
}

// unmarshalOrdered decodes a JSON object keeping key order at every level.
// It returns nil when data is not an object.
func unmarshalOrdered(data []byte) (*orderedmap.OrderedMap[string, any], error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, nil
	}

	return decodeObject(decoder)
}

func decodeObject(decoder *json.Decoder) (*orderedmap.OrderedMap[string, any], error) {
	om := orderedmap.New[string, any]()

	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyToken.(string)

		value, err := decodeValue(decoder)
		if err != nil {
			return nil, err
		}
		om.Set(key, value)
	}

	// closing brace
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return om, nil
}

func decodeValue(decoder *json.Decoder) (any, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := token.(json.Delim)
	if !ok {
		return token, nil
	}

	switch delim {
	case '{':
		return decodeObject(decoder)
	case '[':
		var arr []any
		for decoder.More() {
			v, err := decodeValue(decoder)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := decoder.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return token, nil
	}
}

// renderValue prints strings bare and everything else as indented JSON.
// Ordered maps marshal in insertion order.
func renderValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	}
	out, err := json.MarshalIndent(v, fieldIndent, "  ")
	if err != nil {
		return "?"
	}
	return string(out)
}

func messageColor(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return warnColor
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return errorColor
	case zapcore.DebugLevel, zapcore.InfoLevel, zapcore.InvalidLevel:
		return textColor
	default:
		return textColor
	}
}

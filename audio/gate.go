package audio

import (
	"context"
	"errors"
	"strings"

	"github.com/kbukum/whisper-asr-mcp/conversion"
	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
	"github.com/kbukum/whisper-asr-mcp/logger"
)

// DefaultNativeFormat is the container the transcription backend takes
// without conversion.
const DefaultNativeFormat = "mp3"

var errEmptyConversion = errors.New("converter returned no data")

// Gate converts resolved audio to the native container when needed.
type Gate struct {
	native    string
	verify    bool
	converter conversion.Converter
	log       *logger.Logger
}

// NewGate creates a gate for the native extension (case-insensitive,
// leading dot optional). With verify set, a file carrying the native
// extension whose bytes sniff as another media container is converted too.
func NewGate(native string, verify bool, converter conversion.Converter, log *logger.Logger) *Gate {
	native = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(native), "."))
	if native == "" {
		native = DefaultNativeFormat
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Gate{native: native, verify: verify, converter: converter, log: log.WithComponent("audio")}
}

// Native returns the native extension.
func (g *Gate) Native() string { return g.native }

// NeedsConversion reports whether r must go through the converter, and why.
func (g *Gate) NeedsConversion(r *Resolved) (bool, string) {
	ext := r.Ext()
	switch {
	case ext == "":
		return true, "no extension"
	case ext != g.native:
		return true, "extension ." + ext
	}
	if !g.verify {
		return false, ""
	}
	m := Sniff(r.Data)
	if isMedia(m) && !sniffedAs(m, g.native) {
		return true, "content is " + mediaType(m)
	}
	return false, ""
}

// Apply returns r unchanged when it is already native. Otherwise it calls
// the converter exactly once and returns a new buffer renamed to the native
// extension. converted reports which happened.
func (g *Gate) Apply(ctx context.Context, r *Resolved) (out *Resolved, converted bool, err error) {
	m := Sniff(r.Data)
	if r.ContentType == "" {
		r.ContentType = mediaType(m)
	}

	need, reason := g.NeedsConversion(r)
	if !need {
		g.log.Debug("audio is native", logger.Fields(logger.FieldFilename, r.Filename, logger.FieldMIME, r.ContentType))
		return r, false, nil
	}

	g.log.Debug("converting audio", logger.Fields(
		logger.FieldFilename, r.Filename,
		logger.FieldMIME, r.ContentType,
		"reason", reason,
		"target", g.native,
	))
	res, err := g.converter.Execute(ctx, conversion.Request{
		Data:        r.Data,
		Filename:    r.Filename,
		ContentType: r.ContentType,
		Target:      g.native,
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, false, err
		}
		return nil, false, apperrors.ConversionError(err)
	}
	if res == nil || len(res.Data) == 0 {
		return nil, false, apperrors.ConversionError(errEmptyConversion)
	}

	ct := res.ContentType
	if ct == "" || ct == "application/octet-stream" {
		ct = mediaType(Sniff(res.Data))
	}
	return &Resolved{
		Data:        res.Data,
		Filename:    conversion.RenameExt(r.Filename, g.native),
		ContentType: ct,
	}, true, nil
}
